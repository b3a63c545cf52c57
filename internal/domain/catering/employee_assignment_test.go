package catering

import (
	"errors"
	"testing"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_AddEmployeeAssignment(t *testing.T) {
	t.Run("books employee with pending payment", func(t *testing.T) {
		o := newTestOrder(t)
		cook := uuid.New()

		a, err := o.AddEmployeeAssignment(cook, "Head cook", decimal.NewFromInt(2000))

		require.NoError(t, err)
		assert.Equal(t, o.ID, a.OrderID)
		assert.Equal(t, cook, a.EmployeeID)
		assert.Equal(t, AssignmentPaymentPending, a.PaymentStatus)
		assert.Len(t, o.Assignments, 1)
		assert.True(t, o.LabourCost().Equal(decimal.NewFromInt(2000)))
		assert.Equal(t, EventTypeEmployeeAssigned, o.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects the same employee twice", func(t *testing.T) {
		o := newTestOrder(t)
		cook := uuid.New()
		_, err := o.AddEmployeeAssignment(cook, "Cook", decimal.Zero)
		require.NoError(t, err)

		_, err = o.AddEmployeeAssignment(cook, "Helper", decimal.Zero)

		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		assert.Len(t, o.Assignments, 1)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.AddEmployeeAssignment(uuid.Nil, "Cook", decimal.Zero)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = o.AddEmployeeAssignment(uuid.New(), "Cook", decimal.NewFromInt(-10))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = o.AddEmployeeAssignment(uuid.New(), "Cook", decimal.RequireFromString("750.005"))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = o.AddEmployeeAssignment(uuid.New(), string(make([]byte, 51)), decimal.Zero)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.Empty(t, o.Assignments)
	})

	t.Run("terminal orders take no new staff", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(""))

		_, err := o.AddEmployeeAssignment(uuid.New(), "Waiter", decimal.NewFromInt(500))

		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})
}

func TestOrder_RemoveEmployeeAssignment(t *testing.T) {
	t.Run("detaches and clears the order reference", func(t *testing.T) {
		o := newTestOrder(t)
		a, err := o.AddEmployeeAssignment(uuid.New(), "Driver", decimal.NewFromInt(700))
		require.NoError(t, err)

		removed, err := o.RemoveEmployeeAssignment(a.ID)

		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, removed.OrderID)
		assert.Equal(t, a.EmployeeID, removed.EmployeeID)
		assert.Empty(t, o.Assignments)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.RemoveEmployeeAssignment(uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("paid assignments stay", func(t *testing.T) {
		o := newTestOrder(t)
		a, err := o.AddEmployeeAssignment(uuid.New(), "Driver", decimal.NewFromInt(700))
		require.NoError(t, err)
		_, err = o.FinalizeAssignment(a.ID, time.Now())
		require.NoError(t, err)

		_, err = o.RemoveEmployeeAssignment(a.ID)

		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		assert.Len(t, o.Assignments, 1)
	})
}

func TestOrder_FinalizeAssignment(t *testing.T) {
	t.Run("marks paid once", func(t *testing.T) {
		o := newTestOrder(t)
		a, err := o.AddEmployeeAssignment(uuid.New(), "Bai", decimal.NewFromInt(900))
		require.NoError(t, err)
		paidAt := time.Date(2026, 11, 21, 9, 0, 0, 0, time.UTC)

		paid, err := o.FinalizeAssignment(a.ID, paidAt)

		require.NoError(t, err)
		assert.True(t, paid.IsPaid())
		assert.Equal(t, paidAt, *paid.PaidAt)
		assert.True(t, o.GetAssignment(a.ID).IsPaid())

		_, err = o.FinalizeAssignment(a.ID, paidAt)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("cancelled orders cannot pay out", func(t *testing.T) {
		o := newTestOrder(t)
		a, err := o.AddEmployeeAssignment(uuid.New(), "Bai", decimal.NewFromInt(900))
		require.NoError(t, err)
		require.NoError(t, o.Cancel(""))

		_, err = o.FinalizeAssignment(a.ID, time.Now())
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("unknown assignment", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.FinalizeAssignment(uuid.New(), time.Now())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
