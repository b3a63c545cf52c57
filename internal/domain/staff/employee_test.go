package staff

import (
	"errors"
	"testing"
	"time"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/catering/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCook(t *testing.T) *Employee {
	t.Helper()
	e, err := NewEmployee("EMP-001", "Ravi Kumar", EmployeeTypeCook, decimal.NewFromInt(1500))
	require.NoError(t, err)
	return e
}

func TestNewEmployee(t *testing.T) {
	t.Run("creates active employee with zero counters", func(t *testing.T) {
		e := newCook(t)

		assert.True(t, e.Active)
		assert.Equal(t, 0, e.TotalOrdersServed)
		assert.True(t, e.TotalEarnings.IsZero())
		assert.Equal(t, "Cook", e.Type.DisplayName())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewEmployee("", "Ravi", EmployeeTypeCook, decimal.Zero)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewEmployee("EMP-000000000000000001", "Ravi", EmployeeTypeCook, decimal.Zero)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewEmployee("EMP-1", "Ravi", EmployeeType("CHEF"), decimal.Zero)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewEmployee("EMP-1", "Ravi", EmployeeTypeDriver, decimal.NewFromInt(-5))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestEmployee_RecordServedOrder(t *testing.T) {
	e := newCook(t)

	require.NoError(t, e.RecordServedOrder(decimal.RequireFromString("1500.50")))
	require.NoError(t, e.RecordServedOrder(decimal.NewFromInt(800)))

	assert.Equal(t, 2, e.TotalOrdersServed)
	assert.True(t, e.TotalEarnings.Equal(decimal.RequireFromString("2300.50")))
	assert.Equal(t, "₹2300.50", e.Earnings(valueobject.INR).String())
	assert.Equal(t, "$2300.50", e.Earnings(valueobject.USD).String())

	err := e.RecordServedOrder(decimal.NewFromInt(-1))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, 2, e.TotalOrdersServed)
}

func TestEmployee_Activation(t *testing.T) {
	e := newCook(t)

	require.NoError(t, e.Deactivate())
	assert.False(t, e.Active)
	assert.True(t, errors.Is(e.Deactivate(), shared.ErrInvalidState))

	require.NoError(t, e.Activate())
	assert.True(t, e.Active)
}

func TestEmployee_SetContact(t *testing.T) {
	e := newCook(t)

	require.NoError(t, e.SetContact("98400 12345", "ravi@example.com", "Chennai"))
	assert.Equal(t, "ravi@example.com", e.Email)

	assert.Error(t, e.SetContact("", "not-an-email", ""))
	assert.Equal(t, "ravi@example.com", e.Email)

	e.SetHireDate(time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC))
	require.NotNil(t, e.HireDate)
	assert.Equal(t, 0, e.HireDate.Hour())
}

func TestEmployee_ProfileEdits(t *testing.T) {
	e := newCook(t)

	require.NoError(t, e.SetSalaryPerOrder(decimal.NewFromInt(650)))
	assert.True(t, e.SalaryPerOrder.Equal(decimal.NewFromInt(650)))
	assert.True(t, errors.Is(e.SetSalaryPerOrder(decimal.NewFromInt(-5)), shared.ErrInvalidInput))

	require.NoError(t, e.Rename("  Ravi Kumar "))
	assert.Equal(t, "Ravi Kumar", e.Name)
	assert.True(t, errors.Is(e.Rename(""), shared.ErrInvalidInput))
}

func TestEmployee_PayKeepsTwoDecimalPlaces(t *testing.T) {
	d := decimal.RequireFromString

	_, err := NewEmployee("EMP-2", "Meena", EmployeeTypeWaiter, d("650.125"))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	e := newCook(t)
	assert.True(t, errors.Is(e.SetSalaryPerOrder(d("1.001")), shared.ErrInvalidInput))
	assert.True(t, errors.Is(e.SetBaseSalary(d("12000.999")), shared.ErrInvalidInput))
	assert.True(t, errors.Is(e.RecordServedOrder(d("99.995")), shared.ErrInvalidInput))

	assert.True(t, e.SalaryPerOrder.Equal(d("1500")))
	assert.True(t, e.BaseSalary.IsZero())
	assert.Equal(t, 0, e.TotalOrdersServed)
	assert.True(t, e.TotalEarnings.IsZero())

	require.NoError(t, e.SetSalaryPerOrder(d("1650.75")))
}

func TestEmployee_LifecycleEvents(t *testing.T) {
	e := newCook(t)
	events := e.GetDomainEvents()
	require.Len(t, events, 1)
	created := events[0].(*EmployeeCreatedEvent)
	assert.Equal(t, "EMP-001", created.EmployeeCode)
	assert.Equal(t, AggregateTypeEmployee, created.AggregateType())
	e.ClearDomainEvents()

	require.NoError(t, e.Deactivate())
	require.Error(t, e.Deactivate())
	require.NoError(t, e.Activate())

	events = e.GetDomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventTypeEmployeeDeactivated, events[0].EventType())
	assert.False(t, events[0].(*EmployeeStatusEvent).Active)
	assert.Equal(t, EventTypeEmployeeActivated, events[1].EventType())
}
