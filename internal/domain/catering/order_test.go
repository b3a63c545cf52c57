package catering

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

var eventDay = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("ORD-2026-001", OrderTypeFullCatering, "Sharma Wedding Reception", eventDay.Add(18*time.Hour), 250)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order on the event day", func(t *testing.T) {
		o, err := NewOrder(" ORD-1 ", OrderTypeHalfCatering, "Naming ceremony", eventDay.Add(10*time.Hour), 40)

		require.NoError(t, err)
		assert.Equal(t, "ORD-1", o.OrderNumber)
		assert.Equal(t, OrderStatusPending, o.Status)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
		assert.Equal(t, eventDay, o.EventDate)
		assert.True(t, o.RemainingAmount.IsZero())
		require.Len(t, o.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeOrderCreated, o.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewOrder("", OrderTypeFullCatering, "x", eventDay, 1)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewOrder("ORD-1234567890123456789012345678", OrderTypeFullCatering, "x", eventDay, 1)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewOrder("ORD-1", OrderType("BUFFET"), "x", eventDay, 1)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewOrder("ORD-1", OrderTypeFullCatering, "x", time.Time{}, 1)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewOrder("ORD-1", OrderTypeFullCatering, "x", eventDay, -1)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestOrder_MoneyLedger(t *testing.T) {
	d := decimal.RequireFromString

	t.Run("advance payment scenario", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.SetTotalAmount(d("1000.00")))
		require.NoError(t, o.SetAdvanceAmount(d("0")))
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
		assert.True(t, o.RemainingAmount.Equal(d("1000.00")))

		require.NoError(t, o.SetAdvanceAmount(d("300.00")))
		assert.True(t, o.RemainingAmount.Equal(d("700.00")))
		assert.Equal(t, PaymentStatusAdvancePaid, o.PaymentStatus)

		require.NoError(t, o.SetAdvanceAmount(d("1000.00")))
		assert.True(t, o.RemainingAmount.Equal(d("0.00")))
		assert.Equal(t, PaymentStatusFullyPaid, o.PaymentStatus)
	})

	t.Run("remaining is exact for every total and advance", func(t *testing.T) {
		amounts := []string{"0", "0.01", "0.1", "0.2", "0.3", "99.99", "1000", "1234567.89", "3333.33"}
		for _, total := range amounts {
			for _, advance := range amounts {
				o := newTestOrder(t)
				require.NoError(t, o.SetTotalAmount(d(total)))
				require.NoError(t, o.SetAdvanceAmount(d(advance)))

				want := d(total).Sub(d(advance))
				assert.True(t, o.RemainingAmount.Equal(want), "total=%s advance=%s", total, advance)
				assert.Equal(t, DerivePaymentStatus(want, d(advance)), o.PaymentStatus)
			}
		}
	})

	t.Run("lowering the total re-derives payment status", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetTotalAmount(d("1000")))
		require.NoError(t, o.SetAdvanceAmount(d("400")))
		assert.Equal(t, PaymentStatusAdvancePaid, o.PaymentStatus)

		require.NoError(t, o.SetTotalAmount(d("350")))

		assert.True(t, o.RemainingAmount.Equal(d("-50")))
		assert.Equal(t, PaymentStatusFullyPaid, o.PaymentStatus)
	})

	t.Run("raising the total reopens the balance", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetTotalAmount(d("500")))
		require.NoError(t, o.SetAdvanceAmount(d("500")))
		assert.Equal(t, PaymentStatusFullyPaid, o.PaymentStatus)

		require.NoError(t, o.SetTotalAmount(d("800")))

		assert.Equal(t, PaymentStatusAdvancePaid, o.PaymentStatus)
		assert.True(t, o.HasOutstandingBalance())
	})

	t.Run("negative amounts leave the ledger unchanged", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetTotalAmount(d("1000")))
		require.NoError(t, o.SetAdvanceAmount(d("100")))

		assert.True(t, errors.Is(o.SetTotalAmount(d("-1")), shared.ErrInvalidInput))
		assert.True(t, errors.Is(o.SetAdvanceAmount(d("-0.01")), shared.ErrInvalidInput))

		assert.True(t, o.TotalAmount.Equal(d("1000")))
		assert.True(t, o.AdvanceAmount.Equal(d("100")))
		assert.True(t, o.RemainingAmount.Equal(d("900")))
	})

	t.Run("payments accumulate into the advance", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetTotalAmount(d("1000")))

		require.NoError(t, o.RecordPayment(d("250")))
		require.NoError(t, o.RecordPayment(d("750")))

		assert.True(t, o.AdvanceAmount.Equal(d("1000")))
		assert.Equal(t, PaymentStatusFullyPaid, o.PaymentStatus)
		assert.Equal(t, "₹0.00", o.Remaining(valueobject.INR).String())
		assert.Equal(t, "$1000.00", o.Advance(valueobject.USD).String())
		assert.Equal(t, valueobject.USD, o.Total(valueobject.USD).Currency())
		assert.Error(t, o.RecordPayment(decimal.Zero))
	})

	t.Run("status changes raise events", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetTotalAmount(d("1000")))
		require.NoError(t, o.SetAdvanceAmount(d("300")))

		var changes []*OrderPaymentStatusChangedEvent
		for _, e := range o.GetDomainEvents() {
			if c, ok := e.(*OrderPaymentStatusChangedEvent); ok {
				changes = append(changes, c)
			}
		}
		require.Len(t, changes, 1)
		assert.Equal(t, PaymentStatusPending, changes[0].From)
		assert.Equal(t, PaymentStatusAdvancePaid, changes[0].To)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("pending to in progress to completed", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Start())
		assert.Equal(t, OrderStatusInProgress, o.Status)
		require.NoError(t, o.Complete())
		assert.Equal(t, OrderStatusCompleted, o.Status)
		assert.NotNil(t, o.CompletedAt)

		assert.True(t, errors.Is(o.Cancel("late"), shared.ErrInvalidState))
	})

	t.Run("cannot complete a pending order", func(t *testing.T) {
		o := newTestOrder(t)
		assert.True(t, errors.Is(o.Complete(), shared.ErrInvalidState))
		assert.Equal(t, OrderStatusPending, o.Status)
	})

	t.Run("cancel from pending or in progress", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel("customer postponed"))
		assert.Equal(t, "customer postponed", o.CancelReason)
		assert.True(t, o.IsCancelled())
		assert.True(t, errors.Is(o.Start(), shared.ErrInvalidState))

		o2 := newTestOrder(t)
		require.NoError(t, o2.Start())
		require.NoError(t, o2.Cancel(""))
	})

	t.Run("terminal orders cannot be rescheduled", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Reschedule(eventDay.AddDate(0, 0, 1), "19:30"))
		assert.Equal(t, eventDay.AddDate(0, 0, 1), o.EventDate)
		assert.Error(t, o.Reschedule(eventDay, "7pm"))

		require.NoError(t, o.Cancel(""))
		assert.True(t, errors.Is(o.Reschedule(eventDay, ""), shared.ErrInvalidState))
	})
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusInProgress))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusInProgress.CanTransitionTo(OrderStatusCompleted))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))
	assert.True(t, OrderStatusInProgress.BlocksAvailability())
	assert.False(t, OrderStatusCompleted.BlocksAvailability())
}

func TestOrder_AmountsKeepTwoDecimalPlaces(t *testing.T) {
	d := decimal.RequireFromString
	o := newTestOrder(t)
	require.NoError(t, o.SetTotalAmount(d("1000.50")))
	require.NoError(t, o.SetAdvanceAmount(d("200.25")))

	assert.True(t, errors.Is(o.SetTotalAmount(d("1000.505")), shared.ErrInvalidInput))
	assert.True(t, errors.Is(o.SetAdvanceAmount(d("0.001")), shared.ErrInvalidInput))
	assert.True(t, errors.Is(o.RecordPayment(d("10.125")), shared.ErrInvalidInput))

	assert.True(t, o.TotalAmount.Equal(d("1000.50")))
	assert.True(t, o.AdvanceAmount.Equal(d("200.25")))
	assert.True(t, o.RemainingAmount.Equal(d("800.25")))
	assert.Equal(t, PaymentStatusAdvancePaid, o.PaymentStatus)

	require.NoError(t, o.RecordPayment(d("800.250")))
	assert.Equal(t, PaymentStatusFullyPaid, o.PaymentStatus)
}
