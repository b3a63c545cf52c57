package catering

import (
	"github.com/catering/backend/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// SummarizeCustomerOrders derives a customer's counters from its orders.
// Cancelled orders are left out entirely; only positive remainders count
// as outstanding, so an overpaid order does not offset another one's debt.
func SummarizeCustomerOrders(orders []Order) customer.OrderTotals {
	totals := customer.OrderTotals{Amount: decimal.Zero, Outstanding: decimal.Zero}
	for i := range orders {
		if orders[i].Status == OrderStatusCancelled {
			continue
		}
		totals.Orders++
		totals.Amount = totals.Amount.Add(orders[i].TotalAmount)
		if orders[i].RemainingAmount.IsPositive() {
			totals.Outstanding = totals.Outstanding.Add(orders[i].RemainingAmount)
		}
	}
	return totals
}
