package inventory

import (
	"context"
	"fmt"

	"github.com/catering/backend/internal/domain/inventory"
	"github.com/catering/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockBelowThresholdHandler handles StockBelowThreshold events
// and raises an alert when an item reaches its minimum stock
type StockBelowThresholdHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// StockAlertNotifier is the interface for sending stock alerts
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a stock level alert
type StockAlert struct {
	InventoryItemID string `json:"inventory_item_id"`
	ItemCode        string `json:"item_code"`
	ItemName        string `json:"item_name"`
	CurrentStock    int    `json:"current_stock"`
	MinimumStock    int    `json:"minimum_stock"`
	AlertType       string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewStockBelowThresholdHandler creates a new handler for stock below threshold events
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{logger: logger}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockBelowThresholdHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowThresholdHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockBelowThreshold),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowThreshold, event.EventType())
	}

	alertType := "low_stock"
	if thresholdEvent.CurrentStock == 0 {
		alertType = "out_of_stock"
	}
	h.logger.Warn("stock below threshold detected",
		zap.String("inventory_item_id", thresholdEvent.InventoryItemID.String()),
		zap.String("item_code", thresholdEvent.ItemCode),
		zap.Int("current_stock", thresholdEvent.CurrentStock),
		zap.Int("minimum_stock", thresholdEvent.MinimumStock),
		zap.String("alert_type", alertType),
	)

	if h.notifier == nil {
		return nil
	}
	alert := StockAlert{
		InventoryItemID: thresholdEvent.InventoryItemID.String(),
		ItemCode:        thresholdEvent.ItemCode,
		ItemName:        thresholdEvent.ItemName,
		CurrentStock:    thresholdEvent.CurrentStock,
		MinimumStock:    thresholdEvent.MinimumStock,
		AlertType:       alertType,
	}
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		// notification failure must not fail the stock change that raised it
		h.logger.Error("failed to send stock alert notification",
			zap.String("item_code", alert.ItemCode),
			zap.Error(err),
		)
	}
	return nil
}

var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)

// LoggingStockAlertNotifier is a notifier that only logs alerts
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{logger: logger}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("item_code", alert.ItemCode),
		zap.String("item_name", alert.ItemName),
		zap.Int("current_stock", alert.CurrentStock),
		zap.Int("minimum_stock", alert.MinimumStock),
	)
	return nil
}

var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
