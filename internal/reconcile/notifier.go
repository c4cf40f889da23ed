package reconcile

import "context"

// StockEvent is the lightweight payload broadcast to live-update listeners
// when an analysis finds a product in a critical or low state.
type StockEvent struct {
	ItemCode     string `json:"itemCode"`
	ItemName     string `json:"itemName"`
	CurrentStock int    `json:"currentStock"`
	Severity     string `json:"severity"`
}

// StockNotifier broadcasts stock events. Injected into the analysis caller,
// never reached through ambient state, and invoked only if non-nil. The
// absence of a live-update channel must not fail an analysis call, so
// implementations swallow delivery errors (logging them is fine).
type StockNotifier interface {
	NotifyStock(ctx context.Context, e StockEvent)
}
