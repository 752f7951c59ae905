package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderConfirmation reports a placed order back to the caller.
type OrderConfirmation struct {
	OrderID    string
	PlacedAt   time.Time
	Items      int
	TotalPrice float64
}

// OrderPlacer is the order-service collaborator the checkout flow talks to.
// The cart is only cleared when PlaceOrder reports success.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, state State) (OrderConfirmation, error)
}

// SimulatedOrderService stands in for a real order backend: it waits a fixed
// artificial delay and always succeeds. No order record is persisted.
type SimulatedOrderService struct {
	Delay time.Duration
}

// PlaceOrder sleeps the configured delay and confirms the order.
func (s *SimulatedOrderService) PlaceOrder(ctx context.Context, state State) (OrderConfirmation, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return OrderConfirmation{}, ctx.Err()
		}
	}
	return OrderConfirmation{
		OrderID:    "ord_" + uuid.NewString(),
		PlacedAt:   time.Now().UTC(),
		Items:      state.TotalItems(),
		TotalPrice: state.TotalPrice(),
	}, nil
}
