package form

import (
	"context"
	"fmt"

	"github.com/mera-food/adminpanel/internal/api"
)

// OrderStatusAPI is the slice of the gateway client the status control
// needs.
type OrderStatusAPI interface {
	SetOrderStatus(ctx context.Context, id, status string) error
}

// OrderStatusControl is the degenerate one-field controller for order
// status changes: no draft, no dialog, no explicit submit. Selecting a
// value calls the backend immediately.
type OrderStatusControl struct {
	api     OrderStatusAPI
	refresh RefreshFunc
}

// NewOrderStatusControl creates an OrderStatusControl.
func NewOrderStatusControl(a OrderStatusAPI, refresh RefreshFunc) *OrderStatusControl {
	return &OrderStatusControl{api: a, refresh: refresh}
}

// Set forwards the new status verbatim after checking it is one of the
// enumerated values. Transition legality is the backend's call.
func (c *OrderStatusControl) Set(ctx context.Context, orderID, status string) error {
	if !api.ValidOrderStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}
	if err := c.api.SetOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}
