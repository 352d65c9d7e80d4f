package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types for the food-ordering backend. Field names and the Mongo-style
// "_id" keys match what the API returns; embedded documents (category inside
// a menu item, user and menu items inside an order) arrive pre-joined.

type User struct {
	ID        string    `json:"_id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MenuItem struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	// Category is nil when the referenced category has been deleted
	// upstream; callers must render that gracefully.
	Category  *Category `json:"category"`
	Image     string    `json:"image"`
	Available bool      `json:"available"`
}

// CategoryID returns the id of the item's category, empty when the
// reference is missing or dangling.
func (m MenuItem) CategoryID() string {
	if m.Category == nil {
		return ""
	}
	return m.Category.ID
}

type OrderItem struct {
	Menu     *MenuItem `json:"menu"`
	Quantity int       `json:"quantity"`
}

type Order struct {
	ID             string      `json:"_id"`
	User           *User       `json:"user"`
	Items          []OrderItem `json:"items"`
	Address        string      `json:"address"`
	PaymentReceipt string      `json:"paymentReceipt"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Total sums quantity times price across line items. Items whose menu
// reference no longer resolves contribute nothing.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		if it.Menu == nil {
			continue
		}
		total = total.Add(it.Menu.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

type PaymentMethod struct {
	ID            string `json:"_id"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
}

// --- Mutation payloads ---

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MenuItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Available   bool            `json:"available"`
}

type PaymentMethodInput struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
}

// LoginResult is the successful response of the admin login endpoint.
// The token is opaque to this client.
type LoginResult struct {
	Token string `json:"token"`
}

// --- Order status ---

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses returns the enumerated statuses in display order.
func OrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// ValidOrderStatus reports whether s is one of the enumerated statuses.
// Transition legality is the backend's concern; membership is the only
// client-side check.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
