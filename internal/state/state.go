// Package state keeps the in-memory mirrors of the five backend
// collections. The backend owns all data; these copies are discarded and
// replaced wholesale on every refresh, never merged.
package state

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mera-food/adminpanel/internal/api"
)

// Resource names one of the five backend collections.
type Resource string

const (
	ResourceUsers          Resource = "users"
	ResourceCategories     Resource = "categories"
	ResourceMenu           Resource = "menu"
	ResourceOrders         Resource = "orders"
	ResourcePaymentMethods Resource = "payment-methods"
)

// RefreshFailure records one collection that could not be refreshed. The
// collection keeps its previous value.
type RefreshFailure struct {
	Resource Resource
	Err      error
}

// Snapshot is a point-in-time copy of all collections for rendering.
// Collections refresh independently, so a snapshot may be transiently
// inconsistent (e.g. a menu item referencing a category not yet loaded);
// the view must tolerate that.
type Snapshot struct {
	Users          []api.User
	Categories     []api.Category
	Menu           []api.MenuItem
	Orders         []api.Order
	PaymentMethods []api.PaymentMethod
}

// Stats are the aggregate figures shown on the dashboard tab.
type Stats struct {
	Users          int
	Categories     int
	MenuItems      int
	Orders         int
	PaymentMethods int
	PendingOrders  int
	Revenue        decimal.Decimal // delivered orders only
}

// Store holds the collections behind a lock. Each collection is replaced
// only by a successful fetch of that same collection.
type Store struct {
	client *api.Client

	mu             sync.RWMutex
	users          []api.User
	categories     []api.Category
	menu           []api.MenuItem
	orders         []api.Order
	paymentMethods []api.PaymentMethod
}

// NewStore creates an empty Store reading through the given client.
func NewStore(client *api.Client) *Store {
	return &Store{client: client}
}

// RefreshAll re-fetches the five collections concurrently and
// independently: a failure on one resource neither blocks nor rolls back
// the others. Returned failures are in no particular order; an empty slice
// means every collection was replaced.
func (s *Store) RefreshAll(ctx context.Context) []RefreshFailure {
	var (
		wg       sync.WaitGroup
		failMu   sync.Mutex
		failures []RefreshFailure
	)

	fail := func(r Resource, err error) {
		failMu.Lock()
		failures = append(failures, RefreshFailure{Resource: r, Err: err})
		failMu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		users, err := s.client.ListUsers(ctx)
		if err != nil {
			fail(ResourceUsers, err)
			return
		}
		s.mu.Lock()
		s.users = users
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		categories, err := s.client.ListCategories(ctx)
		if err != nil {
			fail(ResourceCategories, err)
			return
		}
		s.mu.Lock()
		s.categories = categories
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		menu, err := s.client.ListMenu(ctx)
		if err != nil {
			fail(ResourceMenu, err)
			return
		}
		s.mu.Lock()
		s.menu = menu
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		orders, err := s.client.ListOrders(ctx)
		if err != nil {
			fail(ResourceOrders, err)
			return
		}
		s.mu.Lock()
		s.orders = orders
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		methods, err := s.client.ListPaymentMethods(ctx)
		if err != nil {
			fail(ResourcePaymentMethods, err)
			return
		}
		s.mu.Lock()
		s.paymentMethods = methods
		s.mu.Unlock()
	}()
	wg.Wait()

	return failures
}

// Snapshot returns a copy of all collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Users:          append([]api.User(nil), s.users...),
		Categories:     append([]api.Category(nil), s.categories...),
		Menu:           append([]api.MenuItem(nil), s.menu...),
		Orders:         append([]api.Order(nil), s.orders...),
		PaymentMethods: append([]api.PaymentMethod(nil), s.paymentMethods...),
	}
}

// Reset empties all collections. Called on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	s.users = nil
	s.categories = nil
	s.menu = nil
	s.orders = nil
	s.paymentMethods = nil
	s.mu.Unlock()
}

// Stats computes the dashboard aggregates from the current collections.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Users:          len(s.users),
		Categories:     len(s.categories),
		MenuItems:      len(s.menu),
		Orders:         len(s.orders),
		PaymentMethods: len(s.paymentMethods),
		Revenue:        decimal.Zero,
	}
	for _, o := range s.orders {
		switch o.Status {
		case api.OrderStatusPending:
			st.PendingOrders++
		case api.OrderStatusDelivered:
			st.Revenue = st.Revenue.Add(o.Total())
		}
	}
	return st
}

// CategoryName renders a menu item's category for display. A deleted or
// never-set category shows as a placeholder rather than breaking the view.
func CategoryName(item api.MenuItem) string {
	if item.Category == nil || item.Category.Name == "" {
		return "—"
	}
	return item.Category.Name
}

// CustomerName renders an order's customer, tolerating a missing user
// reference the same way.
func CustomerName(o api.Order) string {
	if o.User == nil {
		return "—"
	}
	if o.User.Name != "" {
		return o.User.Name
	}
	return o.User.Phone
}
