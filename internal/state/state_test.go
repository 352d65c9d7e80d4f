package state_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mera-food/adminpanel/internal/api"
	"github.com/mera-food/adminpanel/internal/state"
)

// listServer serves the five list endpoints from mutable fixtures. Any
// resource listed in failing answers 500 instead.
type listServer struct {
	mu      sync.Mutex
	users   []api.User
	cats    []api.Category
	menu    []api.MenuItem
	orders  []api.Order
	pays    []api.PaymentMethod
	failing map[string]bool
}

func (s *listServer) handler() http.Handler {
	serve := func(name string, data func() interface{}) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.failing[name] {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(data())
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", serve("users", func() interface{} { return s.users }))
	mux.HandleFunc("GET /categories", serve("categories", func() interface{} { return s.cats }))
	mux.HandleFunc("GET /menu", serve("menu", func() interface{} { return s.menu }))
	mux.HandleFunc("GET /orders", serve("orders", func() interface{} { return s.orders }))
	mux.HandleFunc("GET /payment-methods", serve("payment-methods", func() interface{} { return s.pays }))
	return mux
}

func (s *listServer) setFailing(name string, failing bool) {
	s.mu.Lock()
	if s.failing == nil {
		s.failing = make(map[string]bool)
	}
	s.failing[name] = failing
	s.mu.Unlock()
}

func newStateStore(t *testing.T, fixtures *listServer) *state.Store {
	t.Helper()
	srv := httptest.NewServer(fixtures.handler())
	t.Cleanup(srv.Close)
	return state.NewStore(api.NewClient(srv.URL, srv.URL))
}

func TestRefreshAll_ReplacesAllCollections(t *testing.T) {
	fixtures := &listServer{
		users:  []api.User{{ID: "u1", Phone: "+100"}},
		cats:   []api.Category{{ID: "c1", Name: "Drinks"}},
		menu:   []api.MenuItem{{ID: "m1", Name: "Cola"}},
		orders: []api.Order{{ID: "o1", Status: api.OrderStatusPending}},
		pays:   []api.PaymentMethod{{ID: "p1", BankName: "CBE"}},
	}
	store := newStateStore(t, fixtures)

	if failures := store.RefreshAll(context.Background()); len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}

	snap := store.Snapshot()
	if len(snap.Users) != 1 || len(snap.Categories) != 1 || len(snap.Menu) != 1 ||
		len(snap.Orders) != 1 || len(snap.PaymentMethods) != 1 {
		t.Errorf("unexpected snapshot sizes: %+v", snap)
	}
}

// The spec scenario: orders fails with 500, the other four succeed. Only
// orders keeps its previous value.
func TestRefreshAll_IndependentFailure(t *testing.T) {
	fixtures := &listServer{
		users:  []api.User{{ID: "u1"}},
		orders: []api.Order{{ID: "o1", Status: api.OrderStatusPending}},
	}
	store := newStateStore(t, fixtures)

	if failures := store.RefreshAll(context.Background()); len(failures) != 0 {
		t.Fatalf("seed refresh failed: %v", failures)
	}

	// Backend moves on: new user, new order, but orders now 500s.
	fixtures.mu.Lock()
	fixtures.users = []api.User{{ID: "u1"}, {ID: "u2"}}
	fixtures.orders = []api.Order{{ID: "o1"}, {ID: "o2"}}
	fixtures.mu.Unlock()
	fixtures.setFailing("orders", true)

	failures := store.RefreshAll(context.Background())
	if len(failures) != 1 {
		t.Fatalf("expected exactly one failure, got %v", failures)
	}
	if failures[0].Resource != state.ResourceOrders {
		t.Errorf("failed resource: got %s, want orders", failures[0].Resource)
	}

	snap := store.Snapshot()
	if len(snap.Users) != 2 {
		t.Errorf("users must update independently: got %d, want 2", len(snap.Users))
	}
	if len(snap.Orders) != 1 || snap.Orders[0].ID != "o1" {
		t.Errorf("orders must keep last-known-good value: %+v", snap.Orders)
	}
}

func TestReset_EmptiesCollections(t *testing.T) {
	fixtures := &listServer{users: []api.User{{ID: "u1"}}}
	store := newStateStore(t, fixtures)

	store.RefreshAll(context.Background())
	store.Reset()

	snap := store.Snapshot()
	if len(snap.Users) != 0 {
		t.Errorf("expected empty users after reset, got %d", len(snap.Users))
	}
}

func TestStats(t *testing.T) {
	price := decimal.NewFromInt(5)
	menu := &api.MenuItem{ID: "m1", Name: "Burger", Price: price}
	fixtures := &listServer{
		users: []api.User{{ID: "u1"}},
		menu:  []api.MenuItem{*menu},
		orders: []api.Order{
			{ID: "o1", Status: api.OrderStatusPending},
			{ID: "o2", Status: api.OrderStatusDelivered, Items: []api.OrderItem{{Menu: menu, Quantity: 3}}},
			{ID: "o3", Status: api.OrderStatusCancelled},
		},
	}
	store := newStateStore(t, fixtures)
	store.RefreshAll(context.Background())

	stats := store.Stats()
	if stats.Orders != 3 || stats.PendingOrders != 1 {
		t.Errorf("order counts: %+v", stats)
	}
	if !stats.Revenue.Equal(decimal.NewFromInt(15)) {
		t.Errorf("revenue: got %s, want 15", stats.Revenue)
	}
}

func TestCategoryName_ToleratesDanglingReference(t *testing.T) {
	if got := state.CategoryName(api.MenuItem{Name: "Cola"}); got != "—" {
		t.Errorf("nil category: got %q", got)
	}
	item := api.MenuItem{Category: &api.Category{Name: "Drinks"}}
	if got := state.CategoryName(item); got != "Drinks" {
		t.Errorf("resolved category: got %q", got)
	}
}

func TestCustomerName_FallsBackToPhone(t *testing.T) {
	if got := state.CustomerName(api.Order{}); got != "—" {
		t.Errorf("nil user: got %q", got)
	}
	o := api.Order{User: &api.User{Phone: "+100"}}
	if got := state.CustomerName(o); got != "+100" {
		t.Errorf("unnamed user: got %q", got)
	}
	o.User.Name = "Abebe"
	if got := state.CustomerName(o); got != "Abebe" {
		t.Errorf("named user: got %q", got)
	}
}
