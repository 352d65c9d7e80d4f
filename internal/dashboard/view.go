package dashboard

import (
	"net/http"

	"github.com/mera-food/adminpanel/internal/api"
	"github.com/mera-food/adminpanel/internal/state"
)

// Tabs of the dashboard, in display order.
var tabs = []string{"dashboard", "users", "categories", "menu", "orders", "payments"}

type menuRow struct {
	api.MenuItem
	CategoryName string
	ImageURL     string
}

type orderRow struct {
	api.Order
	Customer   string
	Phone      string
	Total      string
	ReceiptURL string
}

type categoryDialog struct {
	Open    bool
	Editing bool
	ID      string
	Draft   api.CategoryInput
}

type menuDialog struct {
	Open     bool
	Editing  bool
	ID       string
	Draft    api.MenuItemInput
	Price    string
	ImageURL string
}

type paymentDialog struct {
	Open  bool
	Draft api.PaymentMethodInput
}

type dashboardData struct {
	Tab      string
	Tabs     []string
	Username string
	CSRF     string
	Notices  []Notice
	Stats    state.Stats
	Revenue  string

	Users          []api.User
	Categories     []api.Category
	Menu           []menuRow
	Orders         []orderRow
	PaymentMethods []api.PaymentMethod
	Statuses       []string

	CategoryDialog categoryDialog
	MenuDialog     menuDialog
	PaymentDialog  paymentDialog
}

type loginData struct {
	Notices []Notice
}

// Dashboard renders the active tab over the current state snapshot.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	valid := false
	for _, t := range tabs {
		if t == tab {
			valid = true
			break
		}
	}
	if !valid {
		tab = "dashboard"
	}

	sess, _ := s.sessions.Current()
	snap := s.state.Snapshot()
	stats := s.state.Stats()

	menu := make([]menuRow, len(snap.Menu))
	for i, item := range snap.Menu {
		menu[i] = menuRow{
			MenuItem:     item,
			CategoryName: state.CategoryName(item),
			ImageURL:     s.client.ImageURL(item.Image),
		}
	}

	orders := make([]orderRow, len(snap.Orders))
	for i, o := range snap.Orders {
		row := orderRow{
			Order:    o,
			Customer: state.CustomerName(o),
			Total:    o.Total().StringFixed(2),
		}
		if o.User != nil {
			row.Phone = o.User.Phone
		}
		if o.PaymentReceipt != "" {
			row.ReceiptURL = s.client.ImageURL(o.PaymentReceipt)
		}
		orders[i] = row
	}

	data := dashboardData{
		Tab:            tab,
		Tabs:           tabs,
		Username:       sess.Username,
		CSRF:           sess.CSRFToken,
		Notices:        s.notices.Drain(),
		Stats:          stats,
		Revenue:        stats.Revenue.StringFixed(2),
		Users:          snap.Users,
		Categories:     snap.Categories,
		Menu:           menu,
		Orders:         orders,
		PaymentMethods: snap.PaymentMethods,
		Statuses:       api.OrderStatuses(),
		CategoryDialog: categoryDialog{
			Open:    s.categoryForm.Open(),
			Editing: s.categoryForm.Target().Editing(),
			ID:      s.categoryForm.Target().ID(),
			Draft:   s.categoryForm.Draft(),
		},
		PaymentDialog: paymentDialog{
			Open:  s.paymentForm.Open(),
			Draft: s.paymentForm.Draft(),
		},
	}

	menuDraft := s.menuForm.Draft()
	data.MenuDialog = menuDialog{
		Open:     s.menuForm.Open(),
		Editing:  s.menuForm.Target().Editing(),
		ID:       s.menuForm.Target().ID(),
		Draft:    menuDraft,
		Price:    menuDraft.Price.String(),
		ImageURL: s.client.ImageURL(menuDraft.Image),
	}

	s.render(w, s.dashTmpl, data)
}

// Refresh reloads all collections on operator request.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	s.refreshAll(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
