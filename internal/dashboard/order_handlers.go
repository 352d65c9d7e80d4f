package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// OrderStatus applies a status change the moment it is selected: no draft,
// no dialog, no explicit submit.
func (s *Server) OrderStatus(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	status := r.FormValue("status")

	if err := s.orderStatuses.Set(r.Context(), id, status); err != nil {
		s.fail("updating order status", err)
		redirectTab(w, r, "orders")
		return
	}

	s.notices.Success("Order status updated")
	redirectTab(w, r, "orders")
}
