package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PaymentNew opens the payment method dialog. Create-only: the upstream
// API has no update for payment methods.
func (s *Server) PaymentNew(w http.ResponseWriter, r *http.Request) {
	s.paymentForm.OpenForCreate()
	redirectTab(w, r, "payments")
}

// PaymentSubmit creates the payment method from the posted draft.
func (s *Server) PaymentSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	s.paymentForm.SetDraft(r.FormValue("bankName"), r.FormValue("accountNumber"))

	if err := s.paymentForm.Submit(r.Context()); err != nil {
		s.fail("creating payment method", err)
		redirectTab(w, r, "payments")
		return
	}

	s.notices.Success("Payment method created")
	redirectTab(w, r, "payments")
}

// PaymentCancel discards the dialog.
func (s *Server) PaymentCancel(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	s.paymentForm.Close()
	redirectTab(w, r, "payments")
}

// PaymentDelete deletes straight from the list view; no confirmation.
func (s *Server) PaymentDelete(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	if err := s.paymentForm.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail("deleting payment method", err)
		redirectTab(w, r, "payments")
		return
	}
	s.notices.Success("Payment method deleted")
	redirectTab(w, r, "payments")
}
