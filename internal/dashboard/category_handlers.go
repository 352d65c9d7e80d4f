package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CategoryNew opens the category dialog in create mode.
func (s *Server) CategoryNew(w http.ResponseWriter, r *http.Request) {
	s.categoryForm.OpenForCreate()
	redirectTab(w, r, "categories")
}

// CategoryEdit opens the dialog prefilled from the listed category.
func (s *Server) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, c := range s.state.Snapshot().Categories {
		if c.ID == id {
			s.categoryForm.OpenForEdit(c)
			redirectTab(w, r, "categories")
			return
		}
	}
	s.notices.Error("Category not found")
	redirectTab(w, r, "categories")
}

// CategorySubmit applies the posted draft: create without an edit target,
// update with one. A failure keeps the dialog open with the draft intact.
func (s *Server) CategorySubmit(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	s.categoryForm.SetDraft(r.FormValue("name"), r.FormValue("description"))

	if err := s.categoryForm.Submit(r.Context()); err != nil {
		what := "creating category"
		if s.categoryForm.Target().Editing() {
			what = "updating category"
		}
		s.fail(what, err)
		redirectTab(w, r, "categories")
		return
	}

	s.notices.Success("Category saved")
	redirectTab(w, r, "categories")
}

// CategoryCancel discards the dialog.
func (s *Server) CategoryCancel(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	s.categoryForm.Close()
	redirectTab(w, r, "categories")
}

// CategoryDelete deletes straight from the list view; no confirmation.
func (s *Server) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	if err := s.categoryForm.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail("deleting category", err)
		redirectTab(w, r, "categories")
		return
	}
	s.notices.Success("Category deleted")
	redirectTab(w, r, "categories")
}
