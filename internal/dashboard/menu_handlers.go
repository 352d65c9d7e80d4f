package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MenuNew opens the menu item dialog in create mode.
func (s *Server) MenuNew(w http.ResponseWriter, r *http.Request) {
	s.menuForm.OpenForCreate()
	redirectTab(w, r, "menu")
}

// MenuEdit opens the dialog prefilled from the listed menu item.
func (s *Server) MenuEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, item := range s.state.Snapshot().Menu {
		if item.ID == id {
			s.menuForm.OpenForEdit(item)
			redirectTab(w, r, "menu")
			return
		}
	}
	s.notices.Error("Menu item not found")
	redirectTab(w, r, "menu")
}

// MenuSubmit applies the posted draft. The image path is not posted here;
// it was already written into the draft by a prior upload.
func (s *Server) MenuSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}

	err := s.menuForm.SetDraft(
		r.FormValue("name"),
		r.FormValue("description"),
		r.FormValue("price"),
		r.FormValue("category"),
		r.FormValue("available") == "on",
	)
	if err == nil {
		err = s.menuForm.Submit(r.Context())
	}
	if err != nil {
		what := "creating menu item"
		if s.menuForm.Target().Editing() {
			what = "updating menu item"
		}
		s.fail(what, err)
		redirectTab(w, r, "menu")
		return
	}

	s.notices.Success("Menu item saved")
	redirectTab(w, r, "menu")
}

// MenuUpload forwards the selected file to the backend immediately and
// stores the returned path in the open draft. It runs before submit, as a
// side effect of picking a file.
func (s *Server) MenuUpload(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.notices.Error("No image selected")
		redirectTab(w, r, "menu")
		return
	}
	defer file.Close()

	if _, err := s.menuForm.AttachImage(r.Context(), header.Filename, file); err != nil {
		s.fail("uploading image", err)
		redirectTab(w, r, "menu")
		return
	}

	s.notices.Success("Image uploaded")
	redirectTab(w, r, "menu")
}

// MenuCancel discards the dialog.
func (s *Server) MenuCancel(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	s.menuForm.Close()
	redirectTab(w, r, "menu")
}

// MenuDelete deletes straight from the list view; no confirmation.
func (s *Server) MenuDelete(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	if err := s.menuForm.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail("deleting menu item", err)
		redirectTab(w, r, "menu")
		return
	}
	s.notices.Success("Menu item deleted")
	redirectTab(w, r, "menu")
}
