package dashboard

import (
	"log"
	"net/http"
)

// LoginPage renders the login form. An already-authenticated operator goes
// straight to the dashboard.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.Current(); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, s.loginTmpl, loginData{Notices: s.notices.Drain()})
}

// Login submits the credentials. On success the collections are loaded and
// the dashboard opens; on failure the login page re-renders with the error
// and nothing is persisted.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	if err := s.sessions.Login(r.Context(), s.client, username, password); err != nil {
		log.Printf("ERROR: login: %v", err)
		s.notices.Error(err.Error())
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	s.notices.Success("Login successful")
	s.refreshAll(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session and collections. Always succeeds; the backend
// is not told.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	s.sessions.Logout(s.client)
	s.state.Reset()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
