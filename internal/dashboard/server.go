// Package dashboard is the view layer: a server-rendered admin panel over
// the food-ordering API. Handlers translate form posts into controller
// commands; every successful mutation is followed by a full reload of all
// five collections before the next render.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mera-food/adminpanel/internal/api"
	"github.com/mera-food/adminpanel/internal/form"
	"github.com/mera-food/adminpanel/internal/session"
	"github.com/mera-food/adminpanel/internal/state"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server owns the application state and renders the dashboard.
type Server struct {
	client   *api.Client
	sessions *session.Store
	state    *state.Store
	notices  *Notices

	categoryForm  *form.CategoryForm
	menuForm      *form.MenuItemForm
	paymentForm   *form.PaymentMethodForm
	orderStatuses *form.OrderStatusControl

	loginTmpl *template.Template
	dashTmpl  *template.Template
}

// New wires the controllers to the client and state store and compiles the
// templates.
func New(client *api.Client, sessions *session.Store, st *state.Store) *Server {
	s := &Server{
		client:    client,
		sessions:  sessions,
		state:     st,
		notices:   &Notices{},
		loginTmpl: template.Must(template.ParseFS(templatesFS, "templates/login.html")),
		dashTmpl:  template.Must(template.ParseFS(templatesFS, "templates/dashboard.html")),
	}

	refresh := form.RefreshFunc(s.refreshAll)
	s.categoryForm = form.NewCategoryForm(client, refresh)
	s.menuForm = form.NewMenuItemForm(client, refresh)
	s.paymentForm = form.NewPaymentMethodForm(client, refresh)
	s.orderStatuses = form.NewOrderStatusControl(client, refresh)
	return s
}

// Router builds the chi router with all dashboard routes wired up.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/login", s.LoginPage)
	r.Post("/login", s.Login)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/", s.Dashboard)
		r.Post("/logout", s.Logout)
		r.Post("/refresh", s.Refresh)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/new", s.CategoryNew)
			r.Get("/{id}/edit", s.CategoryEdit)
			r.Post("/submit", s.CategorySubmit)
			r.Post("/cancel", s.CategoryCancel)
			r.Post("/{id}/delete", s.CategoryDelete)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/new", s.MenuNew)
			r.Get("/{id}/edit", s.MenuEdit)
			r.Post("/submit", s.MenuSubmit)
			r.Post("/cancel", s.MenuCancel)
			r.Post("/upload", s.MenuUpload)
			r.Post("/{id}/delete", s.MenuDelete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/{id}/status", s.OrderStatus)
		})

		r.Route("/payment-methods", func(r chi.Router) {
			r.Get("/new", s.PaymentNew)
			r.Post("/submit", s.PaymentSubmit)
			r.Post("/cancel", s.PaymentCancel)
			r.Post("/{id}/delete", s.PaymentDelete)
		})
	})

	return r
}

// refreshAll reloads every collection and turns per-resource failures into
// notices. A 401 anywhere means the token has gone stale: the session is
// cleared so the next request lands on the login form.
func (s *Server) refreshAll(ctx context.Context) {
	failures := s.state.RefreshAll(ctx)
	for _, f := range failures {
		log.Printf("ERROR: refresh %s: %v", f.Resource, f.Err)
		s.notices.Error("Could not refresh " + string(f.Resource))
		if errors.Is(f.Err, api.ErrUnauthorized) {
			s.forceLogout()
		}
	}
}

func (s *Server) forceLogout() {
	log.Printf("session rejected by backend, logging out")
	s.sessions.Logout(s.client)
	s.state.Reset()
}

// fail records an operation failure and reports whether the session was
// revoked in the process.
func (s *Server) fail(what string, err error) {
	log.Printf("ERROR: %s: %v", what, err)
	s.notices.Error("Error " + what)
	if errors.Is(err, api.ErrUnauthorized) {
		s.forceLogout()
	}
}

// requireSession redirects unauthenticated requests to the login form.
// Absence of a session means the dashboard shows nothing but login.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessions.Current(); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkCSRF validates the csrf form value on mutating posts.
func (s *Server) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	sess, ok := s.sessions.Current()
	if !ok || r.FormValue("csrf") != sess.CSRFToken {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return false
	}
	return true
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("ERROR: render %s: %v", tmpl.Name(), err)
	}
}

func redirectTab(w http.ResponseWriter, r *http.Request, tab string) {
	http.Redirect(w, r, "/?tab="+tab, http.StatusSeeOther)
}
