package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/mera-food/adminpanel/internal/api"
	"github.com/mera-food/adminpanel/internal/config"
	"github.com/mera-food/adminpanel/internal/dashboard"
	"github.com/mera-food/adminpanel/internal/session"
	"github.com/mera-food/adminpanel/internal/state"
)

func main() {
	cfg := config.Load()

	client := api.NewClient(cfg.APIBaseURL, cfg.UploadsURL)
	sessions := session.NewStore(cfg.SessionFile)
	collections := state.NewStore(client)
	panel := dashboard.New(client, sessions, collections)

	if sessions.Restore(client) {
		log.Printf("restored session from %s", cfg.SessionFile)
		// Best effort; a stale token surfaces as refresh failures and a
		// forced logout on first use.
		for _, f := range collections.RefreshAll(context.Background()) {
			log.Printf("ERROR: initial refresh %s: %v", f.Resource, f.Err)
		}
	}

	log.Printf("Starting admin panel on :%s (backend %s)", cfg.Port, cfg.APIBaseURL)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), panel.Router()); err != nil {
		log.Fatal(err)
	}
}
