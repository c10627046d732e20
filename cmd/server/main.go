package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/mklimuk/trip-pilot/pkg/api"
	"github.com/mklimuk/trip-pilot/pkg/travel"
	"github.com/mklimuk/trip-pilot/pkg/watch"
)

func main() {
	vaultPath := flag.String("vault", "", "Path to the notes vault")
	port := flag.String("port", "8080", "HTTP Port")
	planningYear := flag.Int("planning-year", 0, "Year assumed for date ranges without one")
	watchVault := flag.Bool("watch", true, "Reload the dashboard when vault files change")
	debounce := flag.Duration("debounce", 500*time.Millisecond, "Delay before reloading after a change burst")
	flag.Parse()

	if *vaultPath == "" {
		log.Fatal("Please provide -vault path")
	}

	cfg := travel.DefaultConfig()
	if *planningYear != 0 {
		cfg.PlanningYear = *planningYear
	}

	service := travel.NewService(*vaultPath, cfg)
	handler := api.NewHandler(service)
	router := api.NewRouter(handler)

	// Load once up front so the first request is served from cache.
	if err := handler.Refresh(context.Background()); err != nil {
		log.Printf("Initial load failed: %v", err)
	}

	if *watchVault {
		watcher, err := watch.New([]string{*vaultPath}, *debounce, func() {
			if err := handler.Refresh(context.Background()); err != nil {
				log.Printf("Refresh after change failed: %v", err)
			}
		})
		if err != nil {
			log.Printf("Failed to start watcher: %v", err)
		} else {
			// Runs for the life of the process; ListenAndServe never returns.
			watcher.Start()
		}
	}

	log.Printf("Starting server on :%s", *port)
	if err := http.ListenAndServe(":"+*port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
