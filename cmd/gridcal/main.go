package main

import (
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/crumpstrr33/gridcal/internal/app"
	"github.com/crumpstrr33/gridcal/internal/auth"
	"github.com/crumpstrr33/gridcal/internal/commands"
	"github.com/crumpstrr33/gridcal/internal/config"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed static/index.html
var indexHTML []byte

//go:embed static/edit.html
var editHTML []byte

func main() {
	// Check for subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "hash-password":
			commands.HashPassword(os.Args[2:])
			return
		case "tui":
			commands.Tui(os.Args[2:])
			return
		}
	}

	// Parse flags
	configPath := flag.String("config", config.DefaultPath, "Path of the YAML config file")
	port := flag.Int("port", 0, "Port to listen on (overrides the config file)")
	dataFile := flag.String("data", "", "Path of the JSON event store (overrides the config file)")
	flag.BoolVar(&app.EditMode, "edit", false, "Enable edit mode (default is serve mode)")
	flag.Parse()

	// Load config; a missing file is created with defaults on first run
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", *configPath, err)
	}
	if *port != 0 {
		cfg.Listen = fmt.Sprintf(":%d", *port)
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	app.DataFile = cfg.DataFile
	app.DefaultCalendars = cfg.Calendars
	app.ImportWindowMonths = cfg.ImportWindowMonths

	// Make embedded pages available to app package
	app.IndexHTML = indexHTML
	app.EditHTML = editHTML

	// Load and validate auth credentials (if edit mode)
	if app.EditMode {
		if err := auth.LoadCredentials(cfg.AuthFile); err != nil {
			log.Fatalf("Failed to load auth credentials: %v", err)
		}
	}

	// Load the event store (with tmp check in edit mode)
	var loadErr error
	if app.EditMode {
		loadErr = app.LoadStoreWithTmpCheck()
	} else {
		loadErr = app.LoadStore()
	}
	if loadErr != nil {
		log.Fatalf("Failed to load event data: %v", loadErr)
	}

	// Setup routes
	http.HandleFunc("/", app.ServeIndex)
	http.HandleFunc("/health", app.HandleHealth)
	http.HandleFunc("/api/config", app.GetConfig)
	http.HandleFunc("/api/grid", app.HandleGrid)
	http.HandleFunc("/api/navigate", app.HandleNavigate)
	http.HandleFunc("/api/download", app.HandleDownload)
	http.HandleFunc("/api/subscribe/", app.HandleSubscribe)

	// Edit mode routes (protected with Basic Auth)
	if app.EditMode {
		http.HandleFunc("/edit", auth.Require(app.ServeEdit))
		http.HandleFunc("/api/events/add", auth.Require(app.AddEvent))
		http.HandleFunc("/api/events/delete", auth.Require(app.DeleteEvent))
		http.HandleFunc("/api/events/move", auth.Require(app.MoveEvent))
		http.HandleFunc("/api/import", auth.Require(app.HandleImport))
		http.HandleFunc("/api/store/commit", auth.Require(app.HandleStoreCommit))
		http.HandleFunc("/api/store/revert", auth.Require(app.HandleStoreRevert))
		http.HandleFunc("/api/store/status", auth.Require(app.HandleStoreStatus))
	}

	// Serve static files
	http.Handle("/static/", http.FileServer(http.FS(staticFiles)))

	mode := app.ModeServe
	if app.EditMode {
		mode = app.ModeEdit
	}

	log.Printf("Starting gridcal in %s mode on http://localhost%s", mode, cfg.Listen)
	log.Printf("Event store: %s", app.DataFile)
	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		log.Fatal(err)
	}
}
