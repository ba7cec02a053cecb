package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sdis-tools/firecheck/cliparse"
	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/geocode"
	"github.com/sdis-tools/firecheck/inspection"
	"github.com/sdis-tools/firecheck/router"
	"github.com/sdis-tools/firecheck/seed"
)

func main() {
	// Load .env if present (local development)
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded configuration from .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database (sqlite by default, postgres in production)
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Verify connection
	if err := conn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Seed form templates from YAML, if configured
	if cfg.SeedDir != "" {
		templates, err := seed.LoadDir(cfg.SeedDir)
		if err != nil {
			slog.Error("template seeding failed", "error", err)
			os.Exit(1)
		}
		if err := seed.Apply(conn, templates); err != nil {
			slog.Error("template seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Templates seeded", "count", len(templates))
	}

	// In-memory session manager and device-lookup collaborator
	sessions := inspection.NewManager()
	geocoder := geocode.New(cfg.GeocodeURL)

	// Create router
	mux := router.NewRouter(conn, cfg, sessions, geocoder)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
