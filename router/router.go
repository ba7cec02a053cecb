// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/sdis-tools/firecheck/cliparse"
	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/geocode"
	"github.com/sdis-tools/firecheck/handlers"
	"github.com/sdis-tools/firecheck/inspection"
	"github.com/sdis-tools/firecheck/middleware"
)

func NewRouter(d *db.DB, cfg cliparse.Config, sessions *inspection.Manager, geocoder geocode.Resolver) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	templateHandler := handlers.NewTemplateHandler(d, cfg)
	inspectorHandler := handlers.NewInspectorHandler(d, cfg)
	inspectionHandler := handlers.NewInspectionHandler(d, cfg, sessions, geocoder)
	recordHandler := handlers.NewRecordHandler(d, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Template administration
	mux.HandleFunc("POST /templates", middleware.WithLogging(templateHandler.CreateTemplate))
	mux.HandleFunc("GET /templates", middleware.WithLogging(templateHandler.ListTemplates))
	mux.HandleFunc("GET /templates/{id}", middleware.WithLogging(templateHandler.GetTemplate))
	mux.HandleFunc("POST /templates/{id}/retire", middleware.WithLogging(templateHandler.RetireTemplate))

	// Inspector identity
	mux.HandleFunc("POST /inspectors/register", middleware.WithLogging(inspectorHandler.Register))
	mux.HandleFunc("GET /inspectors/me", middleware.WithLogging(inspectorHandler.GetMe))

	// Inspection sessions (in-memory engine)
	mux.HandleFunc("POST /inspections", middleware.WithLogging(inspectionHandler.Open))
	mux.HandleFunc("GET /inspections/{id}", middleware.WithLogging(inspectionHandler.GetState))
	mux.HandleFunc("PUT /inspections/{id}/responses/{itemID}", middleware.WithLogging(inspectionHandler.SetResponse))
	mux.HandleFunc("POST /inspections/{id}/photos/{itemID}", middleware.WithLogging(inspectionHandler.AttachPhoto))
	mux.HandleFunc("DELETE /inspections/{id}/photos/{itemID}/{index}", middleware.WithLogging(inspectionHandler.RemovePhoto))
	mux.HandleFunc("POST /inspections/{id}/next", middleware.WithLogging(inspectionHandler.Next))
	mux.HandleFunc("POST /inspections/{id}/previous", middleware.WithLogging(inspectionHandler.Previous))
	mux.HandleFunc("POST /inspections/{id}/locate/{itemID}", middleware.WithLogging(inspectionHandler.Locate))
	mux.HandleFunc("POST /inspections/{id}/submit", middleware.WithLogging(inspectionHandler.Submit))
	mux.HandleFunc("DELETE /inspections/{id}", middleware.WithLogging(inspectionHandler.Cancel))

	// Submitted records
	mux.HandleFunc("GET /inspections/records/{id}", middleware.WithLogging(recordHandler.GetRecord))
	mux.HandleFunc("GET /assets/{assetID}/records", middleware.WithLogging(recordHandler.ListAssetRecords))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("firecheck API v1"))
	})

	return mux
}
