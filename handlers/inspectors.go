// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/sdis-tools/firecheck/auth"
	"github.com/sdis-tools/firecheck/cliparse"
	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/middleware"
	"github.com/sdis-tools/firecheck/models"
)

type InspectorHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewInspectorHandler(d *db.DB, cfg cliparse.Config) *InspectorHandler {
	return &InspectorHandler{db: d, cfg: cfg}
}

// Register handles POST /inspectors/register
// Returns the token identifying the inspector across sessions. With a valid
// X-Inspector-Token header the existing identity is reused.
func (h *InspectorHandler) Register(w http.ResponseWriter, r *http.Request) {
	if token := r.Header.Get("X-Inspector-Token"); token != "" {
		inspector, err := lookupInspector(h.db, token)
		if err == nil {
			middleware.JSONResponse(w, http.StatusOK, models.RegisterInspectorResponse{
				InspectorID: inspector.ID,
				Token:       token,
				IsNew:       false,
			})
			return
		}
		if err != sql.ErrNoRows {
			slog.Error("failed to query inspector", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	var req models.RegisterInspectorRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.DisplayName) < 2 || len(req.DisplayName) > 80 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name must be 2-80 characters")
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate inspector ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register inspector")
		return
	}
	token, err := auth.GenerateInspectorToken()
	if err != nil {
		slog.Error("failed to generate inspector token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register inspector")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO inspector (id, token, display_name, registered_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, token, req.DisplayName, time.Now(), time.Now())
	if err != nil {
		slog.Error("failed to insert inspector", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register inspector")
		return
	}

	slog.Info("inspector registered", "inspector_id", id, "display_name", req.DisplayName)
	middleware.JSONResponse(w, http.StatusCreated, models.RegisterInspectorResponse{
		InspectorID: id,
		Token:       token,
		IsNew:       true,
	})
}

// GetMe handles GET /inspectors/me
func (h *InspectorHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Inspector-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Inspector-Token header required")
		return
	}

	inspector, err := lookupInspector(h.db, token)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Inspector not found")
		return
	}
	if err != nil {
		slog.Error("failed to query inspector", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, inspector)
}

// lookupInspector resolves a token to an identity and bumps last_seen_at.
func lookupInspector(d *db.DB, token string) (models.Inspector, error) {
	var inspector models.Inspector
	err := d.QueryRow(`
		SELECT id, display_name FROM inspector WHERE token = ?
	`, token).Scan(&inspector.ID, &inspector.DisplayName)
	if err != nil {
		return models.Inspector{}, err
	}

	if _, err := d.Exec(`
		UPDATE inspector SET last_seen_at = ? WHERE token = ?
	`, time.Now(), token); err != nil {
		slog.Error("failed to update inspector last_seen_at", "error", err)
	}

	return inspector, nil
}
