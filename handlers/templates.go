// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sdis-tools/firecheck/auth"
	"github.com/sdis-tools/firecheck/cliparse"
	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/middleware"
	"github.com/sdis-tools/firecheck/models"
	"github.com/sdis-tools/firecheck/seed"
)

type TemplateHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewTemplateHandler(d *db.DB, cfg cliparse.Config) *TemplateHandler {
	return &TemplateHandler{db: d, cfg: cfg}
}

// CreateTemplate handles POST /templates
func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl models.FormTemplate
	if err := middleware.ParseJSONBody(r, &tpl); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if tpl.ID == "" {
		id, err := auth.GenerateID(16)
		if err != nil {
			slog.Error("failed to generate template ID", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create template")
			return
		}
		tpl.ID = id
	}

	if err := seed.Validate(tpl); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	definition, err := json.Marshal(tpl)
	if err != nil {
		slog.Error("failed to encode template", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create template")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO form_template (id, name, frequency, retired, definition, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tpl.ID, tpl.Name, tpl.Frequency, tpl.Retired, string(definition), time.Now())
	if err != nil {
		slog.Error("failed to insert template", "error", err, "template_id", tpl.ID)
		middleware.ErrorResponse(w, http.StatusConflict, "Template already exists or could not be stored")
		return
	}

	slog.Info("template created", "template_id", tpl.ID, "name", tpl.Name)
	middleware.JSONResponse(w, http.StatusCreated, models.CreateTemplateResponse{
		TemplateID: tpl.ID,
		AdminKey:   auth.GenerateAdminKey(tpl.ID, h.cfg.AdminKeySalt),
	})
}

// ListTemplates handles GET /templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, frequency, retired
		FROM form_template
		ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query templates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	summaries := []models.TemplateSummary{}
	for rows.Next() {
		var s models.TemplateSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Frequency, &s.Retired); err != nil {
			slog.Error("failed to scan template", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		summaries = append(summaries, s)
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetTemplate handles GET /templates/{id}
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	tpl, _, err := loadTemplate(h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		slog.Error("failed to load template", "error", err, "template_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tpl)
}

// RetireTemplate handles POST /templates/{id}/retire
// Requires the X-Admin-Key returned at creation. Retired templates can no
// longer open sessions.
func (h *TemplateHandler) RetireTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(id, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid admin key")
		return
	}

	res, err := h.db.Exec(`
		UPDATE form_template SET retired = TRUE WHERE id = ?
	`, id)
	if err != nil {
		slog.Error("failed to retire template", "error", err, "template_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Template not found")
		return
	}

	slog.Info("template retired", "template_id", id)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Template retired"})
}

// loadTemplate fetches a template definition by id. The bool reports the
// retired flag.
func loadTemplate(d *db.DB, id string) (models.FormTemplate, bool, error) {
	var definition string
	var retired bool
	err := d.QueryRow(`
		SELECT definition, retired FROM form_template WHERE id = ?
	`, id).Scan(&definition, &retired)
	if err != nil {
		return models.FormTemplate{}, false, err
	}

	var tpl models.FormTemplate
	if err := json.Unmarshal([]byte(definition), &tpl); err != nil {
		return models.FormTemplate{}, false, err
	}
	return tpl, retired, nil
}
