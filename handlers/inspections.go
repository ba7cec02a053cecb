// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sdis-tools/firecheck/cliparse"
	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/fieldtype"
	"github.com/sdis-tools/firecheck/geocode"
	"github.com/sdis-tools/firecheck/inspection"
	"github.com/sdis-tools/firecheck/middleware"
	"github.com/sdis-tools/firecheck/models"
)

const lookupTimeout = 15 * time.Second

type InspectionHandler struct {
	db       *db.DB
	cfg      cliparse.Config
	sessions *inspection.Manager
	geocoder geocode.Resolver
}

func NewInspectionHandler(d *db.DB, cfg cliparse.Config, sessions *inspection.Manager, geocoder geocode.Resolver) *InspectionHandler {
	return &InspectionHandler{db: d, cfg: cfg, sessions: sessions, geocoder: geocoder}
}

// Open handles POST /inspections
// Loads the template, resolves the operator, and opens an in-memory session
// with every response defaulted. Template or inspector failures are fatal to
// opening: no partial session is created.
func (h *InspectionHandler) Open(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Inspector-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Inspector-Token header required")
		return
	}
	operator, err := lookupInspector(h.db, token)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown inspector token")
		return
	}
	if err != nil {
		slog.Error("failed to query inspector", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.OpenInspectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.TemplateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "template_id is required")
		return
	}
	if req.Asset.ID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "asset.id is required")
		return
	}

	tpl, retired, err := loadTemplate(h.db, req.TemplateID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		slog.Error("failed to load template", "error", err, "template_id", req.TemplateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if retired {
		middleware.ErrorResponse(w, http.StatusConflict, "Template is retired")
		return
	}

	s, err := h.sessions.Open(tpl, req.Asset, operator)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	idx, section := s.Section()
	slog.Info("inspection session opened",
		"session_id", s.ID,
		"template_id", tpl.ID,
		"asset_id", req.Asset.ID,
		"inspector", operator.DisplayName,
	)
	middleware.JSONResponse(w, http.StatusCreated, models.OpenInspectionResponse{
		SessionID:    s.ID,
		SectionIndex: idx,
		SectionCount: s.SectionCount(),
		Section:      section,
		Responses:    s.Responses(),
	})
}

// GetState handles GET /inspections/{id}
func (h *InspectionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	idx, section := s.Section()
	alerts, conforme := s.Evaluate()
	middleware.JSONResponse(w, http.StatusOK, models.SessionStateResponse{
		SectionIndex: idx,
		SectionCount: s.SectionCount(),
		Section:      section,
		Responses:    s.Responses(),
		Alerts:       alerts,
		Conforme:     conforme,
	})
}

// SetResponse handles PUT /inspections/{id}/responses/{itemID}
// Total replacement of the value; returns the freshly derived alerts so the
// client can re-render conformity immediately.
func (h *InspectionHandler) SetResponse(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	itemID := r.PathValue("itemID")

	var req models.SetResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.SetResponse(itemID, req.Value); err != nil {
		switch {
		case errors.Is(err, inspection.ErrUnknownItem):
			middleware.ErrorResponse(w, http.StatusNotFound, "Item not in template")
		case errors.Is(err, inspection.ErrClosed):
			middleware.ErrorResponse(w, http.StatusGone, "Session is closed")
		case errors.Is(err, fieldtype.ErrBadValue):
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to set response", "error", err, "item_id", itemID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set response")
		}
		return
	}

	alerts, conforme := s.Evaluate()
	middleware.JSONResponse(w, http.StatusOK, models.EvaluationResponse{
		Alerts:   alerts,
		Conforme: conforme,
	})
}

// AttachPhoto handles POST /inspections/{id}/photos/{itemID}
func (h *InspectionHandler) AttachPhoto(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	itemID := r.PathValue("itemID")

	var req models.AttachPhotoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Data) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "data is required")
		return
	}
	if int64(len(req.Data)) > h.cfg.MaxPhotoBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			"photo exceeds the "+humanize.Bytes(uint64(h.cfg.MaxPhotoBytes))+" limit")
		return
	}

	count, err := s.AttachPhoto(itemID, models.Photo{Filename: req.Filename, Data: req.Data})
	if err != nil {
		switch {
		case errors.Is(err, inspection.ErrUnknownItem):
			middleware.ErrorResponse(w, http.StatusNotFound, "Item not in template")
		case errors.Is(err, inspection.ErrClosed):
			middleware.ErrorResponse(w, http.StatusGone, "Session is closed")
		default:
			slog.Error("failed to attach photo", "error", err, "item_id", itemID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to attach photo")
		}
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AttachPhotoResponse{Count: count})
}

// RemovePhoto handles DELETE /inspections/{id}/photos/{itemID}/{index}
func (h *InspectionHandler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	itemID := r.PathValue("itemID")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	if err := s.RemovePhoto(itemID, index); err != nil {
		switch {
		case errors.Is(err, inspection.ErrPhotoIndex):
			middleware.ErrorResponse(w, http.StatusNotFound, "No photo at that index")
		case errors.Is(err, inspection.ErrClosed):
			middleware.ErrorResponse(w, http.StatusGone, "Session is closed")
		default:
			slog.Error("failed to remove photo", "error", err, "item_id", itemID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove photo")
		}
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Photo removed"})
}

// Next handles POST /inspections/{id}/next
func (h *InspectionHandler) Next(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	idx, section := s.Next()
	h.navigation(w, s, idx, section)
}

// Previous handles POST /inspections/{id}/previous
func (h *InspectionHandler) Previous(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	idx, section := s.Previous()
	h.navigation(w, s, idx, section)
}

func (h *InspectionHandler) navigation(w http.ResponseWriter, s *inspection.Session, idx int, section models.Section) {
	middleware.JSONResponse(w, http.StatusOK, models.NavigationResponse{
		SectionIndex: idx,
		SectionCount: s.SectionCount(),
		Section:      section,
		AtEnd:        idx == s.SectionCount()-1,
	})
}

// Locate handles POST /inspections/{id}/locate/{itemID}
// Fire-and-forget: the reverse geocode runs in the background and writes
// into the session when it completes. A failed lookup falls back to the raw
// coordinate string; a completion after the session closed is a no-op.
func (h *InspectionHandler) Locate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	itemID := r.PathValue("itemID")
	if _, exists := s.Response(itemID); !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not in template")
		return
	}

	var req models.LocateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	go func(lat, lon float64) {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		address, err := h.geocoder.Reverse(ctx, lat, lon)
		if err != nil {
			slog.Warn("reverse geocode failed, using raw coordinates",
				"error", err, "session_id", s.ID, "item_id", itemID)
			address = geocode.Coordinates(lat, lon)
		}
		s.CompleteLookup(itemID, address)
	}(req.Lat, req.Lon)

	middleware.JSONResponse(w, http.StatusAccepted, map[string]string{"message": "Lookup started"})
}

// Submit handles POST /inspections/{id}/submit
// Assembles the atomic record and persists it in one transaction. On any
// persistence failure the session is left untouched so the user can retry.
func (h *InspectionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.SubmitInspectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.BeginSubmit(); err != nil {
		switch {
		case errors.Is(err, inspection.ErrNotAtEnd):
			middleware.ErrorResponse(w, http.StatusConflict, "Submission is only allowed from the last section")
		case errors.Is(err, inspection.ErrSubmitting):
			middleware.ErrorResponse(w, http.StatusConflict, "Submission already in progress")
		case errors.Is(err, inspection.ErrClosed):
			middleware.ErrorResponse(w, http.StatusGone, "Session is closed")
		default:
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit")
		}
		return
	}

	record, err := s.Assemble(req.Remarks, req.RequestReplacement)
	if err != nil {
		s.EndSubmit()
		var required *inspection.RequiredError
		if errors.As(err, &required) {
			middleware.MissingResponse(w, required.Missing)
			return
		}
		slog.Error("failed to assemble inspection record", "error", err, "session_id", s.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit")
		return
	}

	if err := persistRecord(h.db, record); err != nil {
		s.EndSubmit()
		slog.Error("failed to persist inspection", "error", err, "session_id", s.ID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to persist inspection: "+err.Error())
		return
	}

	h.sessions.Remove(s.ID)

	var photoBytes uint64
	for _, list := range record.Photos {
		for _, p := range list {
			photoBytes += uint64(len(p.Data))
		}
	}
	slog.Info("inspection submitted",
		"inspection_id", record.ID,
		"asset_id", record.AssetID,
		"conforme", record.Conforme,
		"alerts", len(record.Alerts),
		"photos_size", humanize.Bytes(photoBytes),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitInspectionResponse{
		InspectionID: record.ID,
		Conforme:     record.Conforme,
		AlertCount:   len(record.Alerts),
		Message:      "Inspection recorded",
	})
}

// Cancel handles DELETE /inspections/{id}
func (h *InspectionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.sessions.Remove(s.ID)
	slog.Info("inspection session cancelled", "session_id", s.ID)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Session discarded"})
}

// session resolves the {id} path segment to an open session, writing the
// 404 itself when the session is gone.
func (h *InspectionHandler) session(w http.ResponseWriter, r *http.Request) (*inspection.Session, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return nil, false
	}
	s, ok := h.sessions.Get(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

// persistRecord writes the record, its alerts (position preserves template
// order), and its photos in one transaction.
func persistRecord(d *db.DB, rec models.InspectionRecord) error {
	responses, err := json.Marshal(rec.Responses)
	if err != nil {
		return err
	}

	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO inspection (id, asset_id, asset_kind, template_id, template_name,
			kind, inspector_name, conforme, request_replacement, remarks, metadata,
			responses, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.AssetID, rec.AssetKind, rec.TemplateID, rec.TemplateName,
		rec.Kind, rec.InspectorName, rec.Conforme, rec.RequestReplacement,
		rec.Remarks, rec.Metadata, string(responses), rec.SubmittedAt)
	if err != nil {
		return err
	}

	for i, a := range rec.Alerts {
		_, err = tx.Exec(`
			INSERT INTO inspection_alert (inspection_id, position, item_id, item_label,
				section_name, trigger_desc, raw_value, message)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, i, a.ItemID, a.ItemLabel, a.SectionName, a.Trigger, a.RawValue, a.Message)
		if err != nil {
			return err
		}
	}

	for itemID, list := range rec.Photos {
		for i, p := range list {
			_, err = tx.Exec(`
				INSERT INTO inspection_photo (inspection_id, item_id, position, filename, data)
				VALUES (?, ?, ?, ?, ?)
			`, rec.ID, itemID, i, p.Filename, p.Data)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
