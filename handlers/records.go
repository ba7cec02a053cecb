// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sdis-tools/firecheck/cliparse"
	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/middleware"
	"github.com/sdis-tools/firecheck/models"
)

type RecordHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewRecordHandler(d *db.DB, cfg cliparse.Config) *RecordHandler {
	return &RecordHandler{db: d, cfg: cfg}
}

// GetRecord handles GET /inspections/records/{id}
// Returns one submitted inspection with its alerts in template order.
// Photo blobs are not inlined.
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	rec, err := scanRecord(h.db.QueryRow(`
		SELECT id, asset_id, asset_kind, template_id, template_name, kind,
		       inspector_name, conforme, request_replacement, remarks, metadata,
		       responses, submitted_at
		FROM inspection
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Inspection not found")
		return
	}
	if err != nil {
		slog.Error("failed to query inspection", "error", err, "inspection_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if rec.Alerts, err = h.loadAlerts(rec.ID); err != nil {
		slog.Error("failed to query alerts", "error", err, "inspection_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rec)
}

// ListAssetRecords handles GET /assets/{assetID}/records
// Submission history for one asset, newest first.
func (h *RecordHandler) ListAssetRecords(w http.ResponseWriter, r *http.Request) {
	assetID := r.PathValue("assetID")
	if assetID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "assetID is required")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, asset_id, asset_kind, template_id, template_name, kind,
		       inspector_name, conforme, request_replacement, remarks, metadata,
		       responses, submitted_at
		FROM inspection
		WHERE asset_id = ?
		ORDER BY submitted_at DESC
	`, assetID)
	if err != nil {
		slog.Error("failed to query inspections", "error", err, "asset_id", assetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	records := []models.InspectionRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			slog.Error("failed to scan inspection", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate inspections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range records {
		if records[i].Alerts, err = h.loadAlerts(records[i].ID); err != nil {
			slog.Error("failed to query alerts", "error", err, "inspection_id", records[i].ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, records)
}

func (h *RecordHandler) loadAlerts(inspectionID string) ([]models.Alert, error) {
	rows, err := h.db.Query(`
		SELECT item_id, item_label, section_name, trigger_desc, raw_value, message
		FROM inspection_alert
		WHERE inspection_id = ?
		ORDER BY position
	`, inspectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ItemID, &a.ItemLabel, &a.SectionName, &a.Trigger, &a.RawValue, &a.Message); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.InspectionRecord, error) {
	var rec models.InspectionRecord
	var remarks sql.NullString
	var responses string
	err := row.Scan(&rec.ID, &rec.AssetID, &rec.AssetKind, &rec.TemplateID,
		&rec.TemplateName, &rec.Kind, &rec.InspectorName, &rec.Conforme,
		&rec.RequestReplacement, &remarks, &rec.Metadata, &responses, &rec.SubmittedAt)
	if err != nil {
		return models.InspectionRecord{}, err
	}
	rec.Remarks = remarks.String
	if err := json.Unmarshal([]byte(responses), &rec.Responses); err != nil {
		return models.InspectionRecord{}, err
	}
	return rec, nil
}
