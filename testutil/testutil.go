// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sdis-tools/firecheck/auth"
	"github.com/sdis-tools/firecheck/cliparse"
	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. A single connection keeps the in-memory database alive for the
// whole test.
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SQL.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		AdminKeySalt:  "test-admin-salt",
		MaxPhotoBytes: 1 << 20,
	}
}

// SeedTestTemplate stores a template and returns its admin key
func SeedTestTemplate(t *testing.T, d *db.DB, cfg cliparse.Config, tpl models.FormTemplate) string {
	t.Helper()

	definition, err := json.Marshal(tpl)
	if err != nil {
		t.Fatalf("Failed to encode test template: %v", err)
	}
	_, err = d.Exec(`
		INSERT INTO form_template (id, name, frequency, retired, definition, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tpl.ID, tpl.Name, tpl.Frequency, tpl.Retired, string(definition), time.Now())
	if err != nil {
		t.Fatalf("Failed to insert test template: %v", err)
	}

	return auth.GenerateAdminKey(tpl.ID, cfg.AdminKeySalt)
}

// CreateTestInspector registers an inspector and returns the token
func CreateTestInspector(t *testing.T, d *db.DB, displayName string) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	token, err := auth.GenerateInspectorToken()
	if err != nil {
		t.Fatalf("Failed to generate inspector token: %v", err)
	}
	_, err = d.Exec(`
		INSERT INTO inspector (id, token, display_name, registered_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, token, displayName, time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test inspector: %v", err)
	}

	return token
}

// PressureTemplate is the canonical fixture: one pressure gauge section and
// one visual check section.
func PressureTemplate() models.FormTemplate {
	min := 4050.0
	return models.FormTemplate{
		ID:        "tpl-ari-monthly",
		Name:      "Controle ARI mensuel",
		Frequency: "mensuel",
		Sections: []models.Section{
			{
				ID:    "sec-pressure",
				Title: "Pressure",
				Items: []models.Item{
					{
						ID:     "item-pressure",
						Label:  "Pression bouteille",
						Type:   models.TypeNumberUnit,
						Config: models.ItemConfig{Min: 0, Max: 6000, Unit: "PSI"},
						Alert:  models.AlertConfig{MinThreshold: &min},
					},
				},
			},
			{
				ID:    "sec-visual",
				Title: "Visual",
				Items: []models.Item{
					{
						ID:      "item-damage",
						Label:   "Etat general",
						Type:    models.TypeCheckbox,
						Options: []string{"Fissure", "Usure", "Propre"},
						Alert:   models.AlertConfig{TriggeringValues: []string{"Fissure"}},
					},
					{
						ID:    "item-strap",
						Label: "Sangle presente",
						Type:  models.TypePresence,
					},
				},
			},
		},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
