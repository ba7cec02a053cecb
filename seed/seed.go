// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/fieldtype"
	"github.com/sdis-tools/firecheck/models"
)

var ErrInvalidTemplate = errors.New("invalid template")

// LoadDir parses every .yml/.yaml file in dir as one form template.
// Malformed files are logged and skipped; a malformed template never stops
// the rest of the seed run.
func LoadDir(dir string) ([]models.FormTemplate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed directory: %w", err)
	}

	var templates []models.FormTemplate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		tpl, err := LoadFile(path)
		if err != nil {
			slog.Warn("skipping malformed template seed", "file", path, "error", err)
			continue
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// LoadFile parses a single YAML template with strict field checking.
func LoadFile(path string) (models.FormTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.FormTemplate{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var tpl models.FormTemplate
	if err := dec.Decode(&tpl); err != nil {
		return models.FormTemplate{}, fmt.Errorf("failed to parse template YAML: %w", err)
	}
	if err := Validate(tpl); err != nil {
		return models.FormTemplate{}, err
	}
	return tpl, nil
}

// Validate checks structural requirements. Unknown item types are allowed
// (the engine degrades by skipping them) but logged so administrators see
// the typo.
func Validate(tpl models.FormTemplate) error {
	if tpl.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTemplate)
	}
	if tpl.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTemplate)
	}
	seen := make(map[string]bool)
	for _, sec := range tpl.Sections {
		for _, item := range sec.Items {
			if item.ID == "" {
				return fmt.Errorf("%w: item without id in section %q", ErrInvalidTemplate, sec.Title)
			}
			if seen[item.ID] {
				return fmt.Errorf("%w: duplicate item id %q", ErrInvalidTemplate, item.ID)
			}
			seen[item.ID] = true
			if !fieldtype.Known(item.Type) {
				slog.Warn("template item has unknown type, it will be skipped",
					"template", tpl.ID, "item", item.ID, "type", item.Type)
			}
		}
	}
	return nil
}

// Apply upserts templates into form_template. The full definition is stored
// as JSON; name/frequency are mirrored into columns for listing.
func Apply(d *db.DB, templates []models.FormTemplate) error {
	for _, tpl := range templates {
		definition, err := json.Marshal(tpl)
		if err != nil {
			return fmt.Errorf("failed to encode template %s: %w", tpl.ID, err)
		}
		_, err = d.Exec(`
			INSERT INTO form_template (id, name, frequency, retired, definition, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				frequency = excluded.frequency,
				retired = excluded.retired,
				definition = excluded.definition
		`, tpl.ID, tpl.Name, tpl.Frequency, tpl.Retired, string(definition), time.Now())
		if err != nil {
			return fmt.Errorf("failed to upsert template %s: %w", tpl.ID, err)
		}
		slog.Info("seeded form template", "id", tpl.ID, "name", tpl.Name)
	}
	return nil
}
