// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(d *DB) error {
	blob, jsonType := "BLOB", "TEXT"
	if d.Type == "postgres" {
		blob, jsonType = "BYTEA", "JSONB"
	}
	ddl := strings.NewReplacer("{BLOB}", blob, "{JSON}", jsonType).Replace(schema)
	if _, err := d.SQL.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Form templates (administrator-authored inspection schemas)
CREATE TABLE IF NOT EXISTS form_template (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    frequency TEXT NOT NULL,
    retired BOOLEAN NOT NULL DEFAULT FALSE,
    definition {JSON} NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_form_template_retired ON form_template(retired);

-- Inspectors (operator identities)
CREATE TABLE IF NOT EXISTS inspector (
    id TEXT PRIMARY KEY,
    token TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    registered_at TIMESTAMP NOT NULL,
    last_seen_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_inspector_token ON inspector(token);

-- Submitted inspection records
CREATE TABLE IF NOT EXISTS inspection (
    id TEXT PRIMARY KEY,
    asset_id TEXT NOT NULL,
    asset_kind TEXT NOT NULL,
    template_id TEXT NOT NULL,
    template_name TEXT NOT NULL,
    kind TEXT NOT NULL,
    inspector_name TEXT NOT NULL,
    conforme BOOLEAN NOT NULL,
    request_replacement BOOLEAN NOT NULL DEFAULT FALSE,
    remarks TEXT,
    metadata TEXT NOT NULL,
    responses {JSON} NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inspection_asset_id ON inspection(asset_id);
CREATE INDEX IF NOT EXISTS idx_inspection_template_id ON inspection(template_id);

-- Alerts derived at submission; position preserves template declaration order
CREATE TABLE IF NOT EXISTS inspection_alert (
    inspection_id TEXT NOT NULL REFERENCES inspection(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    item_id TEXT NOT NULL,
    item_label TEXT NOT NULL,
    section_name TEXT NOT NULL,
    trigger_desc TEXT NOT NULL,
    raw_value TEXT NOT NULL,
    message TEXT NOT NULL,
    PRIMARY KEY (inspection_id, position)
);

-- Photo attachments captured during the session
CREATE TABLE IF NOT EXISTS inspection_photo (
    inspection_id TEXT NOT NULL REFERENCES inspection(id) ON DELETE CASCADE,
    item_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    filename TEXT,
    data {BLOB} NOT NULL,
    PRIMARY KEY (inspection_id, item_id, position)
);
`
