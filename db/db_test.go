// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"testing"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name   string
		dbType string
		query  string
		want   string
	}{
		{"sqlite untouched", "sqlite", "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = ? AND b = ?"},
		{"postgres ordinals", "postgres", "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"postgres no params", "postgres", "SELECT 1", "SELECT 1"},
		{"postgres many params", "postgres", "INSERT INTO t VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			"INSERT INTO t VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rebind(tt.dbType, tt.query); got != tt.want {
				t.Errorf("rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateSchema(t *testing.T) {
	d, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	d.SQL.SetMaxOpenConns(1)
	defer d.Close()

	if err := CreateSchema(d); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	// Idempotent
	if err := CreateSchema(d); err != nil {
		t.Fatalf("CreateSchema() second run error = %v", err)
	}

	for _, table := range []string{"form_template", "inspector", "inspection", "inspection_alert", "inspection_photo"} {
		var n int
		if err := d.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}
