// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID() error = %v", err)
	}
	if len(id) != 32 {
		t.Errorf("GenerateID(16) length = %d, want 32 hex chars", len(id))
	}

	other, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID() error = %v", err)
	}
	if id == other {
		t.Error("GenerateID() produced the same id twice")
	}
}

func TestAdminKeyRoundTrip(t *testing.T) {
	key := GenerateAdminKey("tpl-ari-monthly", "salt123")

	if key == "" {
		t.Fatal("GenerateAdminKey() returned empty key")
	}
	if strings.ContainsAny(key, "+/=") {
		t.Errorf("admin key %q is not URL-safe unpadded base64", key)
	}

	// Deterministic: same inputs, same key
	if again := GenerateAdminKey("tpl-ari-monthly", "salt123"); again != key {
		t.Error("GenerateAdminKey() is not deterministic")
	}

	if err := ValidateAdminKey("tpl-ari-monthly", key, "salt123"); err != nil {
		t.Errorf("ValidateAdminKey() error = %v", err)
	}
}

func TestValidateAdminKeyRejects(t *testing.T) {
	key := GenerateAdminKey("tpl-ari-monthly", "salt123")

	tests := []struct {
		name       string
		templateID string
		adminKey   string
		salt       string
	}{
		{"wrong template", "tpl-other", key, "salt123"},
		{"wrong salt", "tpl-ari-monthly", key, "other-salt"},
		{"garbage key", "tpl-ari-monthly", "not-a-key", "salt123"},
		{"empty key", "tpl-ari-monthly", "", "salt123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.templateID, tt.adminKey, tt.salt)
			if !errors.Is(err, ErrInvalidAdminKey) {
				t.Errorf("ValidateAdminKey() error = %v, want ErrInvalidAdminKey", err)
			}
		})
	}
}

func TestGenerateInspectorToken(t *testing.T) {
	token, err := GenerateInspectorToken()
	if err != nil {
		t.Fatalf("GenerateInspectorToken() error = %v", err)
	}
	// 24 bytes of entropy is 32 base64 chars once padding is stripped
	if len(token) != 32 {
		t.Errorf("token length = %d, want 32", len(token))
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token %q is not URL-safe unpadded base64", token)
	}

	other, err := GenerateInspectorToken()
	if err != nil {
		t.Fatalf("GenerateInspectorToken() error = %v", err)
	}
	if token == other {
		t.Error("GenerateInspectorToken() produced the same token twice")
	}
}
