// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/sdis-tools/firecheck/models"
	"github.com/sdis-tools/firecheck/testutil"
)

func TestRegisterInspector(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(testutil.MakeRequest("POST", "/inspectors/register",
		models.RegisterInspectorRequest{DisplayName: "Martin Dupont"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.RegisterInspectorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Token == "" || resp.InspectorID == "" {
		t.Fatalf("incomplete registration response: %+v", resp)
	}
	if !resp.IsNew {
		t.Error("first registration should report is_new")
	}

	// The token resolves back to the identity
	w = ts.do(testutil.MakeRequest("GET", "/inspectors/me", nil,
		map[string]string{"X-Inspector-Token": resp.Token}))
	testutil.AssertStatus(t, w, http.StatusOK)

	var me models.Inspector
	testutil.AssertJSON(t, w, &me)
	if me.DisplayName != "Martin Dupont" || me.ID != resp.InspectorID {
		t.Errorf("me = %+v", me)
	}
}

// Re-registering with a valid token reuses the identity instead of minting
// a new one.
func TestRegisterInspectorReusesIdentity(t *testing.T) {
	ts := newTestServer(t)
	token := testutil.CreateTestInspector(t, ts.db, "Martin Dupont")

	w := ts.do(testutil.MakeRequest("POST", "/inspectors/register",
		models.RegisterInspectorRequest{DisplayName: "Quelqu'un d'autre"},
		map[string]string{"X-Inspector-Token": token}))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RegisterInspectorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.IsNew {
		t.Error("existing token should not create a new identity")
	}
	if resp.Token != token {
		t.Error("token changed on re-registration")
	}

	var count int
	if err := ts.db.QueryRow(`SELECT COUNT(*) FROM inspector`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("inspector table has %d rows, want 1", count)
	}
}

func TestRegisterInspectorValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name        string
		displayName string
	}{
		{"too short", "X"},
		{"too long", string(make([]byte, 81))},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(testutil.MakeRequest("POST", "/inspectors/register",
				models.RegisterInspectorRequest{DisplayName: tt.displayName}, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(testutil.MakeRequest("GET", "/inspectors/me", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = ts.do(testutil.MakeRequest("GET", "/inspectors/me", nil,
		map[string]string{"X-Inspector-Token": "unknown-token"}))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
