// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sdis-tools/firecheck/cliparse"
	"github.com/sdis-tools/firecheck/db"
	"github.com/sdis-tools/firecheck/geocode"
	"github.com/sdis-tools/firecheck/inspection"
	"github.com/sdis-tools/firecheck/models"
	"github.com/sdis-tools/firecheck/router"
	"github.com/sdis-tools/firecheck/testutil"
)

// testServer wires the full router against an in-memory database, the way
// main does at startup.
type testServer struct {
	mux *http.ServeMux
	db  *db.DB
	cfg cliparse.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	d := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return &testServer{
		mux: router.NewRouter(d, cfg, inspection.NewManager(), geocode.New("")),
		db:  d,
		cfg: cfg,
	}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.mux.ServeHTTP(w, req)
	return w
}

func testAsset() models.Asset {
	return models.Asset{
		ID:           "asset-ari-42",
		DisplayName:  "ARI Drager PSS 4000",
		UniqueCode:   "ARI-042",
		CategoryName: "Appareil respiratoire",
		Kind:         models.AssetKindEquipment,
	}
}

// openSession seeds the pressure template, registers an inspector, and opens
// a session. Returns the session id and the inspector token.
func openSession(t *testing.T, ts *testServer) (string, string) {
	t.Helper()

	testutil.SeedTestTemplate(t, ts.db, ts.cfg, testutil.PressureTemplate())
	token := testutil.CreateTestInspector(t, ts.db, "Martin Dupont")

	w := ts.do(testutil.MakeRequest("POST", "/inspections", models.OpenInspectionRequest{
		TemplateID: "tpl-ari-monthly",
		Asset:      testAsset(),
	}, map[string]string{"X-Inspector-Token": token}))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.OpenInspectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.SessionID == "" {
		t.Fatal("open returned no session id")
	}
	return resp.SessionID, token
}
