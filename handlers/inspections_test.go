// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/sdis-tools/firecheck/models"
	"github.com/sdis-tools/firecheck/testutil"
)

func TestOpenInspection(t *testing.T) {
	ts := newTestServer(t)
	testutil.SeedTestTemplate(t, ts.db, ts.cfg, testutil.PressureTemplate())
	token := testutil.CreateTestInspector(t, ts.db, "Martin Dupont")

	w := ts.do(testutil.MakeRequest("POST", "/inspections", models.OpenInspectionRequest{
		TemplateID: "tpl-ari-monthly",
		Asset:      testAsset(),
	}, map[string]string{"X-Inspector-Token": token}))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.OpenInspectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.SectionIndex != 0 || resp.SectionCount != 2 {
		t.Errorf("wizard position = %d/%d", resp.SectionIndex, resp.SectionCount)
	}
	if resp.Section.Title != "Pressure" {
		t.Errorf("first section = %q", resp.Section.Title)
	}

	// Every item arrives pre-defaulted
	if v := resp.Responses["item-pressure"]; v != 0.0 {
		t.Errorf("item-pressure default = %v, want 0", v)
	}
	if v := resp.Responses["item-strap"]; v != "present" {
		t.Errorf("item-strap default = %v, want present", v)
	}
}

func TestOpenInspectionAuth(t *testing.T) {
	ts := newTestServer(t)
	testutil.SeedTestTemplate(t, ts.db, ts.cfg, testutil.PressureTemplate())

	req := models.OpenInspectionRequest{TemplateID: "tpl-ari-monthly", Asset: testAsset()}

	w := ts.do(testutil.MakeRequest("POST", "/inspections", req, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = ts.do(testutil.MakeRequest("POST", "/inspections", req,
		map[string]string{"X-Inspector-Token": "bogus"}))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestOpenInspectionUnknownTemplate(t *testing.T) {
	ts := newTestServer(t)
	token := testutil.CreateTestInspector(t, ts.db, "Martin Dupont")

	w := ts.do(testutil.MakeRequest("POST", "/inspections", models.OpenInspectionRequest{
		TemplateID: "ghost",
		Asset:      testAsset(),
	}, map[string]string{"X-Inspector-Token": token}))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestOpenInspectionRetiredTemplate(t *testing.T) {
	ts := newTestServer(t)
	tpl := testutil.PressureTemplate()
	tpl.Retired = true
	testutil.SeedTestTemplate(t, ts.db, ts.cfg, tpl)
	token := testutil.CreateTestInspector(t, ts.db, "Martin Dupont")

	w := ts.do(testutil.MakeRequest("POST", "/inspections", models.OpenInspectionRequest{
		TemplateID: tpl.ID,
		Asset:      testAsset(),
	}, map[string]string{"X-Inspector-Token": token}))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestSetResponseReevaluates(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _ := openSession(t, ts)

	// Below the configured minimum: one alert
	w := ts.do(testutil.MakeRequest("PUT", "/inspections/"+sessionID+"/responses/item-pressure",
		models.SetResponseRequest{Value: 4000}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var eval models.EvaluationResponse
	testutil.AssertJSON(t, w, &eval)
	if eval.Conforme || len(eval.Alerts) != 1 {
		t.Fatalf("evaluation = %+v", eval)
	}
	if eval.Alerts[0].RawValue != "4000 PSI" {
		t.Errorf("raw value = %q", eval.Alerts[0].RawValue)
	}

	// Correcting the value clears the alert
	w = ts.do(testutil.MakeRequest("PUT", "/inspections/"+sessionID+"/responses/item-pressure",
		models.SetResponseRequest{Value: 4100}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &eval)
	if !eval.Conforme || len(eval.Alerts) != 0 {
		t.Errorf("evaluation after correction = %+v", eval)
	}
}

func TestSetResponseErrors(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _ := openSession(t, ts)

	w := ts.do(testutil.MakeRequest("PUT", "/inspections/"+sessionID+"/responses/ghost",
		models.SetResponseRequest{Value: 1}, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = ts.do(testutil.MakeRequest("PUT", "/inspections/"+sessionID+"/responses/item-pressure",
		models.SetResponseRequest{Value: "not a number"}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = ts.do(testutil.MakeRequest("PUT", "/inspections/unknown-session/responses/item-pressure",
		models.SetResponseRequest{Value: 1}, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestPhotoFlow(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _ := openSession(t, ts)

	w := ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/photos/item-damage",
		models.AttachPhotoRequest{Filename: "crack.jpg", Data: []byte{0xFF, 0xD8, 0xFF}}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.AttachPhotoResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}

	// Over the configured size limit
	huge := bytes.Repeat([]byte{1}, int(ts.cfg.MaxPhotoBytes)+1)
	w = ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/photos/item-damage",
		models.AttachPhotoRequest{Filename: "huge.jpg", Data: huge}, nil))
	testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)

	w = ts.do(testutil.MakeRequest("DELETE", "/inspections/"+sessionID+"/photos/item-damage/0", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = ts.do(testutil.MakeRequest("DELETE", "/inspections/"+sessionID+"/photos/item-damage/5", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestNavigation(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _ := openSession(t, ts)

	w := ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/next", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var nav models.NavigationResponse
	testutil.AssertJSON(t, w, &nav)
	if nav.SectionIndex != 1 || !nav.AtEnd {
		t.Errorf("after next: %+v", nav)
	}
	if nav.Section.Title != "Visual" {
		t.Errorf("section = %q", nav.Section.Title)
	}

	// Next past the end stays put
	w = ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/next", nil, nil))
	testutil.AssertJSON(t, w, &nav)
	if nav.SectionIndex != 1 {
		t.Errorf("next past end moved to %d", nav.SectionIndex)
	}

	w = ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/previous", nil, nil))
	testutil.AssertJSON(t, w, &nav)
	if nav.SectionIndex != 0 || nav.AtEnd {
		t.Errorf("after previous: %+v", nav)
	}
}

func TestSubmitInspection(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _ := openSession(t, ts)

	ts.do(testutil.MakeRequest("PUT", "/inspections/"+sessionID+"/responses/item-pressure",
		models.SetResponseRequest{Value: 4000}, nil))
	ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/photos/item-pressure",
		models.AttachPhotoRequest{Filename: "gauge.jpg", Data: []byte{0xFF, 0xD8}}, nil))
	ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/next", nil, nil))

	w := ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/submit",
		models.SubmitInspectionRequest{Remarks: "manometre a verifier", RequestReplacement: true}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitInspectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Conforme || resp.AlertCount != 1 {
		t.Errorf("submit response = %+v", resp)
	}

	// Session is gone
	w = ts.do(testutil.MakeRequest("GET", "/inspections/"+sessionID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// The record replays with its alerts in order
	w = ts.do(testutil.MakeRequest("GET", "/inspections/records/"+resp.InspectionID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var rec models.InspectionRecord
	testutil.AssertJSON(t, w, &rec)
	if rec.AssetID != "asset-ari-42" || rec.InspectorName != "Martin Dupont" {
		t.Errorf("record identity = %+v", rec)
	}
	if rec.Remarks != "manometre a verifier" || !rec.RequestReplacement {
		t.Errorf("record flags = remarks %q replacement %v", rec.Remarks, rec.RequestReplacement)
	}
	if rec.Metadata != "Appareil respiratoire ARI Drager PSS 4000 (ARI-042)" {
		t.Errorf("metadata = %q", rec.Metadata)
	}
	if len(rec.Alerts) != 1 || rec.Alerts[0].ItemID != "item-pressure" {
		t.Fatalf("record alerts = %v", rec.Alerts)
	}
	if rec.Responses["item-pressure"] != 4000.0 {
		t.Errorf("stored response = %v", rec.Responses["item-pressure"])
	}

	var photoCount int
	if err := ts.db.QueryRow(`SELECT COUNT(*) FROM inspection_photo WHERE inspection_id = ?`,
		resp.InspectionID).Scan(&photoCount); err != nil {
		t.Fatal(err)
	}
	if photoCount != 1 {
		t.Errorf("persisted %d photos, want 1", photoCount)
	}
}

func TestSubmitRequiresLastSection(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _ := openSession(t, ts)

	w := ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/submit",
		models.SubmitInspectionRequest{}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	// The session survives the refused submit
	w = ts.do(testutil.MakeRequest("GET", "/inspections/"+sessionID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestSubmitMissingRequired(t *testing.T) {
	ts := newTestServer(t)

	tpl := testutil.PressureTemplate()
	tpl.Sections[1].Items = append(tpl.Sections[1].Items, models.Item{
		ID: "item-serial", Label: "Numero de serie", Type: models.TypeScan, Required: true,
	})
	testutil.SeedTestTemplate(t, ts.db, ts.cfg, tpl)
	token := testutil.CreateTestInspector(t, ts.db, "Martin Dupont")

	w := ts.do(testutil.MakeRequest("POST", "/inspections", models.OpenInspectionRequest{
		TemplateID: tpl.ID,
		Asset:      testAsset(),
	}, map[string]string{"X-Inspector-Token": token}))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var opened models.OpenInspectionResponse
	testutil.AssertJSON(t, w, &opened)
	sessionID := opened.SessionID

	ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/next", nil, nil))

	w = ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/submit",
		models.SubmitInspectionRequest{}, nil))
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if len(errResp.Missing) != 1 || errResp.Missing[0] != "item-serial" {
		t.Fatalf("missing = %v", errResp.Missing)
	}

	// Filling the item and retrying succeeds on the same session
	w = ts.do(testutil.MakeRequest("PUT", "/inspections/"+sessionID+"/responses/item-serial",
		models.SetResponseRequest{Value: "SN-1234"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/submit",
		models.SubmitInspectionRequest{}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestLocate(t *testing.T) {
	ts := newTestServer(t)

	tpl := testutil.PressureTemplate()
	tpl.Sections[0].Items = append(tpl.Sections[0].Items, models.Item{
		ID: "item-loc", Label: "Lieu du controle", Type: models.TypeLocation,
	})
	testutil.SeedTestTemplate(t, ts.db, ts.cfg, tpl)
	token := testutil.CreateTestInspector(t, ts.db, "Martin Dupont")

	w := ts.do(testutil.MakeRequest("POST", "/inspections", models.OpenInspectionRequest{
		TemplateID: tpl.ID,
		Asset:      testAsset(),
	}, map[string]string{"X-Inspector-Token": token}))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var opened models.OpenInspectionResponse
	testutil.AssertJSON(t, w, &opened)
	sessionID := opened.SessionID

	w = ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/locate/item-loc",
		models.LocateRequest{Lat: 45.76, Lon: 4.83}, nil))
	testutil.AssertStatus(t, w, http.StatusAccepted)

	// The no-endpoint resolver completes with the raw coordinates
	deadline := time.Now().Add(2 * time.Second)
	for {
		w = ts.do(testutil.MakeRequest("GET", "/inspections/"+sessionID, nil, nil))
		var state models.SessionStateResponse
		testutil.AssertJSON(t, w, &state)
		if state.Responses["item-loc"] == "45.76000, 4.83000" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("lookup never completed, item-loc = %v", state.Responses["item-loc"])
		}
		time.Sleep(10 * time.Millisecond)
	}

	w = ts.do(testutil.MakeRequest("POST", "/inspections/"+sessionID+"/locate/ghost",
		models.LocateRequest{Lat: 1, Lon: 2}, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCancelInspection(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _ := openSession(t, ts)

	w := ts.do(testutil.MakeRequest("DELETE", "/inspections/"+sessionID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = ts.do(testutil.MakeRequest("GET", "/inspections/"+sessionID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
