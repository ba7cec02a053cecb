// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the firecheck API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - TemplateHandler: form template storage (create, list, get, retire)
  - InspectorHandler: operator registration and identity
  - InspectionHandler: the inspection session engine endpoints
  - RecordHandler: submitted record retrieval

Handlers are created via constructor functions; the InspectionHandler also
takes the in-memory session manager and the geocode resolver:

	inspectionHandler := handlers.NewInspectionHandler(db, cfg, sessions, geocoder)

# Session Flow

One inspection runs open → respond → navigate → submit:

	POST   /inspections                               → Open (X-Inspector-Token)
	GET    /inspections/{id}                          → GetState
	PUT    /inspections/{id}/responses/{itemID}       → SetResponse
	POST   /inspections/{id}/photos/{itemID}          → AttachPhoto
	DELETE /inspections/{id}/photos/{itemID}/{index}  → RemovePhoto
	POST   /inspections/{id}/next | /previous         → Next / Previous
	POST   /inspections/{id}/locate/{itemID}          → Locate (async)
	POST   /inspections/{id}/submit                   → Submit
	DELETE /inspections/{id}                          → Cancel

Every response mutation returns the freshly derived alerts and conformity.
Submission assembles one atomic record and persists it with its alerts and
photos in a single transaction; on failure the session survives for retry.

# Template Administration

	POST /templates              → CreateTemplate (returns admin_key)
	GET  /templates              → ListTemplates
	GET  /templates/{id}         → GetTemplate
	POST /templates/{id}/retire  → RetireTemplate (X-Admin-Key)

# Records

	GET /inspections/records/{id}  → GetRecord
	GET /assets/{assetID}/records  → ListAssetRecords
*/
package handlers
