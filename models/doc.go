// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterInspectorRequest: display_name
  - OpenInspectionRequest: template_id, asset
  - SetResponseRequest: value (raw JSON, coerced by the fieldtype registry)
  - AttachPhotoRequest: filename, data (base64)
  - LocateRequest: lat, lon
  - SubmitInspectionRequest: remarks, request_replacement

# Response Types

Types for JSON responses:

  - CreateTemplateResponse: template_id, admin_key
  - RegisterInspectorResponse: inspector_id, token, is_new
  - OpenInspectionResponse: session_id, section, defaults
  - EvaluationResponse: alerts, conforme
  - NavigationResponse: section_index, section, at_end
  - SubmitInspectionResponse: inspection_id, conforme, alert_count
  - ErrorResponse: error, message, missing

# Domain Types

Internal data structures:

  - FormTemplate / Section / Item: administrator-authored inspection schema
  - ItemConfig / AlertConfig: numeric bounds and trigger configuration
  - Asset: the inspected object (read-only, caller-supplied)
  - Inspector: operator identity
  - Alert: derived trigger violation, recomputed on every evaluation
  - StopwatchValue / Photo: structured response payloads
  - InspectionRecord: the atomic outbound record built at submission

# Field Types

The FieldType constants enumerate every question type the registry knows:
choice types (radio, checkbox, list), legacy binaries (conformite, oui_non,
present_absent), numeric types (number, number_unit, slider), and passive
types (text, date, inspector, location, signature, stopwatch, countdown,
photo, audio, scan).
*/
package models
