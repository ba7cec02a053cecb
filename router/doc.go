// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the API routes using Go 1.22+ method patterns.

NewRouter wires every handler family onto one ServeMux: template
administration, inspector identity, the in-memory inspection session
endpoints, and submitted-record retrieval.
*/
package router
