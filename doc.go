// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the firecheck API server.

firecheck is a fire-department inspection backend: administrators author
form templates (sections of typed questions), inspectors run multi-step
inspection sessions against equipment and PPE assets, and the engine derives
alerts and a conformity verdict from configurable, data-driven rules.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=firecheck.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -d firecheck.db -admin-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or postgres connection string
  - ADMIN_KEY_SALT (--admin-salt): secret for template admin key HMAC

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - GEOCODE_URL (--geocode-url): reverse-geocoding endpoint; without it
    location lookups resolve to raw coordinates
  - TEMPLATE_SEED_DIR (--seed): directory of YAML form templates loaded at
    startup
  - MAX_PHOTO_BYTES (--max-photo): photo upload limit (default 10 MiB)

A .env file in the working directory is loaded automatically.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - fieldtype: the question-type registry (defaults, coercion, alert rules)
  - inspection: in-memory session engine (responses, photos, wizard, alerts)
  - handlers: HTTP request handlers (templates, inspectors, sessions, records)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - auth: admin keys and inspector tokens
  - db: drivers, schema, placeholder rebinding
  - seed: YAML template seeding
  - geocode: reverse-geocoding collaborator
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
