// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database access and schema creation.

# Drivers

Both drivers register through blank imports here: lib/pq for postgres and
modernc.org/sqlite (cgo-free) for sqlite, the default. Open picks the
driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Placeholders

Queries are written once with ? placeholders; DB and Tx rewrite them to
$1..$n when running against postgres, so handlers never branch on the
driver.

# Tables

  - form_template: administrator-authored schemas (definition stored as JSON)
  - inspector: operator identities keyed by token
  - inspection: one row per submitted record
  - inspection_alert: derived alerts, position keeps template order
  - inspection_photo: attachment blobs per item

Open sessions are deliberately absent: they live only in memory and are
discarded on close.
*/
package db
