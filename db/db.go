// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"       // postgres driver
	_ "modernc.org/sqlite"      // cgo-free sqlite driver
)

// DB wraps *sql.DB with the configured driver type so queries can be
// written once with ? placeholders; postgres gets them rewritten to $n.
type DB struct {
	SQL  *sql.DB
	Type string
}

// Open connects using the configured driver. Callers should Ping to verify.
func Open(dbType, url string) (*DB, error) {
	driver := "sqlite"
	if dbType == "postgres" {
		driver = "postgres"
	}
	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	return &DB{SQL: conn, Type: dbType}, nil
}

func (d *DB) Close() error { return d.SQL.Close() }

func (d *DB) Ping() error { return d.SQL.Ping() }

func (d *DB) Exec(query string, args ...any) (sql.Result, error) {
	return d.SQL.Exec(d.Rebind(query), args...)
}

func (d *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return d.SQL.Query(d.Rebind(query), args...)
}

func (d *DB) QueryRow(query string, args ...any) *sql.Row {
	return d.SQL.QueryRow(d.Rebind(query), args...)
}

// Begin starts a transaction that applies the same placeholder rewriting.
func (d *DB) Begin() (*Tx, error) {
	tx, err := d.SQL.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, dbType: d.Type}, nil
}

type Tx struct {
	tx     *sql.Tx
	dbType string
}

func (t *Tx) Exec(query string, args ...any) (sql.Result, error) {
	return t.tx.Exec(rebind(t.dbType, query), args...)
}

func (t *Tx) QueryRow(query string, args ...any) *sql.Row {
	return t.tx.QueryRow(rebind(t.dbType, query), args...)
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// Rebind rewrites ? placeholders to $1..$n for postgres. sqlite takes ?
// natively, so the query passes through unchanged.
func (d *DB) Rebind(query string) string {
	return rebind(d.Type, query)
}

func rebind(dbType, query string) string {
	if dbType != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
