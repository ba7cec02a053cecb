// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package inspection implements the dynamic inspection form engine.

A Session is one run of the engine against one (template, asset) pair. On
open it builds a response store with one defaulted entry per known item and
an empty photo store, then the caller steps through sections with the
Paginator, replacing responses and appending photos as the user works.

Alerts and conformity are never stored: Evaluate derives the alert list
fresh from (template, responses) in template declaration order, and Conforme
is true exactly when that list is empty. Re-derive after every mutation that
can affect a triggering item.

# Submission

Submission is reachable only from the last section. BeginSubmit guards
against duplicate confirmation taps, Assemble enforces required items and
snapshots the stores into one atomic InspectionRecord, and EndSubmit
releases the guard after a failed persistence call so the session survives
for retry. Close discards the session; async lookup completions arriving
afterwards are no-ops.

# Concurrency

Each session carries one mutex. Device lookups write back through
CompleteLookup with last-writer-wins semantics; photo appends are ordered
by completion, not by capture start.
*/
package inspection
