// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed loads administrator-authored form templates from YAML.

LoadDir reads every .yml/.yaml file in a directory as one template with
strict field checking; malformed files are logged and skipped. Apply
upserts the result into form_template, so re-running the server with the
same seed directory is idempotent.
*/
package seed
