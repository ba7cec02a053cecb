// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing.

Configuration comes from CLI flags with environment-variable fallback:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

DATABASE_URL and ADMIN_KEY_SALT are required; everything else has a
default. The database type defaults to sqlite.
*/
package cliparse
