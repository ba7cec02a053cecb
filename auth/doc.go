// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation.

# Admin Keys

Template admin keys are HMAC-SHA256 over the template id with a server-side
salt, returned once at creation and re-derived for validation:

	key := auth.GenerateAdminKey(templateID, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(templateID, providedKey, cfg.AdminKeySalt)

# Inspector Tokens

Inspector tokens are 192-bit random URL-safe strings identifying an
operator across inspection sessions. They carry no claims; the inspector
table maps token to identity.
*/
package auth
