// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

  - WithLogging: request start/completion logging with duration
  - CORS: cross-origin headers and preflight handling
  - JSONResponse / ErrorResponse / MissingResponse: JSON envelopes
  - ParseJSONBody: request body decoding
  - GetClientIP: X-Forwarded-For / X-Real-IP aware client address
*/
package middleware
