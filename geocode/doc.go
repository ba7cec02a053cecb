// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package geocode resolves device coordinates to address strings.

The Resolver interface is the collaborator the inspection engine sees.
NewClient talks to a Nominatim-shaped HTTP endpoint; CoordinateResolver is
the offline fallback that renders the raw coordinates. Lookup failures are
never fatal: callers fall back to geocode.Coordinates.
*/
package geocode
