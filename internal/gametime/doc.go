// Package gametime resolves raw schedule date/time fragments into
// timezone-aware instants in US Eastern time.
//
// Sources supply times in different shapes: absolute ISO 8601 UTC strings
// from the MLB API, date headers like "Monday, October 14" from structured
// pages, and weekday-plus-clock pairs ("Saturday at 7:08 PM") from freeform
// text. The package converts all of them into Eastern-zone time.Time values,
// inferring years for inputs that lack one and mapping weekday names onto the
// nearest future calendar date. A Resolver carries an explicit reference
// instant so resolution is deterministic and testable.
package gametime
