// Package game defines the schedule data model and the normalization step
// that turns loosely-structured source records into canonical games.
//
// Source adapters produce RawGame values whose fields vary with the upstream
// shape: the API supplies identifiers and venues, scraped pages often supply
// only team names and a time. Normalize fills defaults, derives a stable
// identity per game, drops duplicates, and orders the result chronologically
// so the calendar builder can consume it directly.
package game
