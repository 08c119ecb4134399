// Package source fetches the MLB postseason schedule from one of several
// upstream shapes and extracts raw game records.
//
// Three adapters implement the Source interface: an API adapter against the
// official statsapi schedule endpoint, a structured-HTML adapter that walks
// date sections of a schedule page, and a freeform-text adapter that regex-
// matches game times and matchups out of unstructured page text. The HTML
// adapters are brittle by nature; they break when upstream markup changes,
// and that is an accepted operational risk. All adapters recover from
// per-record failures and return whatever they managed to extract.
package source
