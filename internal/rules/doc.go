// Package rules holds the data-driven rule catalog: per-language bundles of
// compiled (pattern, severity, classification, message) rules for quality,
// security, and performance scanning, plus the secret-detection table.
//
// Adding a language means registering a bundle; no dispatcher edits.
package rules
