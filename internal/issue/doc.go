// Package issue defines the shared value type for detected problems and the
// fixed severity, kind, and source vocabularies used across all engines.
package issue
