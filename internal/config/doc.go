// Package config loads the reviewd configuration: supported extensions,
// exclude patterns, analysis thresholds, security and AI gates. Values merge
// in layers (defaults, then reviewd.yaml, then REVIEWD_* environment
// variables, then CLI flags) into an immutable snapshot.
package config
