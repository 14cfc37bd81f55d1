// Package cli wires together the Cobra command tree for the reviewd binary.
//
// It defines the root command and its subcommands (review, config, cache,
// version), binds flags, loads configuration, runs the review pipeline, and
// returns deterministic exit codes for CI gating.
package cli
