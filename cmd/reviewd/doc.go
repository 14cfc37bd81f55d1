// Reviewd reviews source trees with static quality, security, and
// performance analysis, optionally augmented by a local or hosted language
// model.
//
// It walks a file or directory, runs every engine per file, and emits an
// aggregated session as colored text or stable JSON, with deterministic exit
// codes suitable for CI gating.
//
// Usage:
//
//	reviewd review ./src                   # review a directory tree
//	reviewd review main.py --format json   # machine-readable output
//	reviewd review . --ai --provider ollama --model llama3.2
//	reviewd config init                    # write a default config file
//	reviewd cache clear                    # drop cached model responses
package main
