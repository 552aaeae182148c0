// Package config defines the plugin configuration for both pipelines.
//
// Configuration is pushed by a control plane as JSON; YAML is accepted for
// local files by extension. Loading always runs the same sequence: decode,
// apply defaults, validate. Validation collects every problem into a single
// ValidationError so one round trip surfaces all mistakes.
//
// A Manager holds the loaded configuration together with the engines built
// from it as an immutable Snapshot behind an atomic pointer. Reload builds
// a complete new snapshot and swaps it in; a failed reload keeps the old
// snapshot serving.
package config
