// Package source provides configuration sources for the engine.
//
// A Source fetches raw configuration bytes from somewhere: a local file, or
// a git repository for GitOps-style distribution where the control plane is
// a reviewed repo rather than a push API. LoadConfig turns a fetch into a
// validated configuration.
package source
