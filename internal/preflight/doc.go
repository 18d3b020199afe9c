// Package preflight runs startup checks before the monitor loop begins.
//
// Checks cover directory access, free space in the transcript directory, and
// credential presence. Results are advisory: the caller logs failures so the
// operator sees problems early, but only configuration validation (which runs
// before preflight) aborts startup.
package preflight
