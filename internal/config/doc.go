// Package config loads, normalizes, and validates murmur configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DEEPGRAM_API_KEY. The Config type centralizes every knob the daemon and CLI
// need, so watch/transcript directories and the transcription credential are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a normalized extension allow-set, and clear validation
// errors.
package config
