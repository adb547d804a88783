// Package config loads, normalizes, and validates rankle configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY. The Config type centralizes every knob the resolver and CLI
// need, so provider credentials, cache locations, and acceptance thresholds
// are discovered in one pass.
//
// A missing provider key is not a validation failure: the resolver treats it
// as "this provider is unavailable" and moves on to the next fallback.
package config
