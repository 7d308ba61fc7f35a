// Package config loads and validates the frontend configuration file.
//
// Configuration is plain TOML data: identity, factory pool address, queue
// sources, match predicates, and logging settings. Predicates are clause
// lists compiled by the match package; nothing in the file is executable.
package config
