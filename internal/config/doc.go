// Package config loads, normalizes, and validates vaultindex configuration data.
//
// It supplies repository defaults (including the built-in channel display
// table), expands user paths (including tilde shortcuts), reads TOML files,
// and honours environment fallbacks such as VAULTINDEX_VAULT_DIR. The Config
// type centralizes every knob the generator and CLI need so the pipeline
// receives one explicit value instead of process-wide globals.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
