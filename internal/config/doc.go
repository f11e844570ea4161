// Package config loads, normalizes, and validates prestige configuration data.
//
// It supplies repository defaults that reproduce the bundled Netflix/Disney+
// versus Oscar/Golden Globe analysis, expands user paths (including tilde
// shortcuts), resolves dataset paths against the data directory, reads TOML
// files, and honours the PRESTIGE_DATA_DIR environment fallback. The award
// category mapping lives here as data: each [[awards]] entry lists the raw
// labels folded into every semantic category, so adding a source or a
// category is a configuration change.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical separators and log formats, and clear validation
// errors.
package config
