// Package config loads, validates, and normalizes the lofimix TOML
// configuration. Defaults cover the whole file so an absent config still
// yields a usable setup; explicit values are range-checked at load time so
// bad parameters fail before any pipeline runs.
package config
