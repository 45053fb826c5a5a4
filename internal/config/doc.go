// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, an optional config.yaml, environment
// variables prefixed with CITYINFO_). It provides type-safe access to
// application settings needed by different components while keeping
// configuration details separate from business logic.
package config
