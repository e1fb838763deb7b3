// Package config loads application configuration from defaults, an optional
// YAML file and COMPANION_-prefixed environment variables, validates it, and
// optionally watches the file for changes.
package config
