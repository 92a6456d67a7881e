// Package settings defines the persisted batch configuration and resolves the effective run settings from
// configuration, a selected profile, and command-line overrides.
package settings
