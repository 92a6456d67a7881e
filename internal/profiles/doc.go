// Package profiles provides named batch profiles.
//
// A profile bundles a batch size, an inter-batch delay, and extra exclude patterns. Built-in profiles are
// embedded; users may add or override profiles with a YAML or JSON file.
package profiles
