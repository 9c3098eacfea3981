// Package paths centralizes filesystem location logic for cfgvault.
//
// It resolves the XDG base directories used for the config file and the
// default backup root, expands ~-prefixed paths, and carries the catalog of
// well-known configuration file locations (gitconfig, ssh config, shell rc
// files, and so on). It also supplies host and user identity strings
// recorded in backup manifests.
//
// The backup engine only ever receives resolved paths; all discovery logic
// stays here and in the CLI layer.
package paths
