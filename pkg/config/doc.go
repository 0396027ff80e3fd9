// Package config loads rigup's configuration.
//
// Layers are applied in order, later ones winning:
//
//  1. embedded/defaults.toml shipped in the binary
//  2. the user file: --config, or config.toml / config.yaml in the rigup
//     config directory
//  3. RIGUP_* environment variables (RIGUP_PRIVILEGE_KEEPALIVE=30s sets
//     privilege.keepalive)
//
// Command-line flags are applied on top by the cmd package.
package config
