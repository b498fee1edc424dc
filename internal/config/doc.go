// Package config loads lectern's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lectern/config.toml
//  3. If the config file doesn't exist, use defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # Fields
//
//	base_url   = "https://charts.example.com/songs/"  # resolves relative chart URLs
//	catalog    = "~/.config/lectern/catalog.yaml"
//	user_agent = "lectern/0.1"
//	timeout    = "10s"                                # per chart fetch
//	log_level  = "info"                               # zerolog level name
//	log_file   = "~/.local/state/lectern/lectern.log"
//
// Paths may start with "~", which expands to the user's home directory;
// every path in a loaded Config is absolute.
//
// # Errors
//
// A missing file is not an error. Unreadable files and malformed TOML are,
// wrapped as "open config", "read config" or "parse config". Load does not
// judge values; Validate does, reporting every bad field at once as
// criterio field errors:
//
//   - base_url must be an http or https URL with a host, when set
//   - timeout must be positive
//   - log_level must be a level zerolog recognizes
package config
