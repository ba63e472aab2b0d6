// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from an optional YAML file, a local .env file and the process
// environment, then validated before any component is wired. Environment variable
// names are consumed verbatim so the same deployment values work for the web
// server and the CLI.
package config
