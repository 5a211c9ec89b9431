// Package config loads Aegis process configuration.
//
// Settings come from three places, in increasing order of precedence: a
// YAML config file (AEGIS_CONFIG_PATH/aegis.yml), a local .env file, and
// AEGIS_* environment variables. Each attribute remembers where its value
// came from, which "aegisctl configuration show" reports.
package config
