// Package file provides the TOML-backed configuration store. Tokens
// and default delays live in ~/.gazer/config.toml; nested tables are
// flattened to dot-notation keys (github.token, discord.token).
package file
