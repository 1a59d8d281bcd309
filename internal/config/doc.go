// Package config loads asyncui settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. built-in defaults (Default)
//  2. a TOML file
//  3. ASYNCUI_* environment variables
//
// Example file:
//
//	[log]
//	level = "debug"
//
//	[bridge]
//	policy = "queue"
//	queue_size = 32
//	overflow = "drop-oldest"
//
//	[terminal]
//	mouse = true
package config
