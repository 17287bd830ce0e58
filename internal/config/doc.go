// Package config defines the static configuration surface of the service
// and loads it from environment variables and an optional config file.
// Configuration is read once at startup and treated as immutable afterward.
package config
