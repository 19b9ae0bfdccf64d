// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port and the API key protecting the
// operational endpoints.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the start command to bind the listener.
package server
