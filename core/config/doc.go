// Package config provides configuration management for the shop transformer.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details for the shop database
//   - Storage: S3/MinIO credentials
//   - Log: Logging level and format
//   - Catalog: where the reference catalog drop is read from
//   - Matching, Batch, Cache: tuning knobs for the matching pipeline
//   - Transform: where standardized run outputs are written
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
