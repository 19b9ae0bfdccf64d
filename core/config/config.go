package config

import (
	"reflect"
	"strings"

	"shop-transformer/core/batch"
	"shop-transformer/core/catalog"
	"shop-transformer/core/database"
	"shop-transformer/core/entitycache"
	"shop-transformer/core/logger"
	"shop-transformer/core/matching"
	"shop-transformer/core/server"
	"shop-transformer/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the shop database connection.
	Database database.Config `mapstructure:"database"`
	// Catalog holds configuration for the reference catalog source.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Matching tunes the vehicle and parts matching tiers.
	Matching matching.Config `mapstructure:"matching"`
	// Batch tunes the batch matching orchestrators.
	Batch batch.Config `mapstructure:"batch"`
	// Cache tunes the per-entity record cache.
	Cache entitycache.Config `mapstructure:"cache"`
	// Transform holds configuration for transformation run outputs.
	Transform TransformConfig `mapstructure:"transform"`
}

// TransformConfig configures where standardized run outputs are written.
type TransformConfig struct {
	// OutputBucket is the object storage bucket for standardized records.
	OutputBucket string `mapstructure:"output_bucket" default:"shop-standardized"`
	// OutputPrefix is the object key prefix under which runs are stored.
	OutputPrefix string `mapstructure:"output_prefix" default:"runs"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
