package catalog

import "shop-transformer/core/storage"

// Config selects where catalog drops are read from.
type Config struct {
	// Dir reads the catalog from a local directory when set. Takes
	// precedence over object storage.
	Dir string `mapstructure:"dir" default:""`
	// Bucket is the object storage bucket holding the catalog drop.
	Bucket string `mapstructure:"bucket" default:"catalog"`
	// Prefix is the object key prefix of the current drop.
	Prefix string `mapstructure:"prefix" default:"current"`
}

// Source builds the file source the configuration points at. client may be
// nil when Dir is set.
func (c Config) Source(client storage.Client) Source {
	if c.Dir != "" {
		return DirSource{Dir: c.Dir}
	}
	return ObjectSource{Client: client, Bucket: c.Bucket, Prefix: c.Prefix}
}
