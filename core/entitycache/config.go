package entitycache

// Config tunes the cache manager.
type Config struct {
	// BatchSize is the maximum number of parent ids per fetch, which bounds
	// the IN-clause size of the underlying queries.
	BatchSize int `mapstructure:"batch_size" default:"1000"`
}

// withDefaults fills zero fields so a zero Config still loads sanely.
func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 1000
	}
	return c
}
