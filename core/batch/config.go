package batch

// Config tunes the orchestrator.
type Config struct {
	// ChunkSize caps how many records one chunk processes.
	ChunkSize int `mapstructure:"chunk_size" default:"50000"`
	// PrematchThreshold is the minimum confidence at which a prematch hit
	// is accepted without running the per-record tiers.
	PrematchThreshold float64 `mapstructure:"prematch_threshold" default:"0.95"`
}

// withDefaults fills zero fields so a zero Config still runs sanely.
func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 50000
	}
	if c.PrematchThreshold <= 0 {
		c.PrematchThreshold = 0.95
	}
	return c
}
