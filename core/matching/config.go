package matching

// Config tunes the matching tiers.
type Config struct {
	// FuzzyThreshold is the minimum similarity the fuzzy tiers accept.
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" default:"0.8"`
	// MaxAlternatives caps the alternatives attached to one result.
	MaxAlternatives int `mapstructure:"max_alternatives" default:"5"`
	// KeywordMinOverlap is the minimum share of query tokens that must hit
	// a single part before the keyword tier accepts it.
	KeywordMinOverlap float64 `mapstructure:"keyword_min_overlap" default:"0.5"`
}

// withDefaults fills zero fields so a zero Config still matches sanely.
func (c Config) withDefaults() Config {
	if c.FuzzyThreshold <= 0 {
		c.FuzzyThreshold = 0.8
	}
	if c.MaxAlternatives <= 0 {
		c.MaxAlternatives = 5
	}
	if c.KeywordMinOverlap <= 0 {
		c.KeywordMinOverlap = 0.5
	}
	return c
}
