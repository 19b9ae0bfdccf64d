package matching

// Canonical is a catalog entry a descriptor can resolve to.
type Canonical[T any] interface {
	// Key is the composite identity used to deduplicate candidates.
	Key() string
	// AsAlternative returns a detached copy flagged as an alternative.
	AsAlternative() T
}

// Result is the outcome of matching one descriptor. Matched results carry a
// primary entry, the tier that produced it and a confidence in (0, 1];
// failed results carry a reason from the failure taxonomy instead. Either
// way AttemptedTiers records what was tried, in order.
type Result[T Canonical[T]] struct {
	Matched        bool          `json:"matched"`
	Primary        *T            `json:"primary,omitempty"`
	Alternatives   []T           `json:"alternatives,omitempty"`
	Confidence     float64       `json:"confidence"`
	Tier           string        `json:"tier,omitempty"`
	AttemptedTiers []string      `json:"attempted_tiers,omitempty"`
	FailureReason  FailureReason `json:"failure_reason,omitempty"`
	FailureDetails string        `json:"failure_details,omitempty"`
}

// NewMatched builds a successful result for a primary entry found by tier.
func NewMatched[T Canonical[T]](primary T, tier string, confidence float64, attempted []string) Result[T] {
	return Result[T]{
		Matched:        true,
		Primary:        &primary,
		Confidence:     confidence,
		Tier:           tier,
		AttemptedTiers: attempted,
	}
}

// NewFailed builds a failed result.
func NewFailed[T Canonical[T]](reason FailureReason, details string, attempted []string) Result[T] {
	return Result[T]{
		AttemptedTiers: attempted,
		FailureReason:  reason,
		FailureDetails: details,
	}
}

// AddAlternatives attaches candidates to the result, skipping the primary
// and duplicates by composite key, up to max entries. Candidates are stored
// as detached alternative copies.
func (r *Result[T]) AddAlternatives(max int, candidates ...T) {
	if r.Primary == nil || max <= 0 {
		return
	}

	seen := make(map[string]struct{}, len(r.Alternatives)+1)
	seen[(*r.Primary).Key()] = struct{}{}
	for _, alt := range r.Alternatives {
		seen[alt.Key()] = struct{}{}
	}

	for _, c := range candidates {
		if len(r.Alternatives) >= max {
			return
		}
		key := c.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		r.Alternatives = append(r.Alternatives, c.AsAlternative())
	}
}
