package matching

// Statistics aggregates match outcomes for one processing scope, typically
// one orchestrator run. It is not safe for concurrent mutation; the
// orchestrator is its only writer.
type Statistics struct {
	Total         int
	Matched       int
	TierCounts    map[string]int
	FailureCounts map[FailureReason]int

	confidenceSum float64
}

// NewStatistics returns an empty Statistics ready to record into.
func NewStatistics() *Statistics {
	return &Statistics{
		TierCounts:    make(map[string]int),
		FailureCounts: make(map[FailureReason]int),
	}
}

// Observe records one match result into s.
func Observe[T Canonical[T]](s *Statistics, r Result[T]) {
	s.Total++
	if r.Matched {
		s.Matched++
		s.TierCounts[r.Tier]++
		s.confidenceSum += r.Confidence
		return
	}
	s.FailureCounts[r.FailureReason]++
}

// MatchRate is the share of observed results that matched.
func (s *Statistics) MatchRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Total)
}

// AverageConfidence is the mean confidence over matched results only.
func (s *Statistics) AverageConfidence() float64 {
	if s.Matched == 0 {
		return 0
	}
	return s.confidenceSum / float64(s.Matched)
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Total += other.Total
	s.Matched += other.Matched
	s.confidenceSum += other.confidenceSum
	for tier, n := range other.TierCounts {
		s.TierCounts[tier] += n
	}
	for reason, n := range other.FailureCounts {
		s.FailureCounts[reason] += n
	}
}

// Snapshot is the serializable view of Statistics.
type Snapshot struct {
	Total             int                   `json:"total"`
	Matched           int                   `json:"matched"`
	MatchRate         float64               `json:"match_rate"`
	AverageConfidence float64               `json:"average_confidence"`
	TierCounts        map[string]int        `json:"tier_counts"`
	FailureCounts     map[FailureReason]int `json:"failure_counts"`
}

// Merge folds other into s, reweighting the averages. Used to aggregate
// per-entity snapshots into run totals.
func (s *Snapshot) Merge(other Snapshot) {
	if s.TierCounts == nil {
		s.TierCounts = make(map[string]int)
	}
	if s.FailureCounts == nil {
		s.FailureCounts = make(map[FailureReason]int)
	}
	if s.Matched+other.Matched > 0 {
		s.AverageConfidence = (s.AverageConfidence*float64(s.Matched) +
			other.AverageConfidence*float64(other.Matched)) / float64(s.Matched+other.Matched)
	}
	s.Total += other.Total
	s.Matched += other.Matched
	if s.Total > 0 {
		s.MatchRate = float64(s.Matched) / float64(s.Total)
	}
	for tier, n := range other.TierCounts {
		s.TierCounts[tier] += n
	}
	for reason, n := range other.FailureCounts {
		s.FailureCounts[reason] += n
	}
}

// Snapshot returns a copy suitable for reports and JSON output.
func (s *Statistics) Snapshot() Snapshot {
	snap := Snapshot{
		Total:             s.Total,
		Matched:           s.Matched,
		MatchRate:         s.MatchRate(),
		AverageConfidence: s.AverageConfidence(),
		TierCounts:        make(map[string]int, len(s.TierCounts)),
		FailureCounts:     make(map[FailureReason]int, len(s.FailureCounts)),
	}
	for tier, n := range s.TierCounts {
		snap.TierCounts[tier] = n
	}
	for reason, n := range s.FailureCounts {
		snap.FailureCounts[reason] = n
	}
	return snap
}
