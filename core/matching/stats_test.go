package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatistics_Observe tests that matched and failed results land in the
// right counters.
func TestStatistics_Observe(t *testing.T) {
	s := NewStatistics()

	Observe(s, NewMatched(CanonicalPart{PartID: 1}, TierExact, 1.0, []string{TierExact}))
	Observe(s, NewMatched(CanonicalPart{PartID: 2}, TierFuzzy, 0.8, []string{TierExact, TierFuzzy}))
	Observe(s, NewFailed[CanonicalPart](FailureNoPartData, "", nil))

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Matched)
	assert.Equal(t, 1, s.TierCounts[TierExact])
	assert.Equal(t, 1, s.TierCounts[TierFuzzy])
	assert.Equal(t, 1, s.FailureCounts[FailureNoPartData])
	assert.InDelta(t, 2.0/3.0, s.MatchRate(), 1e-9)
	assert.InDelta(t, 0.9, s.AverageConfidence(), 1e-9)
}

// TestSnapshot_Merge tests that run-level aggregation reweights the average
// confidence by matched counts.
func TestSnapshot_Merge(t *testing.T) {
	a := Snapshot{
		Total:             4,
		Matched:           2,
		AverageConfidence: 1.0,
		TierCounts:        map[string]int{TierExact: 2},
		FailureCounts:     map[FailureReason]int{FailureNoMatchResult: 2},
	}
	b := Snapshot{
		Total:             2,
		Matched:           2,
		AverageConfidence: 0.8,
		TierCounts:        map[string]int{TierFuzzy: 2},
		FailureCounts:     map[FailureReason]int{},
	}

	a.Merge(b)

	assert.Equal(t, 6, a.Total)
	assert.Equal(t, 4, a.Matched)
	assert.InDelta(t, 4.0/6.0, a.MatchRate, 1e-9)
	assert.InDelta(t, 0.9, a.AverageConfidence, 1e-9)
	assert.Equal(t, 2, a.TierCounts[TierExact])
	assert.Equal(t, 2, a.TierCounts[TierFuzzy])
	assert.Equal(t, 2, a.FailureCounts[FailureNoMatchResult])
}

// TestSnapshot_MergeIntoZero tests merging into a zero-value snapshot, the
// state a run report starts from.
func TestSnapshot_MergeIntoZero(t *testing.T) {
	var total Snapshot
	total.Merge(Snapshot{
		Total:             3,
		Matched:           1,
		MatchRate:         1.0 / 3.0,
		AverageConfidence: 0.95,
		TierCounts:        map[string]int{TierAccelerated: 1},
		FailureCounts:     map[FailureReason]int{FailureNoVehicleData: 2},
	})

	assert.Equal(t, 3, total.Total)
	assert.Equal(t, 1, total.Matched)
	assert.InDelta(t, 0.95, total.AverageConfidence, 1e-9)
	assert.Equal(t, 1, total.TierCounts[TierAccelerated])
	assert.Equal(t, 2, total.FailureCounts[FailureNoVehicleData])
}
