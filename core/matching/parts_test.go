package matching_test

import (
	"context"
	"testing"

	"shop-transformer/core/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPartsMatcher_ExactTier(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{Title: "OIL FILTER"})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierExact, r.Tier)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, []string{matching.TierExact}, r.AttemptedTiers)
	assert.Equal(t, 5550, r.Primary.PartID)
	assert.Equal(t, "Oil Filter", r.Primary.Name)
	assert.Equal(t, "Engine Oil Filter", r.Primary.Description)
}

func TestPartsMatcher_FuzzyTier(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{Title: "Oil Fitler"})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierFuzzy, r.Tier)
	assert.GreaterOrEqual(t, r.Confidence, 0.8)
	assert.Less(t, r.Confidence, 1.0)
	assert.Equal(t, 5550, r.Primary.PartID)
}

func TestPartsMatcher_DescriptionTier(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{Title: "Engine Oil Filter"})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierDescription, r.Tier)
	assert.Equal(t, 0.9, r.Confidence)
	assert.Equal(t, 5550, r.Primary.PartID)
	assert.Equal(t, 1, r.Primary.DescriptionID)
	assert.Contains(t, r.AttemptedTiers, matching.TierFuzzy)
}

func TestPartsMatcher_DescriptionTierFromDescriptionField(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{
		Title:       "Belt",
		Description: "Accessory Drive Belt",
	})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierDescription, r.Tier)
	assert.Equal(t, 7100, r.Primary.PartID)
}

func TestPartsMatcher_KeywordTier(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{Title: "Disc Brake Pad"})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierKeyword, r.Tier)
	// Full token overlap: confidence is the 0.9 ceiling for this tier.
	assert.InDelta(t, 0.9, r.Confidence, 1e-9)
	assert.Equal(t, 6710, r.Primary.PartID)
	assert.Equal(t,
		[]string{matching.TierExact, matching.TierFuzzy, matching.TierDescription, matching.TierKeyword},
		r.AttemptedTiers)
}

func TestPartsMatcher_AttributeTier(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{
		Title:      "Mystery Component",
		ShopNumber: "PH3614",
	})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierAttribute, r.Tier)
	assert.Equal(t, 0.95, r.Confidence)
	assert.Equal(t, 5550, r.Primary.PartID)
	assert.Contains(t, r.AttemptedTiers, matching.TierKeyword)
}

func TestPartsMatcher_VendorNumberFallback(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{
		Title:        "Mystery Component",
		VendorNumber: "ph3614",
	})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierAttribute, r.Tier)
	assert.Equal(t, 5550, r.Primary.PartID)
}

func TestPartsMatcher_NoPartData(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{})

	require.False(t, r.Matched)
	assert.Equal(t, matching.FailureNoPartData, r.FailureReason)
	assert.Empty(t, r.AttemptedTiers)
}

func TestPartsMatcher_NoKeywordMatch(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{Title: "Flux Capacitor"})

	require.False(t, r.Matched)
	assert.Equal(t, matching.FailureNoKeywordMatch, r.FailureReason)
	assert.Contains(t, r.AttemptedTiers, matching.TierKeyword)
}

func TestPartsMatcher_NoMatchResult(t *testing.T) {
	m := matching.NewPartsMatcher(testIndex(t), matching.Config{}, zap.NewNop())

	// Partial token overlap below the acceptance ratio: the keyword tier
	// saw candidates, so the failure is NO_MATCH_RESULT.
	r := m.Match(context.Background(), matching.PartDescriptor{
		Title: "Front Disc Brake Pads Premium Ceramic Kit",
	})

	require.False(t, r.Matched)
	assert.Equal(t, matching.FailureNoMatchResult, r.FailureReason)
}

func TestPartsMatcher_PanicRecovered(t *testing.T) {
	m := matching.NewPartsMatcher(nil, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.PartDescriptor{Title: "Oil Filter"})

	require.False(t, r.Matched)
	assert.Equal(t, matching.FailureException, r.FailureReason)
	assert.NotEmpty(t, r.FailureDetails)
}
