package matching_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"shop-transformer/core/catalog"
	"shop-transformer/core/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapSource map[string]string

func (s mapSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	content, ok := s[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// testIndex loads a small but complete catalog drop.
func testIndex(t *testing.T) *catalog.Index {
	t.Helper()

	src := mapSource{
		catalog.FileMake:  "make_id\tmake_name\n54\tFord\n47\tChevrolet\n76\tToyota\n",
		catalog.FileModel: "model_id\tmodel_name\n1032\tF-150\n884\tSilverado 1500\n2202\tCamry\n",
		catalog.FileYear:  "year_id\tyear\n1\t2014\n2\t2015\n3\t2016\n4\t2017\n5\t2018\n6\t2019\n7\t2020\n",
		catalog.FileBaseVehicle: "base_vehicle_id\tmake_id\tmodel_id\tyear_from\tyear_to\n" +
			"18001\t54\t1032\t2015\t2020\n" +
			"18002\t47\t884\t2014\t2018\n" +
			"18003\t76\t2202\t2018\t2024\n",
		catalog.FileParts: "part_id\tpart_name\n5550\tOil Filter\n6710\tBrake Pad Set\n7100\tSerpentine Belt\n",
		catalog.FilePartsDescription: "description_id\tpart_id\tdescription\n" +
			"1\t5550\tEngine Oil Filter\n" +
			"2\t6710\tDisc Brake Pad Set\n" +
			"3\t7100\tAccessory Drive Belt\n",
		catalog.FileSubmodel:    "submodel_id\tbase_vehicle_id\tsubmodel_name\n301\t18001\tXLT\n302\t18001\tLariat\n",
		catalog.FileVehicleKeys: "vehicle_key\tbase_vehicle_id\nFord|F-150|2018\t18001\n",
		catalog.FileMakeAliases: "alias\tmake_name\nchevy\tChevrolet\n",
		catalog.FilePartNumbers: "part_number\tpart_id\nPH3614\t5550\n",
	}

	idx, err := catalog.Load(context.Background(), src, zap.NewNop())
	require.NoError(t, err)
	return idx
}

func TestVehicleMatcher_AcceleratedTier(t *testing.T) {
	idx := testIndex(t)
	m := matching.NewVehicleMatcher(idx, idx, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.VehicleDescriptor{
		Make: "Ford", Model: "F-150", Year: 2018,
	})

	require.True(t, r.Matched)
	require.NotNil(t, r.Primary)
	assert.Equal(t, matching.TierAccelerated, r.Tier)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, []string{matching.TierAccelerated}, r.AttemptedTiers)
	assert.Equal(t, 18001, r.Primary.BaseVehicleID)
	assert.Equal(t, "Ford", r.Primary.MakeName)
	assert.Equal(t, "F-150", r.Primary.ModelName)
	assert.Equal(t, 2018, r.Primary.Year)
	assert.Empty(t, r.FailureReason)
}

func TestVehicleMatcher_ExactTier(t *testing.T) {
	idx := testIndex(t)
	// No oracle: the accelerated tier is skipped entirely.
	m := matching.NewVehicleMatcher(idx, nil, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.VehicleDescriptor{
		Make: "chevrolet", Model: "SILVERADO 1500", Year: 2016,
	})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierExact, r.Tier)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, []string{matching.TierExact}, r.AttemptedTiers)
	assert.Equal(t, 18002, r.Primary.BaseVehicleID)
}

func TestVehicleMatcher_ExactTierSubmodel(t *testing.T) {
	idx := testIndex(t)
	m := matching.NewVehicleMatcher(idx, nil, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.VehicleDescriptor{
		Make: "Ford", Model: "F-150", Year: 2019, Submodel: "xlt",
	})

	require.True(t, r.Matched)
	assert.Equal(t, 301, r.Primary.SubmodelID)
	assert.Equal(t, "XLT", r.Primary.SubmodelName)

	// The other submodel of the base shows up as an alternative.
	require.Len(t, r.Alternatives, 1)
	assert.Equal(t, "Lariat", r.Alternatives[0].SubmodelName)
	assert.True(t, r.Alternatives[0].IsAlternative)
}

func TestVehicleMatcher_AliasTier(t *testing.T) {
	idx := testIndex(t)
	m := matching.NewVehicleMatcher(idx, idx, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.VehicleDescriptor{
		Make: "Chevy", Model: "Silverado 1500", Year: 2015,
	})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierAlias, r.Tier)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t,
		[]string{matching.TierAccelerated, matching.TierExact, matching.TierAlias},
		r.AttemptedTiers)
	assert.Equal(t, 18002, r.Primary.BaseVehicleID)
}

func TestVehicleMatcher_FuzzyTier(t *testing.T) {
	idx := testIndex(t)
	m := matching.NewVehicleMatcher(idx, idx, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.VehicleDescriptor{
		Make: "Ford", Model: "F150", Year: 2018,
	})

	require.True(t, r.Matched)
	assert.Equal(t, matching.TierFuzzy, r.Tier)
	assert.GreaterOrEqual(t, r.Confidence, 0.8)
	assert.Less(t, r.Confidence, 1.0)
	assert.Equal(t,
		[]string{matching.TierAccelerated, matching.TierExact, matching.TierFuzzy},
		r.AttemptedTiers)
	assert.Equal(t, 18001, r.Primary.BaseVehicleID)
}

func TestVehicleMatcher_YearOutOfRange(t *testing.T) {
	idx := testIndex(t)
	m := matching.NewVehicleMatcher(idx, idx, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.VehicleDescriptor{
		Make: "Ford", Model: "F-150", Year: 2035,
	})

	require.False(t, r.Matched)
	assert.Nil(t, r.Primary)
	assert.Equal(t, matching.FailureNoMatchResult, r.FailureReason)
	assert.NotEmpty(t, r.AttemptedTiers)
}

func TestVehicleMatcher_Preconditions(t *testing.T) {
	idx := testIndex(t)
	m := matching.NewVehicleMatcher(idx, idx, matching.Config{}, zap.NewNop())

	tests := []struct {
		name string
		d    matching.VehicleDescriptor
		want matching.FailureReason
	}{
		{"NoData", matching.VehicleDescriptor{}, matching.FailureNoVehicleData},
		{"VINIncomplete", matching.VehicleDescriptor{VIN: "1FTFW1ET5DFC10312", Make: "Ford"}, matching.FailureVINDecodeFailed},
		{"MissingMake", matching.VehicleDescriptor{Model: "F-150", Year: 2018}, matching.FailureMissingMake},
		{"MissingModel", matching.VehicleDescriptor{Make: "Ford", Year: 2018}, matching.FailureMissingModel},
		{"MissingYear", matching.VehicleDescriptor{Make: "Ford", Model: "F-150"}, matching.FailureMissingYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := m.Match(context.Background(), tt.d)
			assert.False(t, r.Matched)
			assert.Equal(t, tt.want, r.FailureReason)
			// Precondition failures never attempt a tier.
			assert.Empty(t, r.AttemptedTiers)
		})
	}
}

func TestVehicleMatcher_AlternativesInvariants(t *testing.T) {
	idx := testIndex(t)
	m := matching.NewVehicleMatcher(idx, idx, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.VehicleDescriptor{
		Make: "Ford", Model: "F-150", Year: 2018,
	})
	require.True(t, r.Matched)

	seen := map[string]struct{}{r.Primary.Key(): {}}
	for _, alt := range r.Alternatives {
		_, dup := seen[alt.Key()]
		assert.False(t, dup, "alternative %s duplicates the primary or another alternative", alt.Key())
		seen[alt.Key()] = struct{}{}
		assert.True(t, alt.IsAlternative)
	}
}

func TestVehicleMatcher_PanicRecovered(t *testing.T) {
	// A nil index makes the first lookup panic; the matcher must turn that
	// into an EXCEPTION_ERROR result instead of crashing the batch.
	m := matching.NewVehicleMatcher(nil, nil, matching.Config{}, zap.NewNop())

	r := m.Match(context.Background(), matching.VehicleDescriptor{
		Make: "Ford", Model: "F-150", Year: 2018,
	})

	require.False(t, r.Matched)
	assert.Equal(t, matching.FailureException, r.FailureReason)
	assert.NotEmpty(t, r.FailureDetails)
}

func TestVehicleMatcher_Deterministic(t *testing.T) {
	idx := testIndex(t)
	m := matching.NewVehicleMatcher(idx, idx, matching.Config{}, zap.NewNop())

	d := matching.VehicleDescriptor{Make: "Ford", Model: "F150", Year: 2018, Submodel: "XLT"}
	first := m.Match(context.Background(), d)
	second := m.Match(context.Background(), d)

	assert.Equal(t, first, second)
}
