package catalog_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"shop-transformer/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mapSource serves catalog files from memory.
type mapSource map[string]string

func (s mapSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	content, ok := s[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func testDrop() mapSource {
	return mapSource{
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
}

func TestLoad(t *testing.T) {
	idx, err := catalog.Load(context.Background(), testDrop(), zap.NewNop())
	require.NoError(t, err)

	t.Run("MakeByName", func(t *testing.T) {
		m, ok := idx.MakeByName("FORD")
		require.True(t, ok)
		assert.Equal(t, 54, m.ID)
		assert.Equal(t, "Ford", m.Name)

		_, ok = idx.MakeByName("studebaker")
		assert.False(t, ok)
	})

	t.Run("MakeByAlias", func(t *testing.T) {
		m, ok := idx.MakeByAlias("Chevy")
		require.True(t, ok)
		assert.Equal(t, 47, m.ID)

		// Builtin table still applies when the drop doesn't override it.
		_, ok = idx.MakeByAlias("VW")
		assert.False(t, ok, "alias without a catalog make must not resolve")
	})

	t.Run("ModelsByName", func(t *testing.T) {
		models := idx.ModelsByName("f-150")
		require.Len(t, models, 1)
		assert.Equal(t, 1032, models[0].ID)
	})

	t.Run("BaseVehicleYearCoverage", func(t *testing.T) {
		b, ok := idx.BaseVehicle(54, 1032, 2018)
		require.True(t, ok)
		assert.Equal(t, 18001, b.ID)

		_, ok = idx.BaseVehicle(54, 1032, 2013)
		assert.False(t, ok, "year before production range")

		_, ok = idx.BaseVehicle(54, 1032, 2021)
		assert.False(t, ok, "year after production range")
	})

	t.Run("ModelsForMake", func(t *testing.T) {
		models := idx.ModelsForMake(54)
		require.Len(t, models, 1)
		assert.Equal(t, "F-150", models[0].Name)
	})

	t.Run("Submodels", func(t *testing.T) {
		subs := idx.SubmodelsForBase(18001)
		require.Len(t, subs, 2)
		// Sorted by name for deterministic output.
		assert.Equal(t, "Lariat", subs[0].Name)
		assert.Equal(t, "XLT", subs[1].Name)
	})

	t.Run("VehicleKey", func(t *testing.T) {
		id, ok := idx.VehicleKey("ford", "F 150", 2018)
		require.True(t, ok)
		assert.Equal(t, 18001, id)

		_, ok = idx.VehicleKey("ford", "f 150", 1999)
		assert.False(t, ok)
	})

	t.Run("PartByName", func(t *testing.T) {
		p, ok := idx.PartByName("oil filter")
		require.True(t, ok)
		assert.Equal(t, 5550, p.ID)
	})

	t.Run("PartsByKeyword", func(t *testing.T) {
		ids := idx.PartsByKeyword("brake")
		assert.Equal(t, []int{6710}, ids)

		// Description tokens feed the same index.
		ids = idx.PartsByKeyword("disc brake")
		assert.Equal(t, []int{6710}, ids)
	})

	t.Run("PartByNumber", func(t *testing.T) {
		p, ok := idx.PartByNumber("ph3614")
		require.True(t, ok)
		assert.Equal(t, 5550, p.ID)
	})

	t.Run("DescriptionByText", func(t *testing.T) {
		d, ok := idx.DescriptionByText("engine oil filter")
		require.True(t, ok)
		assert.Equal(t, 5550, d.PartID)
	})

	t.Run("Stats", func(t *testing.T) {
		stats := idx.Stats()
		assert.Equal(t, 3, stats.Makes)
		assert.Equal(t, 3, stats.Models)
		assert.Equal(t, 7, stats.Years)
		assert.Equal(t, 3, stats.BaseVehicles)
		assert.Equal(t, 2, stats.Submodels)
		assert.Equal(t, 1, stats.VehicleKeys)
		assert.Equal(t, 3, stats.Parts)
		assert.Equal(t, 3, stats.PartDescriptions)
		assert.Equal(t, 1, stats.PartNumbers)
	})
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	drop := testDrop()
	delete(drop, catalog.FileBaseVehicle)

	_, err := catalog.Load(context.Background(), drop, zap.NewNop())
	require.Error(t, err)

	var loadErr *catalog.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, catalog.FileBaseVehicle, loadErr.File)
}

func TestLoad_CorruptRequiredFile(t *testing.T) {
	drop := testDrop()
	drop[catalog.FileMake] = "make_id\tmake_name\nnot-a-number\tFord\n"

	_, err := catalog.Load(context.Background(), drop, zap.NewNop())
	require.Error(t, err)

	var loadErr *catalog.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, catalog.FileMake, loadErr.File)
}

func TestLoad_OptionalFileMissing(t *testing.T) {
	drop := testDrop()
	delete(drop, catalog.FileSubmodel)
	delete(drop, catalog.FileVehicleKeys)

	idx, err := catalog.Load(context.Background(), drop, zap.NewNop())
	require.NoError(t, err)

	assert.Empty(t, idx.SubmodelsForBase(18001))
	_, ok := idx.VehicleKey("ford", "f 150", 2018)
	assert.False(t, ok)
}

func TestLoad_OptionalFileCorrupt(t *testing.T) {
	drop := testDrop()
	drop[catalog.FileSubmodel] = "submodel_id\tbase_vehicle_id\tsubmodel_name\n" +
		"301\t18001\tXLT\n" +
		"broken\t18001\tLariat\n"

	idx, err := catalog.Load(context.Background(), drop, zap.NewNop())
	require.NoError(t, err)

	// The half-parsed dimension is dropped entirely.
	assert.Empty(t, idx.SubmodelsForBase(18001))
}

func TestStore(t *testing.T) {
	store := catalog.NewStore(testDrop(), zap.NewNop())
	assert.True(t, store.LoadedAt().IsZero())

	idx, err := store.Index(context.Background())
	require.NoError(t, err)
	require.NotNil(t, idx)
	assert.False(t, store.LoadedAt().IsZero())

	// Second call returns the already loaded index.
	again, err := store.Index(context.Background())
	require.NoError(t, err)
	assert.Same(t, idx, again)

	// Reload swaps in a fresh index.
	fresh, err := store.Reload(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, idx, fresh)
}
