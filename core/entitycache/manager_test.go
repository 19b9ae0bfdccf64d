package entitycache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type unitRow struct {
	ID int
}

// recordingFetch builds a FetchFunc that returns one row per requested id
// and records every chunk it was asked for.
func recordingFetch(chunks *[][]int, mu *sync.Mutex) FetchFunc[unitRow] {
	return func(ctx context.Context, ids []int) (map[int][]unitRow, error) {
		mu.Lock()
		*chunks = append(*chunks, append([]int(nil), ids...))
		mu.Unlock()
		out := make(map[int][]unitRow, len(ids))
		for _, id := range ids {
			out[id] = []unitRow{{ID: id}}
		}
		return out, nil
	}
}

// TestManager_Lifecycle tests the phase transitions from uninitialized
// through populated to cleared.
func TestManager_Lifecycle(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks [][]int
	)
	table := NewRows("units", recordingFetch(&chunks, &mu))
	mgr := NewManager(Config{}, zap.NewNop(), table)

	assert.Equal(t, PhaseUninitialized, mgr.Snapshot().Phase)

	mgr.Initialize(42, []int{1, 2, 3}, MethodBulk)
	snap := mgr.Snapshot()
	assert.Equal(t, PhasePopulating, snap.Phase)
	assert.Equal(t, 42, snap.EntityID)
	assert.Equal(t, MethodBulk, snap.Method)
	assert.Equal(t, 3, snap.TrackedIDs)
	assert.False(t, snap.Populated)

	require.NoError(t, mgr.BulkLoad(context.Background()))
	snap = mgr.Snapshot()
	assert.Equal(t, PhasePopulated, snap.Phase)
	assert.True(t, snap.Populated)

	mgr.Clear()
	snap = mgr.Snapshot()
	assert.Equal(t, PhaseCleared, snap.Phase)
	assert.False(t, snap.Populated)
	assert.Equal(t, 0, table.RowCount())
}

// TestManager_BulkLoadRequiresInitialize tests that BulkLoad refuses to run
// outside the populating phase.
func TestManager_BulkLoadRequiresInitialize(t *testing.T) {
	mgr := NewManager(Config{}, zap.NewNop())

	err := mgr.BulkLoad(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)

	mgr.Initialize(1, []int{1}, MethodBulk)
	require.NoError(t, mgr.BulkLoad(context.Background()))

	// A second bulk load on a populated cache is also refused.
	assert.ErrorIs(t, mgr.BulkLoad(context.Background()), ErrNotInitialized)
}

// TestManager_BulkLoadBatchesIDs tests that tracked ids are fetched in
// chunks bounded by Config.BatchSize.
func TestManager_BulkLoadBatchesIDs(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks [][]int
	)
	table := NewRows("units", recordingFetch(&chunks, &mu))
	mgr := NewManager(Config{BatchSize: 2}, zap.NewNop(), table)

	mgr.Initialize(1, []int{5, 1, 4, 2, 3}, MethodBulk)
	require.NoError(t, mgr.BulkLoad(context.Background()))

	require.Len(t, chunks, 3)
	assert.Equal(t, []int{1, 2}, chunks[0])
	assert.Equal(t, []int{3, 4}, chunks[1])
	assert.Equal(t, []int{5}, chunks[2])
	assert.Equal(t, 5, table.RowCount())
}

// TestManager_BulkLoadFansOutPerTable tests that every registered table is
// loaded and a failing table fails the whole load.
func TestManager_BulkLoadFansOutPerTable(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks [][]int
	)
	good := NewRows("notes", recordingFetch(&chunks, &mu))
	bad := NewRows("history", func(ctx context.Context, ids []int) (map[int][]unitRow, error) {
		return nil, errors.New("table gone")
	})
	mgr := NewManager(Config{}, zap.NewNop(), good, bad)

	mgr.Initialize(1, []int{1, 2}, MethodBulk)
	err := mgr.BulkLoad(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history")
	assert.Equal(t, PhasePopulating, mgr.Snapshot().Phase)
}

// TestManager_ValidateForIDs tests coverage reporting across the lifecycle:
// valid right after a bulk load, invalid for unknown ids, invalid for
// everything once cleared.
func TestManager_ValidateForIDs(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks [][]int
	)
	table := NewRows("units", recordingFetch(&chunks, &mu))
	mgr := NewManager(Config{}, zap.NewNop(), table)

	ok, missing := mgr.ValidateForIDs([]int{1, 2})
	assert.False(t, ok)
	assert.Equal(t, []int{1, 2}, missing)

	mgr.Initialize(9, []int{1, 2, 3}, MethodBulk)

	// Populating is not yet valid.
	ok, _ = mgr.ValidateForIDs([]int{1})
	assert.False(t, ok)

	require.NoError(t, mgr.BulkLoad(context.Background()))

	ok, missing = mgr.ValidateForIDs([]int{1, 2, 3})
	assert.True(t, ok)
	assert.Empty(t, missing)

	ok, missing = mgr.ValidateForIDs([]int{2, 4, 6})
	assert.False(t, ok)
	assert.Equal(t, []int{4, 6}, missing)

	mgr.Clear()
	ok, missing = mgr.ValidateForIDs([]int{1, 2, 3})
	assert.False(t, ok)
	assert.Equal(t, []int{1, 2, 3}, missing)
}

// TestManager_EnsureCachedFetchesOnlyMissing tests that the fallback path
// fetches just the uncovered ids and extends the tracked set.
func TestManager_EnsureCachedFetchesOnlyMissing(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks [][]int
	)
	table := NewRows("units", recordingFetch(&chunks, &mu))
	mgr := NewManager(Config{}, zap.NewNop(), table)

	mgr.Initialize(7, []int{1, 2}, MethodBulk)
	require.NoError(t, mgr.BulkLoad(context.Background()))

	mu.Lock()
	chunks = nil
	mu.Unlock()

	require.NoError(t, mgr.EnsureCached(context.Background(), []int{2, 3}))

	require.Len(t, chunks, 1)
	assert.Equal(t, []int{3}, chunks[0])

	snap := mgr.Snapshot()
	assert.Equal(t, MethodFallback, snap.Method)
	assert.Equal(t, 3, snap.TrackedIDs)

	ok, _ := mgr.ValidateForIDs([]int{1, 2, 3})
	assert.True(t, ok)

	// Fully covered ids are a no-op.
	require.NoError(t, mgr.EnsureCached(context.Background(), []int{1, 3}))
	assert.Len(t, chunks, 1)
}

// TestManager_EnsureCachedWithoutBulkLoad tests the fallback-only flow:
// Initialize then fetch on demand, no bulk load in between.
func TestManager_EnsureCachedWithoutBulkLoad(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks [][]int
	)
	table := NewRows("units", recordingFetch(&chunks, &mu))
	mgr := NewManager(Config{}, zap.NewNop(), table)

	mgr.Initialize(7, nil, MethodFallback)
	require.NoError(t, mgr.EnsureCached(context.Background(), []int{4, 5, 4}))

	require.Len(t, chunks, 1)
	assert.Equal(t, []int{4, 5}, chunks[0])

	snap := mgr.Snapshot()
	assert.Equal(t, PhasePopulated, snap.Phase)
	assert.Equal(t, MethodFallback, snap.Method)

	ok, _ := mgr.ValidateForIDs([]int{4, 5})
	assert.True(t, ok)
}

// TestManager_EnsureCachedReportsFallbackError tests that a failed fallback
// fetch escalates with the unresolved ids instead of leaving silent gaps.
func TestManager_EnsureCachedReportsFallbackError(t *testing.T) {
	table := NewRows("units", func(ctx context.Context, ids []int) (map[int][]unitRow, error) {
		return nil, errors.New("timeout")
	})
	mgr := NewManager(Config{}, zap.NewNop(), table)

	mgr.Initialize(11, nil, MethodFallback)
	err := mgr.EnsureCached(context.Background(), []int{8, 9})

	var fbErr *FallbackError
	require.ErrorAs(t, err, &fbErr)
	assert.Equal(t, 11, fbErr.EntityID)
	assert.Equal(t, []int{8, 9}, fbErr.IDs)

	// The failed ids do not become tracked.
	ok, missing := mgr.ValidateForIDs([]int{8})
	assert.False(t, ok)
	assert.Equal(t, []int{8}, missing)
}

// TestManager_EnsureCachedRequiresInitialize tests that the fallback path
// refuses uninitialized and cleared caches.
func TestManager_EnsureCachedRequiresInitialize(t *testing.T) {
	mgr := NewManager(Config{}, zap.NewNop())

	assert.ErrorIs(t, mgr.EnsureCached(context.Background(), []int{1}), ErrNotInitialized)

	mgr.Initialize(1, []int{1}, MethodBulk)
	require.NoError(t, mgr.BulkLoad(context.Background()))
	mgr.Clear()

	assert.ErrorIs(t, mgr.EnsureCached(context.Background(), []int{1}), ErrNotInitialized)
}

// TestManager_CheckConsistency tests that rows held for untracked parents
// are reported as diagnostics.
func TestManager_CheckConsistency(t *testing.T) {
	// The fetch returns rows for an id that was never requested, simulating
	// a sloppy join.
	table := NewRows("notes", func(ctx context.Context, ids []int) (map[int][]unitRow, error) {
		out := map[int][]unitRow{99: {{ID: 99}}}
		for _, id := range ids {
			out[id] = []unitRow{{ID: id}}
		}
		return out, nil
	})
	mgr := NewManager(Config{}, zap.NewNop(), table)

	assert.Nil(t, mgr.CheckConsistency())

	mgr.Initialize(3, []int{1, 2}, MethodBulk)
	require.NoError(t, mgr.BulkLoad(context.Background()))

	issues := mgr.CheckConsistency()
	require.NotEmpty(t, issues)
	assert.Equal(t, "notes", issues[0].Table)
	assert.Contains(t, issues[0].Detail, "not tracked")

	// A consistent cache reports nothing.
	clean := NewRows("notes", func(ctx context.Context, ids []int) (map[int][]unitRow, error) {
		out := make(map[int][]unitRow, len(ids))
		for _, id := range ids {
			out[id] = []unitRow{{ID: id}}
		}
		return out, nil
	})
	mgr2 := NewManager(Config{}, zap.NewNop(), clean)
	mgr2.Initialize(3, []int{1, 2}, MethodBulk)
	require.NoError(t, mgr2.BulkLoad(context.Background()))
	assert.Empty(t, mgr2.CheckConsistency())
}

// TestManager_ClearIsIdempotent tests that Clear can run on any phase
// without side effects beyond dropping rows.
func TestManager_ClearIsIdempotent(t *testing.T) {
	table := NewRows("units", func(ctx context.Context, ids []int) (map[int][]unitRow, error) {
		return nil, nil
	})
	mgr := NewManager(Config{}, zap.NewNop(), table)

	mgr.Clear()
	assert.Equal(t, PhaseUninitialized, mgr.Snapshot().Phase)

	mgr.Initialize(5, []int{1}, MethodBulk)
	mgr.Clear()
	mgr.Clear()
	snap := mgr.Snapshot()
	assert.Equal(t, PhaseCleared, snap.Phase)
	assert.Equal(t, 5, snap.EntityID)
	assert.Equal(t, 0, snap.TrackedIDs)
}

// TestConfig_Defaults tests the batch size fallback.
func TestConfig_Defaults(t *testing.T) {
	assert.Equal(t, 1000, Config{}.withDefaults().BatchSize)
	assert.Equal(t, 1000, Config{BatchSize: -5}.withDefaults().BatchSize)
	assert.Equal(t, 250, Config{BatchSize: 250}.withDefaults().BatchSize)
}
