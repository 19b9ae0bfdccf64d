package entitycache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRow struct {
	ID   int
	Text string
}

// TestRows_LoadAndGet tests that loaded rows are grouped and returned per
// parent id.
func TestRows_LoadAndGet(t *testing.T) {
	table := NewRows("notes", func(ctx context.Context, ids []int) (map[int][]noteRow, error) {
		out := make(map[int][]noteRow, len(ids))
		for _, id := range ids {
			out[id] = []noteRow{{ID: id, Text: "first"}, {ID: id, Text: "second"}}
		}
		return out, nil
	})

	require.NoError(t, table.Load(context.Background(), []int{7, 3}))

	assert.Equal(t, "notes", table.Name())
	assert.Len(t, table.Get(7), 2)
	assert.Len(t, table.Get(3), 2)
	assert.Nil(t, table.Get(99))
	assert.Equal(t, 4, table.RowCount())
	assert.Equal(t, []int{3, 7}, table.ParentIDs())
}

// TestRows_LoadOverwritesPerParent tests that reloading an id replaces its
// rows instead of appending duplicates.
func TestRows_LoadOverwritesPerParent(t *testing.T) {
	calls := 0
	table := NewRows("notes", func(ctx context.Context, ids []int) (map[int][]noteRow, error) {
		calls++
		out := make(map[int][]noteRow, len(ids))
		for _, id := range ids {
			out[id] = []noteRow{{ID: id, Text: "call"}}
		}
		return out, nil
	})

	require.NoError(t, table.Load(context.Background(), []int{1, 2}))
	require.NoError(t, table.Load(context.Background(), []int{2, 3}))

	assert.Equal(t, 2, calls)
	assert.Len(t, table.Get(2), 1)
	assert.Equal(t, 3, table.RowCount())
	assert.Equal(t, []int{1, 2, 3}, table.ParentIDs())
}

// TestRows_LoadError tests that a failing fetch surfaces and leaves prior
// rows untouched.
func TestRows_LoadError(t *testing.T) {
	fail := false
	table := NewRows("notes", func(ctx context.Context, ids []int) (map[int][]noteRow, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		return map[int][]noteRow{ids[0]: {{ID: ids[0]}}}, nil
	})

	require.NoError(t, table.Load(context.Background(), []int{1}))

	fail = true
	err := table.Load(context.Background(), []int{2})
	assert.Error(t, err)
	assert.Equal(t, 1, table.RowCount())
}

// TestRows_Reset tests that Reset drops every row.
func TestRows_Reset(t *testing.T) {
	table := NewRows("notes", func(ctx context.Context, ids []int) (map[int][]noteRow, error) {
		return map[int][]noteRow{ids[0]: {{ID: ids[0]}}}, nil
	})

	require.NoError(t, table.Load(context.Background(), []int{5}))
	require.Equal(t, 1, table.RowCount())

	table.Reset()

	assert.Equal(t, 0, table.RowCount())
	assert.Nil(t, table.Get(5))
	assert.Empty(t, table.ParentIDs())
}
