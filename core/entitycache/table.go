package entitycache

import (
	"context"
	"sort"
)

// FetchFunc loads the child rows of the given parent ids from the external
// data source, keyed by parent id. Parents without rows are simply absent
// from the map; that is not an error.
type FetchFunc[T any] func(ctx context.Context, ids []int) (map[int][]T, error)

// Table is one child-record table registered with a Manager. Implementations
// are usually Rows values bound to a repository fetcher.
type Table interface {
	// Name identifies the table in logs and consistency issues.
	Name() string
	// Load fetches the rows of the given parent ids and merges them in.
	Load(ctx context.Context, ids []int) error
	// ParentIDs returns the parent ids that currently hold at least one row.
	ParentIDs() []int
	// RowCount is the total number of rows held.
	RowCount() int
	// Reset drops every row.
	Reset()
}

// Rows is the generic Table implementation: parent id to loaded rows, with
// the same lifetime as the Manager's per-entity state. It is not safe for
// concurrent use; the Manager loads each table from a single goroutine.
type Rows[T any] struct {
	name  string
	fetch FetchFunc[T]
	rows  map[int][]T
}

// NewRows creates an empty table loading through fetch.
func NewRows[T any](name string, fetch FetchFunc[T]) *Rows[T] {
	return &Rows[T]{
		name:  name,
		fetch: fetch,
		rows:  make(map[int][]T),
	}
}

func (r *Rows[T]) Name() string { return r.name }

// Load fetches the rows of ids and merges them into the table. A parent id
// that is fetched again is overwritten, not duplicated.
func (r *Rows[T]) Load(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	fetched, err := r.fetch(ctx, ids)
	if err != nil {
		return err
	}
	for id, rows := range fetched {
		r.rows[id] = rows
	}
	return nil
}

// Get returns the cached rows of one parent id. Missing parents yield nil.
func (r *Rows[T]) Get(id int) []T {
	return r.rows[id]
}

// ParentIDs returns the parent ids holding rows, sorted.
func (r *Rows[T]) ParentIDs() []int {
	ids := make([]int, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// RowCount is the total number of rows across all parents.
func (r *Rows[T]) RowCount() int {
	n := 0
	for _, rows := range r.rows {
		n += len(rows)
	}
	return n
}

// Reset drops every row.
func (r *Rows[T]) Reset() {
	r.rows = make(map[int][]T)
}
