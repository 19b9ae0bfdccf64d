package entitycache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Method records how a cache got populated.
type Method string

const (
	MethodPreload  Method = "preload"
	MethodBulk     Method = "bulk"
	MethodFallback Method = "fallback"
)

// Phase is the lifecycle position of the per-entity cache.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhasePopulating    Phase = "populating"
	PhasePopulated     Phase = "populated"
	PhaseCleared       Phase = "cleared"
)

// ErrNotInitialized is returned when a load or fallback is attempted before
// Initialize.
var ErrNotInitialized = errors.New("entity cache is not initialized")

// FallbackError reports a fallback fetch that itself failed, leaving the
// named ids unobtainable. It escalates to the caller; the cache never
// pretends to hold data it could not fetch.
type FallbackError struct {
	EntityID int
	IDs      []int
	Err      error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("entity %d: fallback fetch failed for %d ids %v: %v",
		e.EntityID, len(e.IDs), e.IDs, e.Err)
}

func (e *FallbackError) Unwrap() error { return e.Err }

// Issue is one consistency finding, diagnostic only.
type Issue struct {
	Table  string `json:"table"`
	Detail string `json:"detail"`
}

// state is the per-entity bookkeeping the manager owns between Initialize
// and Clear.
type state struct {
	entityID    int
	phase       Phase
	method      Method
	tracked     map[int]struct{}
	lastUpdated time.Time
}

// Snapshot is the externally visible view of the cache state.
type Snapshot struct {
	EntityID    int       `json:"entity_id"`
	Phase       Phase     `json:"phase"`
	Populated   bool      `json:"populated"`
	Method      Method    `json:"method,omitempty"`
	TrackedIDs  int       `json:"tracked_ids"`
	LastUpdated time.Time `json:"last_updated"`
}

// Manager owns the per-entity cache: the registered child tables plus the
// tracking state. One Manager serves exactly one entity at a time; Clear
// returns it to uninitialized for reuse or disposal.
//
// The Manager is not safe for concurrent use. Per the processing model, one
// logical flow owns an entity end to end; only BulkLoad fans out internally.
type Manager struct {
	cfg    Config
	logger *zap.Logger
	tables []Table
	st     *state
}

// NewManager creates a manager over the given child tables.
func NewManager(cfg Config, logger *zap.Logger, tables ...Table) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{cfg: cfg.withDefaults(), logger: logger, tables: tables}
}

// Initialize starts a fresh cache for one entity. Any previous state is
// discarded; the cache is Populating and not yet valid for any id.
func (m *Manager) Initialize(entityID int, ids []int, method Method) {
	tracked := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		tracked[id] = struct{}{}
	}
	for _, t := range m.tables {
		t.Reset()
	}
	m.st = &state{
		entityID:    entityID,
		phase:       PhasePopulating,
		method:      method,
		tracked:     tracked,
		lastUpdated: time.Now(),
	}
	m.logger.Debug("entity cache initialized",
		zap.Int("entity_id", entityID),
		zap.Int("ids", len(ids)),
		zap.String("method", string(method)))
}

// BulkLoad fetches every registered table for the tracked ids. Tables load
// concurrently; within a table, ids are fetched in batches of
// Config.BatchSize. On success the cache is Populated.
func (m *Manager) BulkLoad(ctx context.Context) error {
	if m.st == nil || m.st.phase != PhasePopulating {
		return ErrNotInitialized
	}

	ids := m.trackedIDs()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range m.tables {
		t := t
		g.Go(func() error {
			for _, chunk := range chunkIDs(ids, m.cfg.BatchSize) {
				if err := t.Load(gctx, chunk); err != nil {
					return fmt.Errorf("load %s: %w", t.Name(), err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.st.phase = PhasePopulated
	m.st.lastUpdated = time.Now()

	rows := 0
	for _, t := range m.tables {
		rows += t.RowCount()
	}
	m.logger.Debug("entity cache populated",
		zap.Int("entity_id", m.st.entityID),
		zap.Int("ids", len(ids)),
		zap.Int("tables", len(m.tables)),
		zap.Int("rows", rows),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// ValidateForIDs reports whether every id is tracked by a populated cache,
// and which ids are missing when not.
func (m *Manager) ValidateForIDs(ids []int) (bool, []int) {
	if m.st == nil || m.st.phase != PhasePopulated {
		missing := make([]int, len(ids))
		copy(missing, ids)
		return false, missing
	}
	var missing []int
	for _, id := range ids {
		if _, ok := m.st.tracked[id]; !ok {
			missing = append(missing, id)
		}
	}
	return len(missing) == 0, missing
}

// EnsureCached guarantees the given ids are loaded, issuing a bounded
// direct fetch for any id the bulk load did not cover. Fetched ids join the
// tracked set and the population method becomes fallback. A failing
// fallback fetch returns a *FallbackError naming the unresolved ids.
func (m *Manager) EnsureCached(ctx context.Context, ids []int) error {
	if m.st == nil || m.st.phase == PhaseUninitialized || m.st.phase == PhaseCleared {
		return ErrNotInitialized
	}

	var missing []int
	if m.st.phase == PhasePopulating {
		// Nothing is loaded before BulkLoad; every requested id is a miss.
		missing = uniqueIDs(ids)
	} else {
		ok, miss := m.ValidateForIDs(ids)
		if ok {
			return nil
		}
		missing = miss
	}

	m.logger.Debug("entity cache fallback fetch",
		zap.Int("entity_id", m.st.entityID),
		zap.Int("missing", len(missing)))

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range m.tables {
		t := t
		g.Go(func() error {
			for _, chunk := range chunkIDs(missing, m.cfg.BatchSize) {
				if err := t.Load(gctx, chunk); err != nil {
					return fmt.Errorf("load %s: %w", t.Name(), err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &FallbackError{EntityID: m.st.entityID, IDs: missing, Err: err}
	}

	for _, id := range missing {
		m.st.tracked[id] = struct{}{}
	}
	m.st.phase = PhasePopulated
	m.st.method = MethodFallback
	m.st.lastUpdated = time.Now()
	return nil
}

// CheckConsistency compares the tracked id set against what the tables
// actually hold. Findings are diagnostics: a populated but inconsistent
// cache is still usable through EnsureCached, so nothing is raised here.
func (m *Manager) CheckConsistency() []Issue {
	if m.st == nil {
		return nil
	}

	var issues []Issue
	for _, t := range m.tables {
		parents := t.ParentIDs()
		orphans := 0
		for _, id := range parents {
			if _, ok := m.st.tracked[id]; !ok {
				orphans++
			}
		}
		if orphans > 0 {
			issues = append(issues, Issue{
				Table:  t.Name(),
				Detail: fmt.Sprintf("%d parent ids hold rows but are not tracked", orphans),
			})
		}
		if len(parents) > len(m.st.tracked) {
			issues = append(issues, Issue{
				Table: t.Name(),
				Detail: fmt.Sprintf("table holds %d parents while only %d ids are tracked",
					len(parents), len(m.st.tracked)),
			})
		}
	}
	return issues
}

// Clear drops every table and the per-entity state. It must run once per
// entity after processing, success or failure, to bound memory across a
// long run. Clearing an uninitialized manager is a no-op.
func (m *Manager) Clear() {
	for _, t := range m.tables {
		t.Reset()
	}
	if m.st == nil {
		return
	}
	m.logger.Debug("entity cache cleared", zap.Int("entity_id", m.st.entityID))
	m.st = &state{entityID: m.st.entityID, phase: PhaseCleared}
}

// Snapshot returns the current cache state for diagnostics.
func (m *Manager) Snapshot() Snapshot {
	if m.st == nil {
		return Snapshot{Phase: PhaseUninitialized}
	}
	return Snapshot{
		EntityID:    m.st.entityID,
		Phase:       m.st.phase,
		Populated:   m.st.phase == PhasePopulated,
		Method:      m.st.method,
		TrackedIDs:  len(m.st.tracked),
		LastUpdated: m.st.lastUpdated,
	}
}

func (m *Manager) trackedIDs() []int {
	ids := make([]int, 0, len(m.st.tracked))
	for id := range m.st.tracked {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// chunkIDs splits ids into batches of at most size.
func chunkIDs(ids []int, size int) [][]int {
	if len(ids) == 0 {
		return nil
	}
	chunks := make([][]int, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
