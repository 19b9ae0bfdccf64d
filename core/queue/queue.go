package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrClosed is returned when enqueueing on, or waiting in, a closed queue.
var ErrClosed = errors.New("queue is closed")

// Queue is a FIFO turnstile with a single holder. The zero value is not
// usable; create one with New.
type Queue struct {
	mu      sync.Mutex
	logger  *zap.Logger
	waiting []*Ticket
	holder  *Ticket
	closed  bool
	nextID  uint64

	totalGranted   uint64
	totalAbandoned uint64
}

// New creates an open queue.
func New(logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{logger: logger}
}

// Ticket is one caller's place in line. A ticket is granted exactly once;
// after Release or an abandoned Wait it is spent.
type Ticket struct {
	id   uint64
	name string
	q    *Queue

	grant    chan struct{}
	err      error
	enqueued time.Time
	granted  time.Time
	spent    bool
}

// Enqueue joins the line under a display name and returns the ticket. When
// nobody holds the turn the ticket is granted immediately and Wait will not
// block.
func (q *Queue) Enqueue(name string) (*Ticket, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrClosed
	}

	q.nextID++
	t := &Ticket{
		id:       q.nextID,
		name:     name,
		q:        q,
		grant:    make(chan struct{}),
		enqueued: time.Now(),
	}

	if q.holder == nil {
		q.grantLocked(t)
	} else {
		q.waiting = append(q.waiting, t)
		q.logger.Debug("queued behind holder",
			zap.String("name", name),
			zap.Int("position", len(q.waiting)))
	}
	return t, nil
}

// Wait blocks until the ticket is granted, the queue is closed, or ctx is
// done. On cancellation the ticket leaves the line; if the grant raced the
// cancellation, the turn is passed on before returning.
func (t *Ticket) Wait(ctx context.Context) error {
	select {
	case <-t.grant:
		return t.err
	case <-ctx.Done():
		t.q.abandon(t)
		return ctx.Err()
	}
}

// Release gives the turn up and grants the next ticket in line. Releasing a
// ticket that never held the turn removes it from the line; releasing twice
// is a no-op.
func (t *Ticket) Release() {
	q := t.q
	q.mu.Lock()
	defer q.mu.Unlock()

	if t.spent {
		return
	}
	t.spent = true

	if q.holder == t {
		q.holder = nil
		q.promoteLocked()
		return
	}
	q.removeWaitingLocked(t)
}

// Position reports where the ticket stands: 0 while holding the turn,
// 1-based place in line while waiting, -1 once spent.
func (t *Ticket) Position() int {
	q := t.q
	q.mu.Lock()
	defer q.mu.Unlock()

	if t.spent {
		return -1
	}
	if q.holder == t {
		return 0
	}
	for i, w := range q.waiting {
		if w == t {
			return i + 1
		}
	}
	return -1
}

// Waited reports how long the ticket spent in line; for a ticket still
// waiting, the time spent so far.
func (t *Ticket) Waited() time.Duration {
	q := t.q
	q.mu.Lock()
	defer q.mu.Unlock()

	if t.granted.IsZero() {
		return time.Since(t.enqueued)
	}
	return t.granted.Sub(t.enqueued)
}

// Depth is the number of tickets waiting behind the holder.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

// Close rejects future Enqueue calls and fails every waiting ticket with
// ErrClosed. The current holder keeps its turn and may still Release.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	for _, w := range q.waiting {
		w.err = ErrClosed
		w.spent = true
		close(w.grant)
	}
	q.waiting = nil
	q.logger.Debug("queue closed")
}

// TicketInfo is the observable state of one ticket.
type TicketInfo struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	WaitedMS int64  `json:"waited_ms"`
}

// Snapshot is a point-in-time view of the line.
type Snapshot struct {
	Open           bool         `json:"open"`
	Holder         *TicketInfo  `json:"holder,omitempty"`
	Waiting        []TicketInfo `json:"waiting"`
	Depth          int          `json:"depth"`
	TotalGranted   uint64       `json:"total_granted"`
	TotalAbandoned uint64       `json:"total_abandoned"`
}

// Snapshot returns the current line: holder, waiting tickets in order, and
// lifetime counters.
func (q *Queue) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	snap := Snapshot{
		Open:           !q.closed,
		Depth:          len(q.waiting),
		Waiting:        make([]TicketInfo, 0, len(q.waiting)),
		TotalGranted:   q.totalGranted,
		TotalAbandoned: q.totalAbandoned,
	}
	if q.holder != nil {
		snap.Holder = &TicketInfo{
			Name:     q.holder.name,
			Position: 0,
			WaitedMS: q.holder.granted.Sub(q.holder.enqueued).Milliseconds(),
		}
	}
	for i, w := range q.waiting {
		snap.Waiting = append(snap.Waiting, TicketInfo{
			Name:     w.name,
			Position: i + 1,
			WaitedMS: now.Sub(w.enqueued).Milliseconds(),
		})
	}
	return snap
}

// abandon handles a canceled Wait. If the grant won the race the turn is
// released so the line keeps moving.
func (q *Queue) abandon(t *Ticket) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t.spent {
		return
	}
	t.spent = true
	q.totalAbandoned++

	if q.holder == t {
		q.holder = nil
		q.promoteLocked()
		return
	}
	q.removeWaitingLocked(t)
	q.logger.Debug("ticket abandoned",
		zap.String("name", t.name),
		zap.Duration("waited", time.Since(t.enqueued)))
}

func (q *Queue) grantLocked(t *Ticket) {
	q.holder = t
	t.granted = time.Now()
	q.totalGranted++
	close(t.grant)
	q.logger.Debug("turn granted",
		zap.String("name", t.name),
		zap.Duration("waited", t.granted.Sub(t.enqueued)))
}

func (q *Queue) promoteLocked() {
	if len(q.waiting) == 0 {
		return
	}
	next := q.waiting[0]
	q.waiting = q.waiting[1:]
	q.grantLocked(next)
}

func (q *Queue) removeWaitingLocked(t *Ticket) {
	for i, w := range q.waiting {
		if w == t {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return
		}
	}
}
