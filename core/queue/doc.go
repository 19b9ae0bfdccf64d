// Package queue provides a FIFO turnstile that serializes heavy per-entity
// work: any number of callers may line up, exactly one holds the turn at a
// time, and turns are granted strictly in arrival order.
//
// Callers obtain a Ticket with Enqueue, block on Wait until the turn is
// theirs, do their work, and Release. Wait is context-aware; a canceled
// waiter leaves the line without disturbing the order of everyone behind it.
//
// The queue exists because each entity's standardization loads a large
// per-entity cache. Running entities one at a time bounds memory; the queue
// makes the line observable (Snapshot reports the holder, waiting positions
// and wait times) instead of hiding it in a mutex.
package queue
