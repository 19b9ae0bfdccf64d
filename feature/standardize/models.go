package standardize

import (
	"time"

	"shop-transformer/core/matching"
	"shop-transformer/feature/shop"
)

// StandardizedUnit pairs a raw unit with its vehicle match.
type StandardizedUnit struct {
	Unit  shop.Unit                                  `json:"unit"`
	Match matching.Result[matching.CanonicalVehicle] `json:"match"`
}

// StandardizedPartLine pairs a raw part line with its terminology match.
type StandardizedPartLine struct {
	PartLine shop.PartLine                           `json:"part_line"`
	Match    matching.Result[matching.CanonicalPart] `json:"match"`
}

// CustomerOutput is the standardized record tree of one customer.
type CustomerOutput struct {
	Customer  shop.Customer          `json:"customer"`
	Addresses []shop.Address         `json:"addresses,omitempty"`
	Notes     []shop.Note            `json:"notes,omitempty"`
	History   []shop.ServiceHistory  `json:"history,omitempty"`
	Units     []StandardizedUnit     `json:"units,omitempty"`
	Parts     []StandardizedPartLine `json:"parts,omitempty"`
}

// EntityOutput is everything one entity's transformation produced, the
// object handed to the sink.
type EntityOutput struct {
	EntityID    int              `json:"entity_id"`
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Customers   []CustomerOutput `json:"customers"`
}

// EntityReport summarizes one entity's transformation for the run report.
type EntityReport struct {
	EntityID    int               `json:"entity_id"`
	Customers   int               `json:"customers"`
	Units       int               `json:"units"`
	PartLines   int               `json:"part_lines"`
	Vehicles    matching.Snapshot `json:"vehicles"`
	Parts       matching.Snapshot `json:"parts"`
	QueueWaitMS int64             `json:"queue_wait_ms"`
	ElapsedMS   int64             `json:"elapsed_ms"`
	Error       string            `json:"error,omitempty"`
}

// RunReport aggregates a whole transformation run.
type RunReport struct {
	RunID     string            `json:"run_id"`
	Entities  int               `json:"entities"`
	Failed    int               `json:"failed"`
	Vehicles  matching.Snapshot `json:"vehicles"`
	Parts     matching.Snapshot `json:"parts"`
	Reports   []EntityReport    `json:"reports"`
	StartedAt time.Time         `json:"started_at"`
	ElapsedMS int64             `json:"elapsed_ms"`
}
