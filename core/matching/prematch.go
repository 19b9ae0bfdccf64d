package matching

import "context"

// VehiclePrematcher resolves a whole batch of descriptors through the
// accelerated key table in one pass, before the per-record tier walk runs.
// Only complete descriptors with a key-table hit come back; everything else
// is left for the full matcher.
type VehiclePrematcher struct {
	m *VehicleMatcher
}

// NewVehiclePrematcher wraps a vehicle matcher's accelerated tier as a
// batch operation.
func NewVehiclePrematcher(m *VehicleMatcher) *VehiclePrematcher {
	return &VehiclePrematcher{m: m}
}

// PrematchBatch resolves every descriptor it can through the key table,
// keyed by record id. Descriptors it cannot resolve are simply absent from
// the returned map.
func (p *VehiclePrematcher) PrematchBatch(ctx context.Context, items map[int]VehicleDescriptor) (map[int]Result[CanonicalVehicle], error) {
	if p.m.oracle == nil {
		return nil, nil
	}

	out := make(map[int]Result[CanonicalVehicle], len(items))
	for id, d := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !d.Complete() {
			continue
		}
		baseID, ok := p.m.oracle.VehicleKey(d.Make, d.Model, d.Year)
		if !ok {
			continue
		}
		base, ok := p.m.idx.BaseVehicleByID(baseID)
		if !ok {
			continue
		}
		out[id] = NewMatched(p.m.canonical(base, d), TierAccelerated, 1.0, []string{TierAccelerated})
	}
	return out, nil
}

// PartsPrematcher resolves a batch of part descriptors by exact terminology
// name in one pass.
type PartsPrematcher struct {
	m *PartsMatcher
}

// NewPartsPrematcher wraps a parts matcher's exact tier as a batch
// operation.
func NewPartsPrematcher(m *PartsMatcher) *PartsPrematcher {
	return &PartsPrematcher{m: m}
}

// PrematchBatch resolves every title with an exact terminology hit, keyed
// by record id.
func (p *PartsPrematcher) PrematchBatch(ctx context.Context, items map[int]PartDescriptor) (map[int]Result[CanonicalPart], error) {
	out := make(map[int]Result[CanonicalPart], len(items))
	for id, d := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if d.Title == "" {
			continue
		}
		part, ok := p.m.idx.PartByName(d.Title)
		if !ok {
			continue
		}
		out[id] = NewMatched(p.m.canonical(part), TierExact, 1.0, []string{TierExact})
	}
	return out, nil
}
