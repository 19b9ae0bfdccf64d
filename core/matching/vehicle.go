package matching

import (
	"context"
	"fmt"

	"shop-transformer/core/catalog"

	"go.uber.org/zap"
)

// VehicleMatcher resolves vehicle descriptors against the catalog index
// through tiered lookups: accelerated key table, exact name, alias-expanded
// name, then fuzzy model similarity. The first confident hit wins.
type VehicleMatcher struct {
	idx    *catalog.Index
	oracle Oracle
	cfg    Config
	logger *zap.Logger
}

// NewVehicleMatcher builds a matcher over the given index. oracle may be
// nil, which skips the accelerated tier.
func NewVehicleMatcher(idx *catalog.Index, oracle Oracle, cfg Config, logger *zap.Logger) *VehicleMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VehicleMatcher{idx: idx, oracle: oracle, cfg: cfg.withDefaults(), logger: logger}
}

// Match resolves one vehicle descriptor. It never returns an error: failures
// are data, carried in the result, and panics are recovered into an
// EXCEPTION_ERROR result so one bad record cannot abort a batch.
func (m *VehicleMatcher) Match(ctx context.Context, d VehicleDescriptor) (result Result[CanonicalVehicle]) {
	var attempted []string

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("vehicle match panicked",
				zap.Any("panic", r),
				zap.String("make", d.Make),
				zap.String("model", d.Model),
				zap.Int("year", d.Year))
			result = NewFailed[CanonicalVehicle](FailureException, fmt.Sprint(r), attempted)
		}
	}()

	if reason, details, failed := vehiclePrecondition(d); failed {
		return NewFailed[CanonicalVehicle](reason, details, nil)
	}

	// Tier 1: accelerated key table.
	if m.oracle != nil {
		attempted = append(attempted, TierAccelerated)
		if baseID, ok := m.oracle.VehicleKey(d.Make, d.Model, d.Year); ok {
			if base, ok := m.idx.BaseVehicleByID(baseID); ok {
				primary := m.canonical(base, d)
				r := NewMatched(primary, TierAccelerated, 1.0, attempted)
				r.AddAlternatives(m.cfg.MaxAlternatives, m.submodelVariants(base, d, primary.SubmodelID)...)
				return r
			}
		}
	}

	// Tier 2: exact normalized make and model.
	attempted = append(attempted, TierExact)
	mk, makeOK := m.idx.MakeByName(d.Make)
	if makeOK {
		if r, ok := m.exact(mk, d, TierExact, attempted); ok {
			return r
		}
	}

	// Tier 3: alias-expanded make, exact retried. Only worth trying when
	// the make itself did not resolve.
	if !makeOK {
		attempted = append(attempted, TierAlias)
		if aliased, ok := m.idx.MakeByAlias(d.Make); ok {
			mk, makeOK = aliased, true
			if r, ok := m.exact(mk, d, TierAlias, attempted); ok {
				return r
			}
		}
	}

	if !makeOK {
		return NewFailed[CanonicalVehicle](FailureNoMatchResult,
			fmt.Sprintf("make %q is not in the catalog", d.Make), attempted)
	}

	// Tier 4: fuzzy model similarity within the resolved make.
	attempted = append(attempted, TierFuzzy)
	if r, ok := m.fuzzy(mk, d, attempted); ok {
		return r
	}

	return NewFailed[CanonicalVehicle](FailureNoMatchResult,
		fmt.Sprintf("no %d %s %s configuration in the catalog", d.Year, d.Make, d.Model), attempted)
}

// vehiclePrecondition reports the short-circuit failures that make running
// any tier pointless.
func vehiclePrecondition(d VehicleDescriptor) (FailureReason, string, bool) {
	switch {
	case d.Empty():
		return FailureNoVehicleData, "descriptor carries no vehicle fields", true
	case d.VIN != "" && !d.Complete():
		return FailureVINDecodeFailed,
			fmt.Sprintf("vin %q did not yield a full make/model/year", d.VIN), true
	case d.Make == "":
		return FailureMissingMake, "descriptor has no make", true
	case d.Model == "":
		return FailureMissingModel, "descriptor has no model", true
	case d.Year == 0:
		return FailureMissingYear, "descriptor has no model year", true
	}
	return "", "", false
}

// exact resolves the descriptor through normalized model-name lookup under
// the given make, requiring a base vehicle whose production range covers
// the year. Reported under tier, which is "exact" or "alias".
func (m *VehicleMatcher) exact(mk catalog.Make, d VehicleDescriptor, tier string, attempted []string) (Result[CanonicalVehicle], bool) {
	var (
		primary    *CanonicalVehicle
		candidates []CanonicalVehicle
	)

	for _, model := range m.idx.ModelsByName(d.Model) {
		base, ok := m.idx.BaseVehicle(mk.ID, model.ID, d.Year)
		if !ok {
			continue
		}
		v := m.canonical(base, d)
		if primary == nil {
			primary = &v
			candidates = append(candidates, m.submodelVariants(base, d, v.SubmodelID)...)
			continue
		}
		candidates = append(candidates, v)
	}

	if primary == nil {
		return Result[CanonicalVehicle]{}, false
	}

	r := NewMatched(*primary, tier, 1.0, attempted)
	r.AddAlternatives(m.cfg.MaxAlternatives, candidates...)
	return r, true
}

// fuzzy scores the descriptor model against every model of the resolved
// make and accepts the best candidate at or above the threshold. Confidence
// is the similarity score itself.
func (m *VehicleMatcher) fuzzy(mk catalog.Make, d VehicleDescriptor, attempted []string) (Result[CanonicalVehicle], bool) {
	want := catalog.NormalizeName(d.Model)

	var (
		best       *CanonicalVehicle
		bestScore  float64
		candidates []CanonicalVehicle
	)

	for _, model := range m.idx.ModelsForMake(mk.ID) {
		score := Similarity(want, catalog.NormalizeName(model.Name))
		if score < m.cfg.FuzzyThreshold {
			continue
		}
		base, ok := m.idx.BaseVehicle(mk.ID, model.ID, d.Year)
		if !ok {
			continue
		}
		v := m.canonical(base, d)
		if best == nil || score > bestScore {
			if best != nil {
				candidates = append(candidates, *best)
			}
			best, bestScore = &v, score
			continue
		}
		candidates = append(candidates, v)
	}

	if best == nil {
		return Result[CanonicalVehicle]{}, false
	}

	r := NewMatched(*best, TierFuzzy, bestScore, attempted)
	r.AddAlternatives(m.cfg.MaxAlternatives, candidates...)
	return r, true
}

// canonical builds the resolved vehicle for a base vehicle hit, attaching
// the submodel when the descriptor names one the catalog knows.
func (m *VehicleMatcher) canonical(base catalog.BaseVehicle, d VehicleDescriptor) CanonicalVehicle {
	v := CanonicalVehicle{
		BaseVehicleID: base.ID,
		MakeID:        base.MakeID,
		ModelID:       base.ModelID,
		Year:          d.Year,
	}
	if mk, ok := m.idx.MakeByID(base.MakeID); ok {
		v.MakeName = mk.Name
	}
	if model, ok := m.idx.ModelByID(base.ModelID); ok {
		v.ModelName = model.Name
	}

	if d.Submodel != "" {
		want := catalog.NormalizeName(d.Submodel)
		for _, sub := range m.idx.SubmodelsForBase(base.ID) {
			if catalog.NormalizeName(sub.Name) == want {
				v.SubmodelID = sub.ID
				v.SubmodelName = sub.Name
				break
			}
		}
	}

	return v
}

// submodelVariants returns the other submodel combinations of a base
// vehicle, the usual source of alternatives for a single-base hit.
func (m *VehicleMatcher) submodelVariants(base catalog.BaseVehicle, d VehicleDescriptor, excludeSubmodelID int) []CanonicalVehicle {
	subs := m.idx.SubmodelsForBase(base.ID)
	if len(subs) == 0 {
		return nil
	}

	variants := make([]CanonicalVehicle, 0, len(subs))
	for _, sub := range subs {
		if sub.ID == excludeSubmodelID {
			continue
		}
		v := m.canonical(base, VehicleDescriptor{Make: d.Make, Model: d.Model, Year: d.Year})
		v.SubmodelID = sub.ID
		v.SubmodelName = sub.Name
		variants = append(variants, v)
	}
	return variants
}
