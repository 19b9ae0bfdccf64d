package matching

import (
	"context"
	"fmt"
	"sort"

	"shop-transformer/core/catalog"

	"go.uber.org/zap"
)

// PartsMatcher resolves part descriptors against the parts terminology
// index through tiered lookups: exact name, fuzzy name, description text,
// keyword overlap, then part-number cross reference.
type PartsMatcher struct {
	idx    *catalog.Index
	cfg    Config
	logger *zap.Logger
}

// NewPartsMatcher builds a matcher over the given index.
func NewPartsMatcher(idx *catalog.Index, cfg Config, logger *zap.Logger) *PartsMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartsMatcher{idx: idx, cfg: cfg.withDefaults(), logger: logger}
}

// Match resolves one part descriptor. Failures are data in the result;
// panics are recovered into an EXCEPTION_ERROR result.
func (m *PartsMatcher) Match(ctx context.Context, d PartDescriptor) (result Result[CanonicalPart]) {
	var attempted []string

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("part match panicked",
				zap.Any("panic", r),
				zap.String("title", d.Title))
			result = NewFailed[CanonicalPart](FailureException, fmt.Sprint(r), attempted)
		}
	}()

	if d.Empty() {
		return NewFailed[CanonicalPart](FailureNoPartData, "descriptor carries no part fields", nil)
	}

	// Tier 1: exact normalized terminology name.
	if d.Title != "" {
		attempted = append(attempted, TierExact)
		if p, ok := m.idx.PartByName(d.Title); ok {
			return NewMatched(m.canonical(p), TierExact, 1.0, attempted)
		}
	}

	// Tier 2: fuzzy name similarity over the whole terminology list.
	if d.Title != "" {
		attempted = append(attempted, TierFuzzy)
		if r, ok := m.fuzzy(d.Title, attempted); ok {
			return r
		}
	}

	// Tier 3: known description phrasing.
	if d.Title != "" || d.Description != "" {
		attempted = append(attempted, TierDescription)
		for _, text := range []string{d.Title, d.Description} {
			if text == "" {
				continue
			}
			if desc, ok := m.idx.DescriptionByText(text); ok {
				if p, ok := m.idx.PartByID(desc.PartID); ok {
					hit := CanonicalPart{
						PartID:        p.ID,
						Name:          p.Name,
						DescriptionID: desc.ID,
						Description:   desc.Text,
					}
					return NewMatched(hit, TierDescription, 0.9, attempted)
				}
			}
		}
	}

	// Tier 4: keyword overlap against the inverted index.
	tokens := catalog.Tokenize(d.Title + " " + d.Description)
	keywordRan := len(tokens) > 0
	anyOverlap := false
	if keywordRan {
		attempted = append(attempted, TierKeyword)
		r, overlapped, ok := m.keyword(tokens, attempted)
		anyOverlap = overlapped
		if ok {
			return r
		}
	}

	// Tier 5: part-number cross reference.
	if d.ShopNumber != "" || d.VendorNumber != "" {
		attempted = append(attempted, TierAttribute)
		for _, number := range []string{d.ShopNumber, d.VendorNumber} {
			if number == "" {
				continue
			}
			if p, ok := m.idx.PartByNumber(number); ok {
				return NewMatched(m.canonical(p), TierAttribute, 0.95, attempted)
			}
		}
	}

	if keywordRan && !anyOverlap {
		return NewFailed[CanonicalPart](FailureNoKeywordMatch,
			fmt.Sprintf("no catalog part shares a token with %q", d.Title), attempted)
	}
	return NewFailed[CanonicalPart](FailureNoMatchResult,
		fmt.Sprintf("part %q is not in the terminology catalog", d.Title), attempted)
}

// fuzzy scores the title against every normalized terminology name and
// accepts the best candidate at or above the threshold.
func (m *PartsMatcher) fuzzy(title string, attempted []string) (Result[CanonicalPart], bool) {
	want := catalog.NormalizeName(title)

	var (
		best       *CanonicalPart
		bestScore  float64
		candidates []CanonicalPart
	)

	for _, name := range m.idx.PartNames() {
		score := Similarity(want, name)
		if score < m.cfg.FuzzyThreshold {
			continue
		}
		p, ok := m.idx.PartByName(name)
		if !ok {
			continue
		}
		c := m.canonical(p)
		if best == nil || score > bestScore {
			if best != nil {
				candidates = append(candidates, *best)
			}
			best, bestScore = &c, score
			continue
		}
		candidates = append(candidates, c)
	}

	if best == nil {
		return Result[CanonicalPart]{}, false
	}

	r := NewMatched(*best, TierFuzzy, bestScore, attempted)
	r.AddAlternatives(m.cfg.MaxAlternatives, candidates...)
	return r, true
}

// keyword counts how many of the query tokens each part is indexed under
// and accepts the best part whose overlap ratio clears the minimum.
// Confidence is 0.9 times the ratio so keyword hits always rank below
// exact and description hits. The second return reports whether any part
// overlapped at all, which separates NO_KEYWORD_MATCH from NO_MATCH_RESULT.
func (m *PartsMatcher) keyword(tokens []string, attempted []string) (Result[CanonicalPart], bool, bool) {
	hits := make(map[int]int)
	for _, tok := range tokens {
		for _, partID := range m.idx.PartsByKeyword(tok) {
			hits[partID]++
		}
	}
	if len(hits) == 0 {
		return Result[CanonicalPart]{}, false, false
	}

	type scored struct {
		partID int
		ratio  float64
	}
	accepted := make([]scored, 0, len(hits))
	for partID, n := range hits {
		ratio := float64(n) / float64(len(tokens))
		if ratio >= m.cfg.KeywordMinOverlap {
			accepted = append(accepted, scored{partID, ratio})
		}
	}
	if len(accepted) == 0 {
		return Result[CanonicalPart]{}, true, false
	}

	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].ratio != accepted[j].ratio {
			return accepted[i].ratio > accepted[j].ratio
		}
		return accepted[i].partID < accepted[j].partID
	})

	winner, ok := m.idx.PartByID(accepted[0].partID)
	if !ok {
		return Result[CanonicalPart]{}, true, false
	}

	alts := make([]CanonicalPart, 0, len(accepted)-1)
	for _, s := range accepted[1:] {
		if p, ok := m.idx.PartByID(s.partID); ok {
			alts = append(alts, m.canonical(p))
		}
	}

	r := NewMatched(m.canonical(winner), TierKeyword, 0.9*accepted[0].ratio, attempted)
	r.AddAlternatives(m.cfg.MaxAlternatives, alts...)
	return r, true, true
}

// canonical builds the resolved part, attaching its first known description.
func (m *PartsMatcher) canonical(p catalog.Part) CanonicalPart {
	cp := CanonicalPart{PartID: p.ID, Name: p.Name}
	if descs := m.idx.DescriptionsFor(p.ID); len(descs) > 0 {
		cp.DescriptionID = descs[0].ID
		cp.Description = descs[0].Text
	}
	return cp
}
