package catalog

import (
	"sort"
	"strconv"
)

// makeModelKey addresses base vehicles by their make/model pair.
type makeModelKey struct {
	makeID  int
	modelID int
}

// Index is the in-memory form of one catalog drop. It is immutable once
// Load returns, so concurrent readers never need a lock.
type Index struct {
	makesByID   map[int]Make
	makesByName map[string]Make
	makeAliases map[string]string

	modelsByID   map[int]Model
	modelsByName map[string][]Model

	years map[int]struct{}

	baseByID        map[int]BaseVehicle
	baseByMakeModel map[makeModelKey][]BaseVehicle
	modelsForMake   map[int][]Model

	submodelsByBase map[int][]Submodel

	engineByBase       map[int][]VehicleConfig
	transmissionByBase map[int][]VehicleConfig
	bodyByBase         map[int][]VehicleConfig
	brakeByBase        map[int][]VehicleConfig

	vehicleKeys map[string]int

	partsByID     map[int]Part
	partsByName   map[string]Part
	descByPart    map[int][]PartDescription
	descByText    map[string]PartDescription
	keywordToPart map[string][]int
	partsByNumber map[string]Part
}

func newIndex() *Index {
	idx := &Index{
		makesByID:          make(map[int]Make),
		makesByName:        make(map[string]Make),
		makeAliases:        make(map[string]string, len(builtinMakeAliases)),
		modelsByID:         make(map[int]Model),
		modelsByName:       make(map[string][]Model),
		years:              make(map[int]struct{}),
		baseByID:           make(map[int]BaseVehicle),
		baseByMakeModel:    make(map[makeModelKey][]BaseVehicle),
		modelsForMake:      make(map[int][]Model),
		submodelsByBase:    make(map[int][]Submodel),
		engineByBase:       make(map[int][]VehicleConfig),
		transmissionByBase: make(map[int][]VehicleConfig),
		bodyByBase:         make(map[int][]VehicleConfig),
		brakeByBase:        make(map[int][]VehicleConfig),
		vehicleKeys:        make(map[string]int),
		partsByID:          make(map[int]Part),
		partsByName:        make(map[string]Part),
		descByPart:         make(map[int][]PartDescription),
		descByText:         make(map[string]PartDescription),
		keywordToPart:      make(map[string][]int),
		partsByNumber:      make(map[string]Part),
	}

	// Hand-maintained aliases first; the optional alias file overrides them.
	for alias, name := range builtinMakeAliases {
		idx.makeAliases[alias] = name
	}

	return idx
}

// MakeByName looks up a make by its normalized name.
func (idx *Index) MakeByName(name string) (Make, bool) {
	m, ok := idx.makesByName[NormalizeName(name)]
	return m, ok
}

// MakeByAlias resolves a make through the alias table. It only reports a hit
// when the alias maps to a make the catalog actually contains.
func (idx *Index) MakeByAlias(name string) (Make, bool) {
	canonical, ok := idx.makeAliases[NormalizeName(name)]
	if !ok {
		return Make{}, false
	}
	m, ok := idx.makesByName[canonical]
	return m, ok
}

// MakeByID looks up a make by id.
func (idx *Index) MakeByID(id int) (Make, bool) {
	m, ok := idx.makesByID[id]
	return m, ok
}

// ModelsByName returns every model sharing the normalized name. Model names
// repeat across makes ("200", "GT"), so this is a slice.
func (idx *Index) ModelsByName(name string) []Model {
	return idx.modelsByName[NormalizeName(name)]
}

// ModelByID looks up a model by id.
func (idx *Index) ModelByID(id int) (Model, bool) {
	m, ok := idx.modelsByID[id]
	return m, ok
}

// ModelsForMake returns the models that appear in at least one base vehicle
// of the given make, sorted by name.
func (idx *Index) ModelsForMake(makeID int) []Model {
	return idx.modelsForMake[makeID]
}

// HasYear reports whether the catalog knows the given model year.
func (idx *Index) HasYear(year int) bool {
	_, ok := idx.years[year]
	return ok
}

// BaseVehicle returns the base vehicle for a make/model whose production
// range covers the given year.
func (idx *Index) BaseVehicle(makeID, modelID, year int) (BaseVehicle, bool) {
	for _, b := range idx.baseByMakeModel[makeModelKey{makeID, modelID}] {
		if b.Covers(year) {
			return b, true
		}
	}
	return BaseVehicle{}, false
}

// BaseVehiclesFor returns every base vehicle of a make/model pair, sorted by
// starting year.
func (idx *Index) BaseVehiclesFor(makeID, modelID int) []BaseVehicle {
	return idx.baseByMakeModel[makeModelKey{makeID, modelID}]
}

// BaseVehicleByID looks up a base vehicle by id.
func (idx *Index) BaseVehicleByID(id int) (BaseVehicle, bool) {
	b, ok := idx.baseByID[id]
	return b, ok
}

// SubmodelsForBase returns the submodels of a base vehicle, sorted by name.
func (idx *Index) SubmodelsForBase(baseVehicleID int) []Submodel {
	return idx.submodelsByBase[baseVehicleID]
}

// EngineConfigsFor returns the engine configurations of a base vehicle.
func (idx *Index) EngineConfigsFor(baseVehicleID int) []VehicleConfig {
	return idx.engineByBase[baseVehicleID]
}

// TransmissionConfigsFor returns the transmission configurations of a base vehicle.
func (idx *Index) TransmissionConfigsFor(baseVehicleID int) []VehicleConfig {
	return idx.transmissionByBase[baseVehicleID]
}

// BodyConfigsFor returns the body configurations of a base vehicle.
func (idx *Index) BodyConfigsFor(baseVehicleID int) []VehicleConfig {
	return idx.bodyByBase[baseVehicleID]
}

// BrakeConfigsFor returns the brake configurations of a base vehicle.
func (idx *Index) BrakeConfigsFor(baseVehicleID int) []VehicleConfig {
	return idx.brakeByBase[baseVehicleID]
}

// VehicleKey resolves a make/model/year triple through the precomputed key
// table. This is the accelerated lookup; it returns false when the key table
// was not shipped or does not contain the triple.
func (idx *Index) VehicleKey(makeName, modelName string, year int) (int, bool) {
	id, ok := idx.vehicleKeys[vehicleKeyFor(makeName, modelName, year)]
	return id, ok
}

// PartByName looks up a part by its normalized terminology name.
func (idx *Index) PartByName(name string) (Part, bool) {
	p, ok := idx.partsByName[NormalizeName(name)]
	return p, ok
}

// PartByID looks up a part by id.
func (idx *Index) PartByID(id int) (Part, bool) {
	p, ok := idx.partsByID[id]
	return p, ok
}

// PartNames returns every normalized part name in the catalog. The slice is
// sorted and must be treated as read-only.
func (idx *Index) PartNames() []string {
	names := make([]string, 0, len(idx.partsByName))
	for name := range idx.partsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PartsByKeyword returns the part ids indexed under a single lookup token.
// The slice is sorted and must be treated as read-only.
func (idx *Index) PartsByKeyword(token string) []int {
	return idx.keywordToPart[token]
}

// PartByNumber resolves a manufacturer part number through the cross
// reference table.
func (idx *Index) PartByNumber(number string) (Part, bool) {
	p, ok := idx.partsByNumber[NormalizeName(number)]
	return p, ok
}

// DescriptionsFor returns the known descriptions of a part, sorted by id.
func (idx *Index) DescriptionsFor(partID int) []PartDescription {
	return idx.descByPart[partID]
}

// DescriptionByText looks up a part description by its normalized text.
func (idx *Index) DescriptionByText(text string) (PartDescription, bool) {
	d, ok := idx.descByText[NormalizeName(text)]
	return d, ok
}

// Stats is a snapshot of the index dimensions, used by the catalog command
// and the ops API.
type Stats struct {
	Makes               int `json:"makes"`
	MakeAliases         int `json:"make_aliases"`
	Models              int `json:"models"`
	Years               int `json:"years"`
	BaseVehicles        int `json:"base_vehicles"`
	Submodels           int `json:"submodels"`
	EngineConfigs       int `json:"engine_configs"`
	TransmissionConfigs int `json:"transmission_configs"`
	BodyConfigs         int `json:"body_configs"`
	BrakeConfigs        int `json:"brake_configs"`
	VehicleKeys         int `json:"vehicle_keys"`
	Parts               int `json:"parts"`
	PartDescriptions    int `json:"part_descriptions"`
	PartNumbers         int `json:"part_numbers"`
	KeywordTokens       int `json:"keyword_tokens"`
}

// Stats returns the dimension counts of the index.
func (idx *Index) Stats() Stats {
	return Stats{
		Makes:               len(idx.makesByID),
		MakeAliases:         len(idx.makeAliases),
		Models:              len(idx.modelsByID),
		Years:               len(idx.years),
		BaseVehicles:        len(idx.baseByID),
		Submodels:           countGrouped(idx.submodelsByBase),
		EngineConfigs:       countGrouped(idx.engineByBase),
		TransmissionConfigs: countGrouped(idx.transmissionByBase),
		BodyConfigs:         countGrouped(idx.bodyByBase),
		BrakeConfigs:        countGrouped(idx.brakeByBase),
		VehicleKeys:         len(idx.vehicleKeys),
		Parts:               len(idx.partsByID),
		PartDescriptions:    countGrouped(idx.descByPart),
		PartNumbers:         len(idx.partsByNumber),
		KeywordTokens:       len(idx.keywordToPart),
	}
}

func countGrouped[T any](m map[int][]T) int {
	n := 0
	for _, rows := range m {
		n += len(rows)
	}
	return n
}

// vehicleKeyFor builds the normalized accelerated lookup key.
func vehicleKeyFor(makeName, modelName string, year int) string {
	return NormalizeName(makeName) + "|" + NormalizeName(modelName) + "|" + strconv.Itoa(year)
}

// finalize builds the derived lookups and sorts every grouped slice so that
// repeated loads of the same drop produce identical iteration order.
func (idx *Index) finalize() {
	for key := range idx.baseByMakeModel {
		if model, ok := idx.modelsByID[key.modelID]; ok {
			idx.modelsForMake[key.makeID] = append(idx.modelsForMake[key.makeID], model)
		}
	}
	for makeID := range idx.modelsForMake {
		models := idx.modelsForMake[makeID]
		sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	}

	for key := range idx.baseByMakeModel {
		bases := idx.baseByMakeModel[key]
		sort.Slice(bases, func(i, j int) bool { return bases[i].FromYear < bases[j].FromYear })
	}
	for id := range idx.submodelsByBase {
		subs := idx.submodelsByBase[id]
		sort.Slice(subs, func(i, j int) bool { return subs[i].Name < subs[j].Name })
	}
	for id := range idx.descByPart {
		descs := idx.descByPart[id]
		sort.Slice(descs, func(i, j int) bool { return descs[i].ID < descs[j].ID })
	}
	for token := range idx.keywordToPart {
		ids := idx.keywordToPart[token]
		sort.Ints(ids)
		idx.keywordToPart[token] = dedupInts(ids)
	}
}

func dedupInts(sorted []int) []int {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
