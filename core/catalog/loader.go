package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// LoadError reports a required catalog file that is missing or unparsable.
// It is fatal; the process must not start without the full required set.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog file %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads one catalog drop from src and builds the immutable index.
// Required files abort the load with a *LoadError; optional files degrade
// their dimension to empty with a warning.
func Load(ctx context.Context, src Source, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	idx := newIndex()

	required := []struct {
		name string
		load func() error
	}{
		{FileMake, func() error { return loadMakes(ctx, src, idx) }},
		{FileModel, func() error { return loadModels(ctx, src, idx) }},
		{FileYear, func() error { return loadYears(ctx, src, idx) }},
		{FileBaseVehicle, func() error { return loadBaseVehicles(ctx, src, idx) }},
		{FileParts, func() error { return loadParts(ctx, src, idx) }},
		{FilePartsDescription, func() error { return loadPartDescriptions(ctx, src, idx) }},
	}
	for _, req := range required {
		if err := req.load(); err != nil {
			return nil, &LoadError{File: req.name, Err: err}
		}
	}

	optional := []struct {
		name string
		load func() error
	}{
		{FileSubmodel, func() error { return loadSubmodels(ctx, src, idx) }},
		{FileEngineConfig, func() error { return loadConfigs(ctx, src, FileEngineConfig, idx.engineByBase) }},
		{FileTransmission, func() error { return loadConfigs(ctx, src, FileTransmission, idx.transmissionByBase) }},
		{FileBodyConfig, func() error { return loadConfigs(ctx, src, FileBodyConfig, idx.bodyByBase) }},
		{FileBrakeConfig, func() error { return loadConfigs(ctx, src, FileBrakeConfig, idx.brakeByBase) }},
		{FileVehicleKeys, func() error { return loadVehicleKeys(ctx, src, idx) }},
		{FileMakeAliases, func() error { return loadMakeAliases(ctx, src, idx) }},
		{FilePartNumbers, func() error { return loadPartNumbers(ctx, src, idx) }},
	}
	for _, opt := range optional {
		err := opt.load()
		if err == nil {
			continue
		}
		idx.dropDimension(opt.name)
		if IsNotExist(err) {
			logger.Warn("optional catalog file missing, dimension left empty",
				zap.String("file", opt.name))
		} else {
			logger.Warn("optional catalog file unparsable, dimension left empty",
				zap.String("file", opt.name),
				zap.Error(err))
		}
	}

	idx.finalize()

	stats := idx.Stats()
	logger.Info("catalog index built",
		zap.Int("makes", stats.Makes),
		zap.Int("models", stats.Models),
		zap.Int("base_vehicles", stats.BaseVehicles),
		zap.Int("parts", stats.Parts),
		zap.Int("part_descriptions", stats.PartDescriptions),
		zap.Int("vehicle_keys", stats.VehicleKeys),
		zap.Int("keyword_tokens", stats.KeywordTokens))

	return idx, nil
}

// row is one TSV record addressed by header column name.
type row struct {
	cols   map[string]int
	values []string
}

func (r row) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r row) int(col string) (int, error) {
	s := r.str(col)
	if s == "" {
		return 0, fmt.Errorf("column %q is empty", col)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return v, nil
}

// readRows streams the named TSV file record by record. The first row is the
// header; every following row is handed to fn addressed by column name.
func readRows(ctx context.Context, src Source, name string, fn func(rec row) error) error {
	f, err := src.Open(ctx, name)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	line := 1
	for {
		values, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(row{cols: cols, values: values}); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func loadMakes(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FileMake, func(rec row) error {
		id, err := rec.int("make_id")
		if err != nil {
			return err
		}
		m := Make{ID: id, Name: rec.str("make_name")}
		idx.makesByID[m.ID] = m
		idx.makesByName[NormalizeName(m.Name)] = m
		return nil
	})
}

func loadModels(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FileModel, func(rec row) error {
		id, err := rec.int("model_id")
		if err != nil {
			return err
		}
		m := Model{ID: id, Name: rec.str("model_name")}
		idx.modelsByID[m.ID] = m
		norm := NormalizeName(m.Name)
		idx.modelsByName[norm] = append(idx.modelsByName[norm], m)
		return nil
	})
}

func loadYears(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FileYear, func(rec row) error {
		year, err := rec.int("year")
		if err != nil {
			return err
		}
		idx.years[year] = struct{}{}
		return nil
	})
}

func loadBaseVehicles(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FileBaseVehicle, func(rec row) error {
		id, err := rec.int("base_vehicle_id")
		if err != nil {
			return err
		}
		makeID, err := rec.int("make_id")
		if err != nil {
			return err
		}
		modelID, err := rec.int("model_id")
		if err != nil {
			return err
		}
		from, err := rec.int("year_from")
		if err != nil {
			return err
		}
		to, err := rec.int("year_to")
		if err != nil {
			return err
		}
		b := BaseVehicle{ID: id, MakeID: makeID, ModelID: modelID, FromYear: from, ToYear: to}
		idx.baseByID[b.ID] = b
		key := makeModelKey{b.MakeID, b.ModelID}
		idx.baseByMakeModel[key] = append(idx.baseByMakeModel[key], b)
		return nil
	})
}

func loadSubmodels(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FileSubmodel, func(rec row) error {
		id, err := rec.int("submodel_id")
		if err != nil {
			return err
		}
		baseID, err := rec.int("base_vehicle_id")
		if err != nil {
			return err
		}
		s := Submodel{ID: id, BaseVehicleID: baseID, Name: rec.str("submodel_name")}
		idx.submodelsByBase[s.BaseVehicleID] = append(idx.submodelsByBase[s.BaseVehicleID], s)
		return nil
	})
}

// loadConfigs handles the four configuration files, which share one shape.
func loadConfigs(ctx context.Context, src Source, name string, into map[int][]VehicleConfig) error {
	idCol := strings.TrimSuffix(name, ".tsv") + "_id"
	return readRows(ctx, src, name, func(rec row) error {
		id, err := rec.int(idCol)
		if err != nil {
			return err
		}
		baseID, err := rec.int("base_vehicle_id")
		if err != nil {
			return err
		}
		c := VehicleConfig{ID: id, BaseVehicleID: baseID, Description: rec.str("description")}
		into[c.BaseVehicleID] = append(into[c.BaseVehicleID], c)
		return nil
	})
}

func loadVehicleKeys(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FileVehicleKeys, func(rec row) error {
		baseID, err := rec.int("base_vehicle_id")
		if err != nil {
			return err
		}
		segments := strings.Split(rec.str("vehicle_key"), "|")
		if len(segments) != 3 {
			return fmt.Errorf("vehicle_key %q: want make|model|year", rec.str("vehicle_key"))
		}
		year, err := strconv.Atoi(strings.TrimSpace(segments[2]))
		if err != nil {
			return fmt.Errorf("vehicle_key %q: year segment: %w", rec.str("vehicle_key"), err)
		}
		idx.vehicleKeys[vehicleKeyFor(segments[0], segments[1], year)] = baseID
		return nil
	})
}

func loadMakeAliases(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FileMakeAliases, func(rec row) error {
		alias := NormalizeName(rec.str("alias"))
		name := NormalizeName(rec.str("make_name"))
		if alias == "" || name == "" {
			return fmt.Errorf("alias row needs alias and make_name")
		}
		idx.makeAliases[alias] = name
		return nil
	})
}

func loadParts(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FileParts, func(rec row) error {
		id, err := rec.int("part_id")
		if err != nil {
			return err
		}
		p := Part{ID: id, Name: rec.str("part_name")}
		idx.partsByID[p.ID] = p
		idx.partsByName[NormalizeName(p.Name)] = p
		for _, tok := range Tokenize(p.Name) {
			idx.keywordToPart[tok] = append(idx.keywordToPart[tok], p.ID)
		}
		return nil
	})
}

func loadPartDescriptions(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FilePartsDescription, func(rec row) error {
		id, err := rec.int("description_id")
		if err != nil {
			return err
		}
		partID, err := rec.int("part_id")
		if err != nil {
			return err
		}
		d := PartDescription{ID: id, PartID: partID, Text: rec.str("description")}
		idx.descByPart[d.PartID] = append(idx.descByPart[d.PartID], d)
		norm := NormalizeName(d.Text)
		// First description wins when two parts share a phrasing.
		if _, taken := idx.descByText[norm]; !taken && norm != "" {
			idx.descByText[norm] = d
		}
		for _, tok := range Tokenize(d.Text) {
			idx.keywordToPart[tok] = append(idx.keywordToPart[tok], d.PartID)
		}
		return nil
	})
}

func loadPartNumbers(ctx context.Context, src Source, idx *Index) error {
	return readRows(ctx, src, FilePartNumbers, func(rec row) error {
		partID, err := rec.int("part_id")
		if err != nil {
			return err
		}
		number := NormalizeName(rec.str("part_number"))
		if number == "" {
			return fmt.Errorf("part_number is empty")
		}
		part, ok := idx.partsByID[partID]
		if !ok {
			// Cross references to parts outside the drop are skipped.
			return nil
		}
		idx.partsByNumber[number] = part
		return nil
	})
}

// dropDimension resets the dimension an optional file feeds, so a half
// parsed file never leaves partial data behind.
func (idx *Index) dropDimension(file string) {
	switch file {
	case FileSubmodel:
		idx.submodelsByBase = make(map[int][]Submodel)
	case FileEngineConfig:
		idx.engineByBase = make(map[int][]VehicleConfig)
	case FileTransmission:
		idx.transmissionByBase = make(map[int][]VehicleConfig)
	case FileBodyConfig:
		idx.bodyByBase = make(map[int][]VehicleConfig)
	case FileBrakeConfig:
		idx.brakeByBase = make(map[int][]VehicleConfig)
	case FileVehicleKeys:
		idx.vehicleKeys = make(map[string]int)
	case FileMakeAliases:
		idx.makeAliases = make(map[string]string, len(builtinMakeAliases))
		for alias, name := range builtinMakeAliases {
			idx.makeAliases[alias] = name
		}
	case FilePartNumbers:
		idx.partsByNumber = make(map[string]Part)
	}
}
