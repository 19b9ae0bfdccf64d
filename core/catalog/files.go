package catalog

// File names inside a catalog drop. Every file is TSV with a header row.
// Expected columns:
//
//	make.tsv                 make_id, make_name
//	model.tsv                model_id, model_name
//	year.tsv                 year_id, year
//	base_vehicle.tsv         base_vehicle_id, make_id, model_id, year_from, year_to
//	submodel.tsv             submodel_id, base_vehicle_id, submodel_name
//	engine_config.tsv        engine_config_id, base_vehicle_id, description
//	transmission_config.tsv  transmission_config_id, base_vehicle_id, description
//	body_config.tsv          body_config_id, base_vehicle_id, description
//	brake_config.tsv         brake_config_id, base_vehicle_id, description
//	vehicle_keys.tsv         vehicle_key (make|model|year), base_vehicle_id
//	make_aliases.tsv         alias, make_name
//	parts.tsv                part_id, part_name
//	parts_description.tsv    description_id, part_id, description
//	part_numbers.tsv         part_number, part_id
const (
	FileMake             = "make.tsv"
	FileModel            = "model.tsv"
	FileYear             = "year.tsv"
	FileBaseVehicle      = "base_vehicle.tsv"
	FileSubmodel         = "submodel.tsv"
	FileEngineConfig     = "engine_config.tsv"
	FileTransmission     = "transmission_config.tsv"
	FileBodyConfig       = "body_config.tsv"
	FileBrakeConfig      = "brake_config.tsv"
	FileVehicleKeys      = "vehicle_keys.tsv"
	FileMakeAliases      = "make_aliases.tsv"
	FileParts            = "parts.tsv"
	FilePartsDescription = "parts_description.tsv"
	FilePartNumbers      = "part_numbers.tsv"
)

// RequiredFiles are the catalog files the index cannot be built without.
// A missing or unparsable required file aborts the load.
var RequiredFiles = []string{
	FileMake,
	FileModel,
	FileYear,
	FileBaseVehicle,
	FileParts,
	FilePartsDescription,
}

// OptionalFiles enrich the index when present. A missing optional file
// leaves its dimension empty and is logged as a warning, never an error.
var OptionalFiles = []string{
	FileSubmodel,
	FileEngineConfig,
	FileTransmission,
	FileBodyConfig,
	FileBrakeConfig,
	FileVehicleKeys,
	FileMakeAliases,
	FilePartNumbers,
}

// Make is one row of make.tsv.
type Make struct {
	ID   int
	Name string
}

// Model is one row of model.tsv.
type Model struct {
	ID   int
	Name string
}

// Year is one row of year.tsv.
type Year struct {
	ID    int
	Value int
}

// BaseVehicle is one row of base_vehicle.tsv. It ties a make and model to
// the year range the configuration was produced for.
type BaseVehicle struct {
	ID       int
	MakeID   int
	ModelID  int
	FromYear int
	ToYear   int
}

// Covers reports whether the base vehicle was produced in the given year.
func (b BaseVehicle) Covers(year int) bool {
	return year >= b.FromYear && year <= b.ToYear
}

// Submodel is one row of submodel.tsv, a trim level under a base vehicle.
type Submodel struct {
	ID            int
	BaseVehicleID int
	Name          string
}

// VehicleConfig is one row of any of the engine/transmission/body/brake
// configuration files. They all share the same shape.
type VehicleConfig struct {
	ID            int
	BaseVehicleID int
	Description   string
}

// VehicleKey is one row of vehicle_keys.tsv, a precomputed mapping from a
// normalized "make|model|year" triple straight to a base vehicle.
type VehicleKey struct {
	Key           string
	BaseVehicleID int
}

// MakeAlias is one row of make_aliases.tsv.
type MakeAlias struct {
	Alias string
	Name  string
}

// Part is one row of parts.tsv, a canonical part terminology entry.
type Part struct {
	ID   int
	Name string
}

// PartDescription is one row of parts_description.tsv. A part can carry
// several descriptions, each a known phrasing of the same terminology.
type PartDescription struct {
	ID     int
	PartID int
	Text   string
}

// PartNumber is one row of part_numbers.tsv, mapping a manufacturer part
// number to its terminology entry.
type PartNumber struct {
	Number string
	PartID int
}
