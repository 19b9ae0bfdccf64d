package matching

import "fmt"

// VehicleDescriptor is the free-form vehicle identity of one shop unit,
// exactly as operators typed it.
type VehicleDescriptor struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Submodel string `json:"submodel,omitempty"`
	VIN      string `json:"vin,omitempty"`
}

// Empty reports whether the descriptor carries no vehicle identity at all.
func (d VehicleDescriptor) Empty() bool {
	return d.Make == "" && d.Model == "" && d.Year == 0 && d.Submodel == "" && d.VIN == ""
}

// Complete reports whether make, model and year are all present.
func (d VehicleDescriptor) Complete() bool {
	return d.Make != "" && d.Model != "" && d.Year != 0
}

// PartDescriptor is the free-form identity of one part line on a repair
// order.
type PartDescriptor struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ShopNumber   string `json:"shop_number,omitempty"`
	VendorNumber string `json:"vendor_number,omitempty"`
}

// Empty reports whether the descriptor carries nothing to match on.
func (d PartDescriptor) Empty() bool {
	return d.Title == "" && d.Description == "" && d.ShopNumber == "" && d.VendorNumber == ""
}

// CanonicalVehicle is a resolved vehicle configuration from the catalog.
type CanonicalVehicle struct {
	BaseVehicleID int    `json:"base_vehicle_id"`
	MakeID        int    `json:"make_id"`
	MakeName      string `json:"make_name"`
	ModelID       int    `json:"model_id"`
	ModelName     string `json:"model_name"`
	Year          int    `json:"year"`
	SubmodelID    int    `json:"submodel_id,omitempty"`
	SubmodelName  string `json:"submodel_name,omitempty"`
	IsAlternative bool   `json:"is_alternative,omitempty"`
}

// Key is the composite identity used to deduplicate vehicle candidates.
func (v CanonicalVehicle) Key() string {
	return fmt.Sprintf("%d|%d|%d", v.BaseVehicleID, v.ModelID, v.SubmodelID)
}

// AsAlternative returns a detached copy flagged as an alternative.
func (v CanonicalVehicle) AsAlternative() CanonicalVehicle {
	v.IsAlternative = true
	return v
}

// CanonicalPart is a resolved parts terminology entry from the catalog.
type CanonicalPart struct {
	PartID        int    `json:"part_id"`
	Name          string `json:"name"`
	DescriptionID int    `json:"description_id,omitempty"`
	Description   string `json:"description,omitempty"`
	IsAlternative bool   `json:"is_alternative,omitempty"`
}

// Key is the composite identity used to deduplicate part candidates.
func (p CanonicalPart) Key() string {
	return fmt.Sprintf("%d|%d|0", p.PartID, p.DescriptionID)
}

// AsAlternative returns a detached copy flagged as an alternative.
func (p CanonicalPart) AsAlternative() CanonicalPart {
	p.IsAlternative = true
	return p
}

// Oracle answers accelerated make/model/year lookups, typically backed by
// the precomputed key table shipped with the catalog. Implementations must
// be safe for concurrent use.
type Oracle interface {
	VehicleKey(makeName, modelName string, year int) (baseVehicleID int, ok bool)
}
