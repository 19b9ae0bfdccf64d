package vindecode

import "context"

// Decoded is what a VIN alone can say about a unit. The model is never
// derivable offline, so a decode fills in make and model year at best.
type Decoded struct {
	Make      string `json:"make"`
	ModelYear int    `json:"model_year"`
}

// Complete reports whether the decode yielded both fields.
func (d Decoded) Complete() bool {
	return d.Make != "" && d.ModelYear != 0
}

// Decoder resolves a VIN into the descriptor fields it encodes.
type Decoder interface {
	Decode(ctx context.Context, vin string) (Decoded, error)
}
