package vindecode

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVIN reports a VIN that fails structural validation.
var ErrInvalidVIN = errors.New("invalid vin")

// World manufacturer identifier prefixes mapped to make names as they
// appear in the reference catalog. Three-character entries win over
// two-character ones so brand splits inside one manufacturer resolve
// correctly (JNK is Infiniti while JN* is otherwise Nissan).
var wmiMakes3 = map[string]string{
	"1FA": "Ford", "1FB": "Ford", "1FC": "Ford", "1FD": "Ford",
	"1FM": "Ford", "1FT": "Ford", "2FA": "Ford", "2FM": "Ford",
	"2FT": "Ford", "3FA": "Ford", "3FE": "Ford",
	"1G1": "Chevrolet", "1GB": "Chevrolet", "1GC": "Chevrolet",
	"2G1": "Chevrolet", "3GC": "Chevrolet", "3GN": "Chevrolet",
	"1GT": "GMC", "1GK": "GMC", "1GD": "GMC",
	"1G4": "Buick", "1G6": "Cadillac", "1GY": "Cadillac",
	"1C3": "Chrysler", "1C4": "Chrysler", "2C3": "Chrysler",
	"1C6": "Ram", "3C6": "Ram",
	"1J4": "Jeep", "1J8": "Jeep",
	"1B3": "Dodge", "2B3": "Dodge", "3D7": "Dodge",
	"1HG": "Honda", "2HG": "Honda", "2HK": "Honda", "2HJ": "Honda",
	"19X": "Honda", "5FN": "Honda", "5J6": "Honda", "JHM": "Honda",
	"2T1": "Toyota", "4T1": "Toyota", "4T3": "Toyota",
	"5TD": "Toyota", "5TF": "Toyota",
	"1N4": "Nissan", "1N6": "Nissan", "3N1": "Nissan", "5N1": "Nissan",
	"JNK": "Infiniti", "JNR": "Infiniti",
	"4S3": "Subaru", "4S4": "Subaru",
	"5YJ": "Tesla", "7SA": "Tesla",
	"4US": "BMW", "5UX": "BMW",
	"4JG": "Mercedes-Benz", "W1K": "Mercedes-Benz",
	"1VW": "Volkswagen", "3VW": "Volkswagen",
	"3MZ": "Mazda",
	"SAL": "Land Rover", "SAJ": "Jaguar",
}

var wmiMakes2 = map[string]string{
	"JT": "Toyota",
	"JN": "Nissan",
	"JF": "Subaru",
	"JM": "Mazda",
	"JA": "Mitsubishi",
	"KM": "Hyundai",
	"KN": "Kia",
	"WA": "Audi",
	"WB": "BMW",
	"WD": "Mercedes-Benz",
	"WP": "Porsche",
	"WV": "Volkswagen",
	"YV": "Volvo",
}

// yearCodes is the position-10 model year table for the 1980-2009 cycle.
// The cycle repeats every 30 years; see Decode for how cycles are told
// apart.
var yearCodes = map[byte]int{
	'A': 1980, 'B': 1981, 'C': 1982, 'D': 1983, 'E': 1984, 'F': 1985,
	'G': 1986, 'H': 1987, 'J': 1988, 'K': 1989, 'L': 1990, 'M': 1991,
	'N': 1992, 'P': 1993, 'R': 1994, 'S': 1995, 'T': 1996, 'V': 1997,
	'W': 1998, 'X': 1999, 'Y': 2000,
	'1': 2001, '2': 2002, '3': 2003, '4': 2004, '5': 2005,
	'6': 2006, '7': 2007, '8': 2008, '9': 2009,
}

// Offline decodes VINs from built-in tables, no registry call. It only
// answers what the VIN structure itself encodes: make from the WMI prefix
// and model year from position 10.
type Offline struct{}

// NewOffline creates the offline decoder.
func NewOffline() *Offline {
	return &Offline{}
}

// Decode validates the VIN and extracts make and model year. An unknown
// WMI leaves Make empty without an error; only structural problems are
// errors.
func (*Offline) Decode(ctx context.Context, vin string) (Decoded, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if err := validate(vin); err != nil {
		return Decoded{}, err
	}

	d := Decoded{Make: makeFor(vin)}

	if base, ok := yearCodes[vin[9]]; ok {
		year := base
		// Position 7 disambiguates the 30-year cycles: vehicles from 2010
		// on carry a letter there, earlier ones a digit.
		if vin[6] >= 'A' && vin[6] <= 'Z' {
			year += 30
		}
		d.ModelYear = year
	}

	return d, nil
}

func validate(vin string) error {
	if len(vin) != 17 {
		return fmt.Errorf("%w: length %d, want 17", ErrInvalidVIN, len(vin))
	}
	for i := 0; i < len(vin); i++ {
		c := vin[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
			if c == 'I' || c == 'O' || c == 'Q' {
				return fmt.Errorf("%w: illegal character %q at position %d", ErrInvalidVIN, c, i+1)
			}
		default:
			return fmt.Errorf("%w: illegal character %q at position %d", ErrInvalidVIN, c, i+1)
		}
	}
	return nil
}

func makeFor(vin string) string {
	if name, ok := wmiMakes3[vin[:3]]; ok {
		return name
	}
	if name, ok := wmiMakes2[vin[:2]]; ok {
		return name
	}
	return ""
}
