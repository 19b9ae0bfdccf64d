package catalog

// builtinMakeAliases maps common industry variants of a make name onto the
// normalized canonical name. The optional make_aliases.tsv file is merged on
// top of this table and wins on conflict.
var builtinMakeAliases = map[string]string{
	"chevy":          "chevrolet",
	"vw":             "volkswagen",
	"mb":             "mercedes benz",
	"mercedes":       "mercedes benz",
	"benz":           "mercedes benz",
	"gmc truck":      "gmc",
	"gm":             "general motors",
	"landrover":      "land rover",
	"intl":           "international",
	"freightlnr":     "freightliner",
	"mazada":         "mazda",
	"toyta":          "toyota",
	"nisan":          "nissan",
	"hundai":         "hyundai",
	"hyundia":        "hyundai",
	"volkswagon":     "volkswagen",
	"caddy":          "cadillac",
	"caddilac":       "cadillac",
	"olds":           "oldsmobile",
	"alfa":           "alfa romeo",
	"range rover":    "land rover",
	"dodge ram":      "ram",
	"mini cooper":    "mini",
	"bimmer":         "bmw",
	"subie":          "subaru",
	"internationall": "international",
}
