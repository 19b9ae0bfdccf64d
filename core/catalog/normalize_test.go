package catalog_test

import (
	"testing"

	"shop-transformer/core/catalog"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Lowercase", "Ford", "ford"},
		{"Punctuation", "F-150", "f 150"},
		{"CollapseRuns", "Mercedes--Benz  AMG", "mercedes benz amg"},
		{"LeadingTrailing", "  Chevy ", "chevy"},
		{"Mixed", "OIL FILTER (spin-on)", "oil filter spin on"},
		{"Empty", "", ""},
		{"OnlySeparators", "--//--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.NormalizeName(tt.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			"UnigramsAndBigrams",
			"Disc Brake Pad",
			[]string{"disc", "disc brake", "brake", "brake pad", "pad"},
		},
		{
			"StopwordSkippedAsUnigram",
			"Bolt and Washer",
			[]string{"bolt", "bolt and", "and washer", "washer"},
		},
		{
			"SingleShortWordDropped",
			"A",
			nil,
		},
		{
			"Empty",
			"",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Tokenize(tt.in))
		})
	}
}
