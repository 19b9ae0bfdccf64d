package vindecode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineDecode(t *testing.T) {
	dec := NewOffline()
	ctx := context.Background()

	tests := []struct {
		name string
		vin  string
		want Decoded
	}{
		{
			// 1FT = Ford truck, position 7 letter - second cycle, N = 2022.
			name: "ford truck 2022",
			vin:  "1FTEW1EP5NKD12345",
			want: Decoded{Make: "Ford", ModelYear: 2022},
		},
		{
			// JT prefix, position 7 digit - first cycle, 5 = 2005.
			name: "toyota 2005",
			vin:  "JTDKB20U553123456",
			want: Decoded{Make: "Toyota", ModelYear: 2005},
		},
		{
			// JNK overrides the JN Nissan prefix.
			name: "infiniti over nissan",
			vin:  "JNKCV61E09M012345",
			want: Decoded{Make: "Infiniti", ModelYear: 2009},
		},
		{
			name: "lowercase input",
			vin:  "1hgcm82633a123456",
			want: Decoded{Make: "Honda", ModelYear: 2003},
		},
		{
			// Unknown WMI still yields the year.
			name: "unknown manufacturer",
			vin:  "XX9CM82633A123456",
			want: Decoded{Make: "", ModelYear: 2003},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec.Decode(ctx, tt.vin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOfflineDecode_Invalid(t *testing.T) {
	dec := NewOffline()
	ctx := context.Background()

	tests := []struct {
		name string
		vin  string
	}{
		{"too short", "1FTEW1EP5NKD"},
		{"too long", "1FTEW1EP5NKD1234567"},
		{"contains I", "1FTEW1EP5NKDI2345"},
		{"contains Q", "1FTEW1EP5NKDQ2345"},
		{"illegal symbol", "1FTEW1EP5NKD!2345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dec.Decode(ctx, tt.vin)
			assert.ErrorIs(t, err, ErrInvalidVIN)
		})
	}
}

// TestDecoded_Complete tests the completeness gate the service uses before
// trusting a decode.
func TestDecoded_Complete(t *testing.T) {
	assert.True(t, Decoded{Make: "Ford", ModelYear: 2022}.Complete())
	assert.False(t, Decoded{Make: "Ford"}.Complete())
	assert.False(t, Decoded{ModelYear: 2022}.Complete())
	assert.False(t, Decoded{}.Complete())
}
