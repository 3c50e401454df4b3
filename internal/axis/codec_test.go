package axis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "axisd/pkg/domain-errors"
)

func TestParseMap(t *testing.T) {
	t.Run("accepts string and numeric sector", func(t *testing.T) {
		c, err := ParseMap(map[string]any{"pillar": "PL01.1.1", "sector": float64(5415)})
		require.NoError(t, err)
		assert.Equal(t, Sector("5415"), c.Sector)

		c, err = ParseMap(map[string]any{"pillar": "PL01.1.1", "sector": "Healthcare"})
		require.NoError(t, err)
		assert.Equal(t, Sector("Healthcare"), c.Sector)
	})

	t.Run("ignores unknown keys", func(t *testing.T) {
		c, err := ParseMap(map[string]any{
			"pillar":      "PL01.1.1",
			"sector":      "62",
			"not_an_axis": "whatever",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, c.FilledAxes())
	})

	t.Run("honeycomb accepts slice or comma string", func(t *testing.T) {
		c, err := ParseMap(map[string]any{"honeycomb": []any{"PL12↔5415", "PL08↔62"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"PL12↔5415", "PL08↔62"}, c.Honeycomb)

		c, err = ParseMap(map[string]any{"honeycomb": "PL12↔5415, PL08↔62"})
		require.NoError(t, err)
		assert.Equal(t, []string{"PL12↔5415", "PL08↔62"}, c.Honeycomb)
	})

	t.Run("rejects malformed temporal", func(t *testing.T) {
		_, err := ParseMap(map[string]any{"temporal": "not-a-date"})
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "temporal")
	})

	t.Run("accepts UTC Z suffix", func(t *testing.T) {
		_, err := ParseMap(map[string]any{"temporal": "2024-01-01T00:00:00Z"})
		require.NoError(t, err)
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := map[string]*Coordinate{
		"full":           fullCoordinate(),
		"minimal":        {Pillar: "PL01.1.1", Sector: "5415"},
		"honeycomb only": {Honeycomb: []string{"PL12↔5415", "PL08↔62"}},
		"empty":          {},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			decoded, err := Decode(Encode(c))
			require.NoError(t, err)
			assert.True(t, c.Equal(decoded), "decode(encode(c)) must equal c\nwant: %s\ngot:  %s", Encode(c), Encode(decoded))
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("slot count must be exact", func(t *testing.T) {
		_, err := Decode("a|b|c")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
	})

	t.Run("positional slots map to canonical axes", func(t *testing.T) {
		c, err := Decode("PL01.1.1|5415|A,B" + strings.Repeat("|", 13))
		require.NoError(t, err)
		assert.Equal(t, "PL01.1.1", c.Pillar)
		assert.Equal(t, Sector("5415"), c.Sector)
		assert.Equal(t, []string{"A", "B"}, c.Honeycomb)
	})

	t.Run("malformed temporal slot fails", func(t *testing.T) {
		_, err := Decode(strings.Repeat("|", 15) + "garbage")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "temporal")
	})
}
