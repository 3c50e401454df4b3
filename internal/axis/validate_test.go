package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("pillar and sector present is valid", func(t *testing.T) {
		r := Validate(&Coordinate{Pillar: "PL01.1.1", Sector: "5415"})
		assert.True(t, r.Valid)
		assert.Empty(t, r.Errors)
	})

	t.Run("natural language pillar accepted by loose tier", func(t *testing.T) {
		r := Validate(&Coordinate{Pillar: "machine learning", Sector: "tech"})
		assert.True(t, r.Valid)
	})

	t.Run("missing required axes aggregate", func(t *testing.T) {
		r := Validate(&Coordinate{})
		require.False(t, r.Valid)
		require.Len(t, r.Errors, 2)
		assert.Contains(t, r.Errors[0], "pillar")
		assert.Contains(t, r.Errors[1], "sector")
	})

	t.Run("malformed temporal reported with axis and format", func(t *testing.T) {
		r := Validate(&Coordinate{Pillar: "PL01.1.1", Sector: "5415", Temporal: "not-a-date"})
		require.False(t, r.Valid)
		require.Len(t, r.Errors, 1)
		assert.Contains(t, r.Errors[0], "temporal")
		assert.Contains(t, r.Errors[0], "ISO 8601")
	})

	t.Run("all violations returned together", func(t *testing.T) {
		r := Validate(&Coordinate{Temporal: "garbage"})
		assert.Len(t, r.Errors, 3)
	})

	t.Run("valid temporal forms", func(t *testing.T) {
		for _, v := range []string{"2024-01-01T00:00:00Z", "2024-01-01T00:00:00+02:00", "2024-01-01T10:30:00", "2024-01-01"} {
			r := Validate(&Coordinate{Pillar: "PL01.1.1", Sector: "5415", Temporal: v})
			assert.True(t, r.Valid, "expected %q to be accepted", v)
		}
	})
}

func TestValidateStrict(t *testing.T) {
	t.Run("loose-valid coordinate can fail strict tier", func(t *testing.T) {
		c := &Coordinate{Pillar: "machine learning", Sector: "5415"}
		assert.True(t, Validate(c).Valid)

		r := ValidateStrict(c)
		require.False(t, r.Valid)
		assert.Contains(t, r.Errors[0], "pillar")
	})

	t.Run("well-formed coordinate passes strict tier", func(t *testing.T) {
		r := ValidateStrict(fullCoordinate())
		assert.True(t, r.Valid, "errors: %v", r.Errors)
	})

	t.Run("location pattern enforced only when filled", func(t *testing.T) {
		c := &Coordinate{Pillar: "PL01.1.1", Sector: "5415", Location: "usa"}
		r := ValidateStrict(c)
		require.False(t, r.Valid)
		assert.Contains(t, r.Errors[0], "location")

		c.Location = ""
		assert.True(t, ValidateStrict(c).Valid)
	})

	t.Run("honeycomb crosslinks checked individually", func(t *testing.T) {
		c := &Coordinate{Pillar: "PL01.1.1", Sector: "5415", Honeycomb: []string{"PL12↔5415", "bogus"}}
		r := ValidateStrict(c)
		require.False(t, r.Valid)
		require.Len(t, r.Errors, 1)
		assert.Contains(t, r.Errors[0], "bogus")
	})
}

func TestMetadataRegistry(t *testing.T) {
	table := MetadataTable()
	require.Len(t, table, Count)

	for i, md := range table {
		assert.Equal(t, i+1, md.Index)
		assert.Equal(t, Keys[i], md.Key)
		assert.NotEmpty(t, md.Name)
		assert.NotEmpty(t, md.DataType)
	}

	md, ok := MetadataFor(KeyPillar)
	require.True(t, ok)
	assert.Equal(t, "Pillar Level System", md.Name)

	_, ok = MetadataFor(Key("bogus"))
	assert.False(t, ok)

	// The table is immutable: mutating a returned copy must not leak back.
	table[0].Name = "clobbered"
	fresh, _ := MetadataFor(KeyPillar)
	assert.Equal(t, "Pillar Level System", fresh.Name)
}
