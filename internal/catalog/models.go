// Package catalog persists validated coordinates, content-addressed by their
// hash.
package catalog

import (
	"time"

	"axisd/internal/axis"
)

// Record is a stored coordinate plus its derived identifiers. The hash is the
// primary key: saving the same coordinate twice updates the existing record.
type Record struct {
	Hash         string           `json:"coordinate_hash"`
	Nuremberg    string           `json:"nuremberg_number"`
	USI          string           `json:"usi"`
	Coordinate   *axis.Coordinate `json:"coordinate"`
	Completeness float64          `json:"completeness_ratio"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewRecord derives a record from a coordinate at the given time.
func NewRecord(c *axis.Coordinate, now time.Time) Record {
	return Record{
		Hash:         c.Hash(),
		Nuremberg:    c.Nuremberg(),
		USI:          c.UnifiedSystemID(),
		Coordinate:   c,
		Completeness: c.Completeness(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
