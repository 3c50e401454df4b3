package handler

import (
	"axisd/internal/axis"
	"axisd/internal/mathops"
	dErrors "axisd/pkg/domain-errors"
)

// playRequest is the payload for POST /math/play.
type playRequest struct {
	Operation       mathops.Operation `json:"operation"`
	Coordinate      map[string]any    `json:"coordinate"`
	OtherCoordinate map[string]any    `json:"other_coordinate,omitempty"`
	CompareTo       string            `json:"compare_to,omitempty"`
	Weights         []float64         `json:"weights,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *playRequest) Validate() error {
	if r.Operation == "" {
		return dErrors.New(dErrors.CodeValidation, "operation is required")
	}
	if r.Coordinate == nil {
		return dErrors.New(dErrors.CodeValidation, "coordinate is required")
	}
	return nil
}

// coordinates parses the primary and optional comparison coordinate.
func (r *playRequest) coordinates() (*axis.Coordinate, *axis.Coordinate, error) {
	coord, err := axis.ParseMap(r.Coordinate)
	if err != nil {
		return nil, nil, dErrors.Wrap(dErrors.CodeValidation, "invalid coordinate", err)
	}
	if r.OtherCoordinate == nil {
		return coord, nil, nil
	}
	other, err := axis.ParseMap(r.OtherCoordinate)
	if err != nil {
		return nil, nil, dErrors.Wrap(dErrors.CodeValidation, "invalid other_coordinate", err)
	}
	return coord, other, nil
}
