package handler

import (
	"axisd/internal/axis"
	dErrors "axisd/pkg/domain-errors"
)

// translateRequest is the payload for POST /translate/text.
type translateRequest struct {
	Text        string            `json:"text"`
	TargetAxes  []string          `json:"target_axes,omitempty"`
	AxisContext map[string]string `json:"context,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *translateRequest) Validate() error {
	if r.Text == "" {
		return dErrors.New(dErrors.CodeValidation, "text is required")
	}
	return nil
}

// expandRequest is the payload for POST /persona/expand.
type expandRequest struct {
	RoleName    string   `json:"role_name"`
	TargetRoles []string `json:"target_roles,omitempty"`
}

func (r *expandRequest) Validate() error {
	if r.RoleName == "" {
		return dErrors.New(dErrors.CodeValidation, "role_name is required")
	}
	return nil
}

// simulateRequest is the payload for POST /simulate.
type simulateRequest struct {
	BaseCoordinate    map[string]any `json:"base_coordinate,omitempty"`
	TargetRoles       []string       `json:"target_roles,omitempty"`
	ExpansionRules    []string       `json:"expansion_rules,omitempty"`
	IncludeCrosswalks bool           `json:"include_crosswalks,omitempty"`
}

func (r *simulateRequest) Validate() error { return nil }

func (r *simulateRequest) baseCoordinate() (*axis.Coordinate, error) {
	if r.BaseCoordinate == nil {
		return nil, nil
	}
	coord, err := axis.ParseMap(r.BaseCoordinate)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeValidation, "invalid base_coordinate", err)
	}
	return coord, nil
}

// crosswalkRequest is the payload for POST /crosswalk/analyze.
type crosswalkRequest struct {
	SourceAxis  string `json:"source_axis"`
	SourceValue string `json:"source_value"`
	TargetAxis  string `json:"target_axis"`
}

func (r *crosswalkRequest) Validate() error {
	if r.SourceAxis == "" {
		return dErrors.New(dErrors.CodeValidation, "source_axis is required")
	}
	if r.SourceValue == "" {
		return dErrors.New(dErrors.CodeValidation, "source_value is required")
	}
	if r.TargetAxis == "" {
		return dErrors.New(dErrors.CodeValidation, "target_axis is required")
	}
	return nil
}
