package handler

import (
	"strings"

	dErrors "axisd/pkg/domain-errors"
)

// coordinatePayload is a raw coordinate object. Axis handlers accept the
// coordinate directly as the request body.
type coordinatePayload struct {
	Coordinate map[string]any `json:"coordinate"`
}

// Validate implements httputil.Validatable.
func (p *coordinatePayload) Validate() error {
	if p.Coordinate == nil {
		return dErrors.New(dErrors.CodeValidation, "coordinate is required")
	}
	return nil
}

// parseRequest is the payload for POST /coordinate/parse.
type parseRequest struct {
	Nuremberg string `json:"nuremberg"`
}

func (r *parseRequest) Validate() error {
	if strings.TrimSpace(r.Nuremberg) == "" {
		return dErrors.New(dErrors.CodeValidation, "nuremberg is required")
	}
	return nil
}
