package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    string            `json:"action"`
	Subject   string            `json:"subject"`
	Success   bool              `json:"success"`
	RequestID string            `json:"request_id,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
}

// Actions recorded by the service.
const (
	ActionCoordinateSaved     = "coordinate.saved"
	ActionCoordinateDeleted   = "coordinate.deleted"
	ActionCoordinateValidated = "coordinate.validated"
	ActionTextTranslated      = "text.translated"
)
