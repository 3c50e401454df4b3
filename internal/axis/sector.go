package axis

import (
	"encoding/json"
	"strconv"

	dErrors "axisd/pkg/domain-errors"
)

// Sector is the industry/domain axis. Clients may send it as a JSON string
// or integer (NAICS-style codes appear both ways); the server canonicalizes
// to the string form so encodings stay deterministic.
type Sector string

// UnmarshalJSON accepts a JSON string or number.
func (s *Sector) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Sector(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return dErrors.Newf(dErrors.CodeBadRequest, "sector must be a string or integer, got %s", string(data))
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return dErrors.Newf(dErrors.CodeBadRequest, "sector must be a string or integer, got %s", n.String())
	}
	*s = Sector(n.String())
	return nil
}

func (s Sector) String() string { return string(s) }
