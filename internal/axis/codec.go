package axis

import (
	"encoding/json"
	"strconv"
	"strings"

	dErrors "axisd/pkg/domain-errors"
)

// ParseMap builds a Coordinate from a loosely typed mapping (decoded JSON).
// Unknown keys are ignored. Sector is coerced from string or number.
// Honeycomb accepts a string slice or a single comma-joined string. The only
// hard failure is a temporal value that does not parse as ISO 8601.
func ParseMap(raw map[string]any) (*Coordinate, error) {
	c := &Coordinate{}
	for _, key := range Keys {
		v, ok := raw[string(key)]
		if !ok || v == nil {
			continue
		}
		switch key {
		case KeyHoneycomb:
			c.Honeycomb = coerceStrings(v)
		case KeySector:
			c.Sector = Sector(coerceString(v))
		default:
			c.SetValue(key, coerceString(v))
		}
	}

	if c.Temporal != "" {
		if _, err := ParseTemporal(c.Temporal); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Encode renders the coordinate's Nuremberg string. Delimiter collisions in
// field values are not escaped; see Decode.
func Encode(c *Coordinate) string {
	return c.Nuremberg()
}

// Decode parses a Nuremberg string back into a Coordinate. It is the inverse
// of Encode provided no field value contained the field or array delimiter.
// The input must carry exactly 16 positional slots.
func Decode(s string) (*Coordinate, error) {
	slots := strings.Split(s, FieldDelimiter)
	if len(slots) != Count {
		return nil, dErrors.Newf(dErrors.CodeValidation,
			"nuremberg string must have %d axis slots, got %d", Count, len(slots))
	}

	c := &Coordinate{}
	for i, key := range Keys {
		value := strings.TrimSpace(slots[i])
		if value == "" {
			continue
		}
		c.SetValue(key, value)
	}

	if c.Temporal != "" {
		if _, err := ParseTemporal(c.Temporal); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; axis codes are integral.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func coerceStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := coerceString(e); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		return splitHoneycomb(t)
	default:
		return nil
	}
}
