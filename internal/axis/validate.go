package axis

import (
	"fmt"
	"regexp"
	"time"

	dErrors "axisd/pkg/domain-errors"
)

// Report aggregates validation findings. Validation never fails fast: a
// client receives every violation in one round trip.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (r *Report) add(key Key, format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", key, fmt.Sprintf(format, args...)))
}

// temporalLayouts are the accepted ISO 8601 shapes, from most to least
// specific. RFC3339 covers the UTC "Z" suffix and numeric offsets.
var temporalLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTemporal parses the temporal axis value as an ISO 8601 datetime.
// Naive datetimes are interpreted as UTC.
func ParseTemporal(value string) (time.Time, error) {
	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, dErrors.Newf(dErrors.CodeValidation,
		"temporal %q is not a valid ISO 8601 datetime (expected e.g. 2024-01-01T00:00:00Z)", value)
}

// Validate applies the always-on structural tier (pillar and sector must be
// non-empty) and the format tier (temporal must be ISO 8601). Pillar format
// is deliberately loose here; the PLxx.x.x pattern lives in the metadata
// registry and is enforced only by the strict tier.
func Validate(c *Coordinate) Report {
	r := Report{}

	if c.Pillar == "" {
		r.add(KeyPillar, "required axis is empty")
	}
	if c.Sector == "" {
		r.add(KeySector, "required axis is empty")
	}
	if c.Temporal != "" {
		if _, err := ParseTemporal(c.Temporal); err != nil {
			r.add(KeyTemporal, "%q is not a valid ISO 8601 datetime (expected e.g. 2024-01-01T00:00:00Z)", c.Temporal)
		}
	}

	r.Valid = len(r.Errors) == 0
	return r
}

// strictPatterns are the documentary constraint regexes from the metadata
// registry. They apply only to filled axes and only when the caller opts in.
var strictPatterns = map[Key]*regexp.Regexp{
	KeyPillar:   regexp.MustCompile(`^PL\d{2}\.\d+\.\d+$`),
	KeyNode:     regexp.MustCompile(`^N-PL\d{2}.*$`),
	KeyLocation: regexp.MustCompile(`^[A-Z]{2}(-[A-Z0-9]{1,3})?$`),
}

var honeycombPattern = regexp.MustCompile(`^PL\d{2}.*↔.+$`)

// ValidateStrict runs Validate and then the opt-in strict tier: filled axes
// are checked against their metadata constraint patterns. Keeping this tier
// separate avoids over-rejecting AI-translated natural-language values.
func ValidateStrict(c *Coordinate) Report {
	r := Validate(c)

	for _, key := range Keys {
		pattern, ok := strictPatterns[key]
		if !ok || !c.Filled(key) {
			continue
		}
		value, _ := c.Value(key).(string)
		if !pattern.MatchString(value) {
			r.add(key, "%q does not match required pattern %s", value, pattern)
		}
	}
	for _, link := range c.Honeycomb {
		if !honeycombPattern.MatchString(link) {
			r.add(KeyHoneycomb, "crosslink %q does not match required pattern %s", link, honeycombPattern)
		}
	}

	r.Valid = len(r.Errors) == 0
	return r
}
