// Package axis implements the 16-axis coordinate model: the Coordinate type,
// its canonical serializations, and the validation tiers. Everything here is
// a pure function of the coordinate contents; two coordinates with equal
// field values produce identical encodings and hashes.
package axis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Key identifies one axis of the coordinate system.
type Key string

// Canonical axis keys. The order is fixed and defines the serialization
// order of every derived encoding.
const (
	KeyPillar              Key = "pillar"
	KeySector              Key = "sector"
	KeyHoneycomb           Key = "honeycomb"
	KeyBranch              Key = "branch"
	KeyNode                Key = "node"
	KeyRegulatory          Key = "regulatory"
	KeyCompliance          Key = "compliance"
	KeyComplianceLevel     Key = "compliance_level"
	KeyAuditRequirements   Key = "audit_requirements"
	KeyRegulatoryFramework Key = "regulatory_framework"
	KeyRoleKnowledge       Key = "role_knowledge"
	KeyRoleSector          Key = "role_sector"
	KeyRoleRegulatory      Key = "role_regulatory"
	KeyRoleCompliance      Key = "role_compliance"
	KeyLocation            Key = "location"
	KeyTemporal            Key = "temporal"
)

// Keys is the canonical axis order.
var Keys = []Key{
	KeyPillar,
	KeySector,
	KeyHoneycomb,
	KeyBranch,
	KeyNode,
	KeyRegulatory,
	KeyCompliance,
	KeyComplianceLevel,
	KeyAuditRequirements,
	KeyRegulatoryFramework,
	KeyRoleKnowledge,
	KeyRoleSector,
	KeyRoleRegulatory,
	KeyRoleCompliance,
	KeyLocation,
	KeyTemporal,
}

// Count is the total number of axes.
const Count = 16

// Delimiters of the Nuremberg encoding. Values containing either are not
// escaped; the encoding is documented as lossy in that case.
const (
	FieldDelimiter = "|"
	ArrayDelimiter = ","
)

// Coordinate is an ordered record over the 16 canonical axes. All values are
// strings except honeycomb (ordered string sequence). An empty string or
// empty slice means the axis is unset. Sector accepts string or integer on
// the wire and is canonicalized to its string form.
type Coordinate struct {
	Pillar              string   `json:"pillar,omitempty"`
	Sector              Sector   `json:"sector,omitempty"`
	Honeycomb           []string `json:"honeycomb,omitempty"`
	Branch              string   `json:"branch,omitempty"`
	Node                string   `json:"node,omitempty"`
	Regulatory          string   `json:"regulatory,omitempty"`
	Compliance          string   `json:"compliance,omitempty"`
	ComplianceLevel     string   `json:"compliance_level,omitempty"`
	AuditRequirements   string   `json:"audit_requirements,omitempty"`
	RegulatoryFramework string   `json:"regulatory_framework,omitempty"`
	RoleKnowledge       string   `json:"role_knowledge,omitempty"`
	RoleSector          string   `json:"role_sector,omitempty"`
	RoleRegulatory      string   `json:"role_regulatory,omitempty"`
	RoleCompliance      string   `json:"role_compliance,omitempty"`
	Location            string   `json:"location,omitempty"`
	Temporal            string   `json:"temporal,omitempty"`
}

// Value returns the raw value of the given axis: a string for scalar axes,
// a []string for honeycomb. Unknown keys return nil.
func (c *Coordinate) Value(key Key) any {
	switch key {
	case KeyPillar:
		return c.Pillar
	case KeySector:
		return string(c.Sector)
	case KeyHoneycomb:
		return c.Honeycomb
	case KeyBranch:
		return c.Branch
	case KeyNode:
		return c.Node
	case KeyRegulatory:
		return c.Regulatory
	case KeyCompliance:
		return c.Compliance
	case KeyComplianceLevel:
		return c.ComplianceLevel
	case KeyAuditRequirements:
		return c.AuditRequirements
	case KeyRegulatoryFramework:
		return c.RegulatoryFramework
	case KeyRoleKnowledge:
		return c.RoleKnowledge
	case KeyRoleSector:
		return c.RoleSector
	case KeyRoleRegulatory:
		return c.RoleRegulatory
	case KeyRoleCompliance:
		return c.RoleCompliance
	case KeyLocation:
		return c.Location
	case KeyTemporal:
		return c.Temporal
	}
	return nil
}

// SetValue assigns a string value to a scalar axis, or splits and assigns for
// honeycomb. Unknown keys are ignored.
func (c *Coordinate) SetValue(key Key, value string) {
	switch key {
	case KeyPillar:
		c.Pillar = value
	case KeySector:
		c.Sector = Sector(value)
	case KeyHoneycomb:
		c.Honeycomb = splitHoneycomb(value)
	case KeyBranch:
		c.Branch = value
	case KeyNode:
		c.Node = value
	case KeyRegulatory:
		c.Regulatory = value
	case KeyCompliance:
		c.Compliance = value
	case KeyComplianceLevel:
		c.ComplianceLevel = value
	case KeyAuditRequirements:
		c.AuditRequirements = value
	case KeyRegulatoryFramework:
		c.RegulatoryFramework = value
	case KeyRoleKnowledge:
		c.RoleKnowledge = value
	case KeyRoleSector:
		c.RoleSector = value
	case KeyRoleRegulatory:
		c.RoleRegulatory = value
	case KeyRoleCompliance:
		c.RoleCompliance = value
	case KeyLocation:
		c.Location = value
	case KeyTemporal:
		c.Temporal = value
	}
}

// Filled reports whether the given axis carries a non-empty value.
func (c *Coordinate) Filled(key Key) bool {
	switch v := c.Value(key).(type) {
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	}
	return false
}

// AsList returns the axis values in canonical order with unset axes as nil.
func (c *Coordinate) AsList() []any {
	out := make([]any, 0, Count)
	for _, key := range Keys {
		if !c.Filled(key) {
			out = append(out, nil)
			continue
		}
		out = append(out, c.Value(key))
	}
	return out
}

// Nuremberg renders the canonical pipe-delimited form: 16 slots in axis
// order, honeycomb joined with commas, unset axes as empty slots. Values
// containing the delimiters are rendered verbatim.
func (c *Coordinate) Nuremberg() string {
	slots := make([]string, 0, Count)
	for _, key := range Keys {
		switch v := c.Value(key).(type) {
		case string:
			slots = append(slots, v)
		case []string:
			slots = append(slots, strings.Join(v, ArrayDelimiter))
		default:
			slots = append(slots, "")
		}
	}
	return strings.Join(slots, FieldDelimiter)
}

// Hash is the content address of the coordinate: SHA-256 of its Nuremberg
// form. Equal field values always hash identically.
func (c *Coordinate) Hash() string {
	sum := sha256.Sum256([]byte(c.Nuremberg()))
	return hex.EncodeToString(sum[:])
}

// UnifiedSystemID derives the USI from the regulatory overlay axes only:
// SHA-256 of "regulatory|compliance|compliance_level".
func (c *Coordinate) UnifiedSystemID() string {
	core := fmt.Sprintf("%s%s%s%s%s",
		c.Regulatory, FieldDelimiter,
		c.Compliance, FieldDelimiter,
		c.ComplianceLevel,
	)
	sum := sha256.Sum256([]byte(core))
	return hex.EncodeToString(sum[:])
}

// FilledAxes counts axes carrying a non-empty value.
func (c *Coordinate) FilledAxes() int {
	n := 0
	for _, key := range Keys {
		if c.Filled(key) {
			n++
		}
	}
	return n
}

// Completeness is the filled-axis ratio in [0,1], exactly filled/16.
func (c *Coordinate) Completeness() float64 {
	return float64(c.FilledAxes()) / float64(Count)
}

// Equal reports field-value equality across all axes.
func (c *Coordinate) Equal(other *Coordinate) bool {
	if other == nil {
		return false
	}
	return c.Nuremberg() == other.Nuremberg()
}

func splitHoneycomb(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ArrayDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
