package axis

// Metadata is the static descriptor of one axis: position, naming, the
// expected data type, example values, and advisory constraints. The table is
// documentary: constraints here parameterize the strict validation tier and
// UI rendering but are not enforced by the codec itself.
type Metadata struct {
	Index       int            `json:"index"`
	Key         Key            `json:"key"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Formula     string         `json:"formula,omitempty"`
	DataType    string         `json:"data_type"`
	Examples    []string       `json:"examples"`
	Constraints map[string]any `json:"constraints,omitempty"`
}

// metadataTable is initialized once and never mutated; concurrent reads are
// safe without synchronization.
var metadataTable = []Metadata{
	{
		Index:       1,
		Key:         KeyPillar,
		Name:        "Pillar Level System",
		Description: "Human knowledge architecture primary anchor/index",
		Formula:     "PLxx.x.x",
		DataType:    "string",
		Examples:    []string{"PL01.1.1", "PL12.2.1", "PL08.4.2"},
		Constraints: map[string]any{"pattern": `^PL\d{2}\.\d+\.\d+$`},
	},
	{
		Index:       2,
		Key:         KeySector,
		Name:        "Sector of Industry",
		Description: "Industry/domain codes (NAICS, SIC, etc.)",
		Formula:     "Integer or string code",
		DataType:    "string|int",
		Examples:    []string{"5415", "62", "Healthcare", "541511"},
		Constraints: map[string]any{"min_length": 1},
	},
	{
		Index:       3,
		Key:         KeyHoneycomb,
		Name:        "Honeycomb System",
		Description: "Crosslinks/pairings (pillar↔sector); mesh for dynamic crosswalks",
		Formula:     "[Pillar↔Sector,...]",
		DataType:    "array[string]",
		Examples:    []string{"PL12↔5415", "PL08↔Healthcare"},
		Constraints: map[string]any{"pattern": `^PL\d{2}.*↔.+$`},
	},
	{
		Index:       4,
		Key:         KeyBranch,
		Name:        "Branch System",
		Description: "Disciplinary/industry hierarchy/taxonomy",
		Formula:     "Branch path code",
		DataType:    "string",
		Examples:    []string{"TECH.AI.ML", "HEALTH.CLINICAL.NURSING"},
		Constraints: map[string]any{"separator": "."},
	},
	{
		Index:       5,
		Key:         KeyNode,
		Name:        "Node System",
		Description: "Cross-sector node/convergence overlays",
		Formula:     "N-{Pillar}-{Sector}",
		DataType:    "string",
		Examples:    []string{"N-PL12-5415", "N-PL08-Healthcare"},
		Constraints: map[string]any{"pattern": `^N-PL\d{2}.*$`},
	},
	{
		Index:       6,
		Key:         KeyRegulatory,
		Name:        "Regulatory (Octopus)",
		Description: "Regulatory overlays (CFR, GDPR, HIPAA, etc.)",
		Formula:     "Regulatory code",
		DataType:    "string",
		Examples:    []string{"CFR-21", "GDPR", "HIPAA", "SOX"},
		Constraints: map[string]any{"min_length": 2},
	},
	{
		Index:       7,
		Key:         KeyCompliance,
		Name:        "Compliance (Spiderweb)",
		Description: "Standard/compliance overlays (ISO, NIST, etc.)",
		Formula:     "Compliance code",
		DataType:    "string",
		Examples:    []string{"ISO-27001", "NIST-800-53", "SOC2", "FedRAMP"},
		Constraints: map[string]any{"min_length": 2},
	},
	{
		Index:       8,
		Key:         KeyComplianceLevel,
		Name:        "Compliance Level",
		Description: "Required strictness of the compliance posture",
		Formula:     "Level label",
		DataType:    "string",
		Examples:    []string{"strict", "moderate", "basic"},
	},
	{
		Index:       9,
		Key:         KeyAuditRequirements,
		Name:        "Audit Requirements",
		Description: "Depth of audit evidence required",
		Formula:     "Requirement label",
		DataType:    "string",
		Examples:    []string{"comprehensive", "standard", "minimal"},
	},
	{
		Index:       10,
		Key:         KeyRegulatoryFramework,
		Name:        "Regulatory Framework",
		Description: "Named regulatory framework governing the item",
		Formula:     "Framework name",
		DataType:    "string",
		Examples:    []string{"HIPAA", "GDPR", "SOX", "FedRAMP"},
	},
	{
		Index:       11,
		Key:         KeyRoleKnowledge,
		Name:        "Knowledge Role/Persona",
		Description: "Persona/job/skill mapping (knowledge domain)",
		Formula:     "Role identifier",
		DataType:    "string",
		Examples:    []string{"Data Scientist", "Software Engineer", "Compliance Officer"},
		Constraints: map[string]any{"min_length": 2},
	},
	{
		Index:       12,
		Key:         KeyRoleSector,
		Name:        "Sector Expert Role",
		Description: "Persona (industry alignment)",
		Formula:     "Role identifier",
		DataType:    "string",
		Examples:    []string{"Healthcare Analyst", "Financial Advisor", "Manufacturing Engineer"},
		Constraints: map[string]any{"min_length": 2},
	},
	{
		Index:       13,
		Key:         KeyRoleRegulatory,
		Name:        "Regulatory Expert Role",
		Description: "Persona (regulatory/compliance)",
		Formula:     "Role identifier",
		DataType:    "string",
		Examples:    []string{"GDPR Officer", "HIPAA Compliance", "FDA Specialist"},
		Constraints: map[string]any{"min_length": 2},
	},
	{
		Index:       14,
		Key:         KeyRoleCompliance,
		Name:        "Compliance Expert/USI",
		Description: "Compliance persona/unified system orchestrator",
		Formula:     "Role/hash identifier",
		DataType:    "string",
		Examples:    []string{"ISO Auditor", "NIST Specialist", "SOC Analyst"},
		Constraints: map[string]any{"min_length": 2},
	},
	{
		Index:       15,
		Key:         KeyLocation,
		Name:        "Location",
		Description: "Geospatial/region anchor (ISO 3166)",
		Formula:     "ISO 3166 country/region code",
		DataType:    "string",
		Examples:    []string{"US", "US-CA", "GB", "DE", "JP"},
		Constraints: map[string]any{"pattern": `^[A-Z]{2}(-[A-Z0-9]{1,3})?$`},
	},
	{
		Index:       16,
		Key:         KeyTemporal,
		Name:        "Temporal",
		Description: "Time/version window (ISO 8601)",
		Formula:     "ISO 8601 datetime",
		DataType:    "string",
		Examples:    []string{"2024-01-01T00:00:00Z", "2024-06-30", "2024-01-15T10:00:00Z"},
		Constraints: map[string]any{"format": "iso8601"},
	},
}

var metadataByKey = func() map[Key]Metadata {
	m := make(map[Key]Metadata, len(metadataTable))
	for _, md := range metadataTable {
		m[md.Key] = md
	}
	return m
}()

// MetadataTable returns the full axis metadata in canonical order. The
// returned slice is a copy; callers cannot mutate the registry.
func MetadataTable() []Metadata {
	out := make([]Metadata, len(metadataTable))
	copy(out, metadataTable)
	return out
}

// MetadataFor looks up the metadata record for an axis key.
func MetadataFor(key Key) (Metadata, bool) {
	md, ok := metadataByKey[key]
	return md, ok
}
