package simulation

import (
	"regexp"

	"axisd/internal/axis"
)

// RoleProfile describes a persona and the coordinate fragment it expands to.
type RoleProfile struct {
	Name             string     `json:"name"`
	Pillar           string     `json:"pillar,omitempty"`
	Sector           string     `json:"sector,omitempty"`
	Regulatory       string     `json:"regulatory,omitempty"`
	Compliance       string     `json:"compliance,omitempty"`
	RoleKnowledge    string     `json:"role_knowledge,omitempty"`
	RoleSector       string     `json:"role_sector,omitempty"`
	RoleRegulatory   string     `json:"role_regulatory,omitempty"`
	RoleCompliance   string     `json:"role_compliance,omitempty"`
	Skills           []string   `json:"skills"`
	ActivationWeight float64    `json:"activation_weight"`
	CrosswalkAxes    []axis.Key `json:"crosswalk_axes"`
}

// roleProfiles is the built-in persona library, keyed by role name.
var roleProfiles = map[string]RoleProfile{
	"Data Scientist": {
		Name:             "Data Scientist",
		Pillar:           "PL25.6.1",
		Sector:           "5415",
		RoleKnowledge:    "Data Scientist",
		Skills:           []string{"machine_learning", "statistics", "python", "data_analysis"},
		ActivationWeight: 0.95,
		CrosswalkAxes:    []axis.Key{axis.KeyPillar, axis.KeySector, axis.KeyRegulatory},
	},
	"Software Engineer": {
		Name:             "Software Engineer",
		Pillar:           "PL09.3.2",
		Sector:           "5415",
		RoleKnowledge:    "Software Engineer",
		Skills:           []string{"programming", "software_architecture", "apis", "databases"},
		ActivationWeight: 0.90,
		CrosswalkAxes:    []axis.Key{axis.KeyPillar, axis.KeySector, axis.KeyCompliance},
	},
	"Healthcare Analyst": {
		Name:             "Healthcare Analyst",
		Pillar:           "PL15.4.3",
		Sector:           "6215",
		Regulatory:       "HIPAA-164",
		RoleKnowledge:    "Healthcare Analyst",
		RoleSector:       "Healthcare Analyst",
		Skills:           []string{"medical_data", "healthcare_systems", "patient_privacy"},
		ActivationWeight: 0.88,
		CrosswalkAxes:    []axis.Key{axis.KeyPillar, axis.KeySector, axis.KeyRegulatory, axis.KeyCompliance},
	},
	"Physicist": {
		Name:             "Physicist",
		Pillar:           "PL12.2.1",
		Sector:           "5417",
		RoleKnowledge:    "Physicist",
		Skills:           []string{"theoretical_physics", "mathematics", "modeling", "research"},
		ActivationWeight: 0.85,
		CrosswalkAxes:    []axis.Key{axis.KeyPillar, axis.KeySector},
	},
	"Compliance Auditor": {
		Name:             "Compliance Auditor",
		Pillar:           "PL18.4.7",
		Regulatory:       "CFR_40.122",
		Compliance:       "ISO9001",
		RoleKnowledge:    "Compliance Auditor",
		RoleCompliance:   "Compliance Auditor",
		Skills:           []string{"audit", "risk_assessment", "regulatory_compliance", "documentation"},
		ActivationWeight: 0.92,
		CrosswalkAxes:    []axis.Key{axis.KeyRegulatory, axis.KeyCompliance, axis.KeyPillar},
	},
	"GDPR Compliance Officer": {
		Name:             "GDPR Compliance Officer",
		Pillar:           "PL18.4.7",
		Regulatory:       "GDPR-ART5",
		Compliance:       "ISO27001",
		RoleRegulatory:   "GDPR Compliance Officer",
		Skills:           []string{"privacy_law", "data_protection", "gdpr", "compliance_management"},
		ActivationWeight: 0.93,
		CrosswalkAxes:    []axis.Key{axis.KeyRegulatory, axis.KeyCompliance, axis.KeyLocation},
	},
	"Manufacturing Engineer": {
		Name:             "Manufacturing Engineer",
		Pillar:           "PL14.3.2",
		Sector:           "3345",
		Compliance:       "ISO9001",
		RoleSector:       "Manufacturing Engineer",
		Skills:           []string{"process_optimization", "quality_control", "lean_manufacturing"},
		ActivationWeight: 0.87,
		CrosswalkAxes:    []axis.Key{axis.KeyPillar, axis.KeySector, axis.KeyCompliance},
	},
	"Cybersecurity Specialist": {
		Name:             "Cybersecurity Specialist",
		Pillar:           "PL18.4.7",
		Sector:           "5415",
		Regulatory:       "GDPR-ART32",
		Compliance:       "NIST_CSF",
		RoleKnowledge:    "Cybersecurity Specialist",
		Skills:           []string{"information_security", "threat_analysis", "incident_response"},
		ActivationWeight: 0.94,
		CrosswalkAxes:    []axis.Key{axis.KeyPillar, axis.KeySector, axis.KeyRegulatory, axis.KeyCompliance},
	},
}

// roleNames lists the persona library in stable presentation order.
var roleNames = []string{
	"Data Scientist",
	"Software Engineer",
	"Healthcare Analyst",
	"Physicist",
	"Compliance Auditor",
	"GDPR Compliance Officer",
	"Manufacturing Engineer",
	"Cybersecurity Specialist",
}

type axisPair struct {
	From axis.Key
	To   axis.Key
}

// crosswalkRules maps values of one axis onto plausible values of another.
var crosswalkRules = map[axisPair]map[string][]string{
	{axis.KeyPillar, axis.KeySector}: {
		"PL25.6.1": {"5415", "6215"}, // data science -> software/healthcare
		"PL12.2.1": {"5417", "3345"}, // physics -> R&D/manufacturing
		"PL18.4.7": {"5415", "9281"}, // cybersecurity -> software/defense
		"PL15.4.3": {"6215", "6216"}, // healthcare -> medical
		"PL14.3.2": {"3345", "3346"}, // engineering -> manufacturing
	},
	{axis.KeySector, axis.KeyRegulatory}: {
		"6215": {"HIPAA-164", "FDA-CFR21"},
		"5415": {"GDPR-ART5", "SOX-404"},
		"9281": {"ITAR", "NIST_800-53"},
		"3345": {"OSHA", "EPA-CAA"},
	},
	{axis.KeyRegulatory, axis.KeyCompliance}: {
		"HIPAA-164": {"ISO27001", "SOC2"},
		"GDPR-ART5": {"ISO27001", "SOC2"},
		"ITAR":      {"CMMC", "ISO27001"},
		"OSHA":      {"ISO45001", "ISO14001"},
		"FDA-CFR21": {"ISO13485", "GMP"},
	},
}

// textPattern binds a compiled indicator pattern to the axis value it implies.
// Patterns per axis are checked in order and the first match wins.
type textPattern struct {
	re    *regexp.Regexp
	value string
}

var textPatterns = map[axis.Key][]textPattern{
	axis.KeyPillar: {
		{regexp.MustCompile(`data science|machine learning|ai|artificial intelligence`), "PL25.6.1"},
		{regexp.MustCompile(`physics|theoretical physics|quantum`), "PL12.2.1"},
		{regexp.MustCompile(`cybersecurity|information security|infosec`), "PL18.4.7"},
		{regexp.MustCompile(`healthcare|medical|patient`), "PL15.4.3"},
		{regexp.MustCompile(`engineering|manufacturing|industrial`), "PL14.3.2"},
	},
	axis.KeySector: {
		{regexp.MustCompile(`healthcare|medical|hospital|clinic`), "6215"},
		{regexp.MustCompile(`software|tech|programming|development`), "5415"},
		{regexp.MustCompile(`defense|military|government`), "9281"},
		{regexp.MustCompile(`manufacturing|factory|production`), "3345"},
		{regexp.MustCompile(`research|r&d|laboratory`), "5417"},
	},
	axis.KeyRegulatory: {
		{regexp.MustCompile(`hipaa|health insurance`), "HIPAA-164"},
		{regexp.MustCompile(`gdpr|privacy|data protection`), "GDPR-ART5"},
		{regexp.MustCompile(`itar|export control`), "ITAR"},
		{regexp.MustCompile(`osha|workplace safety`), "OSHA"},
		{regexp.MustCompile(`fda|drug|medical device`), "FDA-CFR21"},
	},
	axis.KeyCompliance: {
		{regexp.MustCompile(`iso 27001|information security management`), "ISO27001"},
		{regexp.MustCompile(`soc 2|service organization`), "SOC2"},
		{regexp.MustCompile(`iso 9001|quality management`), "ISO9001"},
		{regexp.MustCompile(`nist|cybersecurity framework`), "NIST_CSF"},
		{regexp.MustCompile(`cmmc|cybersecurity maturity`), "CMMC"},
	},
}

// translatedAxes is the order in which text translation scans axes; it also
// bounds the confidence denominator.
var translatedAxes = []axis.Key{axis.KeyPillar, axis.KeySector, axis.KeyRegulatory, axis.KeyCompliance}

// Roles returns the persona library in stable order.
func Roles() []RoleProfile {
	out := make([]RoleProfile, 0, len(roleNames))
	for _, name := range roleNames {
		out = append(out, roleProfiles[name])
	}
	return out
}

// RoleNames returns the names of the available personas.
func RoleNames() []string {
	out := make([]string, len(roleNames))
	copy(out, roleNames)
	return out
}
