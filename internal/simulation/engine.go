// Package simulation implements persona expansion, text-to-coordinate
// translation, and crosswalk analysis over the axis space. All knowledge is
// table-driven; see tables.go.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"axisd/internal/axis"
	"axisd/internal/platform/metrics"
	dErrors "axisd/pkg/domain-errors"
	"axisd/pkg/requestcontext"
)

// PersonaExpansion is the result of expanding a named role into a coordinate.
type PersonaExpansion struct {
	RoleName             string           `json:"role_name"`
	Coordinate           *axis.Coordinate `json:"coordinate"`
	ActivationScore      float64          `json:"activation_score"`
	Skills               []string         `json:"skills"`
	TraversalPath        []string         `json:"traversal_path"`
	CrosswalkConnections int              `json:"crosswalk_connections"`
	PrimaryAxes          []axis.Key       `json:"primary_axes"`
}

// Translation is a coordinate derived from natural language text.
type Translation struct {
	Coordinate *axis.Coordinate `json:"coordinate"`
	Confidence float64          `json:"confidence"`
	Rationale  []string         `json:"rationale"`
}

// CrosswalkMapping is one source-to-target value mapping found by analysis.
type CrosswalkMapping struct {
	SourceValue      string   `json:"source_value"`
	TargetValues     []string `json:"target_values"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	IntermediatePath string   `json:"intermediate_path,omitempty"`
}

// RelatedCoordinate pairs a source value with one reachable target value.
type RelatedCoordinate struct {
	SourceAxis   axis.Key `json:"source_axis"`
	SourceValue  string   `json:"source_value"`
	TargetAxis   axis.Key `json:"target_axis"`
	TargetValue  string   `json:"target_value"`
	Confidence   float64  `json:"confidence"`
	Relationship string   `json:"relationship"`
}

// CrosswalkAnalysis is the full result of a crosswalk traversal.
type CrosswalkAnalysis struct {
	SourceAxis         axis.Key            `json:"source_axis"`
	TargetAxis         axis.Key            `json:"target_axis"`
	Mappings           []CrosswalkMapping  `json:"mappings"`
	TraversalPath      []string            `json:"traversal_path"`
	RelatedCoordinates []RelatedCoordinate `json:"related_coordinates"`
	AnalyzedAt         time.Time           `json:"analysis_timestamp"`
}

// SimulationResult is the outcome of a role-driven coordinate expansion.
type SimulationResult struct {
	ExpandedCoordinate     *axis.Coordinate    `json:"expanded_coordinate"`
	PersonaActivationScore float64             `json:"persona_activation_score"`
	AxisMappingLog         []string            `json:"axis_mapping_log"`
	CrosswalkMappings      map[string][]string `json:"crosswalk_mappings,omitempty"`
	ConfidenceScores       map[string]float64  `json:"confidence_scores"`
}

// Engine runs simulations. Stateless apart from its tables; safe for
// concurrent use.
type Engine struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewEngine(logger *slog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{logger: logger, metrics: m}
}

// ExpandPersona expands a named role into a full coordinate with crosswalk
// connections and an activation score against the optional target roles.
func (e *Engine) ExpandPersona(ctx context.Context, roleName string, targetRoles []string) (*PersonaExpansion, error) {
	profile, ok := roleProfiles[roleName]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "unknown role %q, available: %s",
			roleName, strings.Join(RoleNames(), ", "))
	}

	coord := profile.coordinate()
	coord.Honeycomb = generateHoneycomb(coord)
	coord.Node = generateNode(coord)

	expansion := &PersonaExpansion{
		RoleName:             roleName,
		Coordinate:           coord,
		ActivationScore:      activationScore(profile, targetRoles),
		Skills:               profile.Skills,
		TraversalPath:        traversalPath(coord, profile.CrosswalkAxes),
		CrosswalkConnections: len(coord.Honeycomb),
		PrimaryAxes:          profile.CrosswalkAxes,
	}

	e.logger.DebugContext(ctx, "persona expanded",
		"request_id", requestcontext.RequestID(ctx),
		"role", roleName,
		"activation_score", expansion.ActivationScore,
	)
	return expansion, nil
}

// TranslateText maps natural language text onto a coordinate by pattern
// matching. Context values override matched axes; pillar and sector fall back
// to defaults so the result always validates.
func (e *Engine) TranslateText(ctx context.Context, text string, axisContext map[string]string) (*Translation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "text is required")
	}

	lower := strings.ToLower(text)
	coord := &axis.Coordinate{}
	matches := 0
	var rationale []string

	for _, key := range translatedAxes {
		for _, p := range textPatterns[key] {
			if !p.re.MatchString(lower) {
				continue
			}
			coord.SetValue(key, p.value)
			matches++
			rationale = append(rationale, fmt.Sprintf("Matched %s %q from pattern: %s", key, p.value, p.re.String()))
			break
		}
	}

	if coord.Pillar == "" {
		coord.Pillar = "PL01.1.1"
		rationale = append(rationale, "Applied default pillar: PL01.1.1")
	}
	if coord.Sector == "" {
		coord.Sector = "5415"
		rationale = append(rationale, "Applied default sector: 5415")
	}

	for _, key := range axis.Keys {
		value, ok := axisContext[string(key)]
		if !ok || value == "" {
			continue
		}
		coord.SetValue(key, value)
		rationale = append(rationale, fmt.Sprintf("Applied context %s: %s", key, value))
	}

	coord.Honeycomb = generateHoneycomb(coord)
	coord.Node = generateNode(coord)
	if len(coord.Honeycomb) > 0 {
		rationale = append(rationale, fmt.Sprintf("Generated crosswalks: %s", strings.Join(coord.Honeycomb, ", ")))
	}
	if coord.Node != "" {
		rationale = append(rationale, fmt.Sprintf("Generated node: %s", coord.Node))
	}

	e.metrics.ObserveTranslation()
	e.logger.DebugContext(ctx, "text translated",
		"request_id", requestcontext.RequestID(ctx),
		"matches", matches,
	)

	return &Translation{
		Coordinate: coord,
		Confidence: float64(matches) / float64(len(translatedAxes)),
		Rationale:  rationale,
	}, nil
}

// AnalyzeCrosswalk traverses the crosswalk rules from one axis value towards
// a target axis, trying direct, reverse, and single-intermediate paths.
func (e *Engine) AnalyzeCrosswalk(ctx context.Context, sourceAxis axis.Key, sourceValue string, targetAxis axis.Key) (*CrosswalkAnalysis, error) {
	if _, ok := axis.MetadataFor(sourceAxis); !ok {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown source axis %q", sourceAxis)
	}
	if _, ok := axis.MetadataFor(targetAxis); !ok {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown target axis %q", targetAxis)
	}
	if sourceValue == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "source value is required")
	}

	var mappings []CrosswalkMapping
	traversal := []string{fmt.Sprintf("%s:%s", sourceAxis, sourceValue)}

	if direct, ok := crosswalkRules[axisPair{sourceAxis, targetAxis}]; ok {
		for _, targetValue := range direct[sourceValue] {
			mappings = append(mappings, CrosswalkMapping{
				SourceValue:  sourceValue,
				TargetValues: []string{targetValue},
				Confidence:   0.95,
				Reasoning:    fmt.Sprintf("Direct %s to %s mapping", sourceAxis, targetAxis),
			})
			traversal = append(traversal, fmt.Sprintf("%s:%s", targetAxis, targetValue))
		}
	} else if reverse, ok := crosswalkRules[axisPair{targetAxis, sourceAxis}]; ok {
		// Walk value keys in table order so the output is deterministic.
		for _, targetValue := range orderedKeys(reverse) {
			if !slices.Contains(reverse[targetValue], sourceValue) {
				continue
			}
			mappings = append(mappings, CrosswalkMapping{
				SourceValue:  sourceValue,
				TargetValues: []string{targetValue},
				Confidence:   0.90,
				Reasoning:    fmt.Sprintf("Reverse %s to %s mapping", targetAxis, sourceAxis),
			})
			traversal = append(traversal, fmt.Sprintf("%s:%s", targetAxis, targetValue))
		}
	} else {
		for _, m := range indirectCrosswalk(sourceAxis, sourceValue, targetAxis) {
			mappings = append(mappings, m)
			if m.IntermediatePath != "" {
				traversal = append(traversal, m.IntermediatePath)
			}
		}
	}

	analysis := &CrosswalkAnalysis{
		SourceAxis:         sourceAxis,
		TargetAxis:         targetAxis,
		Mappings:           mappings,
		TraversalPath:      traversal,
		RelatedCoordinates: relatedCoordinates(sourceAxis, sourceValue, targetAxis, mappings),
		AnalyzedAt:         requestcontext.Now(ctx).UTC(),
	}

	e.logger.DebugContext(ctx, "crosswalk analyzed",
		"request_id", requestcontext.RequestID(ctx),
		"source_axis", sourceAxis,
		"target_axis", targetAxis,
		"mappings", len(mappings),
	)
	return analysis, nil
}

// Simulate expands a base coordinate with the coordinate fragments of the
// target roles. Unknown roles are skipped and noted in the mapping log.
func (e *Engine) Simulate(ctx context.Context, base *axis.Coordinate, targetRoles []string, includeCrosswalks bool) (*SimulationResult, error) {
	coord := &axis.Coordinate{Pillar: "PL01.1.1", Sector: "5415"}
	if base != nil {
		clone := *base
		coord = &clone
	}

	log := []string{"Starting axis simulation..."}
	confidence := make(map[string]float64)

	for _, role := range targetRoles {
		if _, ok := roleProfiles[role]; !ok {
			log = append(log, fmt.Sprintf("Skipped unknown role: %s", role))
			continue
		}
		expansion, err := e.ExpandPersona(ctx, role, targetRoles)
		if err != nil {
			return nil, err
		}

		// Role fragments overwrite the base where they carry a value.
		for _, key := range axis.Keys {
			switch v := expansion.Coordinate.Value(key).(type) {
			case string:
				if v != "" {
					coord.SetValue(key, v)
				}
			case []string:
				if len(v) > 0 {
					coord.Honeycomb = v
				}
			}
		}

		log = append(log, fmt.Sprintf("Expanded role: %s", role))
		log = append(log, expansion.TraversalPath...)
		confidence["role_"+role] = expansion.ActivationScore
	}

	var personaScore float64
	if len(targetRoles) > 0 {
		for _, role := range targetRoles {
			personaScore += confidence["role_"+role]
		}
		personaScore /= float64(len(targetRoles))
	}

	var crosswalks map[string][]string
	if includeCrosswalks {
		crosswalks = crosswalkSummary(coord)
	}

	log = append(log, fmt.Sprintf("Simulation complete. Persona score: %.3f", personaScore))

	return &SimulationResult{
		ExpandedCoordinate:     coord,
		PersonaActivationScore: personaScore,
		AxisMappingLog:         log,
		CrosswalkMappings:      crosswalks,
		ConfidenceScores:       confidence,
	}, nil
}

// coordinate builds the base coordinate fragment for a role profile.
func (p RoleProfile) coordinate() *axis.Coordinate {
	pillar := p.Pillar
	if pillar == "" {
		pillar = "PL01.1.1"
	}
	sector := p.Sector
	if sector == "" {
		sector = "5415"
	}
	return &axis.Coordinate{
		Pillar:         pillar,
		Sector:         axis.Sector(sector),
		Regulatory:     p.Regulatory,
		Compliance:     p.Compliance,
		RoleKnowledge:  p.RoleKnowledge,
		RoleSector:     p.RoleSector,
		RoleRegulatory: p.RoleRegulatory,
		RoleCompliance: p.RoleCompliance,
	}
}

// generateHoneycomb derives crosslink pairs from the filled core axes.
func generateHoneycomb(c *axis.Coordinate) []string {
	var links []string
	sector := string(c.Sector)
	if c.Pillar != "" && sector != "" {
		links = append(links, c.Pillar+"↔"+sector)
	}
	if c.Pillar != "" && c.Regulatory != "" {
		links = append(links, c.Pillar+"↔"+c.Regulatory)
	}
	if sector != "" && c.Regulatory != "" {
		links = append(links, sector+"↔"+c.Regulatory)
	}
	if c.Regulatory != "" && c.Compliance != "" {
		links = append(links, c.Regulatory+"↔"+c.Compliance)
	}
	return links
}

// generateNode derives the node identifier from pillar and sector.
func generateNode(c *axis.Coordinate) string {
	sector := string(c.Sector)
	switch {
	case c.Pillar != "" && sector != "":
		return "N-" + c.Pillar + "-" + sector
	case c.Pillar != "":
		return "N-" + c.Pillar
	}
	return ""
}

// activationScore blends the profile's base weight with its skill overlap
// against the target roles.
func activationScore(p RoleProfile, targetRoles []string) float64 {
	if len(targetRoles) == 0 {
		return p.ActivationWeight
	}

	var overlap float64
	for _, target := range targetRoles {
		targetProfile, ok := roleProfiles[target]
		if !ok {
			continue
		}
		overlap += jaccard(p.Skills, targetProfile.Skills)
	}
	overlap /= float64(len(targetRoles))

	score := p.ActivationWeight*0.7 + overlap*0.3
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func jaccard(a, b []string) float64 {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	intersection := 0
	union := len(set)
	for _, s := range b {
		if _, ok := set[s]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func traversalPath(c *axis.Coordinate, primary []axis.Key) []string {
	var path []string
	for _, key := range primary {
		if v, ok := c.Value(key).(string); ok && v != "" {
			path = append(path, fmt.Sprintf("%s:%s", key, v))
		}
	}
	for _, link := range c.Honeycomb {
		path = append(path, "crosswalk:"+link)
	}
	return path
}

// indirectCrosswalk searches for a two-hop path through one intermediate axis.
func indirectCrosswalk(sourceAxis axis.Key, sourceValue string, targetAxis axis.Key) []CrosswalkMapping {
	var mappings []CrosswalkMapping
	intermediates := []axis.Key{axis.KeyPillar, axis.KeySector, axis.KeyRegulatory, axis.KeyCompliance}

	for _, mid := range intermediates {
		if mid == sourceAxis || mid == targetAxis {
			continue
		}
		firstHop, ok := crosswalkRules[axisPair{sourceAxis, mid}]
		if !ok {
			continue
		}
		for _, midValue := range firstHop[sourceValue] {
			secondHop, ok := crosswalkRules[axisPair{mid, targetAxis}]
			if !ok {
				continue
			}
			targetValues := secondHop[midValue]
			if len(targetValues) == 0 {
				continue
			}
			mappings = append(mappings, CrosswalkMapping{
				SourceValue:      sourceValue,
				TargetValues:     targetValues,
				Confidence:       0.75,
				Reasoning:        fmt.Sprintf("Indirect mapping via %s:%s", mid, midValue),
				IntermediatePath: fmt.Sprintf("%s:%s", mid, midValue),
			})
		}
	}
	return mappings
}

func relatedCoordinates(sourceAxis axis.Key, sourceValue string, targetAxis axis.Key, mappings []CrosswalkMapping) []RelatedCoordinate {
	var related []RelatedCoordinate
	for _, m := range mappings {
		for _, targetValue := range m.TargetValues {
			related = append(related, RelatedCoordinate{
				SourceAxis:   sourceAxis,
				SourceValue:  sourceValue,
				TargetAxis:   targetAxis,
				TargetValue:  targetValue,
				Confidence:   m.Confidence,
				Relationship: m.Reasoning,
			})
		}
	}
	return related
}

// crosswalkSummary flattens a coordinate's relationships for the simulation
// response.
func crosswalkSummary(c *axis.Coordinate) map[string][]string {
	out := make(map[string][]string)
	if len(c.Honeycomb) > 0 {
		out["honeycomb"] = c.Honeycomb
	}

	var roles []string
	for _, key := range []axis.Key{axis.KeyRoleKnowledge, axis.KeyRoleSector, axis.KeyRoleRegulatory, axis.KeyRoleCompliance} {
		if v, ok := c.Value(key).(string); ok && v != "" {
			roles = append(roles, fmt.Sprintf("%s: %s", key, v))
		}
	}
	if len(roles) > 0 {
		out["roles"] = roles
	}

	if c.Regulatory != "" && c.Compliance != "" {
		out["regulatory_compliance"] = []string{c.Regulatory + " → " + c.Compliance}
	}
	if c.Pillar != "" && c.Sector != "" {
		out["pillar_sector"] = []string{c.Pillar + " ↔ " + string(c.Sector)}
	}
	return out
}

func orderedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
