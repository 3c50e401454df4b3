// Package mathops implements the mathematical operations playground over
// axis coordinates: confidence weighting, entropy, hashing, distances, and
// related scores. All operations are pure functions of their inputs.
package mathops

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"axisd/internal/axis"
	dErrors "axisd/pkg/domain-errors"
	"axisd/pkg/requestcontext"
)

// Operation identifies a supported playground operation.
type Operation string

const (
	OpMCW            Operation = "MCW"
	OpEntropy        Operation = "entropy"
	OpCertainty      Operation = "certainty"
	OpUSI            Operation = "USI"
	OpNuremberg      Operation = "nuremberg"
	OpTemporalDelta  Operation = "temporal_delta"
	OpCompleteness   Operation = "completeness"
	OpSimilarity     Operation = "similarity"
	OpDistance       Operation = "distance"
	OpCrosswalkScore Operation = "crosswalk_score"
)

// Operations lists every supported operation in presentation order.
var Operations = []Operation{
	OpMCW, OpEntropy, OpCertainty, OpUSI, OpNuremberg,
	OpTemporalDelta, OpCompleteness, OpSimilarity, OpDistance, OpCrosswalkScore,
}

// Descriptions gives a one-line summary per operation for the ops listing.
var Descriptions = map[Operation]string{
	OpMCW:            "Mathematical Confidence Weighting - weighted presence scoring",
	OpEntropy:        "Shannon entropy of axis distribution",
	OpCertainty:      "Certainty score (1 - normalized entropy)",
	OpUSI:            "Unified System ID - SHA256 hash of regulatory overlay axes",
	OpNuremberg:      "Nuremberg number - pipe-delimited coordinate string",
	OpTemporalDelta:  "Time difference calculation",
	OpCompleteness:   "Axis completeness ratio",
	OpSimilarity:     "Coordinate similarity scoring",
	OpDistance:       "Multidimensional distance calculation",
	OpCrosswalkScore: "Crosswalk relevance scoring",
}

// Params carries optional operation inputs.
type Params struct {
	Other     *axis.Coordinate // similarity, distance
	CompareTo string           // temporal_delta; defaults to request time
	Weights   []float64        // MCW; padded or truncated to 16
}

// Result is the outcome of one operation.
type Result struct {
	Operation   Operation      `json:"operation"`
	Result      any            `json:"result"`
	Explanation string         `json:"explanation"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Engine executes playground operations. It is stateless and safe for
// concurrent use.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Execute runs the named operation against the coordinate.
func (e *Engine) Execute(ctx context.Context, op Operation, c *axis.Coordinate, p Params) (*Result, error) {
	switch op {
	case OpMCW:
		return e.mcw(c, p.Weights), nil
	case OpEntropy:
		return e.entropy(c), nil
	case OpCertainty:
		return e.certainty(c), nil
	case OpUSI:
		return e.usi(c), nil
	case OpNuremberg:
		return e.nuremberg(c), nil
	case OpTemporalDelta:
		return e.temporalDelta(ctx, c, p.CompareTo)
	case OpCompleteness:
		return e.completeness(c), nil
	case OpSimilarity:
		return e.similarity(c, p.Other)
	case OpDistance:
		return e.distance(c, p.Other)
	case OpCrosswalkScore:
		return e.crosswalkScore(c), nil
	default:
		return nil, dErrors.Newf(dErrors.CodeValidation, "unsupported operation %q", op)
	}
}

// mcw computes the weighted presence score. Weight vectors shorter than the
// axis count are padded with 1.0; longer ones are truncated.
func (e *Engine) mcw(c *axis.Coordinate, weights []float64) *Result {
	w := make([]float64, axis.Count)
	for i := range w {
		w[i] = 1.0
	}
	copy(w, weights)

	var weightedSum, totalWeight float64
	for i, key := range axis.Keys {
		presence := 0.0
		if c.Filled(key) {
			presence = 1.0
		}
		weightedSum += presence * w[i]
		totalWeight += w[i]
	}

	score := 0.0
	if totalWeight > 0 {
		score = weightedSum / totalWeight
	}

	return &Result{
		Operation: OpMCW,
		Result:    score,
		Explanation: fmt.Sprintf("MCW calculated as weighted sum of axis presence. Filled axes: %d/%d. Weighted score: %.4f",
			c.FilledAxes(), axis.Count, score),
		Metadata: map[string]any{
			"filled_axes":  c.FilledAxes(),
			"total_axes":   axis.Count,
			"weights_used": w,
		},
	}
}

// entropy computes the Shannon entropy of the filled/empty distribution.
func (e *Engine) entropy(c *axis.Coordinate) *Result {
	filled := c.FilledAxes()

	var h float64
	if filled > 0 {
		pFilled := float64(filled) / float64(axis.Count)
		pEmpty := 1 - pFilled
		if pFilled > 0 {
			h -= pFilled * math.Log2(pFilled)
		}
		if pEmpty > 0 {
			h -= pEmpty * math.Log2(pEmpty)
		}
	}

	return &Result{
		Operation: OpEntropy,
		Result:    h,
		Explanation: fmt.Sprintf("Shannon entropy of axis distribution. Filled: %d, Empty: %d. Entropy: %.4f bits",
			filled, axis.Count-filled, h),
		Metadata: map[string]any{
			"filled_count": filled,
			"empty_count":  axis.Count - filled,
			"max_entropy":  1.0,
		},
	}
}

func (e *Engine) certainty(c *axis.Coordinate) *Result {
	h, _ := e.entropy(c).Result.(float64)
	normalized := math.Min(h, 1.0)
	certainty := 1.0 - normalized

	return &Result{
		Operation: OpCertainty,
		Result:    certainty,
		Explanation: fmt.Sprintf("Certainty score calculated as 1 - normalized_entropy. Raw entropy: %.4f, Certainty: %.4f",
			h, certainty),
		Metadata: map[string]any{
			"entropy":            h,
			"normalized_entropy": normalized,
		},
	}
}

func (e *Engine) usi(c *axis.Coordinate) *Result {
	usi := c.UnifiedSystemID()
	return &Result{
		Operation: OpUSI,
		Result:    usi,
		Explanation: fmt.Sprintf("USI generated from regulatory overlay axes: regulatory(%s), compliance(%s), compliance_level(%s). SHA256 hash: %s...",
			c.Regulatory, c.Compliance, c.ComplianceLevel, usi[:16]),
		Metadata: map[string]any{
			"core_axes": map[string]string{
				"regulatory":       c.Regulatory,
				"compliance":       c.Compliance,
				"compliance_level": c.ComplianceLevel,
			},
		},
	}
}

func (e *Engine) nuremberg(c *axis.Coordinate) *Result {
	n := c.Nuremberg()
	preview := n
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	return &Result{
		Operation:   OpNuremberg,
		Result:      n,
		Explanation: fmt.Sprintf("Nuremberg number: pipe-delimited coordinate string. Length: %d characters. Format: %s", len(n), preview),
		Metadata: map[string]any{
			"length":     len(n),
			"axis_count": axis.Count,
		},
	}
}

func (e *Engine) temporalDelta(ctx context.Context, c *axis.Coordinate, compareTo string) (*Result, error) {
	if c.Temporal == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "temporal axis must be set for temporal_delta operation")
	}
	from, err := axis.ParseTemporal(c.Temporal)
	if err != nil {
		return nil, err
	}

	to := requestcontext.Now(ctx).UTC()
	if compareTo != "" {
		to, err = axis.ParseTemporal(compareTo)
		if err != nil {
			return nil, err
		}
	}

	delta := to.Sub(from)
	if delta < 0 {
		delta = -delta
	}
	days := delta.Seconds() / 86400

	return &Result{
		Operation: OpTemporalDelta,
		Result:    days,
		Explanation: fmt.Sprintf("Temporal delta between %s and %s. Difference: %.2f days (%.0f seconds)",
			c.Temporal, to.Format(time.RFC3339), days, delta.Seconds()),
		Metadata: map[string]any{
			"from_time":     c.Temporal,
			"to_time":       to.Format(time.RFC3339),
			"delta_seconds": delta.Seconds(),
		},
	}, nil
}

func (e *Engine) completeness(c *axis.Coordinate) *Result {
	ratio := c.Completeness()
	return &Result{
		Operation: OpCompleteness,
		Result:    ratio,
		Explanation: fmt.Sprintf("Completeness ratio: %d/%d axes filled. Ratio: %.4f (%.1f%%)",
			c.FilledAxes(), axis.Count, ratio, ratio*100),
		Metadata: map[string]any{
			"filled_axes": c.FilledAxes(),
			"total_axes":  axis.Count,
			"percentage":  ratio * 100,
		},
	}
}

// similarity computes Jaccard similarity over filled key:value pairs.
func (e *Engine) similarity(c, other *axis.Coordinate) (*Result, error) {
	if other == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "other coordinate required for similarity calculation")
	}

	a := filledSet(c)
	b := filledSet(other)

	intersection := 0
	for v := range a {
		if _, ok := b[v]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection

	score := 0.0
	if union > 0 {
		score = float64(intersection) / float64(union)
	}

	return &Result{
		Operation: OpSimilarity,
		Result:    score,
		Explanation: fmt.Sprintf("Jaccard similarity between coordinates. Common values: %d, Total unique: %d. Similarity: %.4f",
			intersection, union, score),
		Metadata: map[string]any{
			"intersection_size": intersection,
			"union_size":        union,
			"coord1_filled":     len(a),
			"coord2_filled":     len(b),
		},
	}, nil
}

// distance computes normalized Hamming distance over axes where both
// coordinates carry a value.
func (e *Engine) distance(c, other *axis.Coordinate) (*Result, error) {
	if other == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "other coordinate required for distance calculation")
	}

	differences, comparable := 0, 0
	for _, key := range axis.Keys {
		if !c.Filled(key) || !other.Filled(key) {
			continue
		}
		comparable++
		if fmt.Sprint(c.Value(key)) != fmt.Sprint(other.Value(key)) {
			differences++
		}
	}

	score := 0.0
	if comparable > 0 {
		score = float64(differences) / float64(comparable)
	}

	return &Result{
		Operation: OpDistance,
		Result:    score,
		Explanation: fmt.Sprintf("Normalized Hamming distance between coordinates. Differences: %d, Comparable axes: %d. Distance: %.4f",
			differences, comparable, score),
		Metadata: map[string]any{
			"differences":          differences,
			"comparable_axes":      comparable,
			"raw_hamming_distance": differences,
		},
	}, nil
}

// crosswalkScore blends honeycomb connectivity with role axis coverage.
func (e *Engine) crosswalkScore(c *axis.Coordinate) *Result {
	honeycombScore := math.Min(float64(len(c.Honeycomb))/10.0, 1.0)

	roleKeys := []axis.Key{axis.KeyRoleKnowledge, axis.KeyRoleSector, axis.KeyRoleRegulatory, axis.KeyRoleCompliance}
	filledRoles := 0
	for _, key := range roleKeys {
		if c.Filled(key) {
			filledRoles++
		}
	}
	roleBonus := float64(filledRoles) / float64(len(roleKeys))

	score := honeycombScore*0.7 + roleBonus*0.3

	return &Result{
		Operation: OpCrosswalkScore,
		Result:    score,
		Explanation: fmt.Sprintf("Crosswalk relevance score. Honeycomb connections: %d. Filled roles: %d/%d. Score: %.4f",
			len(c.Honeycomb), filledRoles, len(roleKeys), score),
		Metadata: map[string]any{
			"honeycomb_connections": len(c.Honeycomb),
			"filled_roles":          filledRoles,
			"honeycomb_score":       honeycombScore,
			"role_bonus":            roleBonus,
		},
	}
}

// Fingerprint produces an order-insensitive MD5 fingerprint of the filled
// axes. Unlike the coordinate hash it sorts key:value pairs, so it is stable
// under any axis reordering of the input payload.
func Fingerprint(c *axis.Coordinate) string {
	values := make([]string, 0, axis.Count)
	for _, key := range axis.Keys {
		if !c.Filled(key) {
			continue
		}
		switch v := c.Value(key).(type) {
		case string:
			values = append(values, fmt.Sprintf("%s:%s", key, v))
		case []string:
			values = append(values, fmt.Sprintf("%s:%s", key, strings.Join(v, ",")))
		}
	}
	sort.Strings(values)
	sum := md5.Sum([]byte(strings.Join(values, "|")))
	return hex.EncodeToString(sum[:])
}

// AxisRelevance scores the data richness of the requested axes in [0,1].
func AxisRelevance(c *axis.Coordinate, targets []axis.Key) map[axis.Key]float64 {
	scores := make(map[axis.Key]float64, len(targets))
	for _, key := range targets {
		if _, ok := axis.MetadataFor(key); !ok {
			continue
		}
		switch v := c.Value(key).(type) {
		case []string:
			scores[key] = math.Min(float64(len(v))/5.0, 1.0)
		case string:
			if v == "" {
				scores[key] = 0.0
			} else {
				scores[key] = math.Min(float64(len(v))/20.0, 1.0)
			}
		}
	}
	return scores
}

func filledSet(c *axis.Coordinate) map[string]struct{} {
	set := make(map[string]struct{}, axis.Count)
	for _, key := range axis.Keys {
		if !c.Filled(key) {
			continue
		}
		switch v := c.Value(key).(type) {
		case string:
			set[fmt.Sprintf("%s:%s", key, v)] = struct{}{}
		case []string:
			set[fmt.Sprintf("%s:%s", key, strings.Join(v, ","))] = struct{}{}
		}
	}
	return set
}
