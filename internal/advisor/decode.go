package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blackwell-systems/aiready/internal/assessment"
)

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	return text
}

// decodeRecommendations accepts exactly two reply shapes: a bare JSON
// array of recommendations, or an object whose "recommendations" key (or
// whose only key) holds that array. Anything else fails closed.
func decodeRecommendations(text string) ([]assessment.Recommendation, error) {
	raw := []byte(stripFences(text))
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedResponse)
	}

	switch trimmed[0] {
	case '[':
		return decodeRecommendationArray(trimmed)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if inner, ok := obj["recommendations"]; ok {
			return decodeRecommendationArray(inner)
		}
		if len(obj) == 1 {
			for _, inner := range obj {
				return decodeRecommendationArray(inner)
			}
		}
		return nil, fmt.Errorf("%w: object without a recommendations array (%d keys)", ErrMalformedResponse, len(obj))
	default:
		return nil, fmt.Errorf("%w: unexpected reply %.80q", ErrMalformedResponse, string(trimmed))
	}
}

func decodeRecommendationArray(raw json.RawMessage) ([]assessment.Recommendation, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: recommendations is not an array", ErrMalformedResponse)
	}
	var recs []assessment.Recommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return recs, nil
}

// Metric is one predicted performance improvement.
type Metric struct {
	Name        string  `json:"name"`
	Improvement float64 `json:"improvement"`
}

// PerformanceEstimate is the predicted impact of AI on one role.
type PerformanceEstimate struct {
	Metrics            []Metric `json:"metrics"`
	EstimatedAnnualROI float64  `json:"estimatedAnnualRoi"`
}

func decodePerformance(text string) (PerformanceEstimate, error) {
	var probe struct {
		Metrics []struct {
			Name        string            `json:"name"`
			Improvement assessment.Number `json:"improvement"`
		} `json:"metrics"`
		EstimatedAnnualROI *float64 `json:"estimatedAnnualRoi"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &probe); err != nil {
		return PerformanceEstimate{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if probe.Metrics == nil || probe.EstimatedAnnualROI == nil {
		return PerformanceEstimate{}, fmt.Errorf("%w: missing metrics or estimatedAnnualRoi", ErrMalformedResponse)
	}
	est := PerformanceEstimate{EstimatedAnnualROI: *probe.EstimatedAnnualROI}
	for _, m := range probe.Metrics {
		est.Metrics = append(est.Metrics, Metric{Name: m.Name, Improvement: float64(m.Improvement)})
	}
	return est, nil
}

// CapabilityGroup is one set of duplicates and the capability they merge
// into.
type CapabilityGroup struct {
	PrimaryCapabilityID    int64   `json:"primary_capability_id"`
	DuplicateCapabilityIDs []int64 `json:"duplicate_capability_ids"`
	Rationale              string  `json:"rationale"`
}

// GroupingResult is the provider's verdict on one batch of capabilities.
type GroupingResult struct {
	CapabilityGroups        []CapabilityGroup `json:"capability_groups"`
	StandaloneCapabilityIDs []int64           `json:"standalone_capability_ids"`
}

// DecodeGrouping parses a rationalization reply. The result may be
// wrapped under "rationalization_result" or bare.
func DecodeGrouping(text string) (*GroupingResult, error) {
	var wrapped struct {
		Result *GroupingResult `json:"rationalization_result"`
		GroupingResult
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if wrapped.Result != nil && wrapped.Result.CapabilityGroups != nil {
		return wrapped.Result, nil
	}
	if wrapped.CapabilityGroups != nil {
		return &wrapped.GroupingResult, nil
	}
	return nil, fmt.Errorf("%w: no capability_groups", ErrMalformedResponse)
}
