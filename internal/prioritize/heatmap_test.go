package prioritize

import (
	"encoding/json"
	"testing"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		value, effort Level
		want          Priority
	}{
		{LevelHigh, LevelLow, PriorityHigh},
		{LevelHigh, LevelMedium, PriorityHigh},
		{LevelHigh, LevelHigh, PriorityMedium},
		{LevelMedium, LevelLow, PriorityHigh},
		{LevelMedium, LevelMedium, PriorityMedium},
		{LevelMedium, LevelHigh, PriorityLow},
		{LevelLow, LevelLow, PriorityLow},
		{LevelLow, LevelMedium, PriorityLow},
		{LevelLow, LevelHigh, PriorityNotRecommended},
	}
	for _, tc := range tests {
		t.Run(string(tc.value)+"/"+string(tc.effort), func(t *testing.T) {
			assert.Equal(t, tc.want, PriorityFor(tc.value, tc.effort))
		})
	}
}

func TestLevels(t *testing.T) {
	assert.Equal(t, LevelHigh, ValueLevel(4.2))
	assert.Equal(t, LevelHigh, ValueLevel(4))
	assert.Equal(t, LevelMedium, ValueLevel(3))
	assert.Equal(t, LevelLow, ValueLevel(2.99))

	assert.Equal(t, LevelLow, EffortLevel(2.0))
	assert.Equal(t, LevelLow, EffortLevel(2.5))
	assert.Equal(t, LevelMedium, EffortLevel(3.5))
	assert.Equal(t, LevelHigh, EffortLevel(3.6))

	assert.Equal(t, PriorityHigh, PriorityFor(ValueLevel(4.2), EffortLevel(2.0)))
}

func TestDataQuality(t *testing.T) {
	tests := []struct {
		name string
		ts   *assessment.TechStack
		want float64
	}{
		{"no tech stack", nil, 3},
		{"no answer", &assessment.TechStack{}, 3},
		{"explicit rating", &assessment.TechStack{DataQuality: assessment.Ptr(4.0)}, 4},
		{"none declared", &assessment.TechStack{DataAvailability: []string{}}, 1},
		{"two sources", &assessment.TechStack{DataAvailability: []string{"structuredData", "apiAccess"}}, 3},
		{"unknown ignored", &assessment.TechStack{DataAvailability: []string{"structuredData", "carrierPigeon"}}, 2},
		{"all sources", &assessment.TechStack{DataAvailability: []string{"structuredData", "unstructuredText", "historicalRecords", "realTimeInputs", "apiAccess"}}, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DataQuality(tc.ts))
		})
	}
}

func TestValueScore(t *testing.T) {
	pain := func(s, f, i float64) assessment.PainPoint {
		return assessment.PainPoint{Severity: &s, Frequency: &f, Impact: &i}
	}
	assert.InDelta(t, 1.67, ValueScore(pain(1, 1, 1)), 1e-9)
	assert.InDelta(t, 3.34, ValueScore(pain(2, 2, 2)), 1e-9)
	assert.Equal(t, 5.0, ValueScore(pain(5, 5, 5)), "clamped to the value range")
	assert.Equal(t, 5.0, ValueScore(assessment.PainPoint{}), "missing ratings count as 3")
}

func TestScoreItem_SupportAgentScenario(t *testing.T) {
	five := 5.0
	item := ScoreItem(1, "Support Agent", "Support",
		assessment.PainPoint{Severity: &five, Frequency: &five, Impact: &five},
		DataQuality(&assessment.TechStack{DataAvailability: []string{"structuredData", "apiAccess"}}))

	assert.Equal(t, 5.0, item.ValueScore)
	assert.Equal(t, 3.0, item.EffortScore)
	assert.Equal(t, LevelHigh, item.ValueLevel)
	assert.Equal(t, LevelMedium, item.EffortLevel)
	assert.Equal(t, PriorityHigh, item.Priority)
}

func TestSortItems(t *testing.T) {
	items := []PrioritizedItem{
		{ID: 1, ValueScore: 3.3, EffortScore: 3},
		{ID: 2, ValueScore: 5, EffortScore: 4},
		{ID: 3, ValueScore: 5, EffortScore: 2},
		{ID: 4, ValueScore: 3.3, EffortScore: 3},
		{ID: 5, ValueScore: 5, EffortScore: 2},
	}
	SortItems(items)

	var ids []int64
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int64{3, 5, 2, 1, 4}, ids)

	again := append([]PrioritizedItem(nil), items...)
	SortItems(again)
	assert.Equal(t, items, again, "sorting a sorted list is a no-op")
}

func TestHeatmap_PlaceAndEncode(t *testing.T) {
	h := NewHeatmap()
	h.Place(PrioritizedItem{ID: 7, Title: "Buyer", Department: "Procurement", ValueLevel: LevelLow, EffortLevel: LevelHigh})

	cell := h.Cell(LevelLow, LevelHigh)
	assert.Equal(t, PriorityNotRecommended, cell.Priority)
	assert.Equal(t, []HeatmapItem{{ID: 7, Title: "Buyer", Department: "Procurement"}}, cell.Items)

	raw, err := json.Marshal(h)
	require.NoError(t, err)
	var decoded map[string]map[string]map[string]struct {
		Priority string            `json:"priority"`
		Items    []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "medium", decoded["matrix"]["high"]["high"].Priority)
	assert.NotNil(t, decoded["matrix"]["high"]["low"].Items, "empty cells encode as []")
	assert.Len(t, decoded["matrix"]["low"]["high"].Items, 1)
}
