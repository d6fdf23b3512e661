package assessment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapability_Lifecycle(t *testing.T) {
	c := Capability{ID: 4}
	assert.True(t, c.IsActive(), "nil lifecycle is active")
	assert.Equal(t, int64(4), c.CanonicalID())

	c.Lifecycle = Active{}
	assert.True(t, c.IsActive())

	c.Lifecycle = DuplicateOf{CanonicalID: 2}
	assert.False(t, c.IsActive())
	assert.Equal(t, int64(2), c.CanonicalID())
}

func TestCapability_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(Capability{ID: 4, Name: "Triage", Category: "Automation", Lifecycle: DuplicateOf{CanonicalID: 2}})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, true, got["isDuplicate"])
	assert.Equal(t, 2.0, got["mergedIntoId"])

	raw, err = json.Marshal(Capability{ID: 2, Name: "Triage", Category: "Automation"})
	require.NoError(t, err)
	got = nil
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, false, got["isDuplicate"])
	assert.NotContains(t, got, "mergedIntoId")
}

func TestRecommendation_Draft(t *testing.T) {
	var r Recommendation
	require.NoError(t, json.Unmarshal([]byte(`{
		"capabilityName": "Invoice Extraction",
		"capabilityCategory": "Document Processing",
		"tags": ["finance"],
		"default_value_score": "80",
		"default_ease_score": 60
	}`), &r))

	d := r.Draft()
	assert.Equal(t, "Invoice Extraction", d.Name)
	assert.Equal(t, "Document Processing", d.Category)
	assert.Equal(t, []string{"finance"}, d.Tags)
	require.NotNil(t, d.DefaultValueScore)
	assert.Equal(t, 80.0, *d.DefaultValueScore)
	require.NotNil(t, d.DefaultEaseScore)
	assert.Equal(t, 60.0, *d.DefaultEaseScore)
	assert.Nil(t, d.DefaultImpactScore)
}
