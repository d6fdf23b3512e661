package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "████████░░ 80.0/100", ScoreBar(80, 10))
	assert.Equal(t, "░░░░░░░░░░ -5.0/100", ScoreBar(-5, 10))
	assert.Equal(t, "██████████ 120.0/100", ScoreBar(120, 10))
	assert.Equal(t, 20, strings.Count(ScoreBar(50, 0), "█")+strings.Count(ScoreBar(50, 0), "░"))
}

func TestRatingBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "███░░ 3.2/5", RatingBar(3.2))
	assert.Equal(t, "█████ 5.0/5", RatingBar(5))
	assert.Equal(t, "░░░░░ 0.0/5", RatingBar(0))
}

func TestMoney(t *testing.T) {
	tests := map[float64]string{
		0:         "$0",
		999:       "$999",
		1000:      "$1,000",
		150000:    "$150,000",
		1234567.6: "$1,234,568",
		-2500:     "-$2,500",
	}
	for in, want := range tests {
		assert.Equal(t, want, Money(in), "Money(%v)", in)
	}
}

func TestSection(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	out := Section("Heatmap")
	assert.Contains(t, out, "Heatmap")
	assert.Contains(t, out, strings.Repeat("─", 66))
}
