package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualLen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "hello", 5},
		{"empty", "", 0},
		{"bold", "\x1b[1mhello\x1b[0m", 5},
		{"color", "\x1b[31mred\x1b[0m", 3},
		{"multiple sequences", "\x1b[1m\x1b[34mblue bold\x1b[0m", 9},
		{"block characters", "██░░", 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, visualLen(tc.input))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "hi        ", pad("hi", 10))
	assert.Equal(t, "hello", pad("hello", 5))
	assert.Equal(t, "toolong", pad("toolong", 3))
	assert.Equal(t, "\x1b[31mred\x1b[0m  ", pad("\x1b[31mred\x1b[0m", 5))
	assert.Equal(t, "  4.2", padLeft("4.2", 5))
	assert.Equal(t, "toolong", padLeft("toolong", 3))
}

func TestTable_Render(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Role", "Priority")
	tbl.AddRow("Support Agent", "high")
	tbl.AddRow("Analyst")
	tbl.AddRow("Clerk", "low", "dropped")

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Role           Priority", lines[0])
	assert.Equal(t, strings.Repeat("─", 13)+"  "+strings.Repeat("─", 8), lines[1])
	assert.Equal(t, "Support Agent  high    ", lines[2])
	assert.Equal(t, "Analyst                ", lines[3])
	assert.NotContains(t, out, "dropped")
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, out, tbl.String())

	var buf bytes.Buffer
	require.NoError(t, tbl.Fprint(&buf))
	assert.Equal(t, out, buf.String())
}

func TestTable_StyledCellsAlign(t *testing.T) {
	tbl := NewTable("A", "B")
	tbl.AddRow("\x1b[32mok\x1b[0m", "x")
	tbl.AddRow("longer", "y")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, visualLen(lines[2]), visualLen(lines[3]))
}

func TestTable_AlignRight(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Component", "Weight").AlignRight(1, 7)
	tbl.AddRow("Adoption rate", "0.250")
	tbl.AddRow("Time saved", "1")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Component      Weight", lines[0])
	assert.Equal(t, "Adoption rate   0.250", lines[2])
	assert.Equal(t, "Time saved          1", lines[3])
}

func TestTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, NewTable().Render())
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	assert.True(t, IsNoColor())
	assert.NotContains(t, StyleHeader.Render("test"), "\x1b[")

	SetNoColor(false)
	assert.False(t, IsNoColor())
	assert.Equal(t, "test", strings.TrimSpace(StyleLabel.Render("test")))
}
