package observability

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestFormatChart(t *testing.T) {
	out := FormatChart([]types.ChartPoint{
		{Label: "Acme - SRE", Value: 100},
		{Label: "Globex - Very Long Role Name Here", Value: 0},
		{Label: "Initech - Dev", Value: 50},
	})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], strings.Repeat("█", barWidth))
	assert.NotContains(t, lines[1], "█")
	assert.Equal(t, 13, strings.Count(lines[2], "█"))
	assert.True(t, strings.HasSuffix(lines[2], "50%"))
	assert.Contains(t, lines[1], "…")

	// the bar column starts at the same display offset in every line
	col := runewidth.StringWidth(lines[0][:strings.Index(lines[0], "│")])
	for _, line := range lines[1:] {
		assert.Equal(t, col, runewidth.StringWidth(line[:strings.Index(line, "│")]))
	}
}

func TestFormatChart_Empty(t *testing.T) {
	assert.Equal(t, "(no matches)", FormatChart(nil))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{92, "92%"},
		{87.5, "87.5%"},
		{0, "0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}
