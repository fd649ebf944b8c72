package observability

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// maxLabelWidth caps the label column of the chart
	maxLabelWidth = 18
	// barWidth is the number of cells for a 100% bar
	barWidth = 25
)

// FormatChart renders points as horizontal bars on a 0-100 scale, labels
// aligned by display width.
func FormatChart(points []types.ChartPoint) string {
	if len(points) == 0 {
		return "(no matches)"
	}

	labelWidth := 0
	for _, point := range points {
		labelWidth = max(labelWidth, runewidth.StringWidth(point.Label))
	}
	labelWidth = min(labelWidth, maxLabelWidth)

	lines := make([]string, 0, len(points))
	for _, point := range points {
		label := runewidth.FillRight(runewidth.Truncate(point.Label, labelWidth, "…"), labelWidth)
		filled := int(math.Round(point.Value / 100 * barWidth))
		bar := strings.Repeat("█", filled) + strings.Repeat(" ", barWidth-filled)
		lines = append(lines, fmt.Sprintf("%s │%s %s", label, bar, FormatValue(point.Value)))
	}
	return strings.Join(lines, "\n")
}

// FormatValue prints a chart value the way scores are shown: "92%", "87.5%".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
