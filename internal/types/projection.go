//nolint:revive // types is a standard Go package name pattern
package types

// ChartPoint is one bar of the score chart
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"` // 0-100
}

// Excerpt is the leading part of the extracted résumé text
type Excerpt struct {
	Text      string `json:"text"`
	Length    int    `json:"length"` // total characters in the full text
	Truncated bool   `json:"truncated"`
}

// Projection holds chart- and render-ready data derived from a MatchResponse
type Projection struct {
	ChartPoints []ChartPoint  `json:"chart_points"`
	Records     []MatchResult `json:"records"`
	Excerpt     Excerpt       `json:"excerpt"`
}
