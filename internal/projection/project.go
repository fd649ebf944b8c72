// Package projection turns a match response into chart points and render-ready records.
package projection

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultExcerptLimit is how many characters of résumé text are shown.
const DefaultExcerptLimit = 800

// leadingNumber matches the numeric prefix of a score such as "87.5" in "87.5%".
var leadingNumber = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Options tunes projection.
type Options struct {
	// StrictScores turns an unparseable match score into a *ScoreError
	// instead of charting it as 0.
	StrictScores bool
	// ExcerptLimit overrides DefaultExcerptLimit when positive.
	ExcerptLimit int
}

// ScoreError reports a match score that has no numeric prefix
type ScoreError struct {
	Index int
	Label string
	Score string
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("match score %q for %q (index %d) is not a number", e.Score, e.Label, e.Index)
}

// Project derives the chart series, the per-pair records and the résumé
// excerpt. Order is preserved and nothing is sorted or merged.
func Project(resp *types.MatchResponse, opts Options) (*types.Projection, error) {
	if resp == nil {
		return &types.Projection{ChartPoints: []types.ChartPoint{}, Records: []types.MatchResult{}}, nil
	}

	points := make([]types.ChartPoint, 0, len(resp.Matches))
	records := make([]types.MatchResult, 0, len(resp.Matches))
	for i, match := range resp.Matches {
		value, ok := ParseScore(match.MatchScore)
		if !ok && opts.StrictScores {
			return nil, &ScoreError{Index: i, Label: match.Label(), Score: match.MatchScore}
		}
		points = append(points, types.ChartPoint{Label: match.Label(), Value: value})
		records = append(records, match)
	}

	limit := opts.ExcerptLimit
	if limit <= 0 {
		limit = DefaultExcerptLimit
	}

	return &types.Projection{
		ChartPoints: points,
		Records:     records,
		Excerpt:     MakeExcerpt(resp.ResumeText, limit),
	}, nil
}

// ParseScore strips the first "%" and reads the leading number. The result is
// clamped to [0, 100]; ok is false when there is no number, in which case the
// value is 0.
func ParseScore(score string) (float64, bool) {
	trimmed := strings.Replace(score, "%", "", 1)
	prefix := leadingNumber.FindString(trimmed)
	if prefix == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(prefix), 64)
	if err != nil {
		return 0, false
	}
	return min(max(value, 0), 100), true
}

// MakeExcerpt returns the first limit characters of text.
func MakeExcerpt(text string, limit int) types.Excerpt {
	runes := []rune(text)
	if len(runes) <= limit {
		return types.Excerpt{Text: text, Length: len(runes)}
	}
	return types.Excerpt{
		Text:      string(runes[:limit]),
		Length:    len(runes),
		Truncated: true,
	}
}
