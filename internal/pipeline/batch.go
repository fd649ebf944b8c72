package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/validation"
)

// DefaultBatchLimit bounds concurrent uploads in RunBatch.
const DefaultBatchLimit = 4

// BatchResult is the outcome for one résumé file
type BatchResult struct {
	Path    string
	Outcome *Outcome
	Err     error
}

// RunBatch scores several résumé files against the same pairs, one
// independent request per file. Pairs are validated once up front, so a bad
// list fails before any request is sent. Per-file failures are recorded in
// the results and do not stop the other files. Results follow input order.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string, pairsText string, limit int) ([]BatchResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no résumé files given")
	}
	if p.Flow.NeedsPairs() {
		if _, err := validation.Validate(pairsText); err != nil {
			return nil, err
		}
	}
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	results := make([]BatchResult, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			results[i].Path = path

			file, err := ingestion.Load(path)
			if err != nil {
				results[i].Err = err
				return nil
			}

			results[i].Outcome, results[i].Err = p.Run(gCtx, file, pairsText)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
