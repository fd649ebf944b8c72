package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/client"
	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/projection"
	"github.com/jonathan/resume-matcher/internal/request"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/validation"
)

const multiBody = `{"resume_text":"Go developer","matches":[{"company":"LinkedIn","role":"Backend Developer","match_score":"92%","job_description":"..."}]}`

func newPipeline(t *testing.T, f flow.Strategy, handler http.HandlerFunc) (*Pipeline, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, nil)
	require.NoError(t, err)
	return New(f, c, projection.Options{}), &calls
}

func resumeFile() *types.FileHandle {
	return &types.FileHandle{Name: "resume.txt", ContentType: "text/plain", Data: []byte("Go developer")}
}

func TestRun_Success(t *testing.T) {
	p, calls := newPipeline(t, flow.Multi, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(multiBody))
	})

	var steps []string
	p.OnProgress = func(event ProgressEvent) { steps = append(steps, event.Step) }

	outcome, err := p.Run(context.Background(), resumeFile(), `[{"company":"LinkedIn","role":"Backend Developer"}]`)
	require.NoError(t, err)
	assert.Equal(t, []types.ChartPoint{{Label: "LinkedIn - Backend Developer", Value: 92}}, outcome.Projection.ChartPoints)
	assert.NotEmpty(t, outcome.RequestID)
	assert.Equal(t, []string{StepValidate, StepBuild, StepSubmit, StepProject}, steps)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestPrepare_NoFileBeforePairs(t *testing.T) {
	p, calls := newPipeline(t, flow.Multi, func(http.ResponseWriter, *http.Request) {})

	_, err := p.Prepare(nil, `not json`)
	assert.ErrorIs(t, err, request.ErrNoFileSelected)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestRun_InvalidPairsSendsNothing(t *testing.T) {
	p, calls := newPipeline(t, flow.Multi, func(http.ResponseWriter, *http.Request) {})

	for _, raw := range []string{`{"company":"Amazon"}`, `[{"company":"Amazon"}]`, `[`, `[]`} {
		_, err := p.Run(context.Background(), resumeFile(), raw)
		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err), "raw %s", raw)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestRun_SingleIgnoresPairs(t *testing.T) {
	p, _ := newPipeline(t, flow.Single, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"resume_text":"x","match_score":"71.3%","job_description":"d"}`))
	})

	outcome, err := p.Run(context.Background(), resumeFile(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, 71.3, outcome.Projection.ChartPoints[0].Value)
}

func TestFinish_StrictScoreIsMalformed(t *testing.T) {
	p := New(flow.Multi, nil, projection.Options{StrictScores: true})

	_, err := p.Finish(&types.MatchResponse{Matches: []types.MatchResult{{Company: "A", Role: "B", MatchScore: "N/A"}}})
	require.Error(t, err)
	assert.True(t, client.IsKind(err, client.KindMalformed))

	var scoreErr *projection.ScoreError
	assert.ErrorAs(t, err, &scoreErr)
}

func TestRunBatch(t *testing.T) {
	var mu sync.Mutex
	var names []string
	p, calls := newPipeline(t, flow.Multi, func(w http.ResponseWriter, r *http.Request) {
		if _, header, err := r.FormFile("file"); assert.NoError(t, err) {
			mu.Lock()
			names = append(names, header.Filename)
			mu.Unlock()
			if strings.HasPrefix(header.Filename, "bad") {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"detail":"Internal server error."}`))
				return
			}
		}
		_, _ = w.Write([]byte(multiBody))
	})

	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.txt", "bad.txt", "c.pdf", "missing.txt"} {
		path := filepath.Join(dir, name)
		if name != "missing.txt" {
			content := []byte("resume " + name)
			if strings.HasSuffix(name, ".pdf") {
				content = []byte("%PDF-1.4 " + name)
			}
			require.NoError(t, os.WriteFile(path, content, 0644))
		}
		paths = append(paths, path)
	}

	results, err := p.RunBatch(context.Background(), paths, `[{"company":"LinkedIn","role":"Backend Developer"}]`, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, paths[0], results[0].Path)
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Outcome)

	assert.True(t, client.IsKind(results[1].Err, client.KindServer))
	assert.NoError(t, results[2].Err)
	assert.Error(t, results[3].Err)
	assert.Contains(t, results[3].Err.Error(), "file not found")

	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	assert.ElementsMatch(t, []string{"a.txt", "bad.txt", "c.pdf"}, names)
}

func TestRunBatch_InvalidPairsFailsFast(t *testing.T) {
	p, calls := newPipeline(t, flow.Multi, func(http.ResponseWriter, *http.Request) {})

	_, err := p.RunBatch(context.Background(), []string{"a.txt"}, `{"company":"x"}`, 0)
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))

	_, err = p.RunBatch(context.Background(), nil, `[]`, 0)
	assert.Error(t, err)
}
