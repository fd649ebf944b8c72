package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

func TestMulti_Decode(t *testing.T) {
	body := `{"resume_text":"Go developer","matches":[
		{"company":"Amazon","role":"Software Engineer","match_score":"81.25%","job_description":"Build things","timestamp":"2025-06-01T10:00:00"},
		{"company":"LinkedIn","role":"Backend Developer","match_score":"92%","job_description":"APIs"}]}`

	resp, err := Multi.Decode([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "Go developer", resp.ResumeText)
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, "Amazon", resp.Matches[0].Company)
	assert.Equal(t, "2025-06-01T10:00:00", resp.Matches[0].Timestamp)
	assert.Equal(t, "92%", resp.Matches[1].MatchScore)
}

func TestMulti_Decode_MissingMatches(t *testing.T) {
	_, err := Multi.Decode([]byte(`{"resume_text":"x","error":"boom"}`))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSingle_Decode(t *testing.T) {
	resp, err := Single.Decode([]byte(`{"resume_text":"text","match_score":"71.3%","job_description":"Full stack"}`))
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "71.3%", resp.Matches[0].MatchScore)
	assert.Equal(t, "Full stack", resp.Matches[0].JobDescription)
	assert.Empty(t, resp.Matches[0].Company)
	assert.Equal(t, "text", resp.ResumeText)
}

func TestSingle_Decode_ApplicationError(t *testing.T) {
	_, err := Single.Decode([]byte(`{"error":"Failed to get embeddings."}`))
	require.Error(t, err)

	var appErr *ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Failed to get embeddings.", appErr.Message)
}

func TestStrategies_Capabilities(t *testing.T) {
	assert.Equal(t, KindMulti, Multi.Kind())
	assert.Equal(t, "/upload-resume-multi/", Multi.Path())
	assert.True(t, Multi.NeedsPairs())
	assert.Equal(t, []string{".pdf", ".txt"}, Multi.Accepts())

	assert.Equal(t, KindSingle, Single.Kind())
	assert.Equal(t, "/upload-resume/", Single.Path())
	assert.False(t, Single.NeedsPairs())
	assert.Contains(t, Single.Accepts(), ".docx")
}

func TestByKind(t *testing.T) {
	s, err := ByKind(KindSingle)
	require.NoError(t, err)
	assert.Equal(t, Single, s)

	s, err = ByKind("")
	require.NoError(t, err)
	assert.Equal(t, Multi, s)

	_, err = ByKind("batch")
	assert.Error(t, err)
}
