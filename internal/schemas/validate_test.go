package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	embedded "github.com/jonathan/resume-matcher/schemas"
)

func TestValidateBytes_MatchResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid response",
			body: `{"resume_text":"Go dev","matches":[{"company":"LinkedIn","role":"Backend Developer","match_score":"92%","job_description":"..."}]}`,
		},
		{
			name: "extra timestamp accepted",
			body: `{"resume_text":"x","matches":[{"company":"a","role":"b","match_score":"N/A","job_description":"d","timestamp":"2025-01-01T00:00:00"}]}`,
		},
		{
			name: "empty matches",
			body: `{"resume_text":"x","matches":[]}`,
		},
		{
			name:    "missing matches",
			body:    `{"resume_text":"x"}`,
			wantErr: true,
		},
		{
			name:    "match without score",
			body:    `{"resume_text":"x","matches":[{"company":"a","role":"b","job_description":"d"}]}`,
			wantErr: true,
		},
		{
			name:    "numeric score",
			body:    `{"resume_text":"x","matches":[{"company":"a","role":"b","match_score":92,"job_description":"d"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBytes(embedded.MatchResponse, []byte(tt.body))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			assert.Equal(t, embedded.MatchResponse, validationErr.Schema)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateBytes_SingleMatchResponse(t *testing.T) {
	assert.NoError(t, ValidateBytes(embedded.SingleMatchResponse,
		[]byte(`{"resume_text":"x","match_score":"71.3%","job_description":"d"}`)))
	assert.NoError(t, ValidateBytes(embedded.SingleMatchResponse,
		[]byte(`{"error":"Resume text extraction failed or file is empty."}`)))
	assert.Error(t, ValidateBytes(embedded.SingleMatchResponse, []byte(`{"match_score":"71.3%"}`)))
}

func TestValidateBytes_CompaniesRoles(t *testing.T) {
	assert.NoError(t, ValidateBytes(embedded.CompaniesRoles,
		[]byte(`[{"company":"Amazon","role":"Software Engineer"}]`)))
	assert.Error(t, ValidateBytes(embedded.CompaniesRoles, []byte(`[]`)))
	assert.Error(t, ValidateBytes(embedded.CompaniesRoles, []byte(`[{"company":"","role":"x"}]`)))
}

func TestValidateBytes_NotJSON(t *testing.T) {
	err := ValidateBytes(embedded.MatchResponse, []byte(`<html>502</html>`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	err := ValidateBytes("missing.schema.json", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"ok"}`))

	err := ValidateJSONString(schema, `{}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}
