package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"base_url": "http://scoring.internal:9000",
		"timeout": "45s",
		"pairs": "[{\"company\":\"Acme\",\"role\":\"SRE\"}]",
		"batch_limit": 2,
		"headers": {"X-Team": "talent"},
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://scoring.internal:9000", cfg.BaseURL)
	assert.Equal(t, "45s", cfg.Timeout)
	assert.Equal(t, `[{"company":"Acme","role":"SRE"}]`, cfg.Pairs)
	assert.Equal(t, 2, cfg.BatchLimit)
	assert.Equal(t, "talent", cfg.Headers["X-Team"])
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, " http://localhost:8080 ")
	t.Setenv(EnvTimeout, "10s")

	cfg := FromEnv()
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "10s", cfg.Timeout)
}

func TestValidate(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "pairs.json")
	require.NoError(t, os.WriteFile(existing, []byte("[]"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults are valid", Defaults(), ""},
		{"empty config is valid", Config{}, ""},
		{"bad base url", Config{BaseURL: "not a url"}, "base_url"},
		{"negative batch limit", Config{BatchLimit: -1}, "batch_limit"},
		{"negative excerpt limit", Config{ExcerptLimit: -5}, "excerpt_limit"},
		{"bad timeout", Config{Timeout: "soon"}, "invalid 'timeout'"},
		{"negative timeout", Config{Timeout: "-1s"}, "non-negative"},
		{"both pairs sources", Config{Pairs: "[]", PairsFile: existing}, "mutually exclusive"},
		{"missing pairs file", Config{PairsFile: "/nonexistent/pairs.json"}, "pairs file not found"},
		{"existing pairs file", Config{PairsFile: existing}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	cfg := Config{}
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	cfg.Timeout = "1m30s"
	d, err = cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

func TestPairsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"company":"A","role":"B"}]`), 0644))

	inline := Config{Pairs: `[{"company":"X","role":"Y"}]`}
	text, err := inline.PairsText()
	require.NoError(t, err)
	assert.Equal(t, `[{"company":"X","role":"Y"}]`, text)

	fromFile := Config{PairsFile: path}
	text, err = fromFile.PairsText()
	require.NoError(t, err)
	assert.Equal(t, `[{"company":"A","role":"B"}]`, text)

	empty := Config{}
	text, err = empty.PairsText()
	require.NoError(t, err)
	assert.Empty(t, text)

	missing := Config{PairsFile: "/nonexistent/pairs.json"}
	_, err = missing.PairsText()
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		BaseURL:      "http://default:8000",
		Timeout:      "30s",
		Pairs:        `[{"company":"D","role":"R"}]`,
		ExcerptLimit: 800,
		BatchLimit:   4,
		Headers:      map[string]string{"X-A": "default", "X-B": "default"},
	}

	partial := Config{
		BaseURL:   "http://custom:9000",
		PairsFile: "mine.json",
		Headers:   map[string]string{"X-A": "custom"},
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "http://custom:9000", merged.BaseURL)
	assert.Equal(t, "mine.json", merged.PairsFile)
	assert.Empty(t, merged.Pairs, "a set pairs file keeps default inline pairs out")
	assert.Equal(t, "custom", merged.Headers["X-A"])

	// Default values should fill in empty fields
	assert.Equal(t, "30s", merged.Timeout)
	assert.Equal(t, 800, merged.ExcerptLimit)
	assert.Equal(t, 4, merged.BatchLimit)
	assert.Equal(t, "default", merged.Headers["X-B"])
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{BaseURL: "http://x:1", BatchLimit: 2}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "http://x:1", merged.BaseURL)
	assert.Equal(t, 2, merged.BatchLimit)
	assert.Nil(t, merged.Headers)
}

func TestLoadConfig_EmptyPairsCountAsGiven(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"pairs": ""}`), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.True(t, cfg.HasPairs())

	merged := cfg.MergeWithDefaults(Config{Pairs: `[{"company":"D","role":"R"}]`})
	assert.Empty(t, merged.Pairs, "an explicitly empty value is not replaced")
}

func TestHasPairs(t *testing.T) {
	assert.False(t, (&Config{}).HasPairs())
	assert.True(t, (&Config{Pairs: "[]"}).HasPairs())
	assert.True(t, (&Config{PairsFile: "pairs.json"}).HasPairs())
	assert.True(t, (&Config{PairsGiven: true}).HasPairs())

	noSource := Config{}
	merged := noSource.MergeWithDefaults(Config{Pairs: "[]"})
	assert.Equal(t, "[]", merged.Pairs)
}
