// Package schemas embeds the JSON Schemas for the scoring service's form fields and response bodies.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names
const (
	CompaniesRoles      = "companies_roles.schema.json"
	MatchResponse       = "match_response.schema.json"
	SingleMatchResponse = "single_match_response.schema.json"
	HistoryResponse     = "history_response.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema file.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not embedded: %w", name, err)
	}
	return string(data), nil
}

// MustLoad is like Load but panics if the schema is missing.
func MustLoad(name string) string {
	s, err := Load(name)
	if err != nil {
		panic(err)
	}
	return s
}
