package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Validate parses rawText as a JSON array of {company, role} objects.
// Entries come back in input order; duplicates are kept and extra keys dropped.
func Validate(rawText string) ([]types.CompanyRoleEntry, error) {
	var parsed any
	if err := json.Unmarshal([]byte(rawText), &parsed); err != nil {
		return nil, &MalformedJSONError{Cause: err}
	}

	elements, ok := parsed.([]any)
	if !ok {
		return nil, &NotAnArrayError{Got: kindOf(parsed)}
	}
	if len(elements) == 0 {
		return nil, &EmptyListError{}
	}

	entries := make([]types.CompanyRoleEntry, 0, len(elements))
	for i, element := range elements {
		entry, err := toEntry(i, element)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// toEntry extracts the string fields of one element. Anything that is not a
// string (or not an object at all) is treated as absent.
func toEntry(index int, element any) (types.CompanyRoleEntry, error) {
	obj, _ := element.(map[string]any)
	company, _ := obj["company"].(string)
	role, _ := obj["role"].(string)

	entry := types.CompanyRoleEntry{Company: company, Role: role}
	if err := entry.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return entry, &MissingFieldError{Index: index, Field: strings.ToLower(fieldErrs[0].StructField())}
		}
		return entry, &MissingFieldError{Index: index, Field: "company"}
	}
	return entry, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "unknown"
	}
}
