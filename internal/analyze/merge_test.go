package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSkipsFailedBatches(t *testing.T) {
	results := []BatchResult{
		{Patterns: []RawPattern{
			{Summary: "Prefers tabs", Confidence: "high", Category: "coding_style"},
			{Summary: "Wants tests first", Confidence: "medium", Category: "testing"},
		}},
		{RawResponse: "not json", ParseError: "invalid character 'n'"},
		{Patterns: []RawPattern{
			{Summary: "Short commit messages", Confidence: "low", Category: "workflow"},
		}},
	}

	merged := Merge(results)
	require.Len(t, merged.Patterns, 3)
	assert.Equal(t, "Prefers tabs", merged.Patterns[0].Summary)
	assert.Equal(t, "Wants tests first", merged.Patterns[1].Summary)
	assert.Equal(t, "Short commit messages", merged.Patterns[2].Summary)
}

func TestMergeDefaults(t *testing.T) {
	results := []BatchResult{
		{Patterns: []RawPattern{{Summary: "Bare pattern"}}},
	}

	merged := Merge(results)
	require.Len(t, merged.Patterns, 1)

	p := merged.Patterns[0]
	assert.Equal(t, ConfidenceLow, p.Confidence)
	assert.Equal(t, CategoryGeneral, p.Category)
	assert.Nil(t, p.Approved, "merged patterns start unreviewed")
}

func TestMergeCustomCategories(t *testing.T) {
	results := []BatchResult{
		{CustomCategories: []RawCategory{
			{Name: "api_design", Description: "first description"},
			{Name: "", Description: "dropped"},
		}},
		{CustomCategories: []RawCategory{
			{Name: "api_design", Description: "second description"},
			{Name: "deployment", Description: "release habits"},
		}},
	}

	merged := Merge(results)
	assert.Empty(t, merged.Patterns)
	assert.Equal(t, map[string]string{
		"api_design": "second description",
		"deployment": "release habits",
	}, merged.CustomCategories)
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge(nil)
	assert.NotNil(t, merged.Patterns)
	assert.NotNil(t, merged.CustomCategories)
	assert.Empty(t, merged.Patterns)
}
