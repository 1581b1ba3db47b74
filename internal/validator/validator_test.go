package validator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Validate(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		valid      bool
		eventClass string
		fields     []string
		summary    string
	}{
		{
			name:       "valid event",
			input:      `{"metadata": {"event_class": "authentication", "version": "1.7.0-dev"}, "time": "2025-01-15T10:30:00Z"}`,
			valid:      true,
			eventClass: "authentication",
			summary:    "Valid OCSF event of class 'authentication'",
		},
		{
			name:       "missing time",
			input:      `{"metadata": {"event_class": "authentication", "version": "1.7.0-dev"}}`,
			fields:     []string{"time"},
			summary:    "Validation failed with 1 error(s)",
			eventClass: "authentication",
		},
		{
			name:    "empty object",
			input:   `{}`,
			fields:  []string{"metadata", "time"},
			summary: "Validation failed with 2 error(s)",
		},
		{
			name:    "metadata without fields",
			input:   `{"metadata": {}, "time": 0}`,
			fields:  []string{"metadata.event_class", "metadata.version"},
			summary: "Validation failed with 2 error(s)",
		},
		{
			name:    "non-string event_class",
			input:   `{"metadata": {"event_class": 3002, "version": "1"}, "time": "t"}`,
			fields:  []string{"metadata.event_class"},
			summary: "Validation failed with 1 error(s)",
		},
		{
			name:       "null version counts as present",
			input:      `{"metadata": {"event_class": "x", "version": null}, "time": null}`,
			valid:      true,
			eventClass: "x",
			summary:    "Valid OCSF event of class 'x'",
		},
		{
			name:    "metadata is not an object",
			input:   `{"metadata": "oops", "time": "t"}`,
			fields:  []string{"metadata.event_class", "metadata.version"},
			summary: "Validation failed with 2 error(s)",
		},
		{
			name:    "top-level array",
			input:   `[1, 2, 3]`,
			fields:  []string{"metadata", "time"},
			summary: "Validation failed with 2 error(s)",
		},
		{
			name:    "top-level string",
			input:   `"hello"`,
			fields:  []string{"metadata", "time"},
			summary: "Validation failed with 2 error(s)",
		},
	}

	chain := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := chain.Validate(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.valid, report.IsValid)
			assert.Equal(t, tt.summary, report.Summary)
			assert.Empty(t, report.Warnings)

			if tt.eventClass == "" {
				assert.Nil(t, report.EventClass)
			} else {
				require.NotNil(t, report.EventClass)
				assert.Equal(t, tt.eventClass, *report.EventClass)
			}

			var fields []string
			for _, e := range report.Errors {
				fields = append(fields, e.Field)
				assert.Equal(t, MissingRequired, e.ErrorType)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestChain_ValidateMessages(t *testing.T) {
	report, err := Default().Validate(context.Background(), `{"metadata": {}}`)
	require.NoError(t, err)

	assert.Equal(t, []ValidationError{
		{Field: "metadata.event_class", Message: "Missing event_class in metadata", ErrorType: MissingRequired},
		{Field: "metadata.version", Message: "Missing version in metadata", ErrorType: MissingRequired},
		{Field: "time", Message: "Missing required 'time' field", ErrorType: MissingRequired},
	}, report.Errors)

	report, err = Default().Validate(context.Background(), `{"time": 1}`)
	require.NoError(t, err)
	assert.Equal(t, "Missing metadata field", report.Errors[0].Message)
}

func TestChain_InvalidJSON(t *testing.T) {
	for _, input := range []string{"", "{", "not json", `{"a": 1} trailing`} {
		_, err := Default().Validate(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidEventJSON, "input %q", input)
	}
}

func TestReport_JSONShape(t *testing.T) {
	report, err := Default().Validate(context.Background(), `{}`)
	require.NoError(t, err)

	out, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"is_valid": false,
		"errors": [
			{"field": "metadata", "message": "Missing metadata field", "error_type": "MissingRequired"},
			{"field": "time", "message": "Missing required 'time' field", "error_type": "MissingRequired"}
		],
		"warnings": [],
		"event_class": null,
		"summary": "Validation failed with 2 error(s)"
	}`, string(out))
}

type warnOnRaw struct{}

func (warnOnRaw) Check(_ context.Context, doc Document, report *Report) {
	if _, ok := doc["raw_data"]; ok {
		report.AddWarning("raw_data", "raw_data is carried verbatim")
	}
}

func TestChain_CustomChecks(t *testing.T) {
	chain := NewChain(TimeCheck{}, warnOnRaw{})

	report, err := chain.Validate(context.Background(), `{"time": 1, "raw_data": "x"}`)
	require.NoError(t, err)
	assert.True(t, report.IsValid)
	assert.Len(t, report.Warnings, 1)
	assert.Equal(t, "Valid OCSF event of class 'unknown'", report.Summary)
}
