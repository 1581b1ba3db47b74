package validator

import (
	"context"
	"encoding/json"
)

// MetadataCheck requires a metadata object carrying a string event_class and
// a version member.
type MetadataCheck struct{}

func (MetadataCheck) Check(_ context.Context, doc Document, report *Report) {
	raw, ok := doc["metadata"]
	if !ok {
		report.AddError("metadata", "Missing metadata field", MissingRequired)
		return
	}

	metadata := object(raw)

	if class, ok := stringValue(metadata["event_class"]); ok {
		report.EventClass = &class
	} else {
		report.AddError("metadata.event_class", "Missing event_class in metadata", MissingRequired)
	}

	if _, ok := metadata["version"]; !ok {
		report.AddError("metadata.version", "Missing version in metadata", MissingRequired)
	}
}

// TimeCheck requires a top-level time member of any value.
type TimeCheck struct{}

func (TimeCheck) Check(_ context.Context, doc Document, report *Report) {
	if _, ok := doc["time"]; !ok {
		report.AddError("time", "Missing required 'time' field", MissingRequired)
	}
}

func stringValue(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
