package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/telhawk-systems/ocsf-mcp/internal/metrics"
)

// ErrInvalidEventJSON is returned when the input is not JSON at all.
var ErrInvalidEventJSON = errors.New("invalid event JSON")

// Document is the top level of an event, keyed by member name.
type Document map[string]json.RawMessage

// Check contributes findings for one part of the event contract.
type Check interface {
	Check(ctx context.Context, doc Document, report *Report)
}

// Chain runs every check against a document and collects the findings.
type Chain struct {
	checks []Check
}

// NewChain constructs a validator chain.
func NewChain(checks ...Check) *Chain {
	return &Chain{checks: checks}
}

// Default returns the chain enforcing the minimal event contract:
// metadata with event_class and version, plus a top-level time.
func Default() *Chain {
	return NewChain(MetadataCheck{}, TimeCheck{})
}

// Validate parses eventJSON and runs the chain. Only input that is not JSON
// is an error; a failed contract is reported, not returned.
func (c *Chain) Validate(ctx context.Context, eventJSON string) (*Report, error) {
	doc, err := Parse([]byte(eventJSON))
	if err != nil {
		return nil, err
	}
	return c.ValidateDocument(ctx, doc), nil
}

// ValidateDocument runs the chain over an already parsed document.
func (c *Chain) ValidateDocument(ctx context.Context, doc Document) *Report {
	report := newReport()
	for _, check := range c.checks {
		check.Check(ctx, doc, report)
	}
	report.summarize()

	result := "valid"
	if !report.IsValid {
		result = "invalid"
	}
	metrics.ValidationsTotal.WithLabelValues(result).Inc()
	return report
}

// Parse decodes an event. A top-level value that is not an object yields an
// empty document.
func Parse(data []byte) (Document, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEventJSON, err)
	}
	if _, ok := probe.(map[string]any); !ok {
		return Document{}, nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEventJSON, err)
	}
	return doc, nil
}

// object decodes raw as a nested object, treating anything else as empty.
func object(raw json.RawMessage) Document {
	var doc Document
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Document{}
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}
	}
	return doc
}
