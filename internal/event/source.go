package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidFieldSource is returned when a field source looks like a JSON
// object but does not parse as one.
var ErrInvalidFieldSource = errors.New("invalid field source")

type fieldSourceError struct {
	label string
	err   error
}

func (e *fieldSourceError) Error() string {
	return fmt.Sprintf("Invalid JSON in %s: %v", e.label, e.err)
}

func (e *fieldSourceError) Unwrap() error { return e.err }

func (e *fieldSourceError) Is(target error) bool { return target == ErrInvalidFieldSource }

// FieldSource is a parsed required_fields or optional_fields argument: either
// an explicit JSON object or a list of bare field names to fill with defaults.
type FieldSource struct {
	structured *Fields
	names      []string
}

// ParseFieldSource parses text for the argument called label. Text whose
// trimmed form starts with "{" must be a JSON object; anything else is read
// as comma-separated field names, ignoring empty entries.
func ParseFieldSource(label, text string) (FieldSource, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		fields := NewFields()
		if err := json.Unmarshal([]byte(trimmed), fields); err != nil {
			return FieldSource{}, &fieldSourceError{label: label, err: err}
		}
		return FieldSource{structured: fields}, nil
	}

	var names []string
	for _, name := range strings.Split(text, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return FieldSource{names: names}, nil
}

// Names returns the bare field names of a name-list source.
func (s FieldSource) Names() []string {
	return s.names
}

// IsStructured reports whether the source was a JSON object.
func (s FieldSource) IsStructured() bool {
	return s.structured != nil
}

// Resolve materializes the source into fields, synthesizing a default value
// for every bare name.
func (s FieldSource) Resolve(d Defaults) *Fields {
	if s.structured != nil {
		out := NewFields()
		out.Merge(s.structured)
		return out
	}
	out := NewFields()
	for _, name := range s.names {
		out.Set(name, d.Value(name))
	}
	return out
}

// Defaults synthesizes placeholder values for bare field names.
type Defaults struct {
	ClassUID int
	Now      time.Time
}

// Value returns the default JSON value for a field name.
func (d Defaults) Value(name string) json.RawMessage {
	var v any
	switch name {
	case "activity_id", "severity_id":
		v = 1
	case "category_uid":
		v = d.ClassUID / 1000
	case "class_uid":
		v = d.ClassUID
	case "type_uid":
		v = d.ClassUID*100 + 1
	case "time":
		v = Timestamp(d.Now)
	case "message":
		v = "Generated OCSF event"
	case "user":
		return json.RawMessage(`{"name":"example_user","uid":"1001"}`)
	default:
		v = "default_" + name
	}
	raw, _ := json.Marshal(v)
	return raw
}

// Timestamp formats t as the UTC RFC 3339 string used for event time.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
