package mapper

import (
	"fmt"
	"strings"
)

// UnknownClass is suggested when no rule matches.
const UnknownClass = "unknown"

const defaultConfidence = "medium"

// Rule maps any of its keywords, matched case-insensitively as substrings, to
// an event class.
type Rule struct {
	Keywords   []string
	EventClass string
}

// Matches reports whether lower (an already lower-cased sample) contains any keyword.
func (r Rule) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DefaultRules are evaluated in order; the first match wins.
var DefaultRules = []Rule{
	{Keywords: []string{"login", "auth"}, EventClass: "authentication"},
	{Keywords: []string{"process", "exec"}, EventClass: "process_activity"},
	{Keywords: []string{"network", "connection"}, EventClass: "network_activity"},
	{Keywords: []string{"file", "path"}, EventClass: "file_activity"},
}

type FieldMapping struct {
	SourceField    string  `json:"source_field"`
	OCSFField      string  `json:"ocsf_field"`
	Transformation *string `json:"transformation"`
}

// Recommendation is the mapper's suggestion for one log sample.
type Recommendation struct {
	SuggestedEventClass string         `json:"suggested_event_class"`
	Confidence          string         `json:"confidence"`
	FieldMappings       []FieldMapping `json:"field_mappings"`
	Explanation         string         `json:"explanation"`
}

func defaultMappings() []FieldMapping {
	isoTime := "Convert to ISO 8601 format"
	return []FieldMapping{
		{SourceField: "timestamp", OCSFField: "time", Transformation: &isoTime},
		{SourceField: "username", OCSFField: "user.name"},
		{SourceField: "user_id", OCSFField: "user.uid"},
	}
}

// Mapper suggests an event class for free-form log text.
type Mapper struct {
	rules []Rule
}

// New creates a Mapper evaluating rules in order. No rules means DefaultRules.
func New(rules ...Rule) *Mapper {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Mapper{rules: rules}
}

// Suggest returns the class of the first rule matching sample, or UnknownClass.
func (m *Mapper) Suggest(sample string) string {
	lower := strings.ToLower(sample)
	for _, r := range m.rules {
		if r.Matches(lower) {
			return r.EventClass
		}
	}
	return UnknownClass
}

// Classify builds a recommendation. A non-nil hint is used verbatim, even
// when empty.
func (m *Mapper) Classify(sample string, hint *string) *Recommendation {
	var class string
	if hint != nil {
		class = *hint
	} else {
		class = m.Suggest(sample)
	}
	return &Recommendation{
		SuggestedEventClass: class,
		Confidence:          defaultConfidence,
		FieldMappings:       defaultMappings(),
		Explanation: fmt.Sprintf("Based on log content analysis, suggested OCSF event class is '%s'. "+
			"Map your fields to OCSF attributes for standardization. "+
			"Confidence is medium - please review and adjust as needed.", class),
	}
}
