package tools

import "encoding/json"

// Tool names as they appear on the wire.
const (
	BrowseSchema  = "browse_ocsf_schema"
	GenerateEvent = "generate_ocsf_event"
	ValidateEvent = "validate_ocsf_event"
	MapCustom     = "map_custom_to_ocsf"
	ListExamples  = "list_event_examples"
	ListVersions  = "list_ocsf_versions"
	NewestVersion = "get_newest_ocsf_version"
	GenerateCode  = "generate_logging_code"
	ReadDocs      = "read_ocsf_docs"
)

// Definition describes one tool to clients.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`

	errorCode string
	required  []string
}

var definitions = []Definition{
	{
		Name:        BrowseSchema,
		Description: "Browse OCSF schema categories, event classes, and attributes",
		errorCode:   "browse_schema_error",
		InputSchema: json.RawMessage(`{"type":"object","properties":{` +
			`"version":{"type":"string","description":"OCSF schema version (defaults to the server default)"},` +
			`"category":{"type":"string"},` +
			`"event_class":{"type":"string"},` +
			`"show_attributes":{"type":"boolean"},` +
			`"all_classes":{"type":"boolean"}}}`),
	},
	{
		Name:        GenerateEvent,
		Description: "Generate a valid OCSF event JSON from parameters",
		errorCode:   "generate_event_error",
		required:    []string{"event_class", "required_fields"},
		InputSchema: json.RawMessage(`{"type":"object","properties":{` +
			`"version":{"type":"string"},` +
			`"event_class":{"type":"string"},` +
			`"required_fields":{"type":"string","description":"JSON object or comma-separated field names"},` +
			`"optional_fields":{"type":"string","description":"JSON object or comma-separated field names"}},` +
			`"required":["event_class","required_fields"]}`),
	},
	{
		Name:        ValidateEvent,
		Description: "Validate an OCSF event against the minimal metadata and time contract",
		errorCode:   "validate_event_error",
		required:    []string{"event_json"},
		InputSchema: json.RawMessage(`{"type":"object","properties":{` +
			`"event_json":{"type":"string"}},"required":["event_json"]}`),
	},
	{
		Name:        MapCustom,
		Description: "Suggest an OCSF event class and field mappings for a custom log line",
		errorCode:   "map_custom_error",
		required:    []string{"sample_log"},
		InputSchema: json.RawMessage(`{"type":"object","properties":{` +
			`"sample_log":{"type":"string"},` +
			`"suggested_class":{"type":"string"}},"required":["sample_log"]}`),
	},
	{
		Name:        ListExamples,
		Description: "List example OCSF events for an event class",
		errorCode:   "list_examples_error",
		required:    []string{"event_class"},
		InputSchema: json.RawMessage(`{"type":"object","properties":{` +
			`"event_class":{"type":"string"},` +
			`"scenario":{"type":"string"}},"required":["event_class"]}`),
	},
	{
		Name:        ListVersions,
		Description: "List all available OCSF schema versions",
		errorCode:   "list_versions_error",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	},
	{
		Name:        NewestVersion,
		Description: "Get the newest stable OCSF schema version",
		errorCode:   "get_newest_version_error",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	},
	{
		Name:        GenerateCode,
		Description: "Generate OCSF logging code for a language and set of event classes",
		errorCode:   "generate_code_error",
		required:    []string{"language", "event_classes"},
		InputSchema: json.RawMessage(`{"type":"object","properties":{` +
			`"language":{"type":"string","enum":["rust","python","javascript","go"]},` +
			`"event_classes":{"type":"string","description":"JSON array or comma-separated class names"},` +
			`"framework":{"type":"string"},` +
			`"include_helpers":{"type":"boolean"}},"required":["language","event_classes"]}`),
	},
	{
		Name:        ReadDocs,
		Description: "Read OCSF documentation and mapping guides",
		errorCode:   "read_docs_error",
		required:    []string{"topic"},
		InputSchema: json.RawMessage(`{"type":"object","properties":{` +
			`"topic":{"type":"string","description":"getting-started, event-classes, mapping-guide, best-practices or versions"}},` +
			`"required":["topic"]}`),
	},
}

func lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Definitions returns every tool in display order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}
