package models

import "github.com/telhawk-systems/ocsf-mcp/internal/schema"

// Tool request payloads. Optional string arguments are empty when absent.

type BrowseSchemaRequest struct {
	Version        string `json:"version,omitempty"`
	Category       string `json:"category,omitempty"`
	EventClass     string `json:"event_class,omitempty"`
	ShowAttributes bool   `json:"show_attributes"`
	AllClasses     bool   `json:"all_classes,omitempty"`
}

type GenerateEventRequest struct {
	Version        string `json:"version,omitempty"`
	EventClass     string `json:"event_class"`
	RequiredFields string `json:"required_fields"`
	OptionalFields string `json:"optional_fields,omitempty"`
}

type ValidateEventRequest struct {
	EventJSON string `json:"event_json"`
}

type MapCustomRequest struct {
	SampleLog      string `json:"sample_log"`
	SuggestedClass *string `json:"suggested_class,omitempty"`
}

type ListExamplesRequest struct {
	EventClass string `json:"event_class"`
	Scenario   string `json:"scenario,omitempty"`
}

type GenerateCodeRequest struct {
	Language       string `json:"language"`
	EventClasses   string `json:"event_classes"`
	Framework      string `json:"framework,omitempty"`
	IncludeHelpers bool   `json:"include_helpers"`
}

type ReadDocsRequest struct {
	Topic string `json:"topic"`
}

// SchemaInfo is the browse result. Exactly one of the lists is set; the
// others serialize as null.
type SchemaInfo struct {
	Summary      string                     `json:"summary"`
	Categories   []schema.CategorySummary   `json:"categories"`
	EventClasses []schema.EventClassSummary `json:"event_classes"`
	Attributes   []schema.AttributeSummary  `json:"attributes"`
}

type VersionsResponse struct {
	Versions []string `json:"versions"`
	Count    int      `json:"count"`
}

type NewestVersionResponse struct {
	Version  string `json:"version"`
	IsStable bool   `json:"is_stable"`
}

// HealthResponse is served by the health endpoint.
type HealthResponse struct {
	Status         string `json:"status"`
	DefaultVersion string `json:"default_version"`
	Versions       int    `json:"versions"`
}
