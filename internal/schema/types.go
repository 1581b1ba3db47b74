package schema

// Schema is one versioned OCSF schema document. Values handed out by the
// Repository are shared and must not be mutated.
type Schema struct {
	Version              string                `json:"version"`
	Classes              map[string]EventClass `json:"classes"`
	Objects              map[string]Object     `json:"objects"`
	Types                map[string]TypeDef    `json:"types"`
	DictionaryAttributes map[string]Attribute  `json:"dictionary_attributes"`
}

// EventClass is an event class definition such as authentication or process_activity.
type EventClass struct {
	UID         int                  `json:"uid"`
	Name        string               `json:"name"`
	Caption     string               `json:"caption,omitempty"`
	Description string               `json:"description,omitempty"`
	Category    string               `json:"category"`
	Attributes  map[string]Attribute `json:"attributes"`
	Extends     string               `json:"extends,omitempty"`
}

// CategoryUID derives the owning category's numeric ID from the class UID.
func (c EventClass) CategoryUID() int {
	return c.UID / 1000
}

type Object struct {
	Name        string               `json:"name"`
	Caption     string               `json:"caption,omitempty"`
	Description string               `json:"description,omitempty"`
	Attributes  map[string]Attribute `json:"attributes"`
	Extends     string               `json:"extends,omitempty"`
}

// Attribute describes one field of a class or object. DataType is the
// document's "type" key, e.g. string_t or object_t.
type Attribute struct {
	Caption     string `json:"caption,omitempty"`
	Description string `json:"description,omitempty"`
	DataType    string `json:"type,omitempty"`
	Requirement string `json:"requirement,omitempty"`
	TypeName    string `json:"type_name,omitempty"`
}

// Requirement levels used by the schema documents.
const (
	RequirementRequired    = "required"
	RequirementRecommended = "recommended"
	RequirementOptional    = "optional"
)

// IsRequired reports whether the attribute must be populated. Recommended
// attributes are treated as required.
func (a Attribute) IsRequired() bool {
	return a.Requirement == RequirementRequired || a.Requirement == RequirementRecommended
}

type TypeDef struct {
	Caption     string `json:"caption,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategorySummary groups the event classes sharing one category tag.
type CategorySummary struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	EventCount   int      `json:"event_count"`
	EventClasses []string `json:"event_classes"`
}

type EventClassSummary struct {
	UID         int    `json:"uid"`
	Name        string `json:"name"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type AttributeSummary struct {
	Name        string `json:"name"`
	DataType    string `json:"data_type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}
