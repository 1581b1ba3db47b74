package validator

import "fmt"

// ErrorType classifies a validation error.
type ErrorType string

const (
	MissingRequired ErrorType = "MissingRequired"
	InvalidType     ErrorType = "InvalidType"
	InvalidValue    ErrorType = "InvalidValue"
	UnknownField    ErrorType = "UnknownField"
)

type ValidationError struct {
	Field     string    `json:"field"`
	Message   string    `json:"message"`
	ErrorType ErrorType `json:"error_type"`
}

type ValidationWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Report is the outcome of validating one event document.
type Report struct {
	IsValid    bool                `json:"is_valid"`
	Errors     []ValidationError   `json:"errors"`
	Warnings   []ValidationWarning `json:"warnings"`
	EventClass *string             `json:"event_class"`
	Summary    string              `json:"summary"`
}

func newReport() *Report {
	return &Report{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}
}

// AddError records an error and marks the report invalid.
func (r *Report) AddError(field, message string, errorType ErrorType) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, ErrorType: errorType})
	r.IsValid = false
}

// AddWarning records a warning. Warnings never affect validity.
func (r *Report) AddWarning(field, message string) {
	r.Warnings = append(r.Warnings, ValidationWarning{Field: field, Message: message})
}

func (r *Report) summarize() {
	if r.IsValid {
		class := "unknown"
		if r.EventClass != nil {
			class = *r.EventClass
		}
		r.Summary = fmt.Sprintf("Valid OCSF event of class '%s'", class)
		return
	}
	r.Summary = fmt.Sprintf("Validation failed with %d error(s)", len(r.Errors))
}
