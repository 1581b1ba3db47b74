package messaging

import "strings"

// Defaults for the tool-call subject space.
// Tool requests follow the pattern: {prefix}.{tool}
const (
	DefaultToolSubjectPrefix = "ocsf.tools"
	DefaultToolQueue         = "ocsf-tool-workers"
)

// HeaderRequestID carries the caller's request ID on broker messages.
const HeaderRequestID = "X-Request-ID"

// ToolSubject returns the subject a tool call is published to.
// Example: ocsf.tools.browse_ocsf_schema
func ToolSubject(prefix, tool string) string {
	return prefix + "." + tool
}

// ToolWildcard returns the subject matching every tool under prefix.
func ToolWildcard(prefix string) string {
	return prefix + ".*"
}

// ToolFromSubject extracts the tool name from a subject under prefix.
func ToolFromSubject(prefix, subject string) (string, bool) {
	tool, ok := strings.CutPrefix(subject, prefix+".")
	if !ok || tool == "" || strings.Contains(tool, ".") {
		return "", false
	}
	return tool, true
}
