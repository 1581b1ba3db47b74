package logging

import "log/slog"

// Field names shared by every log line the server emits.
const (
	FieldService    = "service"
	FieldRequestID  = "request_id"
	FieldIP         = "ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldTool       = "tool"
	FieldVersion    = "version"
	FieldEventClass = "event_class"
	FieldCategory   = "category"
	FieldLanguage   = "language"
	FieldTopic      = "topic"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// IP returns a slog attribute for the client address.
func IP(ip string) slog.Attr {
	return slog.String(FieldIP, ip)
}

// Method returns a slog attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// Tool returns a slog attribute for a tool name.
func Tool(name string) slog.Attr {
	return slog.String(FieldTool, name)
}

// Version returns a slog attribute for a schema version.
func Version(v string) slog.Attr {
	return slog.String(FieldVersion, v)
}

// EventClass returns a slog attribute for an event class name.
func EventClass(name string) slog.Attr {
	return slog.String(FieldEventClass, name)
}

// Category returns a slog attribute for a category tag.
func Category(name string) slog.Attr {
	return slog.String(FieldCategory, name)
}

// Language returns a slog attribute for a code generation language.
func Language(lang string) slog.Attr {
	return slog.String(FieldLanguage, lang)
}

// Topic returns a slog attribute for a documentation topic.
func Topic(topic string) slog.Attr {
	return slog.String(FieldTopic, topic)
}
