package schema

import "sync"

// MinimalVersion is the version reported by the built-in fallback schema.
const MinimalVersion = "1.7.0-dev"

// Minimal returns the built-in schema served when a requested version has no
// stored document. The returned value is shared.
var Minimal = sync.OnceValue(func() *Schema {
	classes := map[string]EventClass{}
	for _, c := range []EventClass{
		{UID: 3002, Name: "authentication", Caption: "Authentication", Description: "User authentication events (login, logout, failed attempts)", Category: "iam"},
		{UID: 1007, Name: "process_activity", Caption: "Process Activity", Description: "Process lifecycle events (start, stop, injection)", Category: "system"},
		{UID: 1001, Name: "file_activity", Caption: "File Activity", Description: "File system operations", Category: "system"},
		{UID: 4001, Name: "network_activity", Caption: "Network Activity", Description: "Network connections and traffic", Category: "network"},
	} {
		c.Attributes = map[string]Attribute{}
		classes[c.Name] = c
	}

	return &Schema{
		Version:              MinimalVersion,
		Classes:              classes,
		Objects:              map[string]Object{},
		Types:                map[string]TypeDef{},
		DictionaryAttributes: map[string]Attribute{},
	}
})
