package codegen

import "strings"

const classTemplate = "class.tmpl"

type fileSpec struct {
	template    string
	filename    string
	description string
}

// layout is the file set generated for one language.
type layout struct {
	name    string
	display string
	dir     string
	ext     string
	module  func(class string) string
	core    fileSpec
	builder fileSpec
	index   []fileSpec
}

func sameName(class string) string { return class }

var layouts = map[string]layout{
	"python": {
		name: "python", display: "Python", dir: "python", ext: ".py", module: sameName,
		core:    fileSpec{"core.tmpl", "ocsf_core.py", "Core OCSF event class with metadata and field handling"},
		builder: fileSpec{"builder.tmpl", "event_builder.py", "Fluent builder pattern for constructing OCSF events"},
		index:   []fileSpec{{"index.tmpl", "__init__.py", "Package initialization with exports"}},
	},
	"javascript": {
		name: "javascript", display: "JavaScript", dir: "javascript", ext: ".js",
		module:  func(class string) string { return strings.ReplaceAll(class, "_", "-") },
		core:    fileSpec{"core.tmpl", "ocsf-core.js", "Core OCSF event class with metadata and field handling"},
		builder: fileSpec{"builder.tmpl", "event-builder.js", "Fluent builder pattern for constructing OCSF events"},
		index: []fileSpec{
			{"index.tmpl", "index.js", "Main entry point with exports"},
			{"package.tmpl", "package.json", "NPM package configuration"},
		},
	},
	"rust": {
		name: "rust", display: "Rust", dir: "rust", ext: ".rs", module: sameName,
		core:    fileSpec{"core.tmpl", "ocsf_core.rs", "Core OCSF event structure with metadata and field handling"},
		builder: fileSpec{"builder.tmpl", "event_builder.rs", "Fluent builder pattern for constructing OCSF events easily"},
	},
	"go": {
		name: "go", display: "Go", dir: "go", ext: ".go", module: sameName,
		core:    fileSpec{"core.tmpl", "ocsf.go", "Core OCSF event type with metadata and field handling"},
		builder: fileSpec{"builder.tmpl", "builder.go", "Fluent builder for constructing OCSF events"},
	},
}

var aliases = map[string]string{"js": "javascript", "golang": "go"}

func lookupLayout(language string) (layout, bool) {
	key := strings.ToLower(strings.TrimSpace(language))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	l, ok := layouts[key]
	return l, ok
}

// Languages lists the supported language names.
func Languages() []string {
	return []string{"rust", "python", "javascript", "go"}
}
