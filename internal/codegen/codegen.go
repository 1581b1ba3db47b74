package codegen

import (
	"bytes"
	"cmp"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/telhawk-systems/ocsf-mcp/internal/schema"
)

//go:embed templates
var templateFS embed.FS

var (
	// ErrUnsupportedLanguage is returned for languages without templates.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrInvalidClassList is returned when a JSON class list does not parse.
	ErrInvalidClassList = errors.New("invalid event class list")
)

type unsupportedLanguageError struct{ language string }

func (e *unsupportedLanguageError) Error() string {
	return fmt.Sprintf("Language '%s' not yet supported. Available: %s", e.language, strings.Join(Languages(), ", "))
}

func (e *unsupportedLanguageError) Is(target error) bool { return target == ErrUnsupportedLanguage }

type classListError struct{ err error }

func (e *classListError) Error() string { return "Invalid JSON in event_classes: " + e.err.Error() }

func (e *classListError) Is(target error) bool { return target == ErrInvalidClassList }

func (e *classListError) Unwrap() error { return e.err }

type unknownClassError struct{ name string }

func (e *unknownClassError) Error() string { return "Unknown event class: " + e.name }

func (e *unknownClassError) Is(target error) bool { return target == schema.ErrEventClassNotFound }

// File is one generated source file.
type File struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// Artifacts is the full output of one generation request.
type Artifacts struct {
	Summary  string `json:"summary"`
	Language string `json:"language"`
	Files    []File `json:"files"`
}

// Request describes what to generate. EventClasses is a JSON array or a
// comma-separated list of class names.
type Request struct {
	Language       string
	EventClasses   string
	Framework      string
	IncludeHelpers bool
}

// Class is the per-class template input.
type Class struct {
	Name        string
	TypeName    string
	Module      string
	Description string
	UID         int
	CategoryUID int
}

type templateData struct {
	Version   string
	Framework string
	Helpers   bool
	Classes   []Class
	Class     Class
}

// Generator renders logging helpers from embedded templates.
type Generator struct {
	templates map[string]*template.Template
}

// New parses the templates of every supported language.
func New() (*Generator, error) {
	g := &Generator{templates: make(map[string]*template.Template)}
	for _, l := range layouts {
		if _, ok := g.templates[l.dir]; ok {
			continue
		}
		t, err := template.New(l.dir).ParseFS(templateFS, "templates/"+l.dir+"/*.tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", l.dir, err)
		}
		g.templates[l.dir] = t
	}
	return g, nil
}

// Generate renders the files for req. Classes are resolved against s, whose
// version is stamped into the generated metadata.
func (g *Generator) Generate(s *schema.Schema, req Request) (*Artifacts, error) {
	l, ok := lookupLayout(req.Language)
	if !ok {
		return nil, &unsupportedLanguageError{language: req.Language}
	}

	names, err := ParseClassList(req.EventClasses)
	if err != nil {
		return nil, err
	}

	classes := make([]Class, 0, len(names))
	for _, name := range names {
		ec, ok := s.EventClass(name)
		if !ok {
			return nil, &unknownClassError{name: name}
		}
		classes = append(classes, Class{
			Name:        name,
			TypeName:    typeName(name),
			Module:      l.module(name),
			Description: cmp.Or(ec.Description, ec.Caption, name),
			UID:         ec.UID,
			CategoryUID: ec.CategoryUID(),
		})
	}

	data := templateData{
		Version:   s.Version,
		Framework: req.Framework,
		Helpers:   req.IncludeHelpers,
		Classes:   classes,
	}

	var files []File
	render := func(spec fileSpec, filename string, d templateData) error {
		content, err := g.render(l.dir, spec.template, d)
		if err != nil {
			return err
		}
		files = append(files, File{Filename: filename, Content: content, Description: spec.description})
		return nil
	}

	if err := render(l.core, l.core.filename, data); err != nil {
		return nil, err
	}
	if req.IncludeHelpers {
		if err := render(l.builder, l.builder.filename, data); err != nil {
			return nil, err
		}
	}
	for _, c := range classes {
		d := data
		d.Class = c
		spec := fileSpec{template: classTemplate, description: fmt.Sprintf("OCSF %s event implementation", c.Name)}
		if err := render(spec, c.Module+l.ext, d); err != nil {
			return nil, err
		}
	}
	for _, spec := range l.index {
		if err := render(spec, spec.filename, data); err != nil {
			return nil, err
		}
	}

	return &Artifacts{
		Summary: fmt.Sprintf("Generated %s OCSF logging code for %d event classes with %d files",
			l.display, len(classes), len(files)),
		Language: l.name,
		Files:    files,
	}, nil
}

func (g *Generator) render(dir, name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := g.templates[dir].ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s/%s: %w", dir, name, err)
	}
	return buf.String(), nil
}

// ParseClassList accepts a JSON array of names or a comma-separated list.
// Empty entries are dropped.
func ParseClassList(text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") {
		var names []string
		if err := json.Unmarshal([]byte(trimmed), &names); err != nil {
			return nil, &classListError{err: err}
		}
		return names, nil
	}
	var names []string
	for _, n := range strings.Split(text, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

// typeName turns process_activity into ProcessActivityEvent.
func typeName(class string) string {
	var b strings.Builder
	for _, part := range strings.Split(class, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	b.WriteString("Event")
	return b.String()
}
