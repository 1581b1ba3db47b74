package schema

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

const (
	baseEventClass        = "base_event"
	noDescriptionFallback = "No description available"
)

// EventClass looks up a class by name.
func (s *Schema) EventClass(name string) (*EventClass, bool) {
	c, ok := s.Classes[name]
	if !ok {
		return nil, false
	}
	return &c, true
}

// Categories groups every class except base_event by its category tag.
// Groups are sorted by tag and class names within a group are sorted.
func (s *Schema) Categories() []CategorySummary {
	groups := map[string][]string{}
	for name, c := range s.Classes {
		if name == baseEventClass {
			continue
		}
		groups[c.Category] = append(groups[c.Category], name)
	}

	out := make([]CategorySummary, 0, len(groups))
	for tag, names := range groups {
		slices.Sort(names)
		out = append(out, CategorySummary{
			Name:         tag,
			Description:  CategoryDescription(tag),
			EventCount:   len(names),
			EventClasses: names,
		})
	}
	slices.SortFunc(out, func(a, b CategorySummary) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// EventClassesForCategory lists the classes whose tag equals category exactly.
func (s *Schema) EventClassesForCategory(category string) []EventClassSummary {
	return s.summaries(func(c EventClass) bool { return c.Category == category })
}

// AllEventClasses lists every class except base_event.
func (s *Schema) AllEventClasses() []EventClassSummary {
	return s.summaries(func(EventClass) bool { return true })
}

func (s *Schema) summaries(keep func(EventClass) bool) []EventClassSummary {
	out := []EventClassSummary{}
	for _, c := range s.Classes {
		if c.Name == baseEventClass || !keep(c) {
			continue
		}
		out = append(out, summarize(c))
	}
	slices.SortFunc(out, func(a, b EventClassSummary) int {
		return cmp.Or(cmp.Compare(a.UID, b.UID), cmp.Compare(a.Name, b.Name))
	})
	return out
}

func summarize(c EventClass) EventClassSummary {
	sum := EventClassSummary{
		UID:         c.UID,
		Name:        c.Name,
		Caption:     c.Caption,
		Description: c.Description,
		Category:    c.Category,
	}
	if sum.Caption == "" {
		sum.Caption = c.Name
	}
	if sum.Description == "" {
		sum.Description = noDescriptionFallback
	}
	return sum
}

// RequiredAttributes returns the sorted names of the class's required and
// recommended attributes. Unknown classes yield an empty list.
func (s *Schema) RequiredAttributes(className string) []string {
	c, ok := s.Classes[className]
	if !ok {
		return []string{}
	}
	names := []string{}
	for name, attr := range c.Attributes {
		if attr.IsRequired() {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// RequiredAttributeSummaries describes each required attribute of a class.
// The declared type and description are used when present.
func (s *Schema) RequiredAttributeSummaries(className string) []AttributeSummary {
	c, ok := s.Classes[className]
	if !ok {
		return []AttributeSummary{}
	}
	names := s.RequiredAttributes(className)
	out := make([]AttributeSummary, 0, len(names))
	for _, name := range names {
		attr := c.Attributes[name]
		sum := AttributeSummary{
			Name:        name,
			DataType:    cmp.Or(attr.DataType, "string"),
			Description: cmp.Or(attr.Description, "Required field for "+className),
			Required:    true,
		}
		out = append(out, sum)
	}
	return out
}

// ErrEventClassNotFound is returned when a named class is absent from a schema.
var ErrEventClassNotFound = errors.New("Event class not found")

type classNotFoundError struct {
	name string
}

func (e *classNotFoundError) Error() string {
	return fmt.Sprintf("Event class '%s' not found", e.name)
}

func (e *classNotFoundError) Is(target error) bool { return target == ErrEventClassNotFound }

// ClassNotFound returns an error naming the missing class that matches
// ErrEventClassNotFound.
func ClassNotFound(name string) error {
	return &classNotFoundError{name: name}
}
