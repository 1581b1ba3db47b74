// Package docs serves the bundled OCSF guides.
package docs

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed topics/*.md
var topics embed.FS

// ErrUnknownTopic is returned by Read for names with no guide.
var ErrUnknownTopic = errors.New("unknown documentation topic")

type unknownTopicError struct{ topic string }

func (e *unknownTopicError) Error() string {
	return fmt.Sprintf("Unknown topic '%s'. Available: %s", e.topic, strings.Join(Topics(), ", "))
}

func (e *unknownTopicError) Is(target error) bool { return target == ErrUnknownTopic }

// Topic is one guide and the names it answers to.
type Topic struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases,omitempty"`
}

var catalog = []Topic{
	{Name: "getting-started", Description: "Introduction to OCSF and quick start guide", Aliases: []string{"quickstart", "intro"}},
	{Name: "event-classes", Description: "Overview of OCSF event classes by category", Aliases: []string{"classes"}},
	{Name: "mapping-guide", Description: "How to map custom logs to OCSF", Aliases: []string{"mapping", "how-to-map"}},
	{Name: "best-practices", Description: "OCSF implementation best practices", Aliases: []string{"best-practice", "practices"}},
	{Name: "versions", Description: "Guide to OCSF schema versions", Aliases: []string{"version-guide"}},
}

// Catalog returns every topic in display order.
func Catalog() []Topic {
	out := make([]Topic, len(catalog))
	copy(out, catalog)
	return out
}

// Topics returns the canonical topic names.
func Topics() []string {
	names := make([]string, 0, len(catalog))
	for _, t := range catalog {
		names = append(names, t.Name)
	}
	return names
}

// Resolve maps a topic name or alias, case-insensitively, to its canonical name.
func Resolve(topic string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(topic))
	for _, t := range catalog {
		if t.Name == key {
			return t.Name, true
		}
		for _, a := range t.Aliases {
			if a == key {
				return t.Name, true
			}
		}
	}
	return "", false
}

// Read returns the markdown for topic.
func Read(topic string) (string, error) {
	name, ok := Resolve(topic)
	if !ok {
		return "", &unknownTopicError{topic: topic}
	}
	data, err := topics.ReadFile("topics/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("read topic %s: %w", name, err)
	}
	return string(data), nil
}
