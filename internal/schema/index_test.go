package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
)

func loadEmbedded(t *testing.T, version string) *Schema {
	t.Helper()
	s, err := NewEmbeddedRepository(logging.Nop()).Load(context.Background(), version)
	require.NoError(t, err)
	return s
}

func TestSchema_CategoriesMinimal(t *testing.T) {
	cats := Minimal().Categories()

	require.Len(t, cats, 3)
	assert.Equal(t, CategorySummary{
		Name:         "iam",
		Description:  "Identity & Access Management - Authentication, authorization, and account management",
		EventCount:   1,
		EventClasses: []string{"authentication"},
	}, cats[0])
	assert.Equal(t, "network", cats[1].Name)
	assert.Equal(t, "system", cats[2].Name)
	assert.Equal(t, []string{"file_activity", "process_activity"}, cats[2].EventClasses)
	assert.Equal(t, 2, cats[2].EventCount)
}

func TestSchema_CategoriesExcludeBaseEvent(t *testing.T) {
	s := loadEmbedded(t, "1.3.0")
	require.Contains(t, s.Classes, "base_event")

	cats := s.Categories()
	require.Len(t, cats, 7)

	total := 0
	for _, c := range cats {
		assert.NotEqual(t, "other", c.Name)
		assert.NotContains(t, c.EventClasses, "base_event")
		assert.Equal(t, len(c.EventClasses), c.EventCount)
		total += c.EventCount
	}
	assert.Equal(t, len(s.Classes)-1, total)
}

func TestSchema_EventClassesForCategory(t *testing.T) {
	classes := Minimal().EventClassesForCategory("system")
	require.Len(t, classes, 2)
	assert.Equal(t, EventClassSummary{
		UID:         1001,
		Name:        "file_activity",
		Caption:     "File Activity",
		Description: "File system operations",
		Category:    "system",
	}, classes[0])
	assert.Equal(t, 1007, classes[1].UID)

	assert.Empty(t, Minimal().EventClassesForCategory("System"))
	assert.Empty(t, Minimal().EventClassesForCategory("findings"))
}

func TestSchema_SummaryFallbacks(t *testing.T) {
	s := &Schema{Classes: map[string]EventClass{
		"custom_thing": {UID: 99001, Name: "custom_thing", Category: "custom"},
		"base_event":   {UID: 0, Name: "base_event", Category: "custom"},
	}}

	classes := s.EventClassesForCategory("custom")
	require.Len(t, classes, 1)
	assert.Equal(t, "custom_thing", classes[0].Caption)
	assert.Equal(t, "No description available", classes[0].Description)

	cats := s.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, "Category: custom", cats[0].Description)

	assert.Len(t, s.AllEventClasses(), 1)
}

func TestSchema_AllEventClassesSortedByUID(t *testing.T) {
	classes := loadEmbedded(t, "1.6.0").AllEventClasses()
	require.NotEmpty(t, classes)
	for i := 1; i < len(classes); i++ {
		assert.Less(t, classes[i-1].UID, classes[i].UID)
	}
}

func TestSchema_RequiredAttributes(t *testing.T) {
	s := loadEmbedded(t, "1.3.0")

	attrs := s.RequiredAttributes("authentication")
	assert.Len(t, attrs, 18)
	assert.IsIncreasing(t, attrs)
	assert.Contains(t, attrs, "user")
	assert.Contains(t, attrs, "time")
	assert.Contains(t, attrs, "message", "recommended attributes count as required")
	assert.NotContains(t, attrs, "session")
	assert.NotContains(t, attrs, "raw_data")

	assert.Empty(t, s.RequiredAttributes("no_such_class"))
	assert.Empty(t, Minimal().RequiredAttributes("authentication"))
}

func TestSchema_RequiredAttributeSummaries(t *testing.T) {
	s := &Schema{Classes: map[string]EventClass{
		"authentication": {UID: 3002, Name: "authentication", Attributes: map[string]Attribute{
			"user":    {DataType: "object_t", Description: "The subject to authenticate.", Requirement: "required"},
			"is_mfa":  {Requirement: "recommended"},
			"session": {DataType: "object_t", Requirement: "optional"},
		}},
	}}

	got := s.RequiredAttributeSummaries("authentication")
	assert.Equal(t, []AttributeSummary{
		{Name: "is_mfa", DataType: "string", Description: "Required field for authentication", Required: true},
		{Name: "user", DataType: "object_t", Description: "The subject to authenticate.", Required: true},
	}, got)

	assert.Empty(t, s.RequiredAttributeSummaries("missing"))
}

func TestEventClass_CategoryUID(t *testing.T) {
	assert.Equal(t, 3, EventClass{UID: 3002}.CategoryUID())
	assert.Equal(t, 1, EventClass{UID: 1007}.CategoryUID())
	assert.Equal(t, 0, EventClass{UID: 0}.CategoryUID())
}
