package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/schema"
)

var fixedNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func newTestBuilder(opts ...Option) *Builder {
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithUIDGenerator(func() string { return "123e4567-e89b-12d3-a456-426614174000" }),
	}, opts...)
	return NewBuilder(schema.NewEmbeddedRepository(logging.Nop()), opts...)
}

func mustSource(t *testing.T, label, text string) FieldSource {
	t.Helper()
	src, err := ParseFieldSource(label, text)
	require.NoError(t, err)
	return src
}

func TestBuilder_BuildStructured(t *testing.T) {
	b := newTestBuilder()

	target, err := b.Resolve(context.Background(), "1.3.0", "authentication")
	require.NoError(t, err)
	ev := target.Build(mustSource(t, "required_fields", `{"user": {"name": "alice"}, "category_uid": 99}`), FieldSource{})

	out, err := ev.PrettyJSON()
	require.NoError(t, err)
	assert.Equal(t, `{
  "metadata": {
    "version": "1.3.0",
    "uid": "123e4567-e89b-12d3-a456-426614174000",
    "event_class": "authentication",
    "category_uid": 3,
    "class_uid": 3002
  },
  "user": {
    "name": "alice"
  },
  "category_uid": 99,
  "time": "2025-01-15T10:30:00Z"
}`, out)
}

func TestBuilder_BuildFromNames(t *testing.T) {
	b := newTestBuilder()

	target, err := b.Resolve(context.Background(), "1.6.0", "process_activity")
	require.NoError(t, err)
	ev := target.Build(
		mustSource(t, "required_fields", "activity_id,type_uid,time"),
		mustSource(t, "optional_fields", "message, user"),
	)

	assert.Equal(t, 1007, ev.Metadata.ClassUID)
	assert.Equal(t, 1, ev.Metadata.CategoryUID)
	assert.Equal(t, []string{"activity_id", "type_uid", "time", "message", "user"}, ev.Fields.Keys())

	var doc map[string]any
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.EqualValues(t, 1, doc["activity_id"])
	assert.EqualValues(t, 100701, doc["type_uid"])
	assert.Equal(t, "2025-01-15T10:30:00Z", doc["time"])
	assert.Equal(t, "Generated OCSF event", doc["message"])
	assert.Equal(t, map[string]any{"name": "example_user", "uid": "1001"}, doc["user"])
}

func TestBuilder_OptionalOverridesRequired(t *testing.T) {
	b := newTestBuilder()

	target, err := b.Resolve(context.Background(), "", "network_activity")
	require.NoError(t, err)
	ev := target.Build(
		mustSource(t, "required_fields", `{"severity_id": 1, "time": "earlier"}`),
		mustSource(t, "optional_fields", `{"severity_id": 4}`),
	)

	assert.Equal(t, []string{"severity_id", "time"}, ev.Fields.Keys())
	v, _ := ev.Fields.Get("severity_id")
	assert.Equal(t, "4", string(v))
	v, _ = ev.Fields.Get("time")
	assert.Equal(t, `"earlier"`, string(v))
}

func TestBuilder_UnknownVersionUsesMinimalSchema(t *testing.T) {
	b := newTestBuilder()

	target, err := b.Resolve(context.Background(), "0.0.1", "file_activity")
	require.NoError(t, err)
	ev := target.Build(mustSource(t, "required_fields", ""), FieldSource{})
	assert.Equal(t, schema.MinimalVersion, ev.Metadata.Version)
	assert.Equal(t, 1001, ev.Metadata.ClassUID)
	assert.Equal(t, []string{"time"}, ev.Fields.Keys())
}

func TestBuilder_DropsCallerMetadata(t *testing.T) {
	b := newTestBuilder()

	target, err := b.Resolve(context.Background(), "", "authentication")
	require.NoError(t, err)
	ev := target.Build(mustSource(t, "required_fields", `{"metadata": {"class_uid": 1}, "message": "x"}`), FieldSource{})
	assert.Equal(t, []string{"message", "time"}, ev.Fields.Keys())
	assert.Equal(t, 3002, ev.Metadata.ClassUID)
}

func TestBuilder_UnknownClass(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Resolve(context.Background(), "1.3.0", "teleportation")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEventClassNotFound)
	assert.Equal(t, "Event class 'teleportation' not found", err.Error())
}

func TestBuilder_WithProduct(t *testing.T) {
	b := newTestBuilder(WithProduct(Product{Name: "Sensor", VendorName: "Acme"}))

	target, err := b.Resolve(context.Background(), "", "authentication")
	require.NoError(t, err)
	ev := target.Build(mustSource(t, "required_fields", "time"), FieldSource{})

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"product":{"name":"Sensor","vendor_name":"Acme"}`)
}

func TestBuilder_FreshUIDPerEvent(t *testing.T) {
	b := NewBuilder(schema.NewEmbeddedRepository(logging.Nop()))
	target, err := b.Resolve(context.Background(), "", "authentication")
	require.NoError(t, err)

	first := target.Build(mustSource(t, "required_fields", "time"), FieldSource{})
	second := target.Build(mustSource(t, "required_fields", "time"), FieldSource{})

	assert.Len(t, first.Metadata.UID, 36)
	assert.NotEqual(t, first.Metadata.UID, second.Metadata.UID)
	assert.NotContains(t, mustJSON(t, first), "product")
}

type failingLoader struct{}

func (failingLoader) Load(context.Context, string) (*schema.Schema, error) {
	return nil, errors.New("disk on fire")
}

func TestBuilder_LoaderError(t *testing.T) {
	_, err := NewBuilder(failingLoader{}).Resolve(context.Background(), "", "authentication")
	assert.EqualError(t, err, "disk on fire")
}

func mustJSON(t *testing.T, ev *Event) string {
	t.Helper()
	out, err := ev.PrettyJSON()
	require.NoError(t, err)
	return out
}
