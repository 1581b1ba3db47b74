package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/telhawk-systems/ocsf-mcp/internal/metrics"
	"github.com/telhawk-systems/ocsf-mcp/internal/schema"
)

// ErrEventClassNotFound matches errors for classes missing from the schema.
var ErrEventClassNotFound = schema.ErrEventClassNotFound

const (
	fieldTime     = "time"
	fieldMetadata = "metadata"
)

// SchemaLoader resolves a schema version.
type SchemaLoader interface {
	Load(ctx context.Context, version string) (*schema.Schema, error)
}

// Product identifies the product reporting generated events.
type Product struct {
	Name       string `json:"name"`
	VendorName string `json:"vendor_name"`
	Version    string `json:"version,omitempty"`
}

// Metadata is the builder-owned metadata block of an event.
type Metadata struct {
	Version     string   `json:"version"`
	Product     *Product `json:"product,omitempty"`
	UID         string   `json:"uid"`
	EventClass  string   `json:"event_class"`
	CategoryUID int      `json:"category_uid"`
	ClassUID    int      `json:"class_uid"`
}

// Event is a generated OCSF event. Fields are serialized next to metadata.
type Event struct {
	Metadata Metadata
	Fields   *Fields
}

// MarshalJSON writes metadata first, then every field in insertion order.
func (e *Event) MarshalJSON() ([]byte, error) {
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"metadata":`)
	buf.Write(meta)
	if e.Fields != nil {
		if err := e.Fields.writeMembers(&buf, true); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PrettyJSON renders the event with two-space indentation.
func (e *Event) PrettyJSON() (string, error) {
	out, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}
	return string(out), nil
}

// Builder assembles events against a schema.
type Builder struct {
	schemas SchemaLoader
	product *Product
	now     func() time.Time
	newUID  func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithProduct sets metadata.product on every event.
func WithProduct(p Product) Option {
	return func(b *Builder) { b.product = &p }
}

// WithClock overrides the time source used for default timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithUIDGenerator overrides the metadata.uid generator.
func WithUIDGenerator(gen func() string) Option {
	return func(b *Builder) { b.newUID = gen }
}

// NewBuilder creates a Builder resolving classes through schemas.
func NewBuilder(schemas SchemaLoader, opts ...Option) *Builder {
	b := &Builder{
		schemas: schemas,
		now:     time.Now,
		newUID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Target is an event class resolved against a loaded schema, ready to build.
type Target struct {
	builder *Builder
	class   *schema.EventClass
	name    string
	version string
}

// Resolve loads version and looks up className. Unknown versions resolve
// against the minimal schema; unknown classes fail with ErrEventClassNotFound.
func (b *Builder) Resolve(ctx context.Context, version, className string) (*Target, error) {
	s, err := b.schemas.Load(ctx, version)
	if err != nil {
		return nil, err
	}

	class, ok := s.EventClass(className)
	if !ok {
		return nil, schema.ClassNotFound(className)
	}

	resolved := s.Version
	if resolved == "" {
		resolved = version
	}
	return &Target{builder: b, class: class, name: className, version: resolved}, nil
}

// Build merges required then optional fields and injects time when absent.
// category_uid is always derived from class_uid.
func (t *Target) Build(required, optional FieldSource) *Event {
	now := t.builder.now()
	defaults := Defaults{ClassUID: t.class.UID, Now: now}

	fields := required.Resolve(defaults)
	fields.Merge(optional.Resolve(defaults))
	fields.Delete(fieldMetadata)
	if !fields.Has(fieldTime) {
		fields.Set(fieldTime, defaults.Value(fieldTime))
	}

	metrics.EventsGenerated.WithLabelValues(t.name).Inc()

	return &Event{
		Metadata: Metadata{
			Version:     t.version,
			Product:     t.builder.product,
			UID:         t.builder.newUID(),
			EventClass:  t.name,
			CategoryUID: t.class.CategoryUID(),
			ClassUID:    t.class.UID,
		},
		Fields: fields,
	}
}
