package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/telhawk-systems/ocsf-mcp/internal/codegen"
	"github.com/telhawk-systems/ocsf-mcp/internal/docs"
	"github.com/telhawk-systems/ocsf-mcp/internal/event"
	"github.com/telhawk-systems/ocsf-mcp/internal/examples"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/mapper"
	"github.com/telhawk-systems/ocsf-mcp/internal/models"
	"github.com/telhawk-systems/ocsf-mcp/internal/schema"
	"github.com/telhawk-systems/ocsf-mcp/internal/validator"
)

// ToolService implements every tool operation. It holds no per-call state.
type ToolService struct {
	schemas        *schema.Repository
	builder        *event.Builder
	validator      *validator.Chain
	mapper         *mapper.Mapper
	codegen        *codegen.Generator
	defaultVersion string
	logger         *logging.Logger
}

// Option configures a ToolService.
type Option func(*ToolService)

// WithDefaultVersion sets the schema version used when a request omits one.
func WithDefaultVersion(v string) Option {
	return func(s *ToolService) {
		if v != "" {
			s.defaultVersion = v
		}
	}
}

// WithBuilder replaces the event builder, e.g. to stamp product metadata.
func WithBuilder(b *event.Builder) Option {
	return func(s *ToolService) { s.builder = b }
}

func NewToolService(schemas *schema.Repository, gen *codegen.Generator, logger *logging.Logger, opts ...Option) *ToolService {
	s := &ToolService{
		schemas:        schemas,
		builder:        event.NewBuilder(schemas),
		validator:      validator.Default(),
		mapper:         mapper.New(),
		codegen:        gen,
		defaultVersion: schema.MinimalVersion,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultVersion is the version applied to requests that omit one.
func (s *ToolService) DefaultVersion() string {
	return s.defaultVersion
}

func (s *ToolService) version(v string) string {
	if v == "" {
		return s.defaultVersion
	}
	return v
}

// BrowseSchema lists categories, the classes of one category, or the
// required attributes of one class. category wins over event_class.
func (s *ToolService) BrowseSchema(ctx context.Context, req models.BrowseSchemaRequest) (*models.SchemaInfo, error) {
	version := s.version(req.Version)
	s.logger.InfoContext(ctx, "browse_ocsf_schema called",
		logging.Version(version),
		logging.Category(req.Category),
		logging.EventClass(req.EventClass),
	)

	sch, err := s.schemas.Load(ctx, version)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Category == "" && req.EventClass == "" && req.AllClasses:
		classes := sch.AllEventClasses()
		return &models.SchemaInfo{
			Summary:      fmt.Sprintf("OCSF v%s - %d event classes available", sch.Version, len(classes)),
			EventClasses: classes,
		}, nil

	case req.Category == "" && req.EventClass == "":
		categories := sch.Categories()
		return &models.SchemaInfo{
			Summary:    fmt.Sprintf("OCSF v%s - %d categories available", sch.Version, len(categories)),
			Categories: categories,
		}, nil

	case req.Category != "":
		classes := sch.EventClassesForCategory(req.Category)
		return &models.SchemaInfo{
			Summary:      fmt.Sprintf("Category '%s' contains %d event classes", req.Category, len(classes)),
			EventClasses: classes,
		}, nil
	}

	ec, ok := sch.EventClass(req.EventClass)
	if !ok {
		return nil, schema.ErrEventClassNotFound
	}
	required := sch.RequiredAttributes(req.EventClass)
	info := &models.SchemaInfo{
		Summary: fmt.Sprintf("Event class '%s' (UID: %d) - %d required fields", ec.Name, ec.UID, len(required)),
	}
	if req.ShowAttributes {
		info.Attributes = sch.RequiredAttributeSummaries(req.EventClass)
	}
	return info, nil
}

// GenerateEvent builds an event and returns it as pretty-printed JSON.
func (s *ToolService) GenerateEvent(ctx context.Context, req models.GenerateEventRequest) (string, error) {
	version := s.version(req.Version)
	s.logger.InfoContext(ctx, "generate_ocsf_event called",
		logging.Version(version),
		logging.EventClass(req.EventClass),
	)

	// The class is resolved before either field source is parsed.
	target, err := s.builder.Resolve(ctx, version, req.EventClass)
	if err != nil {
		return "", err
	}
	required, err := event.ParseFieldSource("required_fields", req.RequiredFields)
	if err != nil {
		return "", err
	}
	optional, err := event.ParseFieldSource("optional_fields", req.OptionalFields)
	if err != nil {
		return "", err
	}
	return target.Build(required, optional).PrettyJSON()
}

// ValidateEvent runs the structural checks. An invalid event is a successful
// call whose report has IsValid false.
func (s *ToolService) ValidateEvent(ctx context.Context, req models.ValidateEventRequest) (*validator.Report, error) {
	s.logger.InfoContext(ctx, "validate_ocsf_event called", slog.Int("length", len(req.EventJSON)))
	return s.validator.Validate(ctx, req.EventJSON)
}

// MapCustomToOCSF suggests a class and field mappings for a raw log line.
func (s *ToolService) MapCustomToOCSF(ctx context.Context, req models.MapCustomRequest) *mapper.Recommendation {
	s.logger.InfoContext(ctx, "map_custom_to_ocsf called",
		slog.Int("sample_length", len(req.SampleLog)),
		slog.Bool("has_suggested_class", req.SuggestedClass != nil),
	)
	return s.mapper.Classify(req.SampleLog, req.SuggestedClass)
}

func (s *ToolService) ListEventExamples(ctx context.Context, req models.ListExamplesRequest) ([]examples.Example, error) {
	s.logger.InfoContext(ctx, "list_event_examples called",
		logging.EventClass(req.EventClass),
		slog.String("scenario", req.Scenario),
	)
	return examples.List(req.EventClass, req.Scenario)
}

func (s *ToolService) ListVersions(ctx context.Context) (*models.VersionsResponse, error) {
	s.logger.InfoContext(ctx, "list_ocsf_versions called")
	versions, err := s.schemas.ListVersions()
	if err != nil {
		return nil, err
	}
	return &models.VersionsResponse{Versions: versions, Count: len(versions)}, nil
}

func (s *ToolService) NewestVersion(ctx context.Context) (*models.NewestVersionResponse, error) {
	s.logger.InfoContext(ctx, "get_newest_ocsf_version called")
	version, err := s.schemas.NewestStableVersion()
	if err != nil {
		return nil, err
	}
	return &models.NewestVersionResponse{Version: version, IsStable: true}, nil
}

// GenerateLoggingCode renders helpers for the requested classes using the
// default-version schema.
func (s *ToolService) GenerateLoggingCode(ctx context.Context, req models.GenerateCodeRequest) (*codegen.Artifacts, error) {
	s.logger.InfoContext(ctx, "generate_logging_code called", logging.Language(req.Language))

	sch, err := s.schemas.Load(ctx, s.defaultVersion)
	if err != nil {
		return nil, err
	}
	return s.codegen.Generate(sch, codegen.Request{
		Language:       req.Language,
		EventClasses:   req.EventClasses,
		Framework:      req.Framework,
		IncludeHelpers: req.IncludeHelpers,
	})
}

func (s *ToolService) ReadDocs(ctx context.Context, req models.ReadDocsRequest) (string, error) {
	s.logger.InfoContext(ctx, "read_ocsf_docs called", logging.Topic(req.Topic))
	return docs.Read(req.Topic)
}

// Health summarizes repository state for the health endpoint.
func (s *ToolService) Health() models.HealthResponse {
	versions, err := s.schemas.ListVersions()
	status := "healthy"
	if err != nil {
		status = "degraded"
	}
	return models.HealthResponse{Status: status, DefaultVersion: s.defaultVersion, Versions: len(versions)}
}
