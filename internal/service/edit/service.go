package edit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/use-of-force/internal/domain"
	"github.com/heartmarshall/use-of-force/internal/metrics"
)

type reportRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	ApplySectionUpdate(ctx context.Context, id int64, section domain.Section, values map[string]any) error
	ChangeOwner(ctx context.Context, id int64, username, reporterName string) error
}

type editRepo interface {
	Append(ctx context.Context, edit *domain.ReportEdit) (uuid.UUID, error)
	ListByReport(ctx context.Context, reportID int64) ([]*domain.ReportEdit, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenSource obtains system tokens acting on behalf of a member of staff.
type TokenSource interface {
	SystemToken(ctx context.Context, username string) (string, error)
}

// ResolverFactory creates a NameResolver that calls upstream APIs with token.
type ResolverFactory interface {
	ForToken(token string) NameResolver
}

// ResolverFunc adapts a function to a resolver factory.
type ResolverFunc func(token string) NameResolver

func (f ResolverFunc) ForToken(token string) NameResolver { return f(token) }

// LookupContext identifies on whose behalf prison and location names are resolved.
type LookupContext struct {
	Username string
}

// Config tunes the service.
type Config struct {
	// LookupConcurrency bounds concurrent name lookups per rendering pass.
	LookupConcurrency int
}

const defaultLookupConcurrency = 8

// Service compares, confirms, commits and audits edits to submitted reports.
type Service struct {
	registry    *Registry
	reports     reportRepo
	edits       editRepo
	tx          txManager
	tokens      TokenSource
	resolvers   ResolverFactory
	metrics     *metrics.Metrics
	concurrency int
	now         func() time.Time
	log         *slog.Logger
}

// NewService creates a new edit service.
func NewService(
	log *slog.Logger,
	registry *Registry,
	reports reportRepo,
	edits editRepo,
	tx txManager,
	tokens TokenSource,
	resolvers ResolverFactory,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	concurrency := cfg.LookupConcurrency
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}
	return &Service{
		registry:    registry,
		reports:     reports,
		edits:       edits,
		tx:          tx,
		tokens:      tokens,
		resolvers:   resolvers,
		metrics:     m,
		concurrency: concurrency,
		now:         time.Now,
		log:         log.With("service", "edit"),
	}
}

// Registry returns the section schemas the service compares against.
func (s *Service) Registry() *Registry { return s.registry }

// editableSchema resolves a section named by a caller outside the process.
func (s *Service) editableSchema(section domain.Section) (*Schema, error) {
	if !section.IsEditable() {
		return nil, domain.ErrUnknownSection
	}
	return s.registry.MustSection(section), nil
}

// nameResolver returns a resolver acting for lc. When no system token can be
// obtained it returns nil and lookups fall back to raw identifiers.
func (s *Service) nameResolver(ctx context.Context, lc LookupContext) NameResolver {
	if s.tokens == nil || s.resolvers == nil {
		return nil
	}
	token, err := s.tokens.SystemToken(ctx, lc.Username)
	if err != nil {
		s.log.WarnContext(ctx, "system token unavailable, names will not be resolved",
			slog.String("username", lc.Username),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return s.resolvers.ForToken(token)
}
