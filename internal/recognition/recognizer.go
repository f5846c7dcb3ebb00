// Package recognition orchestrates one face-recognition attempt: decode the
// capture, extract an embedding, load the gallery, match and apply the
// business gates.
package recognition

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/matcher"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

// EmployeeSource is the read-only employee store a session consults.
// GetByID returns domain.ErrEmployeeNotFound when the id is unknown.
type EmployeeSource interface {
	ListEnrolled(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// Recognizer is immutable and safe for concurrent use. Sessions are not.
type Recognizer struct {
	extractor provider.Extractor
	source    EmployeeSource
	matcher   *matcher.Matcher
	opts      Options
	logger    *slog.Logger
}

func New(
	extractor provider.Extractor,
	source EmployeeSource,
	m *matcher.Matcher,
	opts Options,
	logger *slog.Logger,
) (*Recognizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Selection == "" {
		opts.Selection = SelectFirst
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Recognizer{
		extractor: extractor,
		source:    source,
		matcher:   m,
		opts:      opts,
		logger:    logger,
	}, nil
}

// NewSession starts a request-scoped session with its own lazily built gallery.
func (r *Recognizer) NewSession() *Session {
	return &Session{r: r}
}

func (r *Recognizer) Options() Options {
	return r.opts
}

func (r *Recognizer) Matcher() *matcher.Matcher {
	return r.matcher
}

func (r *Recognizer) Extractor() provider.Extractor {
	return r.extractor
}
