// Package service implements the data room use cases on top of the
// repositories, object storage, the matching engine and the question lifecycle.
package service

import (
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"dataroom/internal/lifecycle"
	"dataroom/internal/repository"
)

// unknownUser is recorded when a request carries no user name.
const unknownUser = lifecycle.UnknownResponder

const (
	defaultLimit         = 10
	maxLimit             = 100
	defaultPresignExpiry = 15 * time.Minute
)

var tracer = otel.Tracer("dataroom/internal/service")

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("not found")
	ErrReaderNil         = errors.New("reader is nil")
	ErrConflict          = errors.New("version conflict")
	ErrDanglingReference = errors.New("related document does not exist")
	ErrInvalidInput      = errors.New("invalid input")
)

// Option configures the services.
type Option func(*options)

type options struct {
	log              *zap.Logger
	metrics          *Metrics
	now              func() time.Time
	policy           lifecycle.Policy
	strictReferences bool
	presignExpiry    time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		log:           zap.NewNop(),
		now:           func() time.Time { return time.Now().UTC() },
		presignExpiry: defaultPresignExpiry,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithLogger sets the logger used for lifecycle and storage events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics records lifecycle transitions and ranking calls on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithPolicy sets the lifecycle policy applied by MarkNeedsDocuments.
func WithPolicy(p lifecycle.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithStrictReferences makes Answer reject related document ids that do not exist.
func WithStrictReferences(strict bool) Option {
	return func(o *options) { o.strictReferences = strict }
}

// WithPresignExpiry sets how long download URLs stay valid.
func WithPresignExpiry(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.presignExpiry = d
		}
	}
}

// mapRepoErr translates persistence sentinels into service sentinels.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrVersionConflict):
		return ErrConflict
	}
	return err
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
