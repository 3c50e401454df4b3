package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"axisd/internal/audit"
	"axisd/internal/axis"
	"axisd/internal/platform/metrics"
	dErrors "axisd/pkg/domain-errors"
	"axisd/pkg/requestcontext"
)

// AuditPublisher records catalog mutations without blocking them.
type AuditPublisher interface {
	Emit(ctx context.Context, action, subject string, success bool, detail map[string]string)
}

// Service validates coordinates before persisting them and emits audit
// events for every mutation.
type Service struct {
	store   Store
	audit   AuditPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	strict  bool
}

// NewService creates a catalog service. Strict mode additionally enforces the
// per-axis metadata patterns on save.
func NewService(store Store, audit AuditPublisher, logger *slog.Logger, m *metrics.Metrics, strict bool) *Service {
	return &Service{
		store:   store,
		audit:   audit,
		logger:  logger,
		metrics: m,
		strict:  strict,
	}
}

// Save validates and persists a coordinate. Saving the same coordinate twice
// is idempotent: the record is updated in place under its hash.
func (s *Service) Save(ctx context.Context, c *axis.Coordinate) (Record, error) {
	report := axis.Validate(c)
	if s.strict {
		report = axis.ValidateStrict(c)
	}
	if !report.Valid {
		return Record{}, dErrors.Newf(dErrors.CodeValidation, "coordinate invalid: %s", strings.Join(report.Errors, "; "))
	}

	record, err := s.store.Save(ctx, NewRecord(c, requestcontext.Now(ctx).UTC()))
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog save failed",
			"request_id", requestcontext.RequestID(ctx),
			"hash", c.Hash(),
			"error", err,
		)
		return Record{}, dErrors.Wrap(dErrors.CodeUnavailable, "catalog save failed", err)
	}

	s.metrics.ObserveCatalogSave()
	s.audit.Emit(ctx, audit.ActionCoordinateSaved, record.Hash, true, map[string]string{
		"completeness": strconv.FormatFloat(record.Completeness, 'f', 4, 64),
	})
	return record, nil
}

// Get fetches a record by coordinate hash.
func (s *Service) Get(ctx context.Context, hash string) (*Record, error) {
	if hash == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "coordinate hash is required")
	}
	return s.store.Get(ctx, hash)
}

// List pages through the catalog in creation order.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Record, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, dErrors.Wrap(dErrors.CodeUnavailable, "catalog list failed", err)
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, dErrors.Wrap(dErrors.CodeUnavailable, "catalog count failed", err)
	}
	return records, total, nil
}

// Delete removes a record by hash.
func (s *Service) Delete(ctx context.Context, hash string) error {
	if hash == "" {
		return dErrors.New(dErrors.CodeValidation, "coordinate hash is required")
	}
	if err := s.store.Delete(ctx, hash); err != nil {
		return err
	}
	s.audit.Emit(ctx, audit.ActionCoordinateDeleted, hash, true, nil)
	return nil
}
