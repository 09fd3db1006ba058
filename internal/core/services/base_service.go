package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/middleware"
)

// DefaultPersistenceTimeout bounds every unit of work when no option overrides it.
const DefaultPersistenceTimeout = 10 * time.Second

// BaseService provides common functionality for all services
type BaseService struct {
	Timeout           time.Duration
	Accounts          domain.PostingAccounts
	LowStockThreshold int
	CacheTTL          time.Duration
	Clock             func() time.Time
}

// ServiceOption is a functional option for configuring the services
type ServiceOption func(*BaseService)

// WithPersistenceTimeout bounds each unit of work. Zero or negative disables the bound.
func WithPersistenceTimeout(d time.Duration) ServiceOption {
	return func(s *BaseService) {
		s.Timeout = d
	}
}

// WithPostingAccounts overrides the account codes used by the posting recipes.
func WithPostingAccounts(accounts domain.PostingAccounts) ServiceOption {
	return func(s *BaseService) {
		s.Accounts = accounts
	}
}

// WithLowStockThreshold sets the threshold used when the store settings have none.
func WithLowStockThreshold(threshold int) ServiceOption {
	return func(s *BaseService) {
		s.LowStockThreshold = threshold
	}
}

// WithCacheTTL sets how long the chart of accounts is cached. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *BaseService) {
		s.CacheTTL = ttl
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = now
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{
		Timeout:           DefaultPersistenceTimeout,
		Accounts:          domain.DefaultPostingAccounts(),
		LowStockThreshold: domain.DefaultLowStockThreshold,
		Clock:             time.Now,
	}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// now returns the current time in UTC.
func (s *BaseService) now() time.Time {
	return s.Clock().UTC()
}

// WithTimeout applies the persistence timeout to ctx.
func (s *BaseService) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

// RunInTx runs fn in one unit of work bounded by the persistence timeout.
func (s *BaseService) RunInTx(ctx context.Context, repos portsrepo.RepositoryProvider, fn portsrepo.TxFunc) error {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()
	return PersistenceError(repos.TxManager.WithinTransaction(ctx, fn))
}

// PersistenceError converts deadline failures into the retryable
// ErrPersistenceUnavailable and passes every other error through.
func PersistenceError(err error) error {
	if err == nil || errors.Is(err, apperrors.ErrUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	return err
}

// lowStockThreshold prefers the stored settings and falls back to the configured value.
func (s *BaseService) lowStockThreshold(ctx context.Context, repos portsrepo.RepositoryProvider) (int, error) {
	if repos.SettingsRepo == nil {
		return s.LowStockThreshold, nil
	}
	settings, err := repos.SettingsRepo.GetSettings(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return s.LowStockThreshold, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.LowStockThreshold, nil
}

// resolveDate parses an optional YYYY-MM-DD request date, defaulting to today.
func (s *BaseService) resolveDate(raw string) (time.Time, error) {
	return domain.ParseDate(raw, s.now())
}
