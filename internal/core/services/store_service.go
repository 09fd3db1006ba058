package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

type customerService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewCustomerService creates the customer service.
func NewCustomerService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.CustomerSvcFacade {
	return &customerService{BaseService: newBaseService(options...), repos: repos}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Address:     strings.TrimSpace(req.Address),
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		return repos.CustomerRepo.SaveCustomer(ctx, customer)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create customer")
		return nil, err
	}
	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	customer, err := s.repos.CustomerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, PersistenceError(err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	customers, err := s.repos.CustomerRepo.ListCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, PersistenceError(fmt.Errorf("failed to list customers: %w", err))
	}
	return customers, nil
}

type settingsService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewSettingsService creates the store settings service.
func NewSettingsService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.SettingsSvcFacade {
	return &settingsService{BaseService: newBaseService(options...), repos: repos}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	settings, err := s.repos.SettingsRepo.GetSettings(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return &domain.Settings{LowStockThreshold: s.LowStockThreshold}, nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings")
		return nil, PersistenceError(err)
	}
	return settings, nil
}

// UpdateSettings replaces the store profile. Product statuses pick up a new
// threshold on their next stock movement.
func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, userID string) (*domain.Settings, error) {
	if req.LowStockThreshold < 0 {
		return nil, fmt.Errorf("%w: low stock threshold must not be negative", apperrors.ErrValidation)
	}
	now := s.now()
	settings := domain.Settings{
		StoreName:         strings.TrimSpace(req.StoreName),
		Address:           strings.TrimSpace(req.Address),
		Phone:             strings.TrimSpace(req.Phone),
		Email:             strings.TrimSpace(req.Email),
		LowStockThreshold: req.LowStockThreshold,
		AuditFields:       domain.NewAuditFields(userID, now),
	}
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		existing, err := repos.SettingsRepo.GetSettings(ctx)
		if err == nil {
			settings.CreatedAt = existing.CreatedAt
			settings.CreatedBy = existing.CreatedBy
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return repos.SettingsRepo.SaveSettings(ctx, settings)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update settings")
		return nil, err
	}
	s.LogInfo(ctx, "Settings updated", slog.Int("low_stock_threshold", settings.LowStockThreshold))
	return &settings, nil
}
