package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

type inventoryService struct {
	BaseService
	repos   portsrepo.RepositoryProvider
	journal portssvc.JournalWriterSvc
}

// NewInventoryService creates the product catalogue and restock service.
func NewInventoryService(repos portsrepo.RepositoryProvider, journal portssvc.JournalWriterSvc, options ...ServiceOption) portssvc.InventorySvcFacade {
	return &inventoryService{
		BaseService: newBaseService(options...),
		repos:       repos,
		journal:     journal,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	if req.Stock < 0 || req.Cost.IsNegative() || req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: stock, cost and price must not be negative", apperrors.ErrValidation)
	}

	product := domain.Product{
		ProductID:   uuid.NewString(),
		SKU:         strings.TrimSpace(req.SKU),
		Name:        name,
		Category:    strings.TrimSpace(req.Category),
		Stock:       req.Stock,
		Cost:        req.Cost,
		Price:       req.Price,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		threshold, err := s.lowStockThreshold(ctx, repos)
		if err != nil {
			return err
		}
		product.Status = domain.StockStatus(product.Stock, threshold)
		return repos.ProductRepo.SaveProduct(ctx, product)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create product", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID))
	return &product, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	product, err := s.repos.ProductRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, PersistenceError(err)
	}
	return product, nil
}

func (s *inventoryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	products, err := s.repos.ProductRepo.ListProducts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, PersistenceError(fmt.Errorf("failed to list products: %w", err))
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// RestockProduct adds purchased units, keeps the latest unit cost and posts
// Dr inventory / Cr payment account. Zero-cost restocks post nothing.
func (s *inventoryService) RestockProduct(ctx context.Context, productID string, req dto.RestockRequest, userID string) (*domain.RestockResult, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost must not be negative", apperrors.ErrValidation)
	}
	totalCost := req.UnitCost.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if req.TotalCost != nil && !req.TotalCost.Equal(totalCost) {
		return nil, fmt.Errorf("%w: %s != %d x %s", apperrors.ErrAmountMismatch, req.TotalCost, req.Quantity, req.UnitCost)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &domain.RestockResult{Reference: domain.NewReference(domain.RestockRefPrefix, now)}
	method := domain.ParsePaymentMethod(req.PaymentMethod)

	err = s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		threshold, err := s.lowStockThreshold(ctx, repos)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo.FindProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		product.Restock(req.Quantity, req.UnitCost, threshold)
		product.Touch(userID, now)
		if err := repos.ProductRepo.UpdateProduct(ctx, *product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		result.Product = *product

		if totalCost.IsZero() {
			return nil
		}
		entry, err := s.journal.PostEntryInTx(ctx, repos, domain.JournalEntry{
			Date:        date,
			Description: fmt.Sprintf("Restock %d x %s", req.Quantity, product.Name),
			Reference:   result.Reference,
			Lines: []domain.JournalLine{
				domain.DebitLine(s.Accounts.Inventory, totalCost),
				domain.CreditLine(s.Accounts.ForPaymentMethod(method), totalCost),
			},
		}, userID)
		if err != nil {
			return err
		}
		result.Entry = entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to restock product", slog.String("product_id", productID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Product restocked",
		slog.String("product_id", productID),
		slog.Int("quantity", req.Quantity),
		slog.String("reference", result.Reference))
	return result, nil
}
