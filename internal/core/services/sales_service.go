package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

type salesService struct {
	BaseService
	repos   portsrepo.RepositoryProvider
	journal portssvc.JournalWriterSvc
}

// NewSalesService creates the point-of-sale service.
func NewSalesService(repos portsrepo.RepositoryProvider, journal portssvc.JournalWriterSvc, options ...ServiceOption) portssvc.SalesSvcFacade {
	return &salesService{
		BaseService: newBaseService(options...),
		repos:       repos,
		journal:     journal,
	}
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

// checkSaleTotals verifies the cart arithmetic supplied by the till.
func checkSaleTotals(req dto.CreateSaleRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: sale must contain at least one item", apperrors.ErrValidation)
	}
	if req.Discount.IsNegative() || req.Shipping.IsNegative() {
		return fmt.Errorf("%w: discount and shipping must not be negative", apperrors.ErrValidation)
	}
	subtotal := decimal.Zero
	for i, item := range req.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return fmt.Errorf("%w: item %d has no product", apperrors.ErrValidation, i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if item.UnitPrice.IsNegative() || (item.UnitCost != nil && item.UnitCost.IsNegative()) {
			return fmt.Errorf("%w: item %d has a negative price or cost", apperrors.ErrValidation, i+1)
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !subtotal.Equal(req.Subtotal) {
		return fmt.Errorf("%w: subtotal %s does not equal the sum of items %s", apperrors.ErrTotalMismatch, req.Subtotal, subtotal)
	}
	expected := req.Subtotal.Sub(req.Discount).Add(req.Shipping)
	if !expected.Equal(req.Total) {
		return fmt.Errorf("%w: total %s does not equal subtotal - discount + shipping = %s", apperrors.ErrTotalMismatch, req.Total, expected)
	}
	if req.Total.IsNegative() {
		return fmt.Errorf("%w: discount exceeds subtotal plus shipping", apperrors.ErrTotalMismatch)
	}
	return nil
}

// saleEntries builds the revenue and COGS entries of a sale. Zero amount
// lines are left out and the COGS entry is omitted when the cost is zero.
func saleEntries(accounts domain.PostingAccounts, sale domain.Sale) []domain.JournalEntry {
	var entries []domain.JournalEntry

	var revenue []domain.JournalLine
	if sale.Total.IsPositive() {
		revenue = append(revenue, domain.DebitLine(accounts.ForPaymentMethod(sale.PaymentMethod), sale.Total))
	}
	if sale.Discount.IsPositive() {
		revenue = append(revenue, domain.DebitLine(accounts.SalesDiscount, sale.Discount))
	}
	if sale.Subtotal.IsPositive() {
		revenue = append(revenue, domain.CreditLine(accounts.SalesRevenue, sale.Subtotal))
	}
	if sale.Shipping.IsPositive() {
		revenue = append(revenue, domain.CreditLine(accounts.OtherRevenue, sale.Shipping))
	}
	if len(revenue) > 0 {
		entries = append(entries, domain.JournalEntry{
			Date:        sale.Date,
			Description: fmt.Sprintf("Sale %s", sale.SaleID),
			Reference:   sale.SaleID,
			Lines:       revenue,
		})
	}

	if sale.TotalCost.IsPositive() {
		entries = append(entries, domain.JournalEntry{
			Date:        sale.Date,
			Description: fmt.Sprintf("Cost of goods sold %s", sale.SaleID),
			Reference:   sale.SaleID,
			Lines: []domain.JournalLine{
				domain.DebitLine(accounts.COGS, sale.TotalCost),
				domain.CreditLine(accounts.Inventory, sale.TotalCost),
			},
		})
	}
	return entries
}

// ProcessSale implements the checkout. Stock, the sale record and both
// postings are written in one unit of work.
func (s *salesService) ProcessSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.SaleResult, error) {
	if err := checkSaleTotals(req); err != nil {
		return nil, err
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sale := domain.Sale{
		SaleID:        domain.NewReference(domain.SaleRefPrefix, now),
		Date:          date,
		CustomerID:    strings.TrimSpace(req.CustomerID),
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Shipping:      req.Shipping,
		Total:         req.Total,
		TotalCost:     decimal.Zero,
		PaymentMethod: domain.ParsePaymentMethod(req.PaymentMethod),
		AuditFields:   domain.NewAuditFields(userID, now),
	}

	requested := make(map[string]int)
	for _, item := range req.Items {
		requested[item.ProductID] += item.Quantity
	}
	productIDs := make([]string, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	// Lock in a fixed order so concurrent sales cannot deadlock.
	sort.Strings(productIDs)

	var result *domain.SaleResult
	err = s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		sale := sale
		threshold, err := s.lowStockThreshold(ctx, repos)
		if err != nil {
			return err
		}

		if sale.CustomerID != "" {
			if _, err := repos.CustomerRepo.FindCustomerByID(ctx, sale.CustomerID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: customer %s does not exist", apperrors.ErrValidation, sale.CustomerID)
				}
				return err
			}
		}

		products := make(map[string]*domain.Product, len(productIDs))
		for _, id := range productIDs {
			product, err := repos.ProductRepo.FindProductForUpdate(ctx, id)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: product %s does not exist", apperrors.ErrValidation, id)
				}
				return err
			}
			if product.Stock < requested[id] {
				return fmt.Errorf("%w: %s has %d in stock, %d requested", apperrors.ErrInsufficientStock, product.Name, product.Stock, requested[id])
			}
			products[id] = product
		}

		sale.Items = make([]domain.SaleItem, len(req.Items))
		for i, item := range req.Items {
			product := products[item.ProductID]
			unitCost := product.Cost
			if item.UnitCost != nil {
				unitCost = *item.UnitCost
			}
			sale.Items[i] = domain.SaleItem{
				LineNo:      i + 1,
				ProductID:   item.ProductID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				UnitCost:    unitCost,
			}
			sale.TotalCost = sale.TotalCost.Add(unitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		for _, id := range productIDs {
			product := products[id]
			product.RemoveStock(requested[id], threshold)
			product.Touch(userID, now)
			if err := repos.ProductRepo.UpdateProduct(ctx, *product); err != nil {
				return fmt.Errorf("failed to update stock of %s: %w", id, err)
			}
		}

		if err := repos.SaleRepo.SaveSale(ctx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}

		result = &domain.SaleResult{Sale: sale}
		for _, draft := range saleEntries(s.Accounts, sale) {
			posted, err := s.journal.PostEntryInTx(ctx, repos, draft, userID)
			if err != nil {
				return err
			}
			result.Entries = append(result.Entries, *posted)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to process sale", slog.String("sale_id", sale.SaleID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Sale processed",
		slog.String("sale_id", sale.SaleID),
		slog.String("total", sale.Total.String()),
		slog.String("payment_method", string(sale.PaymentMethod)))
	return result, nil
}

func (s *salesService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	sale, err := s.repos.SaleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, PersistenceError(err)
	}
	return sale, nil
}

func (s *salesService) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	sales, err := s.repos.SaleRepo.ListSales(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales")
		return nil, PersistenceError(fmt.Errorf("failed to list sales: %w", err))
	}
	return sales, nil
}
