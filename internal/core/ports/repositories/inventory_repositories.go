package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// ProductRepositoryFacade defines persistence for the product catalogue.
type ProductRepositoryFacade interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	// FindProductForUpdate reads a product and locks it for the rest of the transaction
	// where the backend supports row locks.
	FindProductForUpdate(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// SaleRepositoryFacade defines persistence for sale records.
type SaleRepositoryFacade interface {
	SaveSale(ctx context.Context, sale domain.Sale) error
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
}

// CustomerRepositoryFacade defines persistence for customers.
type CustomerRepositoryFacade interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	SaveCustomer(ctx context.Context, customer domain.Customer) error
}

// SettingsRepositoryFacade defines persistence for the store settings row.
type SettingsRepositoryFacade interface {
	// GetSettings returns apperrors.ErrNotFound until settings are first saved.
	GetSettings(ctx context.Context) (*domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}
