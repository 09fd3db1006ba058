package boltdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	bolt "go.etcd.io/bbolt"
)

// insert stores v under key unless the key is taken.
func (r boltRepository) insert(ctx context.Context, bucketName, key string, v any) error {
	return r.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}
		if exists(b, key) {
			return fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, bucketName, key)
		}
		return putJSON(b, key, v)
	})
}

// replace overwrites the record under key, which must exist.
func (r boltRepository) replace(ctx context.Context, bucketName, key string, v any) error {
	return r.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}
		if !exists(b, key) {
			return apperrors.ErrNotFound
		}
		return putJSON(b, key, v)
	})
}

func find[T any](ctx context.Context, r boltRepository, bucketName, key string) (T, error) {
	var v T
	err := r.view(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}
		v, err = getJSON[T](b, key)
		return err
	})
	return v, err
}

func list[T any](ctx context.Context, r boltRepository, bucketName string, filter func(T) bool) ([]T, error) {
	var rows []T
	err := r.view(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}
		rows, err = listJSON(b, filter)
		return err
	})
	return rows, err
}

type productRepository struct {
	boltRepository
}

var _ portsrepo.ProductRepositoryFacade = (*productRepository)(nil)

func (r *productRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	return r.insert(ctx, BucketProducts, product.ProductID, mapping.ToModelProduct(product))
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	return r.replace(ctx, BucketProducts, product.ProductID, mapping.ToModelProduct(product))
}

func (r *productRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	m, err := find[models.Product](ctx, r.boltRepository, BucketProducts, productID)
	if err != nil {
		return nil, err
	}
	product := mapping.ToDomainProduct(m)
	return &product, nil
}

// FindProductForUpdate reads a product. The surrounding writable transaction
// already excludes other writers.
func (r *productRepository) FindProductForUpdate(ctx context.Context, productID string) (*domain.Product, error) {
	return r.FindProductByID(ctx, productID)
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := list[models.Product](ctx, r.boltRepository, BucketProducts, nil)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, len(rows))
	for i, m := range rows {
		products[i] = mapping.ToDomainProduct(m)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ProductID < products[j].ProductID
	})
	return products, nil
}

type employeeRepository struct {
	boltRepository
}

var _ portsrepo.EmployeeRepositoryFacade = (*employeeRepository)(nil)

func (r *employeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	return r.insert(ctx, BucketEmployees, employee.EmployeeID, mapping.ToModelEmployee(employee))
}

func (r *employeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	return r.replace(ctx, BucketEmployees, employee.EmployeeID, mapping.ToModelEmployee(employee))
}

func (r *employeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	m, err := find[models.Employee](ctx, r.boltRepository, BucketEmployees, employeeID)
	if err != nil {
		return nil, err
	}
	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

func (r *employeeRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := list[models.Employee](ctx, r.boltRepository, BucketEmployees, nil)
	if err != nil {
		return nil, err
	}
	employees := make([]domain.Employee, len(rows))
	for i, m := range rows {
		employees[i] = mapping.ToDomainEmployee(m)
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].EmployeeID < employees[j].EmployeeID
	})
	return employees, nil
}

type jobRepository struct {
	boltRepository
}

var _ portsrepo.JobRepositoryFacade = (*jobRepository)(nil)

func (r *jobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	return r.insert(ctx, BucketJobs, job.JobID, mapping.ToModelJob(job))
}

func (r *jobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	return r.replace(ctx, BucketJobs, job.JobID, mapping.ToModelJob(job))
}

func (r *jobRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	m, err := find[models.Job](ctx, r.boltRepository, BucketJobs, jobID)
	if err != nil {
		return nil, err
	}
	job := mapping.ToDomainJob(m)
	return &job, nil
}

func (r *jobRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := list[models.Job](ctx, r.boltRepository, BucketJobs, nil)
	if err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, len(rows))
	for i, m := range rows {
		jobs[i] = mapping.ToDomainJob(m)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
		}
		return jobs[i].JobID < jobs[j].JobID
	})
	return jobs, nil
}

type saleRepository struct {
	boltRepository
}

var _ portsrepo.SaleRepositoryFacade = (*saleRepository)(nil)

// SaveSale stores the sale with its items embedded in one record.
func (r *saleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	return r.insert(ctx, BucketSales, sale.SaleID, mapping.ToModelSale(sale))
}

func (r *saleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	m, err := find[models.Sale](ctx, r.boltRepository, BucketSales, saleID)
	if err != nil {
		return nil, err
	}
	sale := mapping.ToDomainSale(m)
	return &sale, nil
}

func (r *saleRepository) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	rows, err := list(ctx, r.boltRepository, BucketSales, func(m models.Sale) bool { return filter.Includes(m.SaleDate) })
	if err != nil {
		return nil, err
	}
	sales := make([]domain.Sale, len(rows))
	for i, m := range rows {
		sales[i] = mapping.ToDomainSale(m)
	}
	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].Date.Equal(sales[j].Date) {
			return sales[i].Date.Before(sales[j].Date)
		}
		return sales[i].SaleID < sales[j].SaleID
	})
	return sales, nil
}

type customerRepository struct {
	boltRepository
}

var _ portsrepo.CustomerRepositoryFacade = (*customerRepository)(nil)

func (r *customerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	return r.insert(ctx, BucketCustomers, customer.CustomerID, mapping.ToModelCustomer(customer))
}

func (r *customerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	m, err := find[models.Customer](ctx, r.boltRepository, BucketCustomers, customerID)
	if err != nil {
		return nil, err
	}
	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

func (r *customerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := list[models.Customer](ctx, r.boltRepository, BucketCustomers, nil)
	if err != nil {
		return nil, err
	}
	customers := make([]domain.Customer, len(rows))
	for i, m := range rows {
		customers[i] = mapping.ToDomainCustomer(m)
	}
	sort.Slice(customers, func(i, j int) bool {
		if customers[i].Name != customers[j].Name {
			return customers[i].Name < customers[j].Name
		}
		return customers[i].CustomerID < customers[j].CustomerID
	})
	return customers, nil
}

type settingsRepository struct {
	boltRepository
}

var _ portsrepo.SettingsRepositoryFacade = (*settingsRepository)(nil)

// GetSettings returns the stored settings, or apperrors.ErrNotFound when none was saved.
func (r *settingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	m, err := find[models.Settings](ctx, r.boltRepository, BucketSettings, settingsKey)
	if err != nil {
		return nil, err
	}
	settings := mapping.ToDomainSettings(m)
	return &settings, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return r.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketSettings)
		if err != nil {
			return err
		}
		return putJSON(b, settingsKey, mapping.ToModelSettings(settings))
	})
}
