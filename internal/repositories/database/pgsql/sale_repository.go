package pgsql

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool, db DBTX) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, sale_date, customer_id, subtotal, discount, shipping, total, total_cost, payment_method, created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	var customerID *string
	err := row.Scan(&m.SaleID, &m.SaleDate, &customerID, &m.Subtotal, &m.Discount, &m.Shipping,
		&m.Total, &m.TotalCost, &m.PaymentMethod, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	m.CustomerID = derefString(customerID)
	return m, err
}

// SaveSale inserts the sale header and its items atomically.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)

	return r.atomic(ctx, func(db DBTX) error {
		query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
		_, err := db.Exec(ctx, query, m.SaleID, m.SaleDate, nullIfEmpty(m.CustomerID), m.Subtotal, m.Discount, m.Shipping,
			m.Total, m.TotalCost, m.PaymentMethod, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return mapError(err, "failed to insert sale "+m.SaleID)
		}

		batch := &pgx.Batch{}
		itemQuery := `
			INSERT INTO sale_items (sale_id, line_no, product_id, product_name, quantity, unit_price, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		for _, item := range m.Items {
			batch.Queue(itemQuery, m.SaleID, item.LineNo, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.UnitCost)
		}
		br := db.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return mapError(err, "failed to insert items for sale "+m.SaleID)
		}
		return nil
	})
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	m, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1;`, saleID))
	if err != nil {
		return nil, mapError(err, "failed to find sale "+saleID)
	}
	items, err := r.itemsFor(ctx, []string{saleID})
	if err != nil {
		return nil, err
	}
	m.Items = items[saleID]
	sale := mapping.ToDomainSale(m)
	return &sale, nil
}

// ListSales returns sales inside the filter ordered by date then id.
func (r *PgxSaleRepository) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE ($1::date IS NULL OR sale_date >= $1)
		  AND ($2::date IS NULL OR sale_date <= $2)
		ORDER BY sale_date, sale_id;
	`
	var from, to any
	if !filter.From.IsZero() {
		from = domain.NormalizeDate(filter.From)
	}
	if !filter.To.IsZero() {
		to = domain.NormalizeDate(filter.To)
	}

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, mapError(err, "failed to list sales")
	}
	headers := []models.Sale{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, mapError(err, "failed to scan sale row")
		}
		headers = append(headers, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating sale rows")
	}
	if len(headers) == 0 {
		return []domain.Sale{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.SaleID
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	sales := make([]domain.Sale, len(headers))
	for i, h := range headers {
		h.Items = items[h.SaleID]
		sales[i] = mapping.ToDomainSale(h)
	}
	return sales, nil
}

func (r *PgxSaleRepository) itemsFor(ctx context.Context, saleIDs []string) (map[string][]models.SaleItem, error) {
	query := `
		SELECT sale_id, line_no, product_id, product_name, quantity, unit_price, unit_cost
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, line_no;
	`
	rows, err := r.db.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, mapError(err, "failed to query sale items")
	}
	defer rows.Close()

	result := make(map[string][]models.SaleItem, len(saleIDs))
	for rows.Next() {
		var item models.SaleItem
		if err := rows.Scan(&item.SaleID, &item.LineNo, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.UnitCost); err != nil {
			return nil, mapError(err, "failed to scan sale item row")
		}
		result[item.SaleID] = append(result[item.SaleID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating sale item rows")
	}
	return result, nil
}

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool, db DBTX) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, phone, email, address, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(&m.CustomerID, &m.Name, &m.Phone, &m.Email, &m.Address,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `INSERT INTO customers (` + customerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.db.Exec(ctx, query, m.CustomerID, m.Name, m.Phone, m.Email, m.Address,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "failed to save customer "+m.CustomerID)
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	m, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1;`, customerID))
	if err != nil {
		return nil, mapError(err, "failed to find customer "+customerID)
	}
	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name, customer_id;`)
	if err != nil {
		return nil, mapError(err, "failed to list customers")
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan customer row")
		}
		customers = append(customers, mapping.ToDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating customer rows")
	}
	return customers, nil
}

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool, db DBTX) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// GetSettings returns the stored settings row, or apperrors.ErrNotFound when none was saved.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT store_name, address, phone, email, low_stock_threshold, created_at, created_by, last_updated_at, last_updated_by
		FROM app_settings WHERE id = 1;
	`
	var m models.Settings
	err := r.db.QueryRow(ctx, query).Scan(&m.StoreName, &m.Address, &m.Phone, &m.Email, &m.LowStockThreshold,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return nil, mapError(err, "failed to read settings")
	}
	settings := mapping.ToDomainSettings(m)
	return &settings, nil
}

// SaveSettings upserts the single settings row.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	m := mapping.ToModelSettings(settings)
	query := `
		INSERT INTO app_settings (id, store_name, address, phone, email, low_stock_threshold, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET store_name = EXCLUDED.store_name, address = EXCLUDED.address, phone = EXCLUDED.phone,
		    email = EXCLUDED.email, low_stock_threshold = EXCLUDED.low_stock_threshold,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query, m.StoreName, m.Address, m.Phone, m.Email, m.LowStockThreshold,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError(err, "failed to save settings")
	}
	return nil
}

