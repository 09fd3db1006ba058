package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		SKU:         d.SKU,
		Name:        d.Name,
		Category:    d.Category,
		Stock:       d.Stock,
		Cost:        d.Cost,
		Price:       d.Price,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		SKU:         m.SKU,
		Name:        m.Name,
		Category:    m.Category,
		Stock:       m.Stock,
		Cost:        m.Cost,
		Price:       m.Price,
		Status:      domain.ProductStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:  d.EmployeeID,
		Name:        d.Name,
		Position:    d.Position,
		Salary:      d.Salary,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		Name:        m.Name,
		Position:    m.Position,
		Salary:      m.Salary,
		Status:      domain.EmployeeStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJob converts a domain Job to a model Job
func ToModelJob(d domain.Job) models.Job {
	return models.Job{
		JobID:       d.JobID,
		Title:       d.Title,
		Assignee:    d.Assignee,
		Cost:        d.Cost,
		Status:      string(d.Status),
		CompletedAt: d.CompletedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJob converts a model Job to a domain Job
func ToDomainJob(m models.Job) domain.Job {
	return domain.Job{
		JobID:       m.JobID,
		Title:       m.Title,
		Assignee:    m.Assignee,
		Cost:        m.Cost,
		Status:      domain.JobStatus(m.Status),
		CompletedAt: m.CompletedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSale converts a domain Sale, items included, to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	items := make([]models.SaleItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.SaleItem{
			SaleID:      d.SaleID,
			LineNo:      item.LineNo,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			UnitCost:    item.UnitCost,
		}
	}
	return models.Sale{
		SaleID:        d.SaleID,
		SaleDate:      d.Date,
		CustomerID:    d.CustomerID,
		Subtotal:      d.Subtotal,
		Discount:      d.Discount,
		Shipping:      d.Shipping,
		Total:         d.Total,
		TotalCost:     d.TotalCost,
		PaymentMethod: string(d.PaymentMethod),
		Items:         items,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	items := make([]domain.SaleItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = domain.SaleItem{
			LineNo:      item.LineNo,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			UnitCost:    item.UnitCost,
		}
	}
	return domain.Sale{
		SaleID:        m.SaleID,
		Date:          m.SaleDate.UTC(),
		CustomerID:    m.CustomerID,
		Items:         items,
		Subtotal:      m.Subtotal,
		Discount:      m.Discount,
		Shipping:      m.Shipping,
		Total:         m.Total,
		TotalCost:     m.TotalCost,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSettings converts domain Settings to model Settings
func ToModelSettings(d domain.Settings) models.Settings {
	return models.Settings{
		StoreName:         d.StoreName,
		Address:           d.Address,
		Phone:             d.Phone,
		Email:             d.Email,
		LowStockThreshold: d.LowStockThreshold,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSettings converts model Settings to domain Settings
func ToDomainSettings(m models.Settings) domain.Settings {
	return domain.Settings{
		StoreName:         m.StoreName,
		Address:           m.Address,
		Phone:             m.Phone,
		Email:             m.Email,
		LowStockThreshold: m.LowStockThreshold,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
