package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelAuditFields copies the audit stamps into row form, in UTC.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt.UTC(),
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt.UTC(),
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields reverses ToModelAuditFields. pgx scans timestamptz in
// the session zone, so times are normalised back to UTC here.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	a := domain.NewAuditFields(m.CreatedBy, m.CreatedAt.UTC())
	a.Touch(m.LastUpdatedBy, m.LastUpdatedAt.UTC())
	return a
}
