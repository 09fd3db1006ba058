package models

// Account is a row of the chart of accounts.
type Account struct {
	Code        string `db:"code" json:"code"`
	Name        string `db:"name" json:"name"`
	AccountType string `db:"account_type" json:"accountType"`
	Description string `db:"description" json:"description"`
	AuditFields
}
