package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance returns the side on which accounts of this type accumulate value.
func (t AccountType) NormalBalance() TransactionType {
	if t == Asset || t == Expense {
		return Debit
	}
	return Credit
}

// Account represents a chart of accounts entry.
type Account struct {
	Code        string      `json:"code"`        // Unique, sortable, e.g. "1-1100"
	Name        string      `json:"name"`        // Display label
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"`
	AuditFields
}

// NewAccount builds an account after checking its code, name and type.
func NewAccount(code, name string, accountType AccountType, description string) (Account, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return Account{}, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if name == "" {
		return Account{}, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	accountType = AccountType(strings.ToUpper(string(accountType)))
	if !accountType.IsValid() {
		return Account{}, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	return Account{
		Code:        code,
		Name:        name,
		AccountType: accountType,
		Description: strings.TrimSpace(description),
	}, nil
}
