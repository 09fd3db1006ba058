package accounting

import (
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns the effect of a debit/credit pair on an account of the given type.
// Every balance in the system is derived through this function.
//
//	ASSET, EXPENSE:             debit - credit
//	LIABILITY, EQUITY, REVENUE: credit - debit
func SignedAmount(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// CalculateSignedAmount applies the sign convention to a single journal line.
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	signed, err := SignedAmount(accountType, line.Debit, line.Credit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", line.AccountCode, err)
	}
	return signed, nil
}

// ValidateJournalBalance checks the structural posting rules of a set of lines:
// at least one line, a non-zero amount, one positive side per line and equal
// debit and credit sums.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return apperrors.ErrEmptyEntry
	}

	allZero := true
	for _, l := range lines {
		if !l.IsZero() {
			allZero = false
			break
		}
	}
	if allZero {
		return apperrors.ErrZeroValueEntry
	}

	debitsSum, creditsSum := decimal.Zero, decimal.Zero
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		debitsSum = debitsSum.Add(l.Debit)
		creditsSum = creditsSum.Add(l.Credit)
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedEntry, debitsSum.String(), creditsSum.String())
	}
	return nil
}
