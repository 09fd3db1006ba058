package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates that the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// ErrUnavailable indicates that a dependency could not be reached. Callers may retry.
var ErrUnavailable = errors.New("service unavailable")

// Ledger errors. Each wraps one of the categories above so handlers can map
// them with errors.Is without knowing every specific case.
var (
	ErrEmptyEntry      = fmt.Errorf("%w: journal entry must have at least one line", ErrValidation)
	ErrZeroValueEntry  = fmt.Errorf("%w: journal entry must move a non-zero amount", ErrValidation)
	ErrUnbalancedEntry = fmt.Errorf("%w: debit and credit must balance", ErrValidation)
	ErrInvalidLine     = fmt.Errorf("%w: each journal line needs exactly one positive side", ErrValidation)
	ErrUnknownAccount  = fmt.Errorf("%w: account code does not exist", ErrValidation)

	ErrDuplicateAccountCode = fmt.Errorf("%w: account code already exists", ErrDuplicate)
	ErrAccountInUse         = fmt.Errorf("%w: account is referenced by journal lines", ErrConflict)

	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrValidation)
	ErrAmountMismatch    = fmt.Errorf("%w: total cost does not equal quantity times unit cost", ErrValidation)
	ErrTotalMismatch     = fmt.Errorf("%w: sale totals are inconsistent", ErrValidation)
	ErrAlreadyPaid       = fmt.Errorf("%w: employee is already paid for this cycle", ErrValidation)
	ErrAlreadyCompleted  = fmt.Errorf("%w: job is already completed", ErrValidation)

	ErrPersistenceUnavailable = fmt.Errorf("%w: persistence unavailable", ErrUnavailable)
)

// AppError carries an HTTP-style status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsRetryable reports whether the caller may safely retry the failed operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
