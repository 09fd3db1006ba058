package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EmployeeStatus tracks payment within the current pay cycle.
type EmployeeStatus string

const (
	EmployeePending EmployeeStatus = "PENDING"
	EmployeePaid    EmployeeStatus = "PAID"
)

// Employee holds the payroll fields the ledger needs.
type Employee struct {
	EmployeeID string          `json:"employeeID"`
	Name       string          `json:"name"`
	Position   string          `json:"position"`
	Salary     decimal.Decimal `json:"salary"`
	Status     EmployeeStatus  `json:"status"`
	AuditFields
}

// MarkPaid moves the employee from pending to paid. It fails if already paid.
func (e *Employee) MarkPaid() error {
	if e.Status == EmployeePaid {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyPaid, e.EmployeeID)
	}
	e.Status = EmployeePaid
	return nil
}

// PayrollResult is returned by a salary payment.
type PayrollResult struct {
	Employee Employee     `json:"employee"`
	Entry    JournalEntry `json:"entry"`
}

// JobStatus tracks a labour job order.
type JobStatus string

const (
	JobPending JobStatus = "PENDING"
	JobDone    JobStatus = "DONE"
)

// Job is a labour job order paid out on completion.
type Job struct {
	JobID       string          `json:"jobID"`
	Title       string          `json:"title"`
	Assignee    string          `json:"assignee"`
	Cost        decimal.Decimal `json:"cost"`
	Status      JobStatus       `json:"status"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	AuditFields
}

// Complete marks the job done. It fails if the job was already completed.
func (j *Job) Complete(now time.Time) error {
	if j.Status == JobDone {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyCompleted, j.JobID)
	}
	j.Status = JobDone
	j.CompletedAt = &now
	return nil
}

// JobCompletionResult is returned by a job completion.
type JobCompletionResult struct {
	Job   Job          `json:"job"`
	Entry JournalEntry `json:"entry"`
}
