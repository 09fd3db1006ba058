package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

type payrollService struct {
	BaseService
	repos   portsrepo.RepositoryProvider
	journal portssvc.JournalWriterSvc
}

// NewPayrollService creates the employee and salary service.
func NewPayrollService(repos portsrepo.RepositoryProvider, journal portssvc.JournalWriterSvc, options ...ServiceOption) portssvc.PayrollSvcFacade {
	return &payrollService{
		BaseService: newBaseService(options...),
		repos:       repos,
		journal:     journal,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func (s *payrollService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: employee name is required", apperrors.ErrValidation)
	}
	if !req.Salary.IsPositive() {
		return nil, fmt.Errorf("%w: salary must be positive", apperrors.ErrValidation)
	}

	employee := domain.Employee{
		EmployeeID:  uuid.NewString(),
		Name:        name,
		Position:    strings.TrimSpace(req.Position),
		Salary:      req.Salary,
		Status:      domain.EmployeePending,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		return repos.EmployeeRepo.SaveEmployee(ctx, employee)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create employee")
		return nil, err
	}
	s.LogInfo(ctx, "Employee created", slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

func (s *payrollService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	employees, err := s.repos.EmployeeRepo.ListEmployees(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees")
		return nil, PersistenceError(fmt.Errorf("failed to list employees: %w", err))
	}
	return employees, nil
}

// PaySalary posts Dr salary expense / Cr payment account. Bank transfer is
// the default payment method.
func (s *payrollService) PaySalary(ctx context.Context, employeeID string, req dto.PaySalaryRequest, userID string) (*domain.PayrollResult, error) {
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}
	method := domain.PaymentBank
	if strings.TrimSpace(req.PaymentMethod) != "" {
		method = domain.ParsePaymentMethod(req.PaymentMethod)
	}

	now := s.now()
	reference := domain.NewReference(domain.PayrollRefPrefix, now)
	var result *domain.PayrollResult
	err = s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		employee, err := repos.EmployeeRepo.FindEmployeeByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := employee.MarkPaid(); err != nil {
			return err
		}
		employee.Touch(userID, now)
		if err := repos.EmployeeRepo.UpdateEmployee(ctx, *employee); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		entry, err := s.journal.PostEntryInTx(ctx, repos, domain.JournalEntry{
			Date:        date,
			Description: fmt.Sprintf("Salary %s", employee.Name),
			Reference:   reference,
			Lines: []domain.JournalLine{
				domain.DebitLine(s.Accounts.SalaryExpense, employee.Salary),
				domain.CreditLine(s.Accounts.ForPaymentMethod(method), employee.Salary),
			},
		}, userID)
		if err != nil {
			return err
		}
		result = &domain.PayrollResult{Employee: *employee, Entry: *entry}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to pay salary", slog.String("employee_id", employeeID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Salary paid", slog.String("employee_id", employeeID), slog.String("reference", reference))
	return result, nil
}

// ResetPayCycle starts a new pay cycle by moving every paid employee back to pending.
func (s *payrollService) ResetPayCycle(ctx context.Context, userID string) (int, error) {
	reset := 0
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		reset = 0
		employees, err := repos.EmployeeRepo.ListEmployees(ctx)
		if err != nil {
			return err
		}
		now := s.now()
		for _, employee := range employees {
			if employee.Status != domain.EmployeePaid {
				continue
			}
			employee.Status = domain.EmployeePending
			employee.Touch(userID, now)
			if err := repos.EmployeeRepo.UpdateEmployee(ctx, employee); err != nil {
				return fmt.Errorf("failed to reset employee %s: %w", employee.EmployeeID, err)
			}
			reset++
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reset pay cycle")
		return 0, err
	}
	s.LogInfo(ctx, "Pay cycle reset", slog.Int("employees", reset))
	return reset, nil
}
