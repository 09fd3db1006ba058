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

type jobService struct {
	BaseService
	repos   portsrepo.RepositoryProvider
	journal portssvc.JournalWriterSvc
}

// NewJobService creates the labour job order service.
func NewJobService(repos portsrepo.RepositoryProvider, journal portssvc.JournalWriterSvc, options ...ServiceOption) portssvc.JobSvcFacade {
	return &jobService{
		BaseService: newBaseService(options...),
		repos:       repos,
		journal:     journal,
	}
}

var _ portssvc.JobSvcFacade = (*jobService)(nil)

func (s *jobService) CreateJob(ctx context.Context, req dto.CreateJobRequest, userID string) (*domain.Job, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: job title is required", apperrors.ErrValidation)
	}
	if !req.Cost.IsPositive() {
		return nil, fmt.Errorf("%w: job cost must be positive", apperrors.ErrValidation)
	}

	job := domain.Job{
		JobID:       uuid.NewString(),
		Title:       title,
		Assignee:    strings.TrimSpace(req.Assignee),
		Cost:        req.Cost,
		Status:      domain.JobPending,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	err := s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		return repos.JobRepo.SaveJob(ctx, job)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create job")
		return nil, err
	}
	s.LogInfo(ctx, "Job created", slog.String("job_id", job.JobID))
	return &job, nil
}

func (s *jobService) ListJobs(ctx context.Context) ([]domain.Job, error) {
	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	jobs, err := s.repos.JobRepo.ListJobs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list jobs")
		return nil, PersistenceError(fmt.Errorf("failed to list jobs: %w", err))
	}
	return jobs, nil
}

// CompleteJob marks the job done and pays it out of cash:
// Dr wages expense / Cr cash for the job cost.
func (s *jobService) CompleteJob(ctx context.Context, jobID string, req dto.CompleteJobRequest, userID string) (*domain.JobCompletionResult, error) {
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	reference := domain.NewReference(domain.JobRefPrefix, now)
	var result *domain.JobCompletionResult
	err = s.RunInTx(ctx, s.repos, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		job, err := repos.JobRepo.FindJobByID(ctx, jobID)
		if err != nil {
			return err
		}
		if err := job.Complete(now); err != nil {
			return err
		}
		job.Touch(userID, now)
		if err := repos.JobRepo.UpdateJob(ctx, *job); err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}

		entry, err := s.journal.PostEntryInTx(ctx, repos, domain.JournalEntry{
			Date:        date,
			Description: fmt.Sprintf("Job payout %s", job.Title),
			Reference:   reference,
			Lines: []domain.JournalLine{
				domain.DebitLine(s.Accounts.SalaryExpense, job.Cost),
				domain.CreditLine(s.Accounts.Cash, job.Cost),
			},
		}, userID)
		if err != nil {
			return err
		}
		result = &domain.JobCompletionResult{Job: *job, Entry: *entry}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to complete job", slog.String("job_id", jobID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Job completed", slog.String("job_id", jobID), slog.String("reference", reference))
	return result, nil
}
