package sync

import (
	"context"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/google/uuid"
)

// JobService tracks long-running async sync jobs
type JobService struct {
	jobRepo sync.JobRepository
}

// NewJobService creates a new JobService
func NewJobService(jobRepo sync.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// Enqueue queues a new job
func (s *JobService) Enqueue(ctx context.Context, req EnqueueJobRequest) (*JobResponse, error) {
	job, err := sync.NewAsyncSyncJob(sync.EntityKind(req.Kind), req.Parameters)
	if err != nil {
		return nil, err
	}
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}
	response := ToJobResponse(job)
	return &response, nil
}

// Get returns one job by ID
func (s *JobService) Get(ctx context.Context, jobID uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	response := ToJobResponse(job)
	return &response, nil
}

// ListByStatus returns jobs in one state
func (s *JobService) ListByStatus(ctx context.Context, status sync.JobStatus, filter shared.Filter) ([]JobResponse, error) {
	filter.Clamp()
	jobs, err := s.jobRepo.FindByStatus(ctx, status, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, ToJobResponse(&jobs[i]))
	}
	return responses, nil
}

// Start moves a queued job to running
func (s *JobService) Start(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := job.Start(nowFunc()); err != nil {
		return err
	}
	return s.jobRepo.SaveWithLock(ctx, job)
}

// Complete records a job's success with the rows it synced
func (s *JobService) Complete(ctx context.Context, jobID uuid.UUID, rows int64) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := job.Complete(nowFunc(), rows); err != nil {
		return err
	}
	return s.jobRepo.SaveWithLock(ctx, job)
}

// Fail records a job's failure
func (s *JobService) Fail(ctx context.Context, jobID uuid.UUID, reason string) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := job.Fail(nowFunc(), reason); err != nil {
		return err
	}
	return s.jobRepo.SaveWithLock(ctx, job)
}
