package jobs

import (
	"civdef-inventory-backend/internal/config"
	"civdef-inventory-backend/internal/logger"
	"civdef-inventory-backend/internal/repository"
	"civdef-inventory-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	itemRepo    repository.ItemRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	emailSvc    service.EmailService
	config      *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	itemRepo repository.ItemRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	emailSvc service.EmailService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		itemRepo:    itemRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		config:      cfg,
	}
}

// Config returns the application configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
