// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sales-workers/internal/common/config"
	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// JobHandlerFunc adapts a function to JobHandler.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

func (f JobHandlerFunc) Handle(client worker.JobClient, job entities.Job) {
	f(client, job)
}

// InputValidator rejects job variables before the handler sees them.
type InputValidator interface {
	ValidateJSON(taskType, variables string) error
}

// Manager opens one job worker per task type and closes them on Stop.
type Manager struct {
	client    zbc.Client
	obs       *observability.Observability
	logger    logger.Logger
	validator InputValidator
	mu        sync.Mutex
	workers   map[string]worker.JobWorker
}

func NewManager(client zbc.Client, obs *observability.Observability, log logger.Logger) *Manager {
	return &Manager{
		client:  client,
		obs:     obs,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// WithValidator validates variables of every worker registered afterwards.
func (m *Manager) WithValidator(v InputValidator) *Manager {
	m.validator = v
	return m
}

// Register opens a worker unless the config disables it.
func (m *Manager) Register(taskType string, wcfg config.WorkerConfig, handler JobHandler) {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.workers[taskType]; exists {
		m.logger.Warn("worker already registered", map[string]interface{}{"taskType": taskType})
		return
	}

	if m.validator != nil {
		handler = Validated(taskType, handler, m.validator, m.logger)
	}

	m.workers[taskType] = m.client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, m.obs, m.logger)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	m.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
}

// TaskTypes lists the registered task types.
func (m *Manager) TaskTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.workers))
	for taskType := range m.workers {
		out = append(out, taskType)
	}
	return out
}

// Stop closes every worker and waits for in-flight jobs.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for taskType, w := range m.workers {
		m.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		w.Close()

		done := make(chan struct{})
		go func(w worker.JobWorker) {
			w.AwaitClose()
			close(done)
		}(w)

		select {
		case <-done:
		case <-ctx.Done():
			m.logger.Warn("worker did not stop in time", map[string]interface{}{"taskType": taskType})
		}
	}
	m.workers = make(map[string]worker.JobWorker)
}

// Instrument wraps a handler with a span, job metrics and panic recovery.
// A recovered panic leaves the job to time out and be retried by the broker.
func Instrument(taskType string, handler JobHandler, obs *observability.Observability, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		ctx, span := obs.StartSpan(context.Background(), taskType, map[string]string{
			"jobKey": fmt.Sprint(job.Key),
		})
		status := "completed"

		defer func() {
			if r := recover(); r != nil {
				status = "panic"
				log.Error("handler panicked", map[string]interface{}{
					"taskType": taskType,
					"jobKey":   job.Key,
					"panic":    fmt.Sprint(r),
				})
			}
			obs.RecordJobProcessed(ctx, taskType, status)
			obs.RecordJobDuration(ctx, taskType, time.Since(start), status)
			span.End()
		}()

		handler.Handle(client, job)
	}
}

// Validated fails jobs whose variables violate the task's input schema
// with INVALID_INPUT and skips the handler.
func Validated(taskType string, handler JobHandler, v InputValidator, log logger.Logger) JobHandler {
	errorHandler := errors.NewErrorHandler(log)
	return JobHandlerFunc(func(client worker.JobClient, job entities.Job) {
		if err := v.ValidateJSON(taskType, job.Variables); err != nil {
			errorHandler.HandleJobError(context.Background(), client, job, err)
			return
		}
		handler.Handle(client, job)
	})
}
