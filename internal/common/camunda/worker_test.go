package camunda

import (
	"testing"

	"sales-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	keys  []int64
	panic bool
}

func (h *recordingHandler) Handle(client worker.JobClient, job entities.Job) {
	h.keys = append(h.keys, job.Key)
	if h.panic {
		panic("boom")
	}
}

func newJob(key int64) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: key, Type: "process-turn"}}
}

func TestInstrument_CallsHandler(t *testing.T) {
	h := &recordingHandler{}
	wrapped := Instrument("process-turn", h, nil, logger.NewTestLogger(t))

	wrapped(nil, newJob(7))
	wrapped(nil, newJob(8))

	assert.Equal(t, []int64{7, 8}, h.keys)
}

func TestInstrument_RecoversPanic(t *testing.T) {
	h := &recordingHandler{panic: true}
	wrapped := Instrument("process-turn", h, nil, logger.NewTestLogger(t))

	assert.NotPanics(t, func() { wrapped(nil, newJob(9)) })
	assert.Equal(t, []int64{9}, h.keys)
}

type stubValidator struct {
	err error
}

func (v stubValidator) ValidateJSON(taskType, variables string) error {
	return v.err
}

func TestValidated_PassesValidJobs(t *testing.T) {
	h := &recordingHandler{}
	wrapped := Validated("process-turn", h, stubValidator{}, logger.NewTestLogger(t))

	wrapped.Handle(nil, newJob(11))

	assert.Equal(t, []int64{11}, h.keys)
}

func TestJobHandlerFunc(t *testing.T) {
	var called int64
	var h JobHandler = JobHandlerFunc(func(client worker.JobClient, job entities.Job) {
		called = job.Key
	})

	h.Handle(nil, newJob(42))
	assert.Equal(t, int64(42), called)
}
