package jobs

import "context"

// IngestRunner is the ingestion pipeline surface the scheduler needs.
type IngestRunner interface {
	Run(ctx context.Context) error
}

// SweepRunner is the retention pipeline surface the scheduler needs.
type SweepRunner interface {
	Sweep(ctx context.Context) error
}

// IngestTask adapts the ingestion pipeline to the worker loop.
type IngestTask struct {
	svc IngestRunner
}

func NewIngestTask(svc IngestRunner) *IngestTask {
	return &IngestTask{svc: svc}
}

func (t *IngestTask) Name() string { return "ingest" }

func (t *IngestTask) Run(ctx context.Context) error {
	return t.svc.Run(ctx)
}

// SweepTask adapts the retention sweeper to the worker loop.
type SweepTask struct {
	svc SweepRunner
}

func NewSweepTask(svc SweepRunner) *SweepTask {
	return &SweepTask{svc: svc}
}

func (t *SweepTask) Name() string { return "sweep" }

func (t *SweepTask) Run(ctx context.Context) error {
	return t.svc.Sweep(ctx)
}
