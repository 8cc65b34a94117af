package jobs

import (
	"context"
	"log"
	"time"
)

// Task is a unit of periodic work run by a Worker.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// Worker runs a task on a fixed interval until stopped. Task errors are logged
// and never stop the loop. A slow run can overlap the next tick conceptually;
// within one worker runs are strictly sequential, but two workers sharing
// stores may overlap and the tasks must tolerate that.
type Worker struct {
	task     Task
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewWorker creates a new Worker instance
func NewWorker(task Task, interval time.Duration) *Worker {
	return &Worker{
		task:     task,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the worker's ticker loop
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneChan)

	log.Printf("worker %s started with interval %v", w.task.Name(), w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("worker %s stopped: context cancelled", w.task.Name())
			return
		case <-w.stopChan:
			log.Printf("worker %s stopped: stop signal received", w.task.Name())
			return
		case <-ticker.C:
			if err := w.task.Run(ctx); err != nil {
				log.Printf("worker %s run failed: %v", w.task.Name(), err)
			}
		}
	}
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	close(w.stopChan)
	<-w.doneChan
	log.Printf("worker %s shutdown complete", w.task.Name())
}
