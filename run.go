package main

import (
	"context"
	"errors"
	"log"
	"sync"

	"gorm.io/gorm"

	"resourceocr/models"
	"resourceocr/pkg/config"
	"resourceocr/process/archive"
	"resourceocr/process/pipeline"
)

var errRunInProgress = errors.New("a run is already in progress")

// runner serializes extraction runs; the pipeline itself is strictly sequential.
type runner struct {
	mu   sync.Mutex
	cfg  *config.Config
	open func(*config.Config) (*pipeline.Pipeline, func() error, error)
}

func newRunner(cfg *config.Config) *runner {
	return &runner{cfg: cfg, open: pipeline.Open}
}

// tryRun starts a run unless one is already going.
func (r *runner) tryRun(ctx context.Context, gdb *gorm.DB, operatorID *uint) (*models.Run, *pipeline.Result, error) {
	if !r.mu.TryLock() {
		return nil, nil, errRunInProgress
	}
	defer r.mu.Unlock()
	return r.execute(ctx, gdb, operatorID)
}

// run waits for any run in progress, then runs.
func (r *runner) run(ctx context.Context, gdb *gorm.DB, operatorID *uint) (*models.Run, *pipeline.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.execute(ctx, gdb, operatorID)
}

// execute performs one extraction and archives it when gdb is set. Failed runs are
// archived too.
func (r *runner) execute(ctx context.Context, gdb *gorm.DB, operatorID *uint) (*models.Run, *pipeline.Result, error) {
	p, closeFn, err := r.open(r.cfg)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Printf("close pipeline: %v", err)
		}
	}()

	res, runErr := p.Run(ctx)
	run := archive.FromResult(res, r.cfg.ScreenshotDir, runErr)
	run.OperatorID = operatorID
	if gdb != nil {
		if err := archive.Save(gdb, run); err != nil {
			log.Printf("archive run: %v", err)
		} else {
			log.Printf("archived run id=%d status=%s", run.ID, run.Status)
		}
	}
	return run, res, runErr
}
