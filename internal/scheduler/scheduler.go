package scheduler

import (
	"context"
	"time"

	"github.com/clubhub/giveaway-backend/internal/services"
	"golang.org/x/exp/slog"
)

// Scheduler periodically sweeps ended giveaways into their draw and prunes
// activity records past retention. Cleanup runs on a much slower cadence
// than the draw sweep.
type Scheduler struct {
	drawSvc       services.DrawService
	pointsSvc     services.PointsService
	sweepInterval time.Duration
	stop          chan struct{}
	done          chan struct{}
}

// NewScheduler creates a new Scheduler
func NewScheduler(drawSvc services.DrawService, pointsSvc services.PointsService, sweepInterval time.Duration) *Scheduler {
	return &Scheduler{
		drawSvc:       drawSvc,
		pointsSvc:     pointsSvc,
		sweepInterval: sweepInterval,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start launches the background loop. Call Stop to shut it down.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop signals the loop to exit and waits for it to finish
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	sweep := time.NewTicker(s.sweepInterval)
	defer sweep.Stop()
	cleanup := time.NewTicker(24 * time.Hour)
	defer cleanup.Stop()

	slog.Info("Scheduler started", "sweepInterval", s.sweepInterval)

	for {
		select {
		case <-s.stop:
			slog.Info("Scheduler stopped")
			return
		case <-sweep.C:
			s.sweepOnce()
		case <-cleanup.C:
			s.cleanupOnce()
		}
	}
}

func (s *Scheduler) sweepOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.sweepInterval)
	defer cancel()

	drawn, err := s.drawSvc.SweepDueEvents(ctx)
	if err != nil {
		slog.Error("Draw sweep failed", "error", err)
		return
	}
	if drawn > 0 {
		slog.Info("Draw sweep completed", "drawn", drawn)
	}
}

func (s *Scheduler) cleanupOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.pointsSvc.CleanupOldRecords(ctx); err != nil {
		slog.Error("Activity cleanup failed", "error", err)
	}
}
