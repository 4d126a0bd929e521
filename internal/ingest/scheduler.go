package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultCron = "0 11 * * 1-5"

// CycleRunner runs one ingestion cycle for an injected "today".
type CycleRunner interface {
	Run(ctx context.Context, execID string, today time.Time) (int, error)
}

type Scheduler struct {
	cycle CycleRunner
	cron  string
	// -----
	// mu guards sched: the context-cancel goroutine and the owner's
	// deferred Shutdown may race.
	mu    sync.Mutex
	sched gocron.Scheduler
}

func NewScheduler(cycle CycleRunner, cron string) *Scheduler {
	if cron == "" {
		cron = defaultCron
	}
	return &Scheduler{cycle: cycle, cron: cron}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		processed, runErr := s.cycle.Run(jobCtx, execID, time.Now())
		if runErr != nil {
			logrus.Errorf("Ingestion cycle %s failed: %v", execID, runErr)
			return
		}
		logrus.Infof("Ingestion cycle %s processed %d dates", execID, processed)
	}

	// Singleton mode serializes runs: a cycle still catching up is never
	// overlapped by the next trigger.
	_, err = scheduler.NewJob(
		gocron.CronJob(s.cron, false),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
