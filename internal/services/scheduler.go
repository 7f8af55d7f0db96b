package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

type cycleRunner interface {
	RunCycle(ctx context.Context) (*entities.CycleReport, error)
}

// Scheduler is the loop driver: one cycle right away, then one per interval.
// A tick that finds the previous cycle still running is skipped. After a failed
// cycle no new cycle starts until the cooldown has passed.
type Scheduler struct {
	runner        cycleRunner
	interval      time.Duration
	cooldown      time.Duration
	mu            sync.Mutex
	cooldownUntil time.Time
	running       sync.WaitGroup
}

func NewScheduler(runner cycleRunner, interval, cooldown time.Duration) (*Scheduler, error) {

	if interval < time.Second {
		return nil, errors.New("interval must be at least one second")
	}
	if cooldown < 0 {
		return nil, errors.New("cooldown must not be negative")
	}

	return &Scheduler{runner: runner, interval: interval, cooldown: cooldown}, nil
}

// Run blocks until ctx is cancelled and the running cycle, if any, has returned.
func (s *Scheduler) Run(ctx context.Context) error {

	cronLogger := cron.PrintfLogger(log.StandardLogger())
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	id, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() { s.tick(ctx) })
	if err != nil {
		return errors.Wrap(err, "error scheduling cycles")
	}

	c.Start()
	log.Infof("scheduler started, interval %v, cooldown %v", s.interval, s.cooldown)

	s.running.Add(1)
	go func() {
		defer s.running.Done()
		c.Entry(id).WrappedJob.Run()
	}()

	<-ctx.Done()
	<-c.Stop().Done()
	s.running.Wait()

	log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if until := s.coolingDownUntil(); time.Now().Before(until) {
		log.Infof("skipping cycle, cooling down until %v", until.Format(time.TimeOnly))
		return
	}

	if err := s.runCycle(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCycle).Errorf("cycle failed, cooling down for %v: %v", s.cooldown, err)
		s.mu.Lock()
		s.cooldownUntil = time.Now().Add(s.cooldown)
		s.mu.Unlock()
	}
}

func (s *Scheduler) runCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
		}
	}()

	_, err = s.runner.RunCycle(ctx)
	return err
}

func (s *Scheduler) coolingDownUntil() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cooldownUntil
}
