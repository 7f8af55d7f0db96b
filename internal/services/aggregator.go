package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/events"
	"github.com/maxaizer/job-radar/internal/logger"
	"github.com/maxaizer/job-radar/internal/metrics"
	"github.com/maxaizer/job-radar/internal/sources"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sort"
	"sync"
	"time"
)

type seenJobRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, job entities.SeenJob) (bool, error)
}

type jobNotifier interface {
	Notify(ctx context.Context, job entities.JobRecord) error
}

type AggregatorOptions struct {
	// Pause between two consecutive sources.
	Pause         time.Duration
	SortByRecency bool
}

// Aggregator runs cycles: every source in order, then novelty detection against the store.
// Only one cycle runs at a time.
type Aggregator struct {
	bus      EventBus.Bus
	sources  []sources.Source
	seenJobs seenJobRepository
	notifier jobNotifier
	options  AggregatorOptions
	mu       sync.Mutex
}

func NewAggregator(bus EventBus.Bus, sourceList []sources.Source, seenJobs seenJobRepository,
	notifier jobNotifier, options AggregatorOptions) (*Aggregator, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if seenJobs == nil {
		return nil, errors.New("seen jobs repository is nil")
	}
	if notifier == nil {
		return nil, errors.New("notifier is nil")
	}

	return &Aggregator{
		bus:      bus,
		sources:  sourceList,
		seenJobs: seenJobs,
		notifier: notifier,
		options:  options,
	}, nil
}

func (a *Aggregator) Sources() []sources.Source {
	return a.sources
}

// RunCycle collects from all sources and notifies about every job not seen before.
// Source failures are absorbed; a store failure aborts the cycle.
func (a *Aggregator) RunCycle(ctx context.Context) (*entities.CycleReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	report := &entities.CycleReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Jobs:      []entities.JobRecord{},
		NewJobs:   []entities.JobRecord{},
	}
	log.Infof("running cycle %s over %d sources", report.ID, len(a.sources))

	err := a.runCycle(ctx, report)

	report.Duration = time.Since(report.StartedAt)
	metrics.CycleDuration.Observe(report.Duration.Seconds())
	if err != nil {
		metrics.CyclesCounter.WithLabelValues("failed").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCycle).Errorf("cycle %s failed: %v", report.ID, err)
	} else {
		metrics.CyclesCounter.WithLabelValues("completed").Inc()
		log.Infof("cycle %s ended after %v: examined %d, new %d, failed sources %v",
			report.ID, report.Duration, report.Examined, report.New, report.FailedSources)
	}

	a.bus.Publish(events.CycleCompletedTopic, events.CycleCompleted{Report: *report, Err: err})

	if err != nil {
		return nil, err
	}
	return report, nil
}

func (a *Aggregator) runCycle(ctx context.Context, report *entities.CycleReport) error {

	for i, source := range a.sources {
		if i > 0 {
			if err := sleep(ctx, a.options.Pause); err != nil {
				return err
			}
		}

		jobs, err := a.fetch(ctx, source)
		if err != nil {
			log.WithFields(log.Fields{
				logger.ErrorTypeField: logger.ErrorTypeSource,
				logger.PortalField:    source.Name(),
			}).Errorf("failed to fetch jobs: %v", err)
			metrics.SourceFailuresCounter.WithLabelValues(source.Name()).Inc()
			report.FailedSources = append(report.FailedSources, source.Name())
			continue
		}

		metrics.SourceJobsCounter.WithLabelValues(source.Name()).Add(float64(len(jobs)))
		log.WithField(logger.PortalField, source.Name()).Infof("fetched %d matching jobs", len(jobs))
		report.Jobs = append(report.Jobs, jobs...)
	}

	if a.options.SortByRecency {
		sort.SliceStable(report.Jobs, func(i, j int) bool {
			return report.Jobs[i].DaysAgo < report.Jobs[j].DaysAgo
		})
	}

	for _, job := range report.Jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		isNew, err := a.handleJob(ctx, report.ID, job)
		report.Examined++
		metrics.JobsExaminedCounter.Inc()
		if err != nil {
			return err
		}
		if isNew {
			report.New++
			report.NewJobs = append(report.NewJobs, job)
			metrics.JobsNewCounter.Inc()
		}
	}

	return nil
}

// fetch never lets a source panic escape the cycle.
func (a *Aggregator) fetch(ctx context.Context, source sources.Source) (jobs []entities.JobRecord, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			jobs, err = nil, fmt.Errorf("source panicked: %v", r)
		}
		metrics.SourceFetchDuration.WithLabelValues(source.Name()).Observe(time.Since(start).Seconds())
	}()

	return source.Fetch(ctx)
}

func (a *Aggregator) handleJob(ctx context.Context, cycleID string, job entities.JobRecord) (bool, error) {

	id := job.Identity()

	seen, err := a.seenJobs.Exists(ctx, id)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to check if job was seen: %v", err)
		return false, err
	}
	if seen {
		return false, nil
	}

	inserted, err := a.seenJobs.Insert(ctx, job.ToSeenJob())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to record job as seen: %v", err)
		return false, err
	}
	if !inserted {
		return false, nil
	}

	if err = a.notifier.Notify(ctx, job); err != nil {
		metrics.NotificationsCounter.WithLabelValues("failed").Inc()
		log.WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeNotify,
			logger.PortalField:    job.Portal,
		}).Errorf("failed to notify about %s: %v", job.Link, err)
	} else {
		metrics.NotificationsCounter.WithLabelValues("sent").Inc()
	}

	a.bus.Publish(events.JobFoundTopic, events.JobFound{CycleID: cycleID, Job: job})
	return true, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
