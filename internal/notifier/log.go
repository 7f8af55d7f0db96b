package notifier

import (
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/logger"
	log "github.com/sirupsen/logrus"
)

// LogSink stands in when no delivery channel is configured.
type LogSink struct{}

func (LogSink) Notify(_ context.Context, job entities.JobRecord) error {
	log.WithField(logger.PortalField, job.Portal).Infof("new job: %s at %s %s", job.Title, job.Company, job.Link)
	return nil
}
