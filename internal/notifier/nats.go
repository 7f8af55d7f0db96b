package notifier

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/logger"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

const natsConnectTimeout = 10 * time.Second

type publisher interface {
	Publish(subject string, data []byte) error
}

// JobEvent is the payload published for every new job.
type JobEvent struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Link       string    `json:"link"`
	Portal     string    `json:"portal"`
	PostedDate string    `json:"posted_date"`
	DaysAgo    int       `json:"days_ago"`
	FoundAt    time.Time `json:"found_at"`
}

type NatsSink struct {
	conn    *nats.Conn
	pub     publisher
	subject string
}

func NewNatsSink(url, subject string) (*NatsSink, error) {
	opts := []nats.Option{
		nats.Name("job-radar"),
		nats.Timeout(natsConnectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to nats")
	}

	sink := newNatsSink(conn, subject)
	sink.conn = conn
	return sink, nil
}

func newNatsSink(pub publisher, subject string) *NatsSink {
	return &NatsSink{pub: pub, subject: subject}
}

func (n *NatsSink) Notify(_ context.Context, job entities.JobRecord) error {
	data, err := json.Marshal(JobEvent{
		ID:         job.Identity(),
		Title:      job.Title,
		Company:    job.Company,
		Link:       job.Link,
		Portal:     job.Portal,
		PostedDate: job.PostedDate,
		DaysAgo:    job.DaysAgo,
		FoundAt:    time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "error marshaling job event")
	}

	if err = n.pub.Publish(n.subject, data); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeNats).Errorf("failed to publish job %s: %v", job.Link, err)
		return errors.Wrapf(err, "error publishing to %s", n.subject)
	}

	log.Debugf("published job %q to %s", job.Title, n.subject)
	return nil
}

func (n *NatsSink) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}
