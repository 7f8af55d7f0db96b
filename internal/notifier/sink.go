package notifier

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/job-radar/internal/entities"
	"strings"
)

// Sink delivers a newly seen job somewhere. Implementations may fail; callers decide what that means.
type Sink interface {
	Notify(ctx context.Context, job entities.JobRecord) error
}

// Fanout delivers to every sink and joins their errors.
type Fanout []Sink

func (f Fanout) Notify(ctx context.Context, job entities.JobRecord) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Notify(ctx, job); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SendTestMessage pushes a synthetic record through sink so credentials can be checked without a cycle.
func SendTestMessage(ctx context.Context, sink Sink) error {
	return sink.Notify(ctx, entities.JobRecord{
		Title:      "job-radar test message",
		Company:    entities.UnknownCompany,
		Link:       "https://example.com/job-radar",
		Portal:     "job-radar",
		PostedDate: "today",
		DaysAgo:    0,
	})
}

func formatJob(job entities.JobRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("New job on %s\n\n", job.Portal))
	sb.WriteString(job.Title)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Company: %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Posted: %s", job.PostedDate))
	if job.DaysAgo != entities.UnknownAge {
		sb.WriteString(fmt.Sprintf(" (%d days ago)", job.DaysAgo))
	}
	if job.Link != "" {
		sb.WriteString("\n")
		sb.WriteString(job.Link)
	}
	return sb.String()
}
