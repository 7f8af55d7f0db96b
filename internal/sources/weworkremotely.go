package sources

import (
	"bytes"
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/filter"
	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"strings"
	"time"
)

const (
	weWorkRemotelyEndpoint = "https://weworkremotely.com/categories/remote-programming-jobs.rss"
	weWorkRemotelyMaxItems = 20
)

type WeWorkRemotely struct {
	settings Settings
	endpoint string
}

func NewWeWorkRemotely(settings Settings) *WeWorkRemotely {
	return &WeWorkRemotely{settings: settings, endpoint: weWorkRemotelyEndpoint}
}

func (w *WeWorkRemotely) Name() string {
	return "We Work Remotely"
}

func (w *WeWorkRemotely) Fetch(ctx context.Context) ([]entities.JobRecord, error) {
	body, err := w.settings.Client.Get(ctx, w.endpoint)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing we work remotely feed")
	}

	now := w.settings.now()
	var jobs []entities.JobRecord

	for _, item := range lo.Slice(feed.Items, 0, weWorkRemotelyMaxItems) {
		title := orDefault(cleanText(item.Title), entities.NotAvailable)

		var daysAgo int
		if item.PublishedParsed != nil {
			daysAgo = filter.DaysSince(*item.PublishedParsed, now)
		} else {
			daysAgo = filter.DaysSinceLayout(item.Published, now, time.RFC1123Z, time.RFC1123)
		}

		if !w.settings.accept(title, daysAgo) {
			continue
		}

		jobs = append(jobs, entities.JobRecord{
			Title:      title,
			Company:    companyFromTitle(title),
			Link:       strings.TrimSpace(item.Link),
			Portal:     w.Name(),
			PostedDate: item.Published,
			DaysAgo:    daysAgo,
		})
	}

	return jobs, nil
}

// companyFromTitle reads "Company: Role" and "Company - Role" style titles.
func companyFromTitle(title string) string {
	for _, separator := range []string{": ", " - "} {
		if company, _, found := strings.Cut(title, separator); found && strings.TrimSpace(company) != "" {
			return strings.TrimSpace(company)
		}
	}
	return entities.UnknownCompany
}
