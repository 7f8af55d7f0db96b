package sources

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/filter"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"time"
)

const (
	gitHubJobsEndpoint = "https://jobs.github.com/positions.json"
	gitHubJobsMaxItems = 20
)

type gitHubJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	URL         string `json:"url"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type GitHubJobs struct {
	settings Settings
	endpoint string
}

func NewGitHubJobs(settings Settings) *GitHubJobs {
	return &GitHubJobs{settings: settings, endpoint: gitHubJobsEndpoint}
}

func (g *GitHubJobs) Name() string {
	return "GitHub Jobs"
}

func (g *GitHubJobs) Fetch(ctx context.Context) ([]entities.JobRecord, error) {
	url := g.endpoint + "?description=" + g.settings.query(3, " ") + "&full_time=true"

	body, err := g.settings.Client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var items []gitHubJob
	if err = json.Unmarshal(body, &items); err != nil {
		return nil, errors.Wrap(err, "error decoding github jobs response")
	}

	now := g.settings.now()
	var jobs []entities.JobRecord

	for _, item := range lo.Slice(items, 0, gitHubJobsMaxItems) {
		daysAgo := filter.DaysSinceLayout(item.CreatedAt, now, time.UnixDate)
		if !g.settings.accept(item.Title+" "+item.Description+" "+item.Company, daysAgo) {
			continue
		}

		jobs = append(jobs, entities.JobRecord{
			Title:      orDefault(item.Title, entities.NotAvailable),
			Company:    orDefault(item.Company, entities.UnknownCompany),
			Link:       item.URL,
			Portal:     g.Name(),
			PostedDate: item.CreatedAt,
			DaysAgo:    daysAgo,
		})
	}

	return jobs, nil
}
