package sources

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/filter"
	"github.com/pkg/errors"
	"strings"
)

const (
	remoteOKEndpoint = "https://remoteok.com/api"
	remoteOKMaxItems = 50
)

// remoteOKJob is one element of the feed. The first element is a legal notice without a position.
type remoteOKJob struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	Epoch       int64    `json:"epoch"`
}

type RemoteOK struct {
	settings Settings
	endpoint string
}

func NewRemoteOK(settings Settings) *RemoteOK {
	return &RemoteOK{settings: settings, endpoint: remoteOKEndpoint}
}

func (r *RemoteOK) Name() string {
	return "RemoteOK"
}

func (r *RemoteOK) Fetch(ctx context.Context) ([]entities.JobRecord, error) {
	body, err := r.settings.Client.Get(ctx, r.endpoint)
	if err != nil {
		return nil, err
	}

	var items []remoteOKJob
	if err = json.Unmarshal(body, &items); err != nil {
		return nil, errors.Wrap(err, "error decoding remoteok response")
	}

	now := r.settings.now()
	var jobs []entities.JobRecord
	examined := 0

	for _, item := range items {
		if item.Position == "" {
			continue
		}
		if examined++; examined > remoteOKMaxItems {
			break
		}

		daysAgo := filter.DaysSinceEpoch(item.Epoch, now)
		text := strings.Join([]string{item.Position, item.Company, item.Description, strings.Join(item.Tags, " ")}, " ")
		if !r.settings.accept(text, daysAgo) {
			continue
		}

		jobs = append(jobs, entities.JobRecord{
			Title:      item.Position,
			Company:    orDefault(item.Company, entities.UnknownCompany),
			Link:       item.URL,
			Portal:     r.Name(),
			PostedDate: item.Date,
			DaysAgo:    daysAgo,
		})
	}

	return jobs, nil
}
