package sources

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/filter"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"strings"
	"time"
)

const (
	remotiveEndpoint = "https://remotive.com/api/remote-jobs?limit=50"
	remotiveMaxItems = 50
)

var remotiveDateLayouts = []string{"2006-01-02T15:04:05", time.RFC3339}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	URL             string   `json:"url"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	PublicationDate string   `json:"publication_date"`
}

type Remotive struct {
	settings Settings
	endpoint string
}

func NewRemotive(settings Settings) *Remotive {
	return &Remotive{settings: settings, endpoint: remotiveEndpoint}
}

func (r *Remotive) Name() string {
	return "Remotive"
}

func (r *Remotive) Fetch(ctx context.Context) ([]entities.JobRecord, error) {
	body, err := r.settings.Client.Get(ctx, r.endpoint)
	if err != nil {
		return nil, err
	}

	var response remotiveResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "error decoding remotive response")
	}

	now := r.settings.now()
	var jobs []entities.JobRecord

	for _, item := range lo.Slice(response.Jobs, 0, remotiveMaxItems) {
		daysAgo := filter.DaysSinceLayout(item.PublicationDate, now, remotiveDateLayouts...)
		text := strings.Join([]string{item.Title, item.Description, strings.Join(item.Tags, " ")}, " ")
		if !r.settings.accept(text, daysAgo) {
			continue
		}

		jobs = append(jobs, entities.JobRecord{
			Title:      orDefault(item.Title, entities.NotAvailable),
			Company:    orDefault(item.CompanyName, entities.UnknownCompany),
			Link:       item.URL,
			Portal:     r.Name(),
			PostedDate: item.PublicationDate,
			DaysAgo:    daysAgo,
		})
	}

	return jobs, nil
}
