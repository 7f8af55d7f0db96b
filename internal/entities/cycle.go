package entities

import "time"

// CycleReport summarizes one run over all sources.
type CycleReport struct {
	ID            string        `json:"id"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	Examined      int           `json:"examined"`
	New           int           `json:"new"`
	Jobs          []JobRecord   `json:"jobs"`
	NewJobs       []JobRecord   `json:"new_jobs"`
	FailedSources []string      `json:"failed_sources"`
}
