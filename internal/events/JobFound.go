package events

import "github.com/maxaizer/job-radar/internal/entities"

var JobFoundTopic = "JobFoundEvent"

type JobFound struct {
	CycleID string
	Job     entities.JobRecord
}
