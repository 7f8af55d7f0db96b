package events

import "github.com/maxaizer/job-radar/internal/entities"

var CycleCompletedTopic = "CycleCompletedEvent"

// CycleCompleted is published after every cycle, including failed ones.
type CycleCompleted struct {
	Report entities.CycleReport
	Err    error
}
