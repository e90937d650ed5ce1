package domain

import "time"

// UnitDelay throttles consecutive units against the remote system.
const UnitDelay = 5 * time.Second

type RunOutcome string

const (
	RunCompleted RunOutcome = "completed"
	RunStopped   RunOutcome = "stopped"
	RunAbandoned RunOutcome = "abandoned"
)

type UnitFailure struct {
	Index int
	Label string
	Err   string
}

type RunReport struct {
	Outcome   RunOutcome
	Total     int
	Attempted int
	Succeeded int
	Failures  []UnitFailure
}

// RunRecord is the durable summary of a finished run. Abandoned runs are
// recorded too so the history explains a missing completion report.
type RunRecord struct {
	Name       string
	Report     RunReport
	StartedAt  time.Time
	FinishedAt time.Time
}
