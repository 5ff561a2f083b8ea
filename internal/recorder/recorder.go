package recorder

import (
	"time"

	"SignalScout/internal/indicator"
	"SignalScout/internal/model"
)

// RunSnapshot holds everything recorded after one pipeline run.
type RunSnapshot struct {
	RunAt     time.Time
	Frames    []*indicator.Frame
	Decisions []model.Decision
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	Close() error
}
