package switcher

import "time"

// EventKind identifies a switcher notification.
type EventKind int

const (
	// ResolutionChange fires once a switch has restored playback on the new source.
	ResolutionChange EventKind = iota
	// LabelChange fires when the display label changes. Only emitted for dynamic labels.
	LabelChange
)

func (k EventKind) String() string {
	switch k {
	case ResolutionChange:
		return "resolutionchange"
	case LabelChange:
		return "labelchange"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers.
type Event struct {
	Kind       EventKind
	Label      string
	Selection  Selection
	Generation uint64
}

// Result classifies how a switch ended.
type Result string

const (
	ResultCompleted Result = "completed"
	ResultStale     Result = "stale"
	ResultTimeout   Result = "timeout"
	ResultCanceled  Result = "canceled"
	ResultError     Result = "error"
)

// Recorder receives switch outcomes. The metrics package implements it.
type Recorder interface {
	SwitchFinished(result Result, elapsed time.Duration)
	GenerationIssued(generation uint64)
}

type nopRecorder struct{}

func (nopRecorder) SwitchFinished(Result, time.Duration) {}
func (nopRecorder) GenerationIssued(uint64)              {}
