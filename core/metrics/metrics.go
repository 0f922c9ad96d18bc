package metrics

import "time"

// PlanEvent captures one planning call for observability purposes.
type PlanEvent struct {
	PlanID       string
	Horizon      int
	FirstOffset  int
	Cost         float64
	BaselineCost float64
	StartBuffer  float64
	FinalBuffer  float64
	Fallback     bool
	Duration     time.Duration
	Time         time.Time
}

// PlanRecorder records planning results.
type PlanRecorder interface {
	RecordPlan(ev PlanEvent) error
}

// NopSink implements PlanRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error { return nil }
