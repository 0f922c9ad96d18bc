package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/kilianp07/heatplan/core/metrics"
)

type recordingSink struct {
	events []coremetrics.PlanEvent
	err    error
}

func (r *recordingSink) RecordPlan(ev coremetrics.PlanEvent) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestMultiSink_FanOut(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b, coremetrics.NopSink{})
	if err := m.RecordPlan(coremetrics.PlanEvent{PlanID: "p1"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("expected both sinks to receive the event: %d / %d", len(a.events), len(b.events))
	}
	if a.events[0].PlanID != "p1" {
		t.Fatalf("unexpected event: %+v", a.events[0])
	}
}

func TestMultiSink_FirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSink{err: boom}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordPlan(coremetrics.PlanEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected first sink error, got %v", err)
	}
}
