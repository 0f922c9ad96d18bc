package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/heatplan/core/metrics"
)

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	plans       *prometheus.CounterVec
	duration    prometheus.Histogram
	firstOffset prometheus.Gauge
	finalBuffer prometheus.Gauge
	planCost    prometheus.Gauge
	savings     prometheus.Gauge
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "heatplan_plans_total",
		Help: "Total number of planning calls",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "heatplan_plan_duration_seconds",
		Help:    "Time spent in the offset search",
		Buckets: prometheus.DefBuckets,
	})
	firstOffset := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "heatplan_first_offset_degrees",
		Help: "Actionable offset of the latest plan",
	})
	finalBuffer := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "heatplan_final_buffer_kwh",
		Help: "Buffer level at the end of the latest plan horizon",
	})
	planCost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "heatplan_plan_cost",
		Help: "Modelled electricity cost of the latest plan",
	})
	savings := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "heatplan_plan_savings",
		Help: "Baseline cost minus plan cost for the latest plan",
	})

	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	gauges := []*prometheus.Gauge{&firstOffset, &finalBuffer, &planCost, &savings}
	for _, g := range gauges {
		if err := reg.Register(*g); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				*g = are.ExistingCollector.(prometheus.Gauge)
			} else {
				return nil, err
			}
		}
	}

	return &PromSink{
		plans:       plans,
		duration:    duration,
		firstOffset: firstOffset,
		finalBuffer: finalBuffer,
		planCost:    planCost,
		savings:     savings,
	}, nil
}

// RecordPlan updates the counters and gauges for one planning call.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	outcome := "optimal"
	if ev.Fallback {
		outcome = "fallback"
	}
	s.plans.WithLabelValues(outcome).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	s.firstOffset.Set(float64(ev.FirstOffset))
	s.finalBuffer.Set(ev.FinalBuffer)
	s.planCost.Set(ev.Cost)
	s.savings.Set(ev.BaselineCost - ev.Cost)
	return nil
}
