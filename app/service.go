package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kilianp07/heatplan/config"
	coremetrics "github.com/kilianp07/heatplan/core/metrics"
	"github.com/kilianp07/heatplan/core/plan"
	"github.com/kilianp07/heatplan/infra/logger"
	"github.com/kilianp07/heatplan/infra/metrics"
	"github.com/kilianp07/heatplan/infra/mqtt"
)

// Service wires the planner to its sinks and output connectors. One Run is
// one planning call; scheduling repeated runs is the caller's business.
type Service struct {
	cfg     *config.Config
	planner *plan.Planner
	sink    coremetrics.PlanRecorder
	pub     *mqtt.Publisher
	log     logger.Logger

	// Out receives the plan JSON; defaults to stdout.
	Out io.Writer
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	planner, err := plan.New(cfg.Heating, cfg.Planner)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	var sinks []coremetrics.PlanRecorder
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.PlanRecorder = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub *mqtt.Publisher
	if cfg.MQTT.Enabled {
		pub, err = mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{cfg: cfg, planner: planner, sink: sink, pub: pub, log: logg, Out: os.Stdout}, nil
}

// Run executes one planning call: read the forecast, plan, record, publish,
// print.
func (s *Service) Run(ctx context.Context) error {
	in, err := LoadForecast(s.cfg.Forecast.Path)
	if err != nil {
		return err
	}

	start := time.Now()
	res := s.planner.Plan(in.Forecast, in.StartBuffer)
	elapsed := time.Since(start)

	if res.Fallback {
		s.log.Warnf("no feasible plan, holding the heating curve (plan %s)", res.PlanID)
	}
	s.log.Debugw("plan computed", map[string]any{
		"plan_id":      res.PlanID,
		"horizon":      res.Horizon(),
		"first_offset": res.FirstOffset(),
		"cost":         res.Cost,
		"baseline":     res.BaselineCost,
		"duration_ms":  elapsed.Milliseconds(),
	})

	ev := coremetrics.PlanEvent{
		PlanID:       res.PlanID,
		Horizon:      res.Horizon(),
		FirstOffset:  res.FirstOffset(),
		Cost:         res.Cost,
		BaselineCost: res.BaselineCost,
		StartBuffer:  in.StartBuffer,
		FinalBuffer:  res.FinalBuffer(),
		Fallback:     res.Fallback,
		Duration:     elapsed,
		Time:         start,
	}
	if err := s.sink.RecordPlan(ev); err != nil {
		s.log.Errorf("record plan: %v", err)
	}

	if s.pub != nil {
		if err := s.pub.PublishPlan(res); err != nil {
			s.log.Errorf("publish plan: %v", err)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	enc := json.NewEncoder(s.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// Close releases the output connectors.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Close()
	}
	return nil
}
