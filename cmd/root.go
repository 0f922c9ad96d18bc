package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/heatplan/app"
	"github.com/kilianp07/heatplan/config"
	"github.com/kilianp07/heatplan/infra/logger"
	"github.com/kilianp07/heatplan/infra/metrics"
)

var (
	cfgPath      string
	forecastPath string
)

var rootCmd = &cobra.Command{
	Use:   "heatplan",
	Short: "Heating curve offset planner",
	Long: "heatplan computes a cost-minimal supply temperature offset plan for a " +
		"heat pump from demand, price and weather forecasts.",
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.Flags().StringVarP(&forecastPath, "forecast", "f", "", "forecast file (overrides the configured path)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if forecastPath != "" {
		cfg.Forecast.Path = forecastPath
	}

	if cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, ":"+cfg.Metrics.PrometheusPort); err != nil {
				logger.New("main").Errorf("prom server: %v", err)
			}
		}()
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
