package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/heatplan/core/metrics"
	"github.com/kilianp07/heatplan/core/model"
	"github.com/kilianp07/heatplan/core/plan"
	"github.com/kilianp07/heatplan/infra/mqtt"
)

// Config is the root configuration of the planner service.
type Config struct {
	Heating  model.Coefficients `json:"heating"`
	Planner  plan.Config        `json:"planner"`
	Metrics  metrics.Config     `json:"metrics"`
	MQTT     mqtt.Config        `json:"mqtt"`
	Forecast ForecastConfig     `json:"forecast"`
}

// ForecastConfig locates the forecast input.
type ForecastConfig struct {
	// Path is the JSON file carrying the demand, price, outdoor temperature
	// and humidity vectors plus the starting buffer.
	Path string `json:"path"`
}

// Load reads the configuration file, applies environment overrides with the
// HP_ prefix and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. HP_HEATING__WATER_MAX=55.
	if err := k.Load(env.Provider("HP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "hp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Heating.SetDefaults()
	cfg.Planner.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Heating.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Planner.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
