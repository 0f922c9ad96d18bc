package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kilianp07/heatplan/core/model"
)

// ForecastInput is the on-disk shape of one planning request: the four
// forecast vectors plus the buffer carried over from the previous plan.
type ForecastInput struct {
	model.Forecast
	StartBuffer float64 `json:"start_buffer"`
}

// LoadForecast reads a forecast JSON file.
func LoadForecast(path string) (ForecastInput, error) {
	var in ForecastInput
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read forecast: %w", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse forecast: %w", err)
	}
	if len(in.Demand) == 0 {
		return in, fmt.Errorf("forecast has no demand vector")
	}
	if len(in.Price) == 0 {
		return in, fmt.Errorf("forecast has no price vector")
	}
	return in, nil
}
