package model

import "fmt"

// Coefficients describes the heat pump and heating curve of an installation.
// Values are loaded from configuration and validated once before planning.
type Coefficients struct {
	// BaseCOP is the coefficient of performance at 0 degrees C outdoor and
	// 35 degrees C supply temperature.
	BaseCOP float64 `json:"base_cop"`
	// OutdoorCoefficient is the COP gain per degree of outdoor temperature.
	OutdoorCoefficient float64 `json:"outdoor_coefficient"`
	// KFactor is the COP loss per degree of supply temperature above 35.
	KFactor float64 `json:"k_factor"`
	// COPCompensationFactor scales the modelled COP to match the installed
	// unit.
	COPCompensationFactor float64 `json:"cop_compensation_factor"`
	// WaterMin and WaterMax bound the supply water temperature in degrees C.
	WaterMin float64 `json:"water_min"`
	WaterMax float64 `json:"water_max"`
	// OutdoorMin and OutdoorMax bound the heating curve interpolation in
	// degrees C. The curve returns WaterMax at or below OutdoorMin and
	// WaterMin at or above OutdoorMax.
	OutdoorMin float64 `json:"outdoor_min"`
	OutdoorMax float64 `json:"outdoor_max"`
	// ThermalStorageEfficiency is the energy stored in the building mass per
	// degree of offset per kW of demand per hour, in kWh.
	ThermalStorageEfficiency float64 `json:"thermal_storage_efficiency"`
	// TimeBaseMinutes is the duration of one planning step.
	TimeBaseMinutes float64 `json:"time_base_minutes"`
}

// ConfigurationError reports a coefficient set that cannot be planned with.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid coefficients: %s %s", e.Field, e.Reason)
}

// SetDefaults fills unset fields with values for a typical radiator system
// planned on a 15 minute base.
func (c *Coefficients) SetDefaults() {
	if c.BaseCOP == 0 {
		c.BaseCOP = 4.5
	}
	if c.OutdoorCoefficient == 0 {
		c.OutdoorCoefficient = 0.05
	}
	if c.KFactor == 0 {
		c.KFactor = 0.06
	}
	if c.COPCompensationFactor == 0 {
		c.COPCompensationFactor = 1.0
	}
	if c.WaterMin == 0 && c.WaterMax == 0 {
		c.WaterMin = 25
		c.WaterMax = 50
	}
	if c.OutdoorMin == 0 && c.OutdoorMax == 0 {
		c.OutdoorMin = -10
		c.OutdoorMax = 15
	}
	if c.ThermalStorageEfficiency == 0 {
		c.ThermalStorageEfficiency = 0.1
	}
	if c.TimeBaseMinutes == 0 {
		c.TimeBaseMinutes = 15
	}
}

// Validate checks the coefficient set once at configuration time so the
// planner never divides by a degenerate interpolation range.
func (c Coefficients) Validate() error {
	if c.OutdoorMax <= c.OutdoorMin {
		return &ConfigurationError{Field: "outdoor_max", Reason: "must be greater than outdoor_min"}
	}
	if c.WaterMax < c.WaterMin {
		return &ConfigurationError{Field: "water_max", Reason: "must not be less than water_min"}
	}
	if c.TimeBaseMinutes <= 0 {
		return &ConfigurationError{Field: "time_base_minutes", Reason: "must be positive"}
	}
	if c.ThermalStorageEfficiency < 0 {
		return &ConfigurationError{Field: "thermal_storage_efficiency", Reason: "must not be negative"}
	}
	return nil
}

// StepHours returns the planning step length in hours.
func (c Coefficients) StepHours() float64 {
	return c.TimeBaseMinutes / 60.0
}
