package plan

import "fmt"

// Config defines planner tuning parameters.
type Config struct {
	// MaxOffset bounds the offset search to [-MaxOffset, MaxOffset] degrees.
	MaxOffset int `json:"max_offset"`
	// MaxStepDelta bounds how far the offset may move between consecutive
	// steps.
	MaxStepDelta int `json:"max_step_delta"`
	// TieBreakWeight biases end-of-horizon selection toward plans that
	// return the buffer to zero.
	TieBreakWeight float64 `json:"tie_break_weight"`
	// PricePenalty multiplies the plain energy price when the modelled
	// efficiency degenerates to zero or below.
	PricePenalty float64 `json:"price_penalty"`
}

// SetDefaults applies the standard tuning.
func (c *Config) SetDefaults() {
	if c.MaxOffset == 0 {
		c.MaxOffset = 4
	}
	if c.MaxStepDelta == 0 {
		c.MaxStepDelta = 1
	}
	if c.TieBreakWeight == 0 {
		c.TieBreakWeight = 0.01
	}
	if c.PricePenalty == 0 {
		c.PricePenalty = 10
	}
}

// Validate checks the tuning fields.
func (c Config) Validate() error {
	if c.MaxOffset < 0 {
		return fmt.Errorf("max_offset must not be negative")
	}
	if c.MaxStepDelta < 1 {
		return fmt.Errorf("max_step_delta must be at least 1")
	}
	if c.TieBreakWeight < 0 {
		return fmt.Errorf("tie_break_weight must not be negative")
	}
	if c.PricePenalty <= 0 {
		return fmt.Errorf("price_penalty must be positive")
	}
	return nil
}
