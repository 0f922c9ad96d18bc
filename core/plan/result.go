package plan

// Result is the outcome of one planning call.
type Result struct {
	// PlanID uniquely identifies the call for logging and metrics.
	PlanID string `json:"plan_id"`
	// Offsets is the planned supply temperature offset per step.
	Offsets []int `json:"offsets"`
	// Buffer is the planned thermal buffer after each step, in kWh.
	Buffer []float64 `json:"buffer"`
	// Cost is the modelled electricity cost of the plan.
	Cost float64 `json:"cost"`
	// BaselineCost is the cost of holding offset zero over the same horizon,
	// for diagnostics.
	BaselineCost float64 `json:"baseline_cost"`
	// Fallback is true when the planner could not find a feasible plan and
	// fell back to all-zero offsets.
	Fallback bool `json:"fallback"`
}

// Horizon returns the number of planned steps.
func (r Result) Horizon() int { return len(r.Offsets) }

// FirstOffset returns the actionable decision for the current step, zero for
// an empty plan.
func (r Result) FirstOffset() int {
	if len(r.Offsets) == 0 {
		return 0
	}
	return r.Offsets[0]
}

// FinalBuffer returns the buffer after the last step, zero for an empty plan.
func (r Result) FinalBuffer() float64 {
	if len(r.Buffer) == 0 {
		return 0
	}
	return r.Buffer[len(r.Buffer)-1]
}
