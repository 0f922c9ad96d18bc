package plan

import "github.com/kilianp07/heatplan/core/model"

// The buffer tracks thermal energy banked in (or borrowed from) the building
// mass, in kWh. Running above the heating curve stores energy, running below
// consumes it. Only positive demand moves the buffer: with no load there is
// no water flow to over- or under-heat.

// BufferStep advances the buffer by one planning step.
func BufferStep(buffer float64, offset int, demand float64, c model.Coefficients) float64 {
	if offset == 0 {
		return buffer
	}
	if demand < 0 {
		demand = 0
	}
	return buffer + float64(offset)*demand*c.ThermalStorageEfficiency*c.StepHours()
}

// BufferTrajectory evaluates the buffer over a whole offset sequence,
// returning one value per step. Usable standalone for post-hoc reporting of
// an executed plan.
func BufferTrajectory(offsets []int, demand []float64, start float64, c model.Coefficients) []float64 {
	out := make([]float64, len(offsets))
	buffer := start
	for t, o := range offsets {
		d := 0.0
		if t < len(demand) {
			d = demand[t]
		}
		buffer = BufferStep(buffer, o, d, c)
		out[t] = buffer
	}
	return out
}
