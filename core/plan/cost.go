package plan

import (
	"github.com/kilianp07/heatplan/core/model"
	"github.com/kilianp07/heatplan/core/thermal"
)

// stepCost returns the electricity cost of serving one step of demand at the
// given supply temperature offset. Cost is thermal energy divided by the
// effective efficiency, priced per step. A degenerate efficiency is replaced
// by a flat price penalty so such offsets are strongly discouraged without
// ever dividing by zero.
func stepCost(demand, price, outdoor, baseSupply float64, offset int, defrost, pricePenalty float64, c model.Coefficients) float64 {
	energy := demand * c.StepHours()
	eff := thermal.COP(outdoor, baseSupply+float64(offset), c) * defrost
	if eff <= 0 {
		return energy * price * pricePenalty
	}
	return energy * price / eff
}
