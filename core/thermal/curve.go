package thermal

import "github.com/kilianp07/heatplan/core/model"

// BaseSupply returns the offset-zero target supply water temperature for the
// given outdoor temperature. The heating curve is a bounded linear
// interpolation: WaterMax at or below OutdoorMin, WaterMin at or above
// OutdoorMax, monotonically non-increasing in between.
func BaseSupply(outdoor float64, c model.Coefficients) float64 {
	if outdoor <= c.OutdoorMin {
		return c.WaterMax
	}
	if outdoor >= c.OutdoorMax {
		return c.WaterMin
	}
	return c.WaterMax + (c.WaterMin-c.WaterMax)*(outdoor-c.OutdoorMin)/(c.OutdoorMax-c.OutdoorMin)
}
