// Package thermal models the temperature dependent efficiency of an
// air-to-water heat pump: the coefficient of performance, the defrost
// derating at frosting conditions and the heating curve mapping outdoor
// temperature to the baseline supply temperature.
package thermal

import "github.com/kilianp07/heatplan/core/model"

// minCOP floors the modelled efficiency so step costs stay bounded.
const minCOP = 0.5

// COP returns the coefficient of performance at the given outdoor and supply
// water temperature. The model is linear around 35 degrees C supply: COP
// rises with outdoor temperature and falls with supply temperature.
func COP(outdoor, supply float64, c model.Coefficients) float64 {
	cop := (c.BaseCOP + c.OutdoorCoefficient*outdoor - c.KFactor*(supply-35)) * c.COPCompensationFactor
	if cop < minCOP {
		return minCOP
	}
	return cop
}
