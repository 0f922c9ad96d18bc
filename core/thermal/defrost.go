package thermal

// Frosting on the outdoor coil forces periodic defrost cycles which cost
// heating capacity. The derating below is a piecewise model of that loss:
// frost builds between roughly -10 and +6 degrees C, worst around 0-3
// degrees where the air still carries moisture but the coil sits well below
// the dew point.
const (
	frostUpperTemp = 6.0
	frostLowerTemp = -10.0

	// Frosting onset: 3.1 degrees C at 100% RH, 5.3 degrees C at 70% RH.
	onsetTempHighRH = 3.1
	onsetTempLowRH  = 5.3

	// Base capacity penalties per band.
	penaltyWorstBand = 0.25 // 0..3 degrees C
	penaltyUpperBand = 0.15 // 3 degrees C up to the onset threshold
	penaltyLowerBand = 0.12 // below 0 down to -10 degrees C

	minDefrostFactor = 0.60
	defaultHumidity  = 80.0
)

// DefrostFactor returns the multiplicative efficiency penalty in [0.60, 1.0]
// for the given outdoor temperature (degrees C) and relative humidity (%).
func DefrostFactor(outdoor, humidity float64) float64 {
	if outdoor >= frostUpperTemp || outdoor <= frostLowerTemp {
		return 1.0
	}

	// Onset threshold interpolated between the high and low humidity
	// anchors. Drier air frosts later, i.e. at a higher threshold.
	onset := onsetTempHighRH + (100.0-humidity)*(onsetTempLowRH-onsetTempHighRH)/30.0
	onset = clamp(onset, frostLowerTemp, frostUpperTemp)
	if outdoor >= onset {
		return 1.0
	}

	humidityFactor := clamp(humidity/defaultHumidity, 0.5, 1.0)

	var penalty float64
	switch {
	case outdoor > 3.0:
		// Decays to zero approaching the onset threshold.
		position := (onset - outdoor) / (onset - 3.0)
		penalty = penaltyUpperBand * position
	case outdoor >= 0.0:
		penalty = penaltyWorstBand
	default:
		// Decays to zero approaching -10, where the air is too dry to frost.
		position := (outdoor - frostLowerTemp) / (0.0 - frostLowerTemp)
		penalty = penaltyLowerBand * position
	}
	penalty *= humidityFactor

	factor := 1.0 - penalty
	if factor < minDefrostFactor {
		return minDefrostFactor
	}
	return factor
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
