package thermal

import "testing"

func TestDefrostFactor_Bounds(t *testing.T) {
	for temp := -20.0; temp <= 20; temp += 0.5 {
		for hum := 0.0; hum <= 100; hum += 10 {
			f := DefrostFactor(temp, hum)
			if f < 0.60 || f > 1.0 {
				t.Fatalf("defrost factor out of range at t=%v h=%v: %v", temp, hum, f)
			}
		}
	}
}

func TestDefrostFactor_NoFrostOutsideRange(t *testing.T) {
	cases := []float64{6, 8, 15, -10, -12, -25}
	for _, temp := range cases {
		if f := DefrostFactor(temp, 100); f != 1.0 {
			t.Fatalf("expected no derating at %v degrees, got %v", temp, f)
		}
	}
}

func TestDefrostFactor_WorstBand(t *testing.T) {
	// Between 0 and 3 degrees at high humidity the full worst-band penalty
	// applies.
	if f := DefrostFactor(2, 90); f != 0.75 {
		t.Fatalf("expected 0.75 in worst band at high humidity, got %v", f)
	}
}

func TestDefrostFactor_HumidityScaling(t *testing.T) {
	humid := DefrostFactor(2, 90)
	dry := DefrostFactor(2, 0)
	if humid >= dry {
		t.Fatalf("humid air should derate more: %v >= %v", humid, dry)
	}
	// The humidity factor is floored at 0.5, so bone-dry air still takes
	// half the band penalty below the onset threshold.
	if dry != 1.0-0.25*0.5 {
		t.Fatalf("expected half penalty for dry air, got %v", dry)
	}
}

func TestDefrostFactor_AboveOnsetThreshold(t *testing.T) {
	// At 100% RH the onset threshold is 3.1 degrees: 4 degrees is frost-free.
	if f := DefrostFactor(4, 100); f != 1.0 {
		t.Fatalf("expected no derating above onset threshold, got %v", f)
	}
	// At 70% RH the threshold moves up to 5.3 degrees and 4 degrees frosts.
	if f := DefrostFactor(4, 70); f >= 1.0 {
		t.Fatalf("expected derating below onset threshold, got %v", f)
	}
}

func TestDefrostFactor_DecaysTowardColdLimit(t *testing.T) {
	nearZero := DefrostFactor(-1, 90)
	nearLimit := DefrostFactor(-9, 90)
	if nearLimit <= nearZero {
		t.Fatalf("penalty should decay toward -10: %v <= %v", nearLimit, nearZero)
	}
}
