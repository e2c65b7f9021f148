package economy

// DiminishingReturns converts a budget fraction into an output bounded by cap.
//
// Properties:
//   - out(0) == 0 and out(1) == cap
//   - strictly increasing on [0, 1]
//   - sub-linear: doubling the budget less than doubles the output
//   - fractions outside [0, 1] clamp to the nearest bound
func DiminishingReturns(fraction, cap float64) float64 {
	if fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return cap
	}
	inv := 1 - fraction
	return cap * (1 - inv*inv)
}

// BudgetFraction converts a 0-100 budget percentage into a [0,1] fraction.
func BudgetFraction(percent int) float64 {
	if percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return 1
	}
	return float64(percent) / 100.0
}
