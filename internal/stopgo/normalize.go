package stopgo

// normalise is the score primitive shared by every scoring method
// (spec.md §4.4). It maps value into [-1, +1]: negative values are trip
// evidence, positive values are stop evidence, 0 sits exactly at threshold.
//
// Laws (checked in normalize_test.go per spec.md §8):
//
//	normalise(lower)     == -1
//	normalise(upper)     == +1
//	normalise(threshold) ==  0
//	monotone in value within [lower, upper]
func normalise(value, lower, upper, threshold float64) float64 {
	v := value
	if v < lower {
		v = lower
	}
	if v > upper {
		v = upper
	}
	s := v - threshold

	if s < 0 {
		return s / (threshold - lower)
	}
	return s / (upper - threshold)
}

// normaliseMid normalises using the midpoint of [lower, upper] as the
// threshold, the shorthand spec.md §4.4 uses when no explicit threshold is
// configured.
func normaliseMid(value, lower, upper float64) float64 {
	return normalise(value, lower, upper, (lower+upper)/2)
}

// normaliseOpt applies normalise to an OptFloat, propagating absence.
func normaliseOpt(value OptFloat, lower, upper, threshold float64) OptFloat {
	v, ok := value.Get()
	if !ok {
		return None
	}
	return Some(normalise(v, lower, upper, threshold))
}
