package styles

import "strconv"

// StarPrefix starts every star label.
const StarPrefix = "★ "

// FormatStars abbreviates a star count: 950 → "950", 1500 → "1.5k",
// 12000 → "12k", 2500000 → "2.5m".
func FormatStars(n uint) string {
	// Counts that round up to 1000k are shown as 1m.
	if n < 999_950 {
		if n < 1_000 {
			return strconv.FormatUint(uint64(n), 10)
		}
		return compact(n, 1_000) + "k"
	}
	return compact(n, 1_000_000) + "m"
}

// StarLabel is the text of the star line for n stars.
func StarLabel(n uint) string { return StarPrefix + FormatStars(n) }

// compact renders n/unit with one decimal, rounding half up, and drops
// a trailing ".0".
func compact(n, unit uint) string {
	tenths := (uint64(n)*10 + uint64(unit)/2) / uint64(unit)
	s := strconv.FormatUint(tenths/10, 10)
	if frac := tenths % 10; frac != 0 {
		s += "." + strconv.FormatUint(frac, 10)
	}
	return s
}
