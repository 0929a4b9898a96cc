package value

import "strconv"

// formatNum renders a Num the way the source's number formatting does:
// shortest round-tripping representation, no trailing ".0" noise for
// integral values beyond what strconv already omits.
func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
