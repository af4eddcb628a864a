package draft

import (
	"math"
	"strconv"
	"strings"
)

// Clamp normalizes raw numeric input to a committed value: floor the
// number, then clamp to >= 0. Anything non-numeric or non-finite is 0.
// Data-entry forgiveness is deliberate; invalid input is never an error.
func Clamp(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Floor(f)
	if f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
