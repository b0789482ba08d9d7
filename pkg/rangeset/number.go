package rangeset

import "math"

var (
	// Max and Min are the unbounded endpoint sentinels.
	Max = math.Inf(1)
	Min = math.Inf(-1)
)

// IsNumber reports whether v can be used as an endpoint. Both infinities are
// valid, NaN is not.
func IsNumber(v float64) bool {
	return !math.IsNaN(v)
}
