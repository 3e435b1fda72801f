package likelihood

import "math"

// Precomputed natural-log constants shared across the likelihood and
// hypothesis code.
var (
	Lg3  = math.Log(3)
	Lg50 = math.Log(0.5)
	Lg10 = math.Log(0.1)
	Lg90 = math.Log(0.9)
)

// LogAddExp returns log(exp(a) + exp(b)), factoring out the larger operand
// for numerical stability.
func LogAddExp(a, b float64) float64 {
	max := a
	if b > a {
		max = b
	}
	return math.Log(math.Exp(a-max)+math.Exp(b-max)) + max
}
