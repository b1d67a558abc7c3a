package mathx

import (
	"math"
	"strconv"
)

// Round rounds value to the given number of decimal places, half-up.
//
// Halves always round toward positive infinity (Round(-2.5, 0) == -2), and the scaling is done in
// float64 so that values like 1.005 round the same way on every consumer of the report.
func Round(value float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Floor(value*scale+0.5) / scale
}

// RoundInt rounds value half-up to the nearest integer.
func RoundInt(value float64) int64 {
	return int64(math.Floor(value + 0.5))
}

// FormatNumber renders value in its shortest decimal form: 600, 1234.5, 0.00005.
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
