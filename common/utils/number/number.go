package number

import (
	"math"
	"strconv"
)

var epsilon = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < epsilon
}

func FloatToStr(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

func DegreeToRadian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

func RadianToDegree(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

func Clamp(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Map rescales value from the range [fromlow, fromhigh] to [tolow, tohigh].
func Map(value float64, fromlow float64, fromhigh float64, tolow float64, tohigh float64) float64 {
	return (value-fromlow)*(tohigh-tolow)/(fromhigh-fromlow) + tolow
}
