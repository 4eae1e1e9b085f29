package readers

import "math"

// round4 rounds to 4 decimal places, the precision the collector's unit
// conversions are specified to.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// FahrenheitToCelsius converts °F to °C.
func FahrenheitToCelsius(f float64) float64 {
	return round4((f - 32) * 5 / 9)
}

// MphToKph converts miles per hour to kilometers per hour.
func MphToKph(mph float64) float64 {
	return round4(mph * 1.60934)
}

// InchesToMillimeters converts inches to millimeters.
func InchesToMillimeters(in float64) float64 {
	return round4(in * 25.4)
}

// PsiToHectopascals converts pounds per square inch to hectopascals.
func PsiToHectopascals(psi float64) float64 {
	return round4(psi * 33.8639)
}
