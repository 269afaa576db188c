package climate

import "math"

const mphPerMS = 2.237

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

func MSToMPH(ms float64) float64 {
	return ms * mphPerMS
}

func KPaToMillibar(kpa float64) float64 {
	return kpa * 10
}

// round rounds to the given number of decimals, ties to even.
func round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(x*p) / p
}
