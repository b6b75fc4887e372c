// Package utils contains small helpers shared across the module.
package utils

import "math"

const millimetersPerMeter = 1000.0

func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// MillimetersToMeters converts a boundary-unit length to the internal unit.
func MillimetersToMeters(mm float64) float64 {
	return mm / millimetersPerMeter
}

// MetersToMillimeters converts an internal-unit length to the boundary unit.
func MetersToMillimeters(m float64) float64 {
	return m * millimetersPerMeter
}

// Float64AlmostEqual determines if two floats are within epsilon of each other.
func Float64AlmostEqual(v1, v2, epsilon float64) bool {
	return math.Abs(v1-v2) < epsilon
}
