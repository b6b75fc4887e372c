package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRadConversion(t *testing.T) {
	test.That(t, DegToRad(0), test.ShouldEqual, 0)
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, DegToRad(-90), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, RadToDeg(math.Pi), test.ShouldAlmostEqual, 180)

	for _, deg := range []float64{-720, -57.29578, -1, 0, 0.25, 10, 90, 359.9, 1080} {
		test.That(t, RadToDeg(DegToRad(deg)), test.ShouldAlmostEqual, deg)
	}
	for _, rad := range []float64{-4 * math.Pi, -1, 0, 1e-9, 0.05, math.Pi, 7} {
		test.That(t, DegToRad(RadToDeg(rad)), test.ShouldAlmostEqual, rad)
	}
}

func TestLengthConversion(t *testing.T) {
	test.That(t, MillimetersToMeters(1000), test.ShouldEqual, 1)
	test.That(t, MetersToMillimeters(0.002), test.ShouldAlmostEqual, 2)

	for _, mm := range []float64{-500, -0.1, 0, 0.0001, 2, 50, 123.456, 1e6} {
		test.That(t, MetersToMillimeters(MillimetersToMeters(mm)), test.ShouldAlmostEqual, mm)
	}
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1.0, 1.0+1e-7, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.001, 1e-6), test.ShouldBeFalse)
	test.That(t, Float64AlmostEqual(-2, -2, 1e-12), test.ShouldBeTrue)
}
