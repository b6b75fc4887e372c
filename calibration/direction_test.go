package calibration

import (
	"testing"

	"go.viam.com/test"

	"github.com/viam-labs/handeye/spatialmath"
)

func TestParseDirection(t *testing.T) {
	for d, name := range map[Direction]string{
		PosZ: "Z+", NegZ: "Z-", PosY: "Y+", NegY: "Y-", PosX: "X+", NegX: "X-",
	} {
		got, err := ParseDirection(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldEqual, d)
		test.That(t, got.String(), test.ShouldEqual, name)
	}

	for _, bad := range []string{"", "z+", "Z", "+Z", "Q+", "ZZ+"} {
		_, err := ParseDirection(bad)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestMappingTable(t *testing.T) {
	for _, tc := range []struct {
		dir  Direction
		want AxisMapping
	}{
		{PosZ, AxisMapping{spatialmath.AxisZ, spatialmath.AxisX, spatialmath.AxisY, spatialmath.AxisRX, spatialmath.AxisRY, spatialmath.AxisRZ, 1}},
		{NegZ, AxisMapping{spatialmath.AxisZ, spatialmath.AxisX, spatialmath.AxisY, spatialmath.AxisRX, spatialmath.AxisRY, spatialmath.AxisRZ, -1}},
		{PosY, AxisMapping{spatialmath.AxisY, spatialmath.AxisX, spatialmath.AxisZ, spatialmath.AxisRX, spatialmath.AxisRZ, spatialmath.AxisRY, 1}},
		{NegY, AxisMapping{spatialmath.AxisY, spatialmath.AxisX, spatialmath.AxisZ, spatialmath.AxisRX, spatialmath.AxisRZ, spatialmath.AxisRY, -1}},
		{PosX, AxisMapping{spatialmath.AxisX, spatialmath.AxisY, spatialmath.AxisZ, spatialmath.AxisRY, spatialmath.AxisRZ, spatialmath.AxisRX, 1}},
		{NegX, AxisMapping{spatialmath.AxisX, spatialmath.AxisY, spatialmath.AxisZ, spatialmath.AxisRY, spatialmath.AxisRZ, spatialmath.AxisRX, -1}},
	} {
		test.That(t, tc.dir.Mapping(), test.ShouldResemble, tc.want)
	}
}

func TestMappingAxesDistinct(t *testing.T) {
	for d := range directionNames {
		m := d.Mapping()

		positional := []int{m.Height, m.Width1, m.Width2}
		seen := map[int]bool{}
		for _, axis := range positional {
			test.That(t, axis >= spatialmath.AxisX && axis <= spatialmath.AxisZ, test.ShouldBeTrue)
			test.That(t, seen[axis], test.ShouldBeFalse)
			seen[axis] = true
		}

		rotational := []int{m.Rot1, m.Rot2, m.RotPerturb}
		seen = map[int]bool{}
		for _, axis := range rotational {
			test.That(t, axis >= spatialmath.AxisRX && axis <= spatialmath.AxisRZ, test.ShouldBeTrue)
			test.That(t, seen[axis], test.ShouldBeFalse)
			seen[axis] = true
		}

		test.That(t, m.HeightSign == 1 || m.HeightSign == -1, test.ShouldBeTrue)
	}
}
