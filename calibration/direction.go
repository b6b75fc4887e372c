package calibration

import (
	"github.com/pkg/errors"

	"github.com/viam-labs/handeye/spatialmath"
)

// Direction identifies the world axis, with sign, along which the pyramid
// rises away from its base plane.
type Direction int

// The six supported approach directions.
const (
	PosZ Direction = iota
	NegZ
	PosY
	NegY
	PosX
	NegX
)

var directionNames = map[Direction]string{
	PosZ: "Z+",
	NegZ: "Z-",
	PosY: "Y+",
	NegY: "Y-",
	PosX: "X+",
	NegX: "X-",
}

// ParseDirection converts a boundary string such as "Z+" into a Direction.
// Anything outside the six supported values is a configuration error.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return 0, errors.Errorf("unrecognized direction %q (want one of X+, X-, Y+, Y-, Z+, Z-)", s)
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// An AxisMapping names the pose indices a direction assigns to each role in
// target generation. Height carries the layer offset, Width1 and Width2 span
// the base plane, Rot1 and Rot2 take the inward tilt, and RotPerturb is the
// remaining rotational axis used for the alternating perturbation.
type AxisMapping struct {
	Height     int
	Width1     int
	Width2     int
	Rot1       int
	Rot2       int
	RotPerturb int
	HeightSign float64
}

// Mapping returns the axis role assignments for the direction.
func (d Direction) Mapping() AxisMapping {
	m := AxisMapping{HeightSign: 1}
	switch d {
	case PosZ, NegZ:
		m.Height = spatialmath.AxisZ
		m.Width1 = spatialmath.AxisX
		m.Width2 = spatialmath.AxisY
		m.Rot1 = spatialmath.AxisRX
		m.Rot2 = spatialmath.AxisRY
		m.RotPerturb = spatialmath.AxisRZ
	case PosY, NegY:
		m.Height = spatialmath.AxisY
		m.Width1 = spatialmath.AxisX
		m.Width2 = spatialmath.AxisZ
		m.Rot1 = spatialmath.AxisRX
		m.Rot2 = spatialmath.AxisRZ
		m.RotPerturb = spatialmath.AxisRY
	case PosX, NegX:
		m.Height = spatialmath.AxisX
		m.Width1 = spatialmath.AxisY
		m.Width2 = spatialmath.AxisZ
		m.Rot1 = spatialmath.AxisRY
		m.Rot2 = spatialmath.AxisRZ
		m.RotPerturb = spatialmath.AxisRX
	}
	if d == NegZ || d == NegY || d == NegX {
		m.HeightSign = -1
	}
	return m
}
