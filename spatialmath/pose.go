// Package spatialmath defines the six-component tool pose spoken by the robot
// script protocol and conversions between axis-angle rotation vectors and
// orthonormal rotation bases.
package spatialmath

import (
	"github.com/golang/geo/r3"

	"github.com/viam-labs/handeye/utils"
)

// Pose is the six ordered degrees of freedom of the tool flange: position
// [X Y Z] followed by an axis-angle rotation vector [RX RY RZ] whose direction
// is the rotation axis and whose magnitude is the rotation angle; the zero
// vector is the identity orientation. Internally a Pose is meters/radians;
// collaborator boundaries carry millimeters/degrees.
type Pose [6]float64

// Indices of the pose degrees of freedom.
const (
	AxisX = iota
	AxisY
	AxisZ
	AxisRX
	AxisRY
	AxisRZ
)

// Point returns the position components.
func (p Pose) Point() r3.Vector {
	return r3.Vector{X: p[AxisX], Y: p[AxisY], Z: p[AxisZ]}
}

// RotationVector returns the orientation components.
func (p Pose) RotationVector() r3.Vector {
	return r3.Vector{X: p[AxisRX], Y: p[AxisRY], Z: p[AxisRZ]}
}

// ToMeters converts a boundary pose in millimeters/degrees to the internal
// meters/radians representation.
func (p Pose) ToMeters() Pose {
	return Pose{
		utils.MillimetersToMeters(p[AxisX]),
		utils.MillimetersToMeters(p[AxisY]),
		utils.MillimetersToMeters(p[AxisZ]),
		utils.DegToRad(p[AxisRX]),
		utils.DegToRad(p[AxisRY]),
		utils.DegToRad(p[AxisRZ]),
	}
}

// ToMillimeters converts an internal pose in meters/radians to the boundary
// millimeters/degrees representation.
func (p Pose) ToMillimeters() Pose {
	return Pose{
		utils.MetersToMillimeters(p[AxisX]),
		utils.MetersToMillimeters(p[AxisY]),
		utils.MetersToMillimeters(p[AxisZ]),
		utils.RadToDeg(p[AxisRX]),
		utils.RadToDeg(p[AxisRY]),
		utils.RadToDeg(p[AxisRZ]),
	}
}

// TranslationDistance returns the Euclidean distance between the positions of
// p and q.
func (p Pose) TranslationDistance(q Pose) float64 {
	return p.Point().Sub(q.Point()).Norm()
}

// RotationDistance returns the componentwise Euclidean distance between the
// rotation vectors of p and q. This is the coarse orientation error used for
// convergence checks, not a geodesic angle.
func (p Pose) RotationDistance(q Pose) float64 {
	return p.RotationVector().Sub(q.RotationVector()).Norm()
}
