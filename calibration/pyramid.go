package calibration

import (
	"github.com/pkg/errors"

	"github.com/viam-labs/handeye/spatialmath"
	"github.com/viam-labs/handeye/utils"
)

const (
	// perturbDeg is added to the spare rotation axis, alternating sign by
	// corner, so that consecutive samples never share an orientation.
	perturbDeg = 2.0
	// zNudgeMeters is added to the absolute Z component of every tilted pose
	// regardless of direction, as a movel interpolation aid.
	zNudgeMeters = 0.0001
)

// cornerSigns is the fixed traversal order of the width-axis sign pairs.
var cornerSigns = [4][2]float64{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}

// A PyramidSpec describes the sampled pyramid. Lengths are millimeters and
// the tilt angle degrees; conversion to internal units happens once, at
// generation time.
type PyramidSpec struct {
	Layers       int
	BaseWidthMM  float64
	TopWidthMM   float64
	HeightMM     float64
	TiltAngleDeg float64
	Direction    Direction
}

// DefaultPyramidSpec returns the stock two-layer pyramid rising along Z+.
func DefaultPyramidSpec() PyramidSpec {
	return PyramidSpec{
		Layers:      2,
		BaseWidthMM: 100,
		TopWidthMM:  50,
		HeightMM:    50,
		Direction:   PosZ,
	}
}

// Validate ensures all parts of the spec are valid.
func (s PyramidSpec) Validate() error {
	if s.Layers < 1 {
		return errors.Errorf("layers must be at least 1, got %d", s.Layers)
	}
	if s.BaseWidthMM <= 0 {
		return errors.Errorf("base width must be positive, got %f", s.BaseWidthMM)
	}
	if s.TopWidthMM <= 0 {
		return errors.Errorf("top width must be positive, got %f", s.TopWidthMM)
	}
	if s.HeightMM < 0 {
		return errors.Errorf("height cannot be negative, got %f", s.HeightMM)
	}
	if _, ok := directionNames[s.Direction]; !ok {
		return errors.Errorf("invalid direction %d", s.Direction)
	}
	return nil
}

// layerRatio is 0 for the base layer and 1 for the top, with layers=1
// degenerating to 0.
func (s PyramidSpec) layerRatio(layer int) float64 {
	if s.Layers <= 1 {
		return 0
	}
	return float64(layer) / float64(s.Layers-1)
}

// A Target is one pyramid sample point before tilt. Pose is in meters and
// radians, sharing the center pose's orientation.
type Target struct {
	Pose       spatialmath.Pose
	PointIndex int
	Layer      int
	Corner     int
}

// GenerateTargets produces the ordered corner targets of the pyramid around
// the given center pose (meters/radians). Targets are layer-major and
// corner-minor, with PointIndex running 1..4*layers.
func GenerateTargets(spec PyramidSpec, center spatialmath.Pose) ([]Target, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	m := spec.Direction.Mapping()
	base := utils.MillimetersToMeters(spec.BaseWidthMM)
	top := utils.MillimetersToMeters(spec.TopWidthMM)
	height := utils.MillimetersToMeters(spec.HeightMM)

	targets := make([]Target, 0, 4*spec.Layers)
	for layer := 0; layer < spec.Layers; layer++ {
		ratio := spec.layerRatio(layer)
		half := (base - (base-top)*ratio) / 2
		offset := height * ratio * m.HeightSign
		for corner := 0; corner < 4; corner++ {
			p := center
			p[m.Height] += offset
			p[m.Width1] += cornerSigns[corner][0] * half
			p[m.Width2] += cornerSigns[corner][1] * half
			targets = append(targets, Target{
				Pose:       p,
				PointIndex: 4*layer + corner + 1,
				Layer:      layer,
				Corner:     corner,
			})
		}
	}
	return targets, nil
}

// TiltedPose returns the execution pose for a target: the base pose with the
// layer-scaled inward tilt on the two mapped rotation axes, the alternating
// perturbation on the spare rotation axis, and the Z nudge. The tilt shrinks
// linearly to 40% of the configured angle at the top layer.
func TiltedPose(spec PyramidSpec, target Target) spatialmath.Pose {
	m := spec.Direction.Mapping()
	ratio := spec.layerRatio(target.Layer)
	tilt := utils.DegToRad(spec.TiltAngleDeg) * (1 - 0.6*ratio)

	mod := 1.0
	if target.Corner == 1 || target.Corner == 3 {
		mod = -1
	}
	s1 := cornerSigns[target.Corner][0]
	s2 := cornerSigns[target.Corner][1]

	p := target.Pose
	p[m.Rot1] += -s2 * tilt * mod
	p[m.Rot2] += -s1 * tilt * mod

	perturb := utils.DegToRad(perturbDeg)
	if target.Corner%2 == 1 {
		perturb = -perturb
	}
	p[m.RotPerturb] += perturb

	p[spatialmath.AxisZ] += zNudgeMeters
	return p
}
