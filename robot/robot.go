// Package robot defines the interfaces a calibration session uses to drive an
// arm, together with the textual script format spoken over the command sink.
package robot

import (
	"context"

	"github.com/viam-labs/handeye/spatialmath"
)

// A CommandSink accepts move scripts for execution. Dispatch is
// fire-and-forget; the controller acknowledges nothing, and arrival is
// observed separately through a PoseSource.
type CommandSink interface {
	SendScript(ctx context.Context, script string) error
}

// A PoseSource reports the current tool pose of the arm. Positions are in
// millimeters and rotation-vector components in degrees, matching the units
// used at every public boundary of this module.
type PoseSource interface {
	CurrentPose(ctx context.Context) (spatialmath.Pose, error)
}

// A CaptureTrigger is notified once per sampled point, after the arm has
// stabilized at the tilted pose. Implementations typically fire a camera.
type CaptureTrigger interface {
	Capture(ctx context.Context, pointIndex int) error
}

// CaptureFunc adapts a plain function to the CaptureTrigger interface.
type CaptureFunc func(ctx context.Context, pointIndex int) error

// Capture calls the underlying function.
func (f CaptureFunc) Capture(ctx context.Context, pointIndex int) error {
	return f(ctx, pointIndex)
}

var _ CaptureTrigger = CaptureFunc(nil)

// A Dashboard readies the arm for motion. Both calls must succeed before any
// move script is dispatched.
type Dashboard interface {
	PowerOn(ctx context.Context) error
	BrakeRelease(ctx context.Context) error
}
