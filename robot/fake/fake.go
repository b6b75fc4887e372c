// Package fake implements an in-memory robot for tests and demos.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/rdk/logging"

	"github.com/viam-labs/handeye/robot"
	"github.com/viam-labs/handeye/spatialmath"
)

var (
	_ robot.CommandSink = (*Robot)(nil)
	_ robot.PoseSource  = (*Robot)(nil)
	_ robot.Dashboard   = (*Robot)(nil)
)

// Robot simulates an arm controller. Each movel script updates the reported
// pose, either instantly (the default), over MoveDuration, or not at all when
// Static is set. Every script sent is retained for inspection.
type Robot struct {
	// MoveDuration, when nonzero, makes each move interpolate linearly over
	// that duration instead of snapping to the target.
	MoveDuration time.Duration
	// Static leaves the reported pose untouched by move scripts.
	Static bool

	PowerOnErr      error
	BrakeReleaseErr error

	logger logging.Logger
	clock  clock.Clock

	mu        sync.Mutex
	powered   bool
	released  bool
	from      spatialmath.Pose // meters/radians
	target    spatialmath.Pose
	moveStart time.Time
	moving    bool
	scripts   []string
}

// NewRobot returns a fake robot that snaps to each commanded pose.
func NewRobot(logger logging.Logger) *Robot {
	return NewRobotWithClock(logger, clock.New())
}

// NewRobotWithClock returns a fake robot driven by the given clock, for tests
// that control time themselves.
func NewRobotWithClock(logger logging.Logger, c clock.Clock) *Robot {
	return &Robot{logger: logger, clock: c}
}

// SetPose seeds the reported pose. Units are millimeters and degrees, as in
// CurrentPose.
func (r *Robot) SetPose(p spatialmath.Pose) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.from = p.ToMeters()
	r.moving = false
}

// CurrentPose returns the simulated tool pose in millimeters and degrees.
func (r *Robot) CurrentPose(ctx context.Context) (spatialmath.Pose, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked().ToMillimeters(), nil
}

func (r *Robot) currentLocked() spatialmath.Pose {
	if !r.moving {
		return r.from
	}
	elapsed := r.clock.Since(r.moveStart)
	if elapsed >= r.MoveDuration {
		r.from = r.target
		r.moving = false
		return r.from
	}
	frac := float64(elapsed) / float64(r.MoveDuration)
	var p spatialmath.Pose
	for i := range p {
		p[i] = r.from[i] + (r.target[i]-r.from[i])*frac
	}
	return p
}

// SendScript records the script and applies its effect on the simulated pose.
func (r *Robot) SendScript(ctx context.Context, script string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, script)
	if robot.IsStopScript(script) {
		r.from = r.currentLocked()
		r.moving = false
		return nil
	}
	target, _, _, err := robot.ParseMoveL(script)
	if err != nil {
		return err
	}
	if r.Static {
		return nil
	}
	if r.MoveDuration <= 0 {
		r.from = target
		r.moving = false
		return nil
	}
	r.from = r.currentLocked()
	r.target = target
	r.moveStart = r.clock.Now()
	r.moving = true
	return nil
}

// PowerOn powers the simulated controller.
func (r *Robot) PowerOn(ctx context.Context) error {
	if r.PowerOnErr != nil {
		return r.PowerOnErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.powered = true
	r.logger.Debug("fake robot powered on")
	return nil
}

// BrakeRelease releases the simulated brakes.
func (r *Robot) BrakeRelease(ctx context.Context) error {
	if r.BrakeReleaseErr != nil {
		return r.BrakeReleaseErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = true
	r.logger.Debug("fake robot brakes released")
	return nil
}

// PoweredOn reports whether PowerOn has succeeded.
func (r *Robot) PoweredOn() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.powered
}

// BrakesReleased reports whether BrakeRelease has succeeded.
func (r *Robot) BrakesReleased() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

// Scripts returns a copy of every script sent so far.
func (r *Robot) Scripts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.scripts))
	copy(out, r.scripts)
	return out
}
