package calibration

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/rdk/logging"

	"github.com/viam-labs/handeye/robot"
	"github.com/viam-labs/handeye/spatialmath"
)

const (
	positionToleranceMeters  = 0.002
	rotationToleranceRadians = 0.05

	baseAccel = 0.5
	baseSpeed = 0.2
	tiltSpeed = 0.1
	stopDecel = 2.0
)

var (
	pollInterval = 100 * time.Millisecond

	baseMoveBudget   = 20 * time.Second
	tiltMoveBudget   = 5 * time.Second
	restoreBudget    = 5 * time.Second
	planarMoveBudget = 10 * time.Second

	pyramidStabilize = 1500 * time.Millisecond
	planarStabilize  = 500 * time.Millisecond
)

// moveTolerance bounds the pose error accepted as arrival. A zero rotation
// disables the rotation check.
type moveTolerance struct {
	position float64 // meters
	rotation float64 // radians
}

// mover dispatches fire-and-forget move scripts and infers arrival purely
// from polled pose feedback.
type mover struct {
	sink   robot.CommandSink
	source robot.PoseSource
	logger logging.Logger
	clock  clock.Clock
}

func newMover(sink robot.CommandSink, source robot.PoseSource, logger logging.Logger, c clock.Clock) *mover {
	return &mover{sink: sink, source: source, logger: logger, clock: c}
}

// moveTo dispatches a linear move toward the pose (meters/radians). The
// controller sends no acknowledgment; follow with waitForArrival.
func (m *mover) moveTo(ctx context.Context, target spatialmath.Pose, accel, speed float64) error {
	script := robot.MoveLScript(target, accel, speed)
	m.logger.Debugw("dispatching move", "target", target, "speed", speed)
	return m.sink.SendScript(ctx, script)
}

// waitForArrival polls the pose source until the reported pose is within
// tolerance of the target or the budget is exhausted. It returns the last
// pose observed (meters/radians) and whether the target was reached; if no
// reading succeeds for the entire budget it falls back to returning the
// commanded target. Exhausting the budget is not an error; only cancellation
// is. Feedback read errors are tolerated and polling continues.
func (m *mover) waitForArrival(
	ctx context.Context,
	target spatialmath.Pose,
	tol moveTolerance,
	budget time.Duration,
) (spatialmath.Pose, bool, error) {
	start := m.clock.Now()
	last := target
	observed := false
	for {
		reported, err := m.source.CurrentPose(ctx)
		if err != nil {
			m.logger.Debugw("pose feedback unavailable, continuing to poll", "error", err)
		} else {
			current := reported.ToMeters()
			last = current
			observed = true
			if current.TranslationDistance(target) < tol.position &&
				(tol.rotation <= 0 || current.RotationDistance(target) < tol.rotation) {
				return current, true, nil
			}
		}

		if m.clock.Since(start) > budget {
			if !observed {
				m.logger.Warnw("no pose feedback within budget, falling back to the commanded pose",
					"target", target, "budget", budget)
			} else {
				m.logger.Warnw("did not converge within budget",
					"target", target, "last", last, "budget", budget)
			}
			return last, false, nil
		}

		if err := m.waitFor(ctx, pollInterval); err != nil {
			return last, false, err
		}
	}
}

// waitFor blocks for d or until the context is done, whichever comes first.
// Every settle and poll delay of a run goes through here.
func (m *mover) waitFor(ctx context.Context, d time.Duration) error {
	timer := m.clock.Timer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// stop best-effort dispatches a deceleration script, detached from the
// (typically already canceled) run context.
func (m *mover) stop() error {
	return m.sink.SendScript(context.Background(), robot.StopScript(stopDecel))
}
