// Package calibration drives a robotic arm through generated sampling
// trajectories, waits for convergence at each pose, fires an external
// capture, and records the visited poses for hand-eye calibration.
package calibration

import (
	"context"
	"path/filepath"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"

	"github.com/viam-labs/handeye/robot"
	"github.com/viam-labs/handeye/spatialmath"
)

const (
	defaultDataDir  = "workspace"
	planarDataFile  = "calibration_data.txt"
	pyramidDataFile = "calibration_3d_data.txt"

	planarStepMeters = 0.05
)

// Config wires a session to its collaborators. Sink and Source are required;
// everything else has a usable default.
type Config struct {
	Sink      robot.CommandSink
	Source    robot.PoseSource
	Capture   robot.CaptureTrigger
	Dashboard robot.Dashboard
	Logger    logging.Logger
	Clock     clock.Clock
	DataDir   string
}

// Validate ensures all parts of the config are valid.
func (c Config) Validate() error {
	if c.Sink == nil {
		return errors.New("config requires a command sink")
	}
	if c.Source == nil {
		return errors.New("config requires a pose source")
	}
	return nil
}

// A Session owns one set of collaborator handles and runs calibration
// trajectories over them, strictly sequentially. Sessions are not safe for
// concurrent use; callers serialize runs.
type Session struct {
	source    robot.PoseSource
	capture   robot.CaptureTrigger
	dashboard robot.Dashboard
	logger    logging.Logger
	dataDir   string
	mover     *mover
}

// NewSession validates the config and returns a ready session.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger("handeye")
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	return &Session{
		source:    cfg.Source,
		capture:   cfg.Capture,
		dashboard: cfg.Dashboard,
		logger:    logger,
		dataDir:   dataDir,
		mover:     newMover(cfg.Sink, cfg.Source, logger, clk),
	}, nil
}

// RunPlanar drives the fixed nine-point grid in the YOZ plane around the
// current pose: three Z rows, three Y samples each, 50 mm apart. Samples are
// written to calibration_data.txt under the session data directory.
func (s *Session) RunPlanar(ctx context.Context) error {
	runID := uuid.NewString()
	s.logger.Infow("starting planar calibration run", "run_id", runID)

	center, err := s.prepare(ctx)
	if err != nil {
		return err
	}
	var rec Recorder
	visitErr := s.visitPlanar(ctx, center, &rec)
	return s.finish(ctx, runID, &rec, filepath.Join(s.dataDir, planarDataFile), center, visitErr)
}

// RunPyramid drives the pyramid described by spec around the current pose,
// tilting inward at each corner. Samples are written to
// calibration_3d_data.txt under the session data directory.
func (s *Session) RunPyramid(ctx context.Context, spec PyramidSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	runID := uuid.NewString()
	s.logger.Infow("starting pyramid calibration run",
		"run_id", runID,
		"layers", spec.Layers,
		"base_width_mm", spec.BaseWidthMM,
		"top_width_mm", spec.TopWidthMM,
		"height_mm", spec.HeightMM,
		"tilt_deg", spec.TiltAngleDeg,
		"direction", spec.Direction.String(),
	)

	center, err := s.prepare(ctx)
	if err != nil {
		return err
	}
	targets, err := GenerateTargets(spec, center)
	if err != nil {
		return err
	}
	var rec Recorder
	visitErr := s.visitPyramid(ctx, spec, targets, &rec)
	return s.finish(ctx, runID, &rec, filepath.Join(s.dataDir, pyramidDataFile), center, visitErr)
}

// prepare readies the arm and captures the center pose (meters/radians) that
// anchors the trajectory. Any failure here aborts before motion.
func (s *Session) prepare(ctx context.Context) (spatialmath.Pose, error) {
	if s.dashboard != nil {
		if err := s.dashboard.PowerOn(ctx); err != nil {
			return spatialmath.Pose{}, errors.Wrap(err, "power on failed")
		}
		if err := s.dashboard.BrakeRelease(ctx); err != nil {
			return spatialmath.Pose{}, errors.Wrap(err, "brake release failed")
		}
	}
	reported, err := s.source.CurrentPose(ctx)
	if err != nil {
		return spatialmath.Pose{}, errors.Wrap(err, "reading center pose")
	}
	center := reported.ToMeters()
	s.logger.Infow("captured center pose", "center", center)
	return center, nil
}

func (s *Session) visitPlanar(ctx context.Context, center spatialmath.Pose, rec *Recorder) error {
	offsets := []float64{-planarStepMeters, 0, planarStepMeters}
	point := 0
	for _, dz := range offsets {
		for _, dy := range offsets {
			point++
			if err := ctx.Err(); err != nil {
				return err
			}
			target := center
			target[spatialmath.AxisY] += dy
			target[spatialmath.AxisZ] += dz

			s.logger.Infof("moving to grid point %d of 9", point)
			if err := s.mover.moveTo(ctx, target, baseAccel, baseSpeed); err != nil {
				return errors.Wrapf(err, "dispatching move for point %d", point)
			}
			observed, _, err := s.mover.waitForArrival(ctx, target,
				moveTolerance{position: positionToleranceMeters}, planarMoveBudget)
			if err != nil {
				return err
			}
			if err := s.mover.waitFor(ctx, planarStabilize); err != nil {
				return err
			}
			s.sample(ctx, rec, point, observed)
		}
	}
	return nil
}

func (s *Session) visitPyramid(ctx context.Context, spec PyramidSpec, targets []Target, rec *Recorder) error {
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.logger.Infof("moving to point %d (layer %d, corner %d)",
			target.PointIndex, target.Layer, target.Corner)
		if err := s.mover.moveTo(ctx, target.Pose, baseAccel, baseSpeed); err != nil {
			return errors.Wrapf(err, "dispatching base move for point %d", target.PointIndex)
		}
		if _, _, err := s.mover.waitForArrival(ctx, target.Pose,
			moveTolerance{position: positionToleranceMeters}, baseMoveBudget); err != nil {
			return err
		}

		tilted := TiltedPose(spec, target)
		if err := s.mover.moveTo(ctx, tilted, baseAccel, tiltSpeed); err != nil {
			return errors.Wrapf(err, "dispatching tilt move for point %d", target.PointIndex)
		}
		observed, _, err := s.mover.waitForArrival(ctx, tilted,
			moveTolerance{position: positionToleranceMeters, rotation: rotationToleranceRadians},
			tiltMoveBudget)
		if err != nil {
			return err
		}
		if err := s.mover.waitFor(ctx, pyramidStabilize); err != nil {
			return err
		}

		s.sample(ctx, rec, target.PointIndex, observed)

		if err := s.mover.moveTo(ctx, target.Pose, baseAccel, baseSpeed); err != nil {
			return errors.Wrapf(err, "dispatching restore move for point %d", target.PointIndex)
		}
		if _, _, err := s.mover.waitForArrival(ctx, target.Pose,
			moveTolerance{position: positionToleranceMeters}, restoreBudget); err != nil {
			return err
		}
	}
	return nil
}

// sample records the pose at the stabilized point and fires the capture
// trigger. Neither a failed pose read nor a failed capture aborts the run.
func (s *Session) sample(ctx context.Context, rec *Recorder, pointIndex int, fallback spatialmath.Pose) {
	pose := fallback
	if reported, err := s.source.CurrentPose(ctx); err != nil {
		s.logger.Warnw("pose read at sample time failed, recording last observed pose",
			"point", pointIndex, "error", err)
	} else {
		pose = reported.ToMeters()
	}
	rec.Append(pointIndex, pose)
	s.logger.Infof("recorded point %d at %.6f, %.6f, %.6f",
		pointIndex, pose[spatialmath.AxisX], pose[spatialmath.AxisY], pose[spatialmath.AxisZ])

	if s.capture == nil {
		return
	}
	if err := s.capture.Capture(ctx, pointIndex); err != nil {
		s.logger.Errorw("capture failed", "point", pointIndex, "error", err)
	}
}

// finish flushes collected samples and brings the arm back. On cancellation
// it decelerates the arm instead of commanding new motion; collected samples
// are still flushed.
func (s *Session) finish(
	ctx context.Context,
	runID string,
	rec *Recorder,
	path string,
	center spatialmath.Pose,
	visitErr error,
) error {
	if visitErr != nil && ctx.Err() != nil {
		if err := s.mover.stop(); err != nil {
			s.logger.Errorw("stop dispatch failed", "error", err)
		}
	}

	if rec.Len() > 0 {
		if err := rec.WriteFile(path); err != nil {
			s.logger.Errorw("writing calibration data failed", "path", path, "error", err)
		} else {
			s.logger.Infow("calibration data written", "run_id", runID, "path", path, "points", rec.Len())
		}
	}

	if ctx.Err() == nil {
		if err := s.mover.moveTo(ctx, center, baseAccel, baseSpeed); err != nil {
			s.logger.Errorw("return to center failed", "error", err)
		}
	}

	if visitErr != nil {
		return visitErr
	}
	s.logger.Infow("calibration run complete", "run_id", runID, "points", rec.Len())
	return nil
}
