// Package main contains a command to run a calibration trajectory against a
// simulated arm and inspect the recorded data.
package main

import (
	"context"
	"time"

	"go.viam.com/rdk/logging"
	"go.viam.com/utils"

	"github.com/viam-labs/handeye/calibration"
	"github.com/viam-labs/handeye/robot"
	"github.com/viam-labs/handeye/robot/fake"
	"github.com/viam-labs/handeye/spatialmath"
)

var logger = logging.NewDebugLogger("handeye")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Planar    bool   `flag:"planar,usage=run the nine-point planar grid instead of the pyramid"`
	Layers    int    `flag:"layers,default=2,usage=number of pyramid layers"`
	BaseWidth int    `flag:"base-width,default=100,usage=pyramid base width in millimeters"`
	TopWidth  int    `flag:"top-width,default=50,usage=pyramid top width in millimeters"`
	Height    int    `flag:"height,default=50,usage=pyramid height in millimeters"`
	TiltAngle int    `flag:"tilt,default=0,usage=inward tilt angle in degrees"`
	Direction string `flag:"direction,default=Z+,usage=axis the pyramid rises along (X+ X- Y+ Y- Z+ Z-)"`
	DataDir   string `flag:"data-dir,default=workspace,usage=directory for calibration data files"`
	MoveMs    int    `flag:"move-ms,default=0,usage=simulated move duration in milliseconds (0 snaps)"`
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	direction, err := calibration.ParseDirection(argsParsed.Direction)
	if err != nil {
		return err
	}

	arm := fake.NewRobot(logger)
	arm.MoveDuration = time.Duration(argsParsed.MoveMs) * time.Millisecond
	arm.SetPose(spatialmath.Pose{0, 0, 500, 0, 0, 0})

	session, err := calibration.NewSession(calibration.Config{
		Sink:      arm,
		Source:    arm,
		Dashboard: arm,
		Capture: robot.CaptureFunc(func(ctx context.Context, pointIndex int) error {
			logger.Infof("capture fired for point %d", pointIndex)
			return nil
		}),
		Logger:  logger,
		DataDir: argsParsed.DataDir,
	})
	if err != nil {
		return err
	}

	if argsParsed.Planar {
		return session.RunPlanar(ctx)
	}
	return session.RunPyramid(ctx, calibration.PyramidSpec{
		Layers:       argsParsed.Layers,
		BaseWidthMM:  float64(argsParsed.BaseWidth),
		TopWidthMM:   float64(argsParsed.TopWidth),
		HeightMM:     float64(argsParsed.Height),
		TiltAngleDeg: float64(argsParsed.TiltAngle),
		Direction:    direction,
	})
}
