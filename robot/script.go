package robot

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/viam-labs/handeye/spatialmath"
)

// Scripts carry poses in meters and radians regardless of the units used at
// the module boundary.

// MoveLScript builds a linear move command for the given pose, acceleration
// (m/s^2), and speed (m/s).
func MoveLScript(p spatialmath.Pose, accel, speed float64) string {
	return fmt.Sprintf("movel([%.6f,%.6f,%.6f,%.6f,%.6f,%.6f], a=%.3f, v=%.3f)\n",
		p[0], p[1], p[2], p[3], p[4], p[5], accel, speed)
}

// StopScript builds a controlled deceleration command (decel in m/s^2).
func StopScript(decel float64) string {
	return fmt.Sprintf("stopj(%.1f)\n", decel)
}

// IsStopScript reports whether the script is a stop command.
func IsStopScript(script string) bool {
	return strings.HasPrefix(script, "stopj(")
}

// ParseMoveL extracts the pose, acceleration, and speed from a movel script.
func ParseMoveL(script string) (spatialmath.Pose, float64, float64, error) {
	var p spatialmath.Pose
	var accel, speed float64
	n, err := fmt.Sscanf(strings.TrimSpace(script), "movel([%f,%f,%f,%f,%f,%f], a=%f, v=%f)",
		&p[0], &p[1], &p[2], &p[3], &p[4], &p[5], &accel, &speed)
	if err != nil {
		return spatialmath.Pose{}, 0, 0, errors.Wrapf(err, "invalid movel script %q", script)
	}
	if n != 8 {
		return spatialmath.Pose{}, 0, 0, errors.Errorf("invalid movel script %q", script)
	}
	return p, accel, speed, nil
}
