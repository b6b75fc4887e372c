package calibration

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/viam-labs/handeye/spatialmath"
)

const recordHeader = "PointID, X, Y, Z, Rx, Ry, Rz"

// A Record is one sampled pose, in meters and radians.
type Record struct {
	PointIndex int
	Pose       spatialmath.Pose
}

// A Recorder accumulates the samples of one run, in order, and serializes
// them as a comma-separated text table. It is owned by a single run and is
// not safe for concurrent use.
type Recorder struct {
	records []Record
}

// Append adds one sample.
func (r *Recorder) Append(pointIndex int, p spatialmath.Pose) {
	r.records = append(r.records, Record{PointIndex: pointIndex, Pose: p})
}

// Len returns the number of samples recorded so far.
func (r *Recorder) Len() int {
	return len(r.records)
}

// Records returns a copy of the samples recorded so far.
func (r *Recorder) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// WriteTo serializes the samples with a header line and one six-decimal row
// per point.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := fmt.Fprintln(w, recordHeader)
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, rec := range r.records {
		n, err := fmt.Fprintf(w, "%d, %.6f, %.6f, %.6f, %.6f, %.6f, %.6f\n",
			rec.PointIndex,
			rec.Pose[spatialmath.AxisX],
			rec.Pose[spatialmath.AxisY],
			rec.Pose[spatialmath.AxisZ],
			rec.Pose[spatialmath.AxisRX],
			rec.Pose[spatialmath.AxisRY],
			rec.Pose[spatialmath.AxisRZ],
		)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteFile serializes the samples to path, creating parent directories as
// needed.
func (r *Recorder) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = r.WriteTo(f)
	return multierr.Combine(err, f.Close())
}
