package calibration

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Camera is a pinhole camera model: intrinsics K plus the extrinsic pose of
// the camera relative to a reference frame. Each instance owns its pose
// exclusively; replace it wholesale with SetPose.
type Camera struct {
	Intrinsics *mat.Dense
	Pose       Pose
}

func NewCamera(intrinsics *mat.Dense, pose Pose) *Camera {
	return &Camera{Intrinsics: mat.DenseCopyOf(intrinsics), Pose: pose}
}

// SetPose replaces the extrinsic pose without touching the intrinsics, e.g.
// to re-express the camera relative to a robot base frame once the offset
// between frames is known.
func (c *Camera) SetPose(pose Pose) {
	c.Pose = pose
}

// Matrix recomputes the 3x4 camera matrix K*[R|t] from the current state.
func (c *Camera) Matrix() *mat.Dense {
	var projMat mat.Dense
	projMat.Mul(c.Intrinsics, c.Pose.Extrinsics())
	return &projMat
}

// PrincipalPoint returns the pixel coordinates of the optical axis.
func (c *Camera) PrincipalPoint() r2.Point {
	return r2.Point{X: c.Intrinsics.At(0, 2), Y: c.Intrinsics.At(1, 2)}
}

// Project maps 3xN reference-frame points to 2xN pixel coordinates through
// the pinhole equation. The returned flags mark points whose camera-frame Z
// is <= 0: they sit at or behind the camera, and their algebraic projection
// is returned unclamped but is not a meaningful pixel.
func (c *Camera) Project(world mat.Matrix) (*mat.Dense, []bool, error) {
	rows, n := world.Dims()
	if rows != 3 {
		return nil, nil, errors.Errorf("calibration: world points must be 3xN, have %dx%d", rows, n)
	}

	cameraFrame := c.Pose.TransformPoints(world)
	behind := make([]bool, n)
	for j := 0; j < n; j++ {
		behind[j] = cameraFrame.At(2, j) <= 0
	}

	var projected mat.Dense
	projected.Mul(c.Intrinsics, cameraFrame)

	pixels := mat.NewDense(2, n, nil)
	for j := 0; j < n; j++ {
		w := projected.At(2, j)
		if !behind[j] && math.Abs(w) <= homogeneousScaleTol {
			return nil, nil, errors.Wrapf(ErrDegenerateScale, "point %d", j)
		}
		pixels.Set(0, j, projected.At(0, j)/w)
		pixels.Set(1, j, projected.At(1, j)/w)
	}
	return pixels, behind, nil
}

// ProjectPoint projects a single reference-frame point. The boolean reports
// the behind-camera condition of Project.
func (c *Camera) ProjectPoint(world r3.Vector) (r2.Point, bool, error) {
	point := mat.NewDense(3, 1, []float64{world.X, world.Y, world.Z})
	pixels, behind, err := c.Project(point)
	if err != nil {
		return r2.Point{}, false, err
	}
	return r2.Point{X: pixels.At(0, 0), Y: pixels.At(1, 0)}, behind[0], nil
}
