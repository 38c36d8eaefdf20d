package calibration

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Homography is the invertible planar projective transform mapping
// homogeneous ground-plane coordinates (Z=0) to homogeneous image pixels.
// It is derived from a camera matrix and is not independently mutable;
// re-derive it when the camera changes.
type Homography struct {
	forward *mat.Dense
	inverse *mat.Dense
}

// GroundHomography builds the homography implied by a 3x4 camera matrix
// restricted to the Z=0 plane: columns 0, 1 and 3 of the matrix. Fails with
// ErrSingularHomography when the camera is degenerate with respect to the
// ground plane.
func GroundHomography(camera mat.Matrix) (*Homography, error) {
	rows, cols := camera.Dims()
	if rows != 3 || cols != 4 {
		return nil, errors.Errorf("calibration: camera matrix must be 3x4, have %dx%d", rows, cols)
	}

	forward := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		forward.Set(i, 0, camera.At(i, 0))
		forward.Set(i, 1, camera.At(i, 1))
		forward.Set(i, 2, camera.At(i, 3))
	}

	norm := mat.Norm(forward, 2)
	if math.Abs(mat.Det(forward)) <= 1e-12*norm*norm*norm {
		return nil, errors.Wrap(ErrSingularHomography, "determinant is near zero")
	}

	var inverse mat.Dense
	if err := inverse.Inverse(forward); err != nil {
		return nil, errors.Wrap(ErrSingularHomography, err.Error())
	}
	return &Homography{forward: forward, inverse: &inverse}, nil
}

// Matrix returns a copy of the 3x3 ground-to-image matrix.
func (h *Homography) Matrix() *mat.Dense {
	return mat.DenseCopyOf(h.forward)
}

// GroundToImage maps a ground-plane (X, Y) to pixel coordinates.
func (h *Homography) GroundToImage(ground r2.Point) (r2.Point, error) {
	return applyHomography(h.forward, ground)
}

// ImageToGround maps a pixel to ground-plane (X, Y) coordinates.
func (h *Homography) ImageToGround(pixel r2.Point) (r2.Point, error) {
	return applyHomography(h.inverse, pixel)
}

// GroundToImagePoints maps a 2xN matrix of ground points to pixels.
func (h *Homography) GroundToImagePoints(ground mat.Matrix) (*mat.Dense, error) {
	return applyHomographyPoints(h.forward, ground)
}

// ImageToGroundPoints maps a 2xN matrix of pixels to ground points.
func (h *Homography) ImageToGroundPoints(pixels mat.Matrix) (*mat.Dense, error) {
	return applyHomographyPoints(h.inverse, pixels)
}

func applyHomography(m *mat.Dense, pt r2.Point) (r2.Point, error) {
	var projected mat.VecDense
	projected.MulVec(m, mat.NewVecDense(3, []float64{pt.X, pt.Y, 1}))
	scaled, err := scaleHomogeneousPoint(&projected)
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: scaled.AtVec(0), Y: scaled.AtVec(1)}, nil
}

func applyHomographyPoints(m *mat.Dense, points mat.Matrix) (*mat.Dense, error) {
	rows, n := points.Dims()
	if rows != 2 {
		return nil, errors.Errorf("calibration: points must be 2xN, have %dx%d", rows, n)
	}
	var projected mat.Dense
	projected.Mul(m, ToHomogeneous(points))
	return ToEuclidean(&projected)
}
