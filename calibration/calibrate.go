package calibration

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// rankGapTol is the relative size of the second-smallest singular value below
// which the DLT system is treated as rank deficient.
const rankGapTol = 1e-9

// Calibrate estimates the 3x4 camera matrix from N point correspondences
// between world (3xN) and image (2xN) coordinates, solved as a homogeneous
// linear least-squares problem (DLT). The i-th column of each matrix must
// refer to the same physical marker.
//
// The returned matrix has unit Frobenius norm; its overall sign and scale are
// a projective ambiguity, not an error. The second return value is the RMS
// reprojection residual of the fit in pixels, near zero for noise-free input.
func Calibrate(world, image mat.Matrix) (*mat.Dense, float64, error) {
	wRows, n := world.Dims()
	iRows, iCols := image.Dims()
	if wRows != 3 || iRows != 2 {
		return nil, 0, errors.Errorf("calibration: want 3xN world and 2xN image points, have %dx%d and %dx%d",
			wRows, n, iRows, iCols)
	}
	if iCols != n {
		return nil, 0, errors.Wrapf(ErrInsufficientPoints, "%d world points but %d image points", n, iCols)
	}
	if n < 6 {
		return nil, 0, errors.Wrapf(ErrInsufficientPoints, "have %d", n)
	}

	homogeneous := ToHomogeneous(world)

	// Two rows per correspondence, from u*(c3.X) - c1.X = 0 and
	// v*(c3.X) - c2.X = 0, in the 12 unknown entries of the camera matrix.
	A := mat.NewDense(2*n, 12, nil)
	for j := 0; j < n; j++ {
		u, v := image.At(0, j), image.At(1, j)
		for k := 0; k < 4; k++ {
			x := homogeneous.At(k, j)
			A.Set(2*j, k, x)
			A.Set(2*j, 8+k, -u*x)
			A.Set(2*j+1, 4+k, x)
			A.Set(2*j+1, 8+k, -v*x)
		}
	}

	var svd mat.SVD
	ok := svd.Factorize(A, mat.SVDThin)
	if !ok {
		return nil, 0, errors.New("calibration: failed to factorize A")
	}

	s := svd.Values(nil)
	if s[0] == 0 || s[len(s)-2]/s[0] < rankGapTol {
		return nil, 0, errors.Wrapf(ErrDegenerateConfiguration,
			"singular values %g and %g are not well separated", s[len(s)-2], s[len(s)-1])
	}

	var matrixV mat.Dense
	svd.VTo(&matrixV)
	_, vCols := matrixV.Dims()
	solution := mat.Col(nil, vCols-1, &matrixV)

	camera := mat.NewDense(3, 4, solution)
	camera.Scale(1/mat.Norm(camera, 2), camera)

	residual, err := reprojectionResidual(camera, homogeneous, image)
	if err != nil {
		return nil, 0, err
	}
	return camera, residual, nil
}

// reprojectionResidual is the root-mean-square pixel distance between the
// observed image points and the projections of the homogeneous world points.
func reprojectionResidual(camera *mat.Dense, homogeneous *mat.Dense, image mat.Matrix) (float64, error) {
	_, n := image.Dims()
	var projected mat.Dense
	projected.Mul(camera, homogeneous)
	pixels, err := ToEuclidean(&projected)
	if err != nil {
		return 0, err
	}
	var sum float64
	for j := 0; j < n; j++ {
		du := pixels.At(0, j) - image.At(0, j)
		dv := pixels.At(1, j) - image.At(1, j)
		sum += du*du + dv*dv
	}
	return math.Sqrt(sum / float64(n)), nil
}
