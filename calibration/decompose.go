package calibration

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Decompose factors a 3x4 camera matrix, given up to an arbitrary nonzero
// scale, into a camera model: intrinsics K (upper triangular, positive
// diagonal, K[2,2] normalized to 1) and an extrinsic pose (R, t) with
// det(R) = +1, such that K*[R|t] is a scalar multiple of the input.
//
// Of the sign-equivalent factorizations, the convention here flips the
// K-column/R-row pairs in diagonal order 0,1,2 until the K diagonal is
// positive, then negates R together with the fourth camera column if the
// rotation is improper.
func Decompose(camera mat.Matrix) (*Camera, error) {
	rows, cols := camera.Dims()
	if rows != 3 || cols != 4 {
		return nil, errors.Errorf("calibration: camera matrix must be 3x4, have %dx%d", rows, cols)
	}

	block := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			block.Set(i, j, camera.At(i, j))
		}
	}
	c4 := mat.NewVecDense(3, []float64{camera.At(0, 3), camera.At(1, 3), camera.At(2, 3)})

	norm := mat.Norm(block, 2)
	if math.Abs(mat.Det(block)) <= 1e-12*norm*norm*norm {
		return nil, errors.Wrap(ErrSingularMatrix, "left 3x3 block is rank deficient")
	}

	intrinsics, rotation := rq(block)

	// Make the K diagonal positive by flipping matching K columns and R rows.
	for i := 0; i < 3; i++ {
		if intrinsics.At(i, i) < 0 {
			for k := 0; k < 3; k++ {
				intrinsics.Set(k, i, -intrinsics.At(k, i))
				rotation.Set(i, k, -rotation.At(i, k))
			}
		}
	}

	// An improper rotation means the camera matrix was scaled negatively:
	// negate R and the fourth column together, leaving K untouched.
	if mat.Det(rotation) < 0 {
		rotation.Scale(-1, rotation)
		c4.ScaleVec(-1, c4)
	}

	lambda := 1 / intrinsics.At(2, 2)
	intrinsics.Scale(lambda, intrinsics)

	var inverse mat.Dense
	if err := inverse.Inverse(intrinsics); err != nil {
		return nil, errors.Wrap(ErrSingularMatrix, err.Error())
	}
	c4.ScaleVec(lambda, c4)
	var translation mat.VecDense
	translation.MulVec(&inverse, c4)

	return &Camera{
		Intrinsics: intrinsics,
		Pose:       Pose{Rotation: rotation, Translation: &translation},
	}, nil
}

// rq factors a 3x3 matrix into an upper-triangular K and an orthogonal R with
// m = K*R, using the QR decomposition of the row-reversed transpose.
func rq(m *mat.Dense) (*mat.Dense, *mat.Dense) {
	reverse := mat.NewDense(3, 3, []float64{
		0, 0, 1,
		0, 1, 0,
		1, 0, 0,
	})

	var reversed mat.Dense
	reversed.Mul(reverse, m)

	var qr mat.QR
	qr.Factorize(reversed.T())
	var q, r mat.Dense
	qr.QTo(&q)
	qr.RTo(&r)

	// m = (P * R^T * P) * (P * Q^T) with P the row reversal.
	var left mat.Dense
	left.Mul(reverse, r.T())
	var upper mat.Dense
	upper.Mul(&left, reverse)

	var rotation mat.Dense
	rotation.Mul(reverse, q.T())

	return &upper, &rotation
}
