package calibration

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// homogeneousScaleTol bounds how small a homogeneous scale coordinate may be
// before division is refused.
const homogeneousScaleTol = 1e-12

func FormatMatrixPrint(matrix mat.Matrix) fmt.Formatter {
	return mat.Formatted(matrix, mat.Prefix("    "), mat.Squeeze())
}

func roundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func Degrees2Rad(deg float64) float64 {
	res := deg * math.Pi / 180
	return roundFloat(res, 10)
}

func Rad2Degrees(rad float64) float64 {
	res := rad * 180 / math.Pi
	return roundFloat(res, 10)
}

// ToHomogeneous appends a row of ones to a d x N matrix of column points.
func ToHomogeneous(points mat.Matrix) *mat.Dense {
	d, n := points.Dims()
	homogeneous := mat.NewDense(d+1, n, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < n; j++ {
			homogeneous.Set(i, j, points.At(i, j))
		}
	}
	for j := 0; j < n; j++ {
		homogeneous.Set(d, j, 1)
	}
	return homogeneous
}

// ToEuclidean divides each column of a d x N homogeneous point matrix by its
// last coordinate and drops that coordinate. Fails with ErrDegenerateScale if
// any column has a near-zero scale.
func ToEuclidean(points mat.Matrix) (*mat.Dense, error) {
	d, n := points.Dims()
	if d < 2 {
		return nil, errors.Errorf("calibration: homogeneous points need at least 2 rows, have %d", d)
	}
	euclidean := mat.NewDense(d-1, n, nil)
	for j := 0; j < n; j++ {
		w := points.At(d-1, j)
		if math.Abs(w) <= homogeneousScaleTol {
			return nil, errors.Wrapf(ErrDegenerateScale, "column %d has scale %g", j, w)
		}
		for i := 0; i < d-1; i++ {
			euclidean.Set(i, j, points.At(i, j)/w)
		}
	}
	return euclidean, nil
}

func scaleHomogeneousPoint(point mat.Vector) (mat.Vector, error) {
	w := point.AtVec(point.Len() - 1)
	if math.Abs(w) <= homogeneousScaleTol {
		return nil, errors.Wrapf(ErrDegenerateScale, "scale %g", w)
	}
	var vector mat.VecDense
	vector.ScaleVec(1/w, point)
	return &vector, nil
}
