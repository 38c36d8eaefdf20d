package calibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestToHomogeneousAppendsOnes(t *testing.T) {
	t.Parallel()

	points := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	homogeneous := ToHomogeneous(points)

	rows, cols := homogeneous.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 3, cols)
	for j := 0; j < 3; j++ {
		assert.Equal(t, points.At(0, j), homogeneous.At(0, j))
		assert.Equal(t, points.At(1, j), homogeneous.At(1, j))
		assert.Equal(t, 1.0, homogeneous.At(2, j))
	}
}

func TestToEuclideanRoundTrip(t *testing.T) {
	t.Parallel()

	points := mat.NewDense(3, 4, []float64{
		0.5, -2, 7, 0,
		1.5, 3, -4, 2,
		-9, 0.25, 11, 1,
	})
	back, err := ToEuclidean(ToHomogeneous(points))
	require.NoError(t, err)
	requireMatEqual(t, points, back, 1e-12)
}

func TestToEuclideanDividesByScale(t *testing.T) {
	t.Parallel()

	homogeneous := mat.NewDense(3, 2, []float64{
		2, -6,
		4, 9,
		2, 3,
	})
	euclidean, err := ToEuclidean(homogeneous)
	require.NoError(t, err)
	requireMatEqual(t, mat.NewDense(2, 2, []float64{1, -2, 2, 3}), euclidean, 1e-12)
}

func TestToEuclideanDegenerateScale(t *testing.T) {
	t.Parallel()

	homogeneous := mat.NewDense(3, 2, []float64{
		2, 1,
		4, 1,
		2, 1e-15,
	})
	_, err := ToEuclidean(homogeneous)
	require.ErrorIs(t, err, ErrDegenerateScale)
}

func TestScaleHomogeneousPoint(t *testing.T) {
	t.Parallel()

	scaled, err := scaleHomogeneousPoint(mat.NewVecDense(3, []float64{4, -2, 2}))
	require.NoError(t, err)
	assert.InDelta(t, 2, scaled.AtVec(0), 1e-12)
	assert.InDelta(t, -1, scaled.AtVec(1), 1e-12)
	assert.InDelta(t, 1, scaled.AtVec(2), 1e-12)

	_, err = scaleHomogeneousPoint(mat.NewVecDense(3, []float64{4, -2, 0}))
	require.ErrorIs(t, err, ErrDegenerateScale)
}

func TestAngleConversions(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, math.Pi, Degrees2Rad(180), 1e-9)
	assert.InDelta(t, 90, Rad2Degrees(math.Pi/2), 1e-9)
	assert.InDelta(t, -45, Rad2Degrees(Degrees2Rad(-45)), 1e-9)
}
