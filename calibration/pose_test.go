package calibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPoseTransformRotatesThenTranslates(t *testing.T) {
	t.Parallel()

	// x' = R*x + t: a quarter turn about Z maps (1,0,0) to (0,1,0) before the
	// translation is added, not after.
	pose := NewPose(RotationZ(math.Pi/2), mat.NewVecDense(3, []float64{10, 0, 0}))
	point := mat.NewDense(3, 1, []float64{1, 0, 0})

	moved := pose.TransformPoints(point)
	assert.InDelta(t, 10, moved.At(0, 0), 1e-12)
	assert.InDelta(t, 1, moved.At(1, 0), 1e-12)
	assert.InDelta(t, 0, moved.At(2, 0), 1e-12)
}

func TestPoseMatrixHomogeneousForm(t *testing.T) {
	t.Parallel()

	pose := testPose()
	m := pose.Matrix()

	rows, cols := m.Dims()
	require.Equal(t, 4, rows)
	require.Equal(t, 4, cols)
	requireMatEqual(t, pose.Rotation, m.Slice(0, 3, 0, 3), 0)
	for i := 0; i < 3; i++ {
		assert.Equal(t, pose.Translation.AtVec(i), m.At(i, 3))
		assert.Equal(t, 0.0, m.At(3, i))
	}
	assert.Equal(t, 1.0, m.At(3, 3))
}

func TestPoseComposeMatchesMatrixProduct(t *testing.T) {
	t.Parallel()

	a := NewPose(RotationZ(0.7), mat.NewVecDense(3, []float64{1, 2, 3}))
	b := NewPose(RotationX(-0.4), mat.NewVecDense(3, []float64{-2, 0, 5}))

	composed := a.Compose(b)
	var want mat.Dense
	want.Mul(a.Matrix(), b.Matrix())
	requireMatEqual(t, &want, composed.Matrix(), 1e-12)
}

func TestPoseComposeIsNotCommutative(t *testing.T) {
	t.Parallel()

	a := NewPose(RotationZ(0.7), mat.NewVecDense(3, []float64{1, 2, 3}))
	b := NewPose(RotationX(-0.4), mat.NewVecDense(3, []float64{-2, 0, 5}))

	ab := a.Compose(b)
	ba := b.Compose(a)
	assert.False(t, mat.EqualApprox(ab.Matrix(), ba.Matrix(), 1e-9))
}

func TestPoseComposeAgreesWithSequentialTransform(t *testing.T) {
	t.Parallel()

	a := testPose()
	b := NewPose(RotationY(1.3), mat.NewVecDense(3, []float64{0.5, -1, 2}))
	point := mat.NewDense(3, 1, []float64{0.3, -0.7, 1.1})

	sequential := a.TransformPoints(b.TransformPoints(point))
	composed := a.Compose(b).TransformPoints(point)
	requireMatEqual(t, sequential, composed, 1e-12)
}

func TestCameraCenterInvertsPose(t *testing.T) {
	t.Parallel()

	pose := testPose()
	center := pose.CameraCenter()

	point := mat.NewDense(3, 1, []float64{center.AtVec(0), center.AtVec(1), center.AtVec(2)})
	moved := pose.TransformPoints(point)
	requireMatEqual(t, mat.NewDense(3, 1, nil), moved, 1e-12)
}

func TestIdentityPose(t *testing.T) {
	t.Parallel()

	point := mat.NewDense(3, 1, []float64{4, -5, 6})
	moved := IdentityPose().TransformPoints(point)
	requireMatEqual(t, point, moved, 0)
}
