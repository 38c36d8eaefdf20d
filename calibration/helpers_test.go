package calibration

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// testIntrinsics is a plausible VGA-ish pinhole K with K[2,2] = 1.
func testIntrinsics() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		820, 0, 325.5,
		0, 815, 238.25,
		0, 0, 1,
	})
}

func testPose() Pose {
	var rotation mat.Dense
	rotation.Mul(RotationX(0.15), RotationY(-0.1))
	var full mat.Dense
	full.Mul(&rotation, RotationZ(0.3))
	return NewPose(&full, mat.NewVecDense(3, []float64{0.2, -0.1, 3}))
}

func testCamera() *Camera {
	return NewCamera(testIntrinsics(), testPose())
}

// testWorldPoints spans two heights so the target is not coplanar.
func testWorldPoints() *mat.Dense {
	points := [][]float64{
		{-0.6, -0.5, 0},
		{0.6, -0.5, 0},
		{0.6, 0.5, 0},
		{-0.6, 0.5, 0},
		{-0.4, -0.3, 0.35},
		{0.4, -0.3, 0.35},
		{0.4, 0.3, 0.35},
		{-0.4, 0.3, 0.35},
		{0, 0, 0.7},
		{0.15, -0.2, 0.5},
	}
	world := mat.NewDense(3, len(points), nil)
	for j, pt := range points {
		world.Set(0, j, pt[0])
		world.Set(1, j, pt[1])
		world.Set(2, j, pt[2])
	}
	return world
}

func requireMatEqual(t *testing.T, want, got mat.Matrix, tol float64) {
	t.Helper()
	require.True(t, mat.EqualApprox(want, got, tol),
		"matrices differ beyond %g:\nwant =\n%v\ngot =\n%v", tol, mat.Formatted(want), mat.Formatted(got))
}
