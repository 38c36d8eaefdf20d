package calibration

import (
	"gonum.org/v1/gonum/mat"
)

// Pose is a rigid transform mapping reference-frame points into the camera
// frame: x_cam = R*x + t.
type Pose struct {
	Rotation    *mat.Dense
	Translation *mat.VecDense
}

func NewPose(rotation *mat.Dense, translation *mat.VecDense) Pose {
	return Pose{Rotation: mat.DenseCopyOf(rotation), Translation: mat.VecDenseCopyOf(translation)}
}

// IdentityPose returns the pose that leaves points unchanged.
func IdentityPose() Pose {
	return Pose{
		Rotation:    mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
		Translation: mat.NewVecDense(3, nil),
	}
}

// Matrix returns the 4x4 homogeneous form [R t; 0 0 0 1].
func (p Pose) Matrix() *mat.Dense {
	homogeneous := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			homogeneous.Set(i, j, p.Rotation.At(i, j))
		}
		homogeneous.Set(i, 3, p.Translation.AtVec(i))
	}
	homogeneous.Set(3, 3, 1)
	return homogeneous
}

// Extrinsics returns the 3x4 block [R | t].
func (p Pose) Extrinsics() *mat.Dense {
	var extrinsics mat.Dense
	extrinsics.Augment(p.Rotation, p.Translation)
	return &extrinsics
}

// Compose returns the pose whose effect is other applied first, then p:
// Compose(p, other).Matrix() == p.Matrix() * other.Matrix(). Pose composition
// is not commutative.
func (p Pose) Compose(other Pose) Pose {
	var combined mat.Dense
	combined.Mul(p.Matrix(), other.Matrix())
	rotation := mat.DenseCopyOf(combined.Slice(0, 3, 0, 3))
	translation := mat.NewVecDense(3, []float64{combined.At(0, 3), combined.At(1, 3), combined.At(2, 3)})
	return Pose{Rotation: rotation, Translation: translation}
}

// TransformPoints maps a 3xN matrix of column points into the camera frame.
func (p Pose) TransformPoints(points mat.Matrix) *mat.Dense {
	_, n := points.Dims()
	var transformed mat.Dense
	transformed.Mul(p.Rotation, points)
	for j := 0; j < n; j++ {
		for i := 0; i < 3; i++ {
			transformed.Set(i, j, transformed.At(i, j)+p.Translation.AtVec(i))
		}
	}
	return &transformed
}

// CameraCenter returns the camera position expressed in the reference frame,
// -R^T * t.
func (p Pose) CameraCenter() *mat.VecDense {
	var center mat.VecDense
	center.MulVec(p.Rotation.T(), p.Translation)
	center.ScaleVec(-1, &center)
	return &center
}
