package calibration

import "errors"

var (
	// ErrInsufficientPoints reports a calibration attempt with too few point
	// correspondences to constrain the camera matrix.
	ErrInsufficientPoints = errors.New("calibration: need at least 6 point correspondences")

	// ErrDegenerateConfiguration reports input points that leave the linear
	// system rank deficient (coplanar or collinear targets).
	ErrDegenerateConfiguration = errors.New("calibration: degenerate point configuration")

	// ErrSingularMatrix reports a camera matrix whose left 3x3 block cannot be
	// factored into intrinsics and a rotation.
	ErrSingularMatrix = errors.New("calibration: singular camera matrix block")

	// ErrSingularHomography reports a ground-plane homography with no inverse.
	ErrSingularHomography = errors.New("calibration: singular ground homography")

	// ErrDegenerateScale reports a homogeneous point whose scale coordinate is
	// too close to zero to divide by.
	ErrDegenerateScale = errors.New("calibration: homogeneous point has near-zero scale")
)
