package imports

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

type Shape struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MatrixInfo struct {
	Shape Shape     `json:"shape"`
	Data  []float64 `json:"data"`
}

// Rig is the JSON calibration-rig file: the known 3D coordinates of the
// target markers and the pixel coordinates clicked for them, column per
// marker, in matching order.
type Rig struct {
	Name        string     `json:"name"`
	WorldPoints MatrixInfo `json:"worldPoints"`
	ImagePoints MatrixInfo `json:"imagePoints"`
}

func (m MatrixInfo) Dense() (*mat.Dense, error) {
	if m.Shape.Row <= 0 || m.Shape.Col <= 0 {
		return nil, errors.Errorf("imports: invalid shape %dx%d", m.Shape.Row, m.Shape.Col)
	}
	if len(m.Data) != m.Shape.Row*m.Shape.Col {
		return nil, errors.Errorf("imports: shape %dx%d needs %d values, have %d",
			m.Shape.Row, m.Shape.Col, m.Shape.Row*m.Shape.Col, len(m.Data))
	}
	return mat.NewDense(m.Shape.Row, m.Shape.Col, m.Data), nil
}

// ReadRig loads a rig file and returns the 3xN world points and the 2xN image
// points, validating the correspondence invariant between them.
func ReadRig(path string) (*mat.Dense, *mat.Dense, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, nil, err
	}

	var rig Rig
	if err := json.Unmarshal(byteValue, &rig); err != nil {
		return nil, nil, errors.Wrapf(err, "imports: parsing %s", path)
	}

	world, err := rig.WorldPoints.Dense()
	if err != nil {
		return nil, nil, err
	}
	image, err := rig.ImagePoints.Dense()
	if err != nil {
		return nil, nil, err
	}

	if rows, _ := world.Dims(); rows != 3 {
		return nil, nil, errors.Errorf("imports: world points must be 3xN, have %d rows", rows)
	}
	if rows, _ := image.Dims(); rows != 2 {
		return nil, nil, errors.Errorf("imports: image points must be 2xN, have %d rows", rows)
	}
	_, worldN := world.Dims()
	_, imageN := image.Dims()
	if worldN != imageN {
		return nil, nil, errors.Errorf("imports: %d world points but %d image points", worldN, imageN)
	}
	return world, image, nil
}
