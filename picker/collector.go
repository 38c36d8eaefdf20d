// Package picker holds the UI-side point collector. It gathers clicked pixel
// coordinates for a calibration target and hands them to the numeric core as
// a plain matrix once complete; it never calls back into the core.
package picker

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Collector accumulates clicked pixels for a target with a known number of
// markers. Click order must follow the marker order, first to last.
type Collector struct {
	expected int
	points   []r2.Point
}

func NewCollector(expected int) *Collector {
	return &Collector{expected: expected}
}

// AddPoint records the next clicked pixel. Fails once the target is complete.
func (c *Collector) AddPoint(pt r2.Point) error {
	if c.IsComplete() {
		return errors.Errorf("picker: already have all %d points", c.expected)
	}
	c.points = append(c.points, pt)
	return nil
}

// UndoLast removes the most recent click. Reports whether there was one.
func (c *Collector) UndoLast() bool {
	if len(c.points) == 0 {
		return false
	}
	c.points = c.points[:len(c.points)-1]
	return true
}

func (c *Collector) Count() int {
	return len(c.points)
}

func (c *Collector) IsComplete() bool {
	return len(c.points) == c.expected
}

// Points returns the collected pixels as a 2xN matrix. Fails until the
// collector is complete.
func (c *Collector) Points() (*mat.Dense, error) {
	if !c.IsComplete() {
		return nil, errors.Errorf("picker: have %d of %d points", len(c.points), c.expected)
	}
	points := mat.NewDense(2, c.expected, nil)
	for j, pt := range c.points {
		points.Set(0, j, pt.X)
		points.Set(1, j, pt.Y)
	}
	return points, nil
}
