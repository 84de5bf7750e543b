package ai

import (
	"fmt"
	"rice-lab/errors"

	"gonum.org/v1/gonum/mat"
)

// OneHot expands class indices into an N×k target matrix with a single 1 per row.
// An index outside [0,k) is a caller bug and is reported as ErrContract.
func OneHot(labels []int, k int) (*mat.Dense, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: class count must be positive, got %d", errors.ErrContract, k)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no labels to encode", errors.ErrData)
	}
	targets := mat.NewDense(len(labels), k, nil)
	for i, label := range labels {
		if label < 0 || label >= k {
			return nil, fmt.Errorf("%w: row %d has class index %d, want [0,%d)", errors.ErrContract, i, label, k)
		}
		targets.Set(i, label, 1)
	}
	return targets, nil
}
