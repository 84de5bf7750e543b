package ai

import (
	"fmt"
	"rice-lab/domain"
	"rice-lab/errors"

	"gonum.org/v1/gonum/mat"
)

// ClassTable maps class names to indices in the order they were first seen.
// It is built once per dataset and never modified afterwards.
type ClassTable struct {
	names []string
	index map[string]int
}

func newClassTable() *ClassTable {
	return &ClassTable{index: make(map[string]int)}
}

// assign returns the index of name, allocating the next one on first sight.
func (t *ClassTable) assign(name string) int {
	if idx, ok := t.index[name]; ok {
		return idx
	}
	idx := len(t.names)
	t.index[name] = idx
	t.names = append(t.names, name)
	return idx
}

// Index looks up the index of a class name.
func (t *ClassTable) Index(name string) (int, bool) {
	idx, ok := t.index[name]
	return idx, ok
}

// Name returns the class name of idx.
func (t *ClassTable) Name(idx int) string {
	return t.names[idx]
}

// Len is the number of distinct classes.
func (t *ClassTable) Len() int {
	return len(t.names)
}

// Names returns a copy of the class names in index order.
func (t *ClassTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Vectorized is the numeric form of a record sequence, rows aligned with Labels.
type Vectorized struct {
	Features *mat.Dense
	Labels   []int
	Classes  *ClassTable
}

// Vectorize turns records into an N×4 feature matrix and a class index per row.
// Row order is preserved, class indices depend on the order classes first appear.
func Vectorize(records []domain.Record) (Vectorized, error) {
	if len(records) == 0 {
		return Vectorized{}, fmt.Errorf("%w: no records to vectorize", errors.ErrData)
	}
	classes := newClassTable()
	features := mat.NewDense(len(records), domain.FeatureCount, nil)
	labels := make([]int, len(records))
	for i, r := range records {
		row := r.Features()
		features.SetRow(i, row[:])
		labels[i] = classes.assign(r.Class)
	}
	return Vectorized{Features: features, Labels: labels, Classes: classes}, nil
}
