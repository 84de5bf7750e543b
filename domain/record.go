// Package domain contains the core concepts of the rice classifier.
// Records are immutable once parsed and are never retained after vectorization.
package domain

import (
	"fmt"
	"math"
	"rice-lab/errors"
	"strconv"
	"strings"
)

// FeatureCount is the width of every feature row.
const FeatureCount = 4

// FeatureNames lists the engineered columns in the order they appear in a feature row.
var FeatureNames = [FeatureCount]string{"Solidity", "AspectRatio", "Roundness", "Compactness"}

// Record is one ingested grain: four geometric descriptors and its raw class string.
type Record struct {
	Solidity    float64
	AspectRatio float64
	Roundness   float64
	Compactness float64
	Class       string
}

// Features returns the descriptors in FeatureNames order.
func (r Record) Features() [FeatureCount]float64 {
	return [FeatureCount]float64{r.Solidity, r.AspectRatio, r.Roundness, r.Compactness}
}

// ParseRecord builds a Record from five raw fields, four numeric descriptors followed by the class.
func ParseRecord(fields []string) (Record, error) {
	if len(fields) != FeatureCount+1 {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d", errors.ErrParse, FeatureCount+1, len(fields))
	}
	var values [FeatureCount]float64
	for i := 0; i < FeatureCount; i++ {
		raw := strings.TrimSpace(fields[i])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: column %s: %q is not a number", errors.ErrParse, FeatureNames[i], raw)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, fmt.Errorf("%w: column %s: %q is not a finite number", errors.ErrParse, FeatureNames[i], raw)
		}
		values[i] = v
	}
	return Record{
		Solidity:    values[0],
		AspectRatio: values[1],
		Roundness:   values[2],
		Compactness: values[3],
		Class:       fields[FeatureCount],
	}, nil
}
