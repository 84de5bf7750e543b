package ai

import (
	"fmt"
	"math"
	"math/rand"
	"rice-lab/domain"
	"rice-lab/errors"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"
)

// Subset is a slice of the dataset with feature and target rows kept paired.
type Subset struct {
	Features *mat.Dense
	Targets  *mat.Dense
}

// Rows is the number of samples in the subset.
func (s Subset) Rows() int {
	if s.Features == nil {
		return 0
	}
	r, _ := s.Features.Dims()
	return r
}

// Split cuts the rows into train and test at ratio, the first ceil(N·ratio) rows train.
// When perm is given rows are taken in perm order, otherwise in dataset order.
// A split leaving no test row is rejected since nothing could be evaluated.
func Split(features, targets *mat.Dense, ratio float64, perm []int) (train, test Subset, err error) {
	n, _ := features.Dims()
	if tn, _ := targets.Dims(); tn != n {
		return Subset{}, Subset{}, fmt.Errorf("%w: %d feature rows but %d target rows", errors.ErrContract, n, tn)
	}
	if perm == nil {
		perm = lo.Range(n)
	}
	if len(perm) != n {
		return Subset{}, Subset{}, fmt.Errorf("%w: permutation covers %d of %d rows", errors.ErrContract, len(perm), n)
	}
	cut := int(math.Ceil(float64(n) * ratio))
	if cut >= n {
		return Subset{}, Subset{}, fmt.Errorf("%w: %d rows leave no test row at ratio %.2f", errors.ErrData, n, ratio)
	}
	if cut == 0 {
		return Subset{}, Subset{}, fmt.Errorf("%w: %d rows leave no train row at ratio %.2f", errors.ErrData, n, ratio)
	}
	return subset(features, targets, perm[:cut]), subset(features, targets, perm[cut:]), nil
}

func subset(features, targets *mat.Dense, rows []int) Subset {
	_, fc := features.Dims()
	_, tc := targets.Dims()
	f := mat.NewDense(len(rows), fc, nil)
	t := mat.NewDense(len(rows), tc, nil)
	for i, src := range rows {
		f.SetRow(i, mat.Row(nil, src, features))
		t.SetRow(i, mat.Row(nil, src, targets))
	}
	return Subset{Features: f, Targets: t}
}

// Evaluation holds per row outcomes on a held out subset.
type Evaluation struct {
	Predicted []int
	Actual    []int
	Accuracy  float64
	MSE       float64
}

// Evaluate predicts every test row and scores it against the decoded targets.
// MSE is taken over raw class indices, treating them as ordinal values.
func Evaluate(net *Network, test Subset) (Evaluation, error) {
	rows := test.Rows()
	if rows == 0 {
		return Evaluation{}, fmt.Errorf("%w: nothing to evaluate", errors.ErrData)
	}
	eval := Evaluation{
		Predicted: make([]int, rows),
		Actual:    make([]int, rows),
	}
	correct, squared := 0, 0.0
	for i := 0; i < rows; i++ {
		p := net.PredictClass(test.Features.RowView(i))
		a := Argmax(test.Targets.RowView(i))
		eval.Predicted[i], eval.Actual[i] = p, a
		if p == a {
			correct++
		}
		d := float64(p - a)
		squared += d * d
	}
	eval.Accuracy = float64(correct) / float64(rows)
	eval.MSE = squared / float64(rows)
	return eval, nil
}

// TrainAndEvaluate vectorizes records, trains a fresh network on the train split
// and scores it on the test split. Params are expected to be validated by the caller.
func TrainAndEvaluate(records []domain.Record, params domain.TrainingParams) (domain.Result, error) {
	vectorized, err := Vectorize(records)
	if err != nil {
		return domain.Result{}, err
	}
	targets, err := OneHot(vectorized.Labels, vectorized.Classes.Len())
	if err != nil {
		return domain.Result{}, err
	}

	rng := newRand(params.Seed)
	var perm []int
	if params.Shuffle {
		perm = rng.Perm(len(records))
	}
	ratio := params.TrainRatio
	if ratio == 0 {
		ratio = domain.DefaultTrainRatio
	}
	train, test, err := Split(vectorized.Features, targets, ratio, perm)
	if err != nil {
		return domain.Result{}, err
	}

	net := NewNetwork(domain.FeatureCount, vectorized.Classes.Len(), params.LearningRate, rng)
	if err = net.Train(train.Features, train.Targets, params.Epochs); err != nil {
		return domain.Result{}, err
	}
	eval, err := Evaluate(net, test)
	if err != nil {
		return domain.Result{}, err
	}

	toFloat := func(i int, _ int) float64 { return float64(i) }
	return domain.Result{
		Predictions: lo.Map(eval.Predicted, toFloat),
		Actuals:     lo.Map(eval.Actual, toFloat),
		MSE:         eval.MSE,
		Accuracy:    eval.Accuracy,
		ClassNames:  vectorized.Classes.Names(),
		TrainRows:   train.Rows(),
		TestRows:    test.Rows(),
	}, nil
}

func newRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(*seed))
}
