package classifier

import (
	"math"
)

const (
	MultiClassMultinomial = "multinomial"
	MultiClassOVR         = "ovr"
)

// TrainOptions configures logistic regression fitting.
type TrainOptions struct {
	MaxIter    int
	Tolerance  float64
	C          float64
	MultiClass string
}

// TrainStats reports how fitting ended.
type TrainStats struct {
	Iterations int
	Loss       float64
	Converged  bool
}

// Model is an L2-regularized logistic regression over sparse features.
// Weights and intercepts are never mutated after training.
type Model struct {
	multiClass string
	weights    [][]float64
	intercepts []float64
}

// TrainModel fits a model by full-batch gradient descent from zero weights.
// y holds class indices in [0, numClasses).
func TrainModel(x []SparseVector, y []int, numClasses, numFeatures int, opts TrainOptions) (*Model, TrainStats) {
	if opts.C <= 0 {
		opts.C = 1
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = 1000
	}

	m := &Model{
		multiClass: opts.MultiClass,
		weights:    make([][]float64, numClasses),
		intercepts: make([]float64, numClasses),
	}
	for k := range m.weights {
		m.weights[k] = make([]float64, numFeatures)
	}

	var lipschitz float64
	for _, xi := range x {
		lipschitz += xi.SquaredNorm() + 1
	}
	step := 1 / (0.5*opts.C*lipschitz + 1)

	gradW := make([][]float64, numClasses)
	for k := range gradW {
		gradW[k] = make([]float64, numFeatures)
	}
	gradB := make([]float64, numClasses)
	residual := make([]float64, numClasses)

	var stats TrainStats
	for iter := 1; iter <= opts.MaxIter; iter++ {
		for k := range gradW {
			copy(gradW[k], m.weights[k])
			gradB[k] = 0
		}

		var loss float64
		for i, xi := range x {
			loss += m.residuals(xi, y[i], residual)
			for k, r := range residual {
				r *= opts.C
				gradB[k] += r
				for j, idx := range xi.Indices {
					gradW[k][idx] += r * xi.Values[j]
				}
			}
		}
		loss *= opts.C
		for k := range m.weights {
			for _, w := range m.weights[k] {
				loss += 0.5 * w * w
			}
		}

		maxGrad := 0.0
		for k := range gradW {
			maxGrad = math.Max(maxGrad, math.Abs(gradB[k]))
			for _, g := range gradW[k] {
				maxGrad = math.Max(maxGrad, math.Abs(g))
			}
		}

		stats.Iterations = iter
		stats.Loss = loss
		if maxGrad < opts.Tolerance {
			stats.Converged = true
			break
		}

		for k := range m.weights {
			m.intercepts[k] -= step * gradB[k]
			for j := range m.weights[k] {
				m.weights[k][j] -= step * gradW[k][j]
			}
		}
	}

	return m, stats
}

// residuals writes d(loss)/d(score) for each class into out and returns the
// unscaled data loss of one example.
func (m *Model) residuals(x SparseVector, label int, out []float64) float64 {
	scores := m.scores(x)

	if m.multiClass == MultiClassOVR {
		var loss float64
		for k, s := range scores {
			target := 0.0
			if k == label {
				target = 1
			}
			out[k] = sigmoid(s) - target
			loss += logLoss(s, target)
		}
		return loss
	}

	probs := softmax(scores)
	for k, p := range probs {
		out[k] = p
	}
	out[label] -= 1
	return -math.Log(math.Max(probs[label], 1e-300))
}

func (m *Model) scores(x SparseVector) []float64 {
	scores := make([]float64, len(m.weights))
	for k, w := range m.weights {
		scores[k] = x.Dot(w) + m.intercepts[k]
	}
	return scores
}

// Probabilities returns one probability per class, summing to 1.
func (m *Model) Probabilities(x SparseVector) []float64 {
	scores := m.scores(x)
	if m.multiClass != MultiClassOVR {
		return softmax(scores)
	}

	probs := make([]float64, len(scores))
	var sum float64
	for k, s := range scores {
		probs[k] = sigmoid(s)
		sum += probs[k]
	}
	for k := range probs {
		probs[k] /= sum
	}
	return probs
}

func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		maxScore = math.Max(maxScore, s)
	}
	out := make([]float64, len(scores))
	var sum float64
	for k, s := range scores {
		out[k] = math.Exp(s - maxScore)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}
	return out
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logLoss is the binary cross-entropy of score z against target t in {0, 1}.
func logLoss(z, t float64) float64 {
	if t == 0 {
		z = -z
	}
	// log(1 + exp(-z))
	if z > 0 {
		return math.Log1p(math.Exp(-z))
	}
	return -z + math.Log1p(math.Exp(z))
}
