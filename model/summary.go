package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summarize reduces per-draw coefficient vectors to a posterior mean and
// empirical quantiles per node. Draws must share one length.
func Summarize(draws [][]float64, probs []float64) (*FieldPosterior, error) {
	if len(draws) == 0 {
		return nil, fmt.Errorf("no draws to summarize")
	}
	n := len(draws[0])
	for i, d := range draws {
		if len(d) != n {
			return nil, fmt.Errorf("draw %d has length %d, want %d", i, len(d), n)
		}
	}
	fp := &FieldPosterior{
		Mean:      make([]float64, n),
		Quantiles: make(map[float64][]float64, len(probs)),
		Draws:     draws,
	}
	for _, p := range probs {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("quantile probability %g outside [0,1]", p)
		}
		fp.Quantiles[p] = make([]float64, n)
	}
	col := make([]float64, len(draws))
	for j := 0; j < n; j++ {
		for i, d := range draws {
			col[i] = d[j]
		}
		fp.Mean[j] = stat.Mean(col, nil)
		sort.Float64s(col)
		for _, p := range probs {
			fp.Quantiles[p][j] = stat.Quantile(p, stat.Empirical, col, nil)
		}
	}
	return fp, nil
}
