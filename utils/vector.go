package utils

import (
	"gonum.org/v1/gonum/mat"
)

func NewVecConst(N int, val float64) (V *mat.VecDense) {
	var (
		x = make([]float64, N)
	)
	for i := 0; i < N; i++ {
		x[i] = val
	}
	V = mat.NewVecDense(N, x)
	return
}

func VecGetF64(v mat.Vector) (r []float64) {
	r = make([]float64, v.Len())
	for i := range r {
		r[i] = v.AtVec(i)
	}
	return
}
