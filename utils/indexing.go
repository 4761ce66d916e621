package utils

type Index []int

func NewRange(rmin, rmax int) (r Index) {
	// Inclusive of rmin and rmax
	r = make(Index, rmax-rmin+1)
	var ind int
	for i := rmin; i <= rmax; i++ {
		r[ind] = i
		ind++
	}
	return
}

func (I Index) Contains(v int) bool {
	for _, val := range I {
		if val == v {
			return true
		}
	}
	return false
}

func (I Index) Apply(f func(val int) int) (R Index) {
	R = make(Index, len(I))
	for i, val := range I {
		R[i] = f(val)
	}
	return
}

func (I Index) Copy() (R Index) {
	R = make(Index, len(I))
	copy(R, I)
	return
}
