package domain

// scriptedRand replays fixed values; once exhausted it returns 0.
type scriptedRand struct {
    ints   []int
    floats []float64
}

func (r *scriptedRand) IntN(n int) int {
    if len(r.ints) == 0 {
        return 0
    }
    v := r.ints[0]
    r.ints = r.ints[1:]
    return v % n
}

func (r *scriptedRand) Float64() float64 {
    if len(r.floats) == 0 {
        return 0
    }
    v := r.floats[0]
    r.floats = r.floats[1:]
    return v
}
