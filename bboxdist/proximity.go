package bboxdist

// Closest returns the nearest object to the i-th one.
// ok is false when the matrix has fewer than two objects.
func (m *Matrix) Closest(i int) (j int, distance float64, ok bool) {
	j = -1
	for k := 0; k < m.n; k++ {
		if k == i {
			continue
		}
		d := m.At(i, k)
		if j < 0 || d < distance {
			j = k
			distance = d
		}
	}
	return j, distance, j >= 0
}

// PairsWithin returns unordered pairs (I < J) closer than threshold, nearest first.
// Useful for spacing checks: every returned pair violates the minimum spacing.
func (m *Matrix) PairsWithin(threshold float64) []PairEntry {
	h := make(distanceHeap, 0)
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			d := m.At(i, j)
			if d < threshold {
				h.Push(PairEntry{I: i, J: j, Distance: d})
			}
		}
	}
	pairs := make([]PairEntry, 0, h.Len())
	for h.Len() > 0 {
		pairs = append(pairs, h.Pop())
	}
	return pairs
}

// FirstViolation returns the first frame where i-th and j-th objects are closer than threshold
func (tensor *Tensor) FirstViolation(i, j int, threshold float64) (int, bool) {
	for t, frame := range tensor.frames {
		if frame.At(i, j) < threshold {
			return t, true
		}
	}
	return -1, false
}
