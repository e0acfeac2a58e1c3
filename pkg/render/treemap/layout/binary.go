package layout

// tile assigns a region to each node with a balanced binary split over the
// prefix sums of their values.
func tile(nodes []*node, x0, y0, x1, y1 float64) {
	sums := make([]float64, len(nodes)+1)
	for i, n := range nodes {
		sums[i+1] = sums[i] + n.value
	}
	t := binaryTiler{nodes: nodes, sums: sums}
	t.partition(0, len(nodes), sums[len(nodes)], x0, y0, x1, y1)
}

type binaryTiler struct {
	nodes []*node
	sums  []float64
}

// partition places nodes[i:j], whose values add up to value, in the given
// region.
func (t binaryTiler) partition(i, j int, value, x0, y0, x1, y1 float64) {
	if i >= j-1 {
		n := t.nodes[i]
		n.x0, n.y0, n.x1, n.y1 = x0, y0, x1, y1
		return
	}

	offset := t.sums[i]
	target := value/2 + offset
	k, hi := i+1, j-1
	for k < hi {
		mid := int(uint(k+hi) >> 1)
		if t.sums[mid] < target {
			k = mid + 1
		} else {
			hi = mid
		}
	}
	if target-t.sums[k-1] < t.sums[k]-target && i+1 < k {
		k--
	}

	left := t.sums[k] - offset
	right := value - left

	if x1-x0 > y1-y0 {
		xk := x1
		if value != 0 {
			xk = (x0*right + x1*left) / value
		}
		t.partition(i, k, left, x0, y0, xk, y1)
		t.partition(k, j, right, xk, y0, x1, y1)
		return
	}

	yk := y1
	if value != 0 {
		yk = (y0*right + y1*left) / value
	}
	t.partition(i, k, left, x0, y0, x1, yk)
	t.partition(k, j, right, x0, yk, x1, y1)
}
