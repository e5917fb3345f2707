package qc

import (
	"container/heap"
	"sort"
)

// TopK retains the K largest values observed, in a fixed-capacity
// min-heap whose root is the current eviction threshold. A value equal
// to the root does not evict it, so the first-seen value keeps the
// slot. Observe is O(log K); memory is O(K) regardless of input size.
type TopK struct {
	k int
	h minHeap
}

// NewTopK returns a selector retaining the k largest values. k <= 0
// retains nothing.
func NewTopK(k int) *TopK {
	t := &TopK{k: k}
	if k > 0 {
		t.h = make(minHeap, 0, k)
	}
	return t
}

// Observe offers one value.
func (t *TopK) Observe(v float64) {
	if t.k <= 0 {
		return
	}
	if len(t.h) < t.k {
		heap.Push(&t.h, v)
		return
	}
	if v > t.h[0] {
		t.h[0] = v
		heap.Fix(&t.h, 0)
	}
}

// Top returns the retained values in descending order.
func (t *TopK) Top() []float64 {
	out := make([]float64, len(t.h))
	copy(out, t.h)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

type minHeap []float64

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(float64)) }

func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
