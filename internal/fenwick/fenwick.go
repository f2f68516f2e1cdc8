// Package fenwick implements a Fenwick (binary indexed) tree over an
// additive group: point add and range sum in O(log n).
package fenwick

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types a Tree can sum.
type Number interface {
	constraints.Integer | constraints.Float
}

// Tree holds partial sums; data[i] covers (i - lowbit(i), i], 1-indexed.
type Tree[S Number] struct {
	data []S
}

// New returns a Tree of n zeros.
func New[S Number](n int) *Tree[S] {
	return &Tree[S]{data: make([]S, n+1)}
}

// NewFrom returns a Tree holding xs, built in O(n).
func NewFrom[S Number](xs []S) *Tree[S] {
	t := New[S](len(xs))
	copy(t.data[1:], xs)
	n := len(xs)
	for i := 1; i <= n; i++ {
		if next := i + i&(-i); next <= n {
			t.data[next] += t.data[i]
		}
	}
	return t
}

// Len returns the number of elements.
func (t *Tree[S]) Len() int {
	return len(t.data) - 1
}

// Add adds x to element k.
func (t *Tree[S]) Add(k int, x S) {
	if k < 0 || k >= t.Len() {
		panic(fmt.Sprintf("fenwick: index %d out of range [0, %d)", k, t.Len()))
	}
	for i := k + 1; i < len(t.data); i += i & (-i) {
		t.data[i] += x
	}
}

// Prefix returns the sum of elements [0, r).
func (t *Tree[S]) Prefix(r int) S {
	if r < 0 || r > t.Len() {
		panic(fmt.Sprintf("fenwick: prefix %d out of range [0, %d]", r, t.Len()))
	}
	var sum S
	for ; r > 0; r -= r & (-r) {
		sum += t.data[r]
	}
	return sum
}

// Sum returns the sum of elements [l, r).
func (t *Tree[S]) Sum(l, r int) S {
	if l > r {
		panic(fmt.Sprintf("fenwick: invalid range [%d, %d)", l, r))
	}
	return t.Prefix(r) - t.Prefix(l)
}
