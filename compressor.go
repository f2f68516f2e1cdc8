package watrix

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Compressor maps values of an ordered type onto dense ranks [0, Size()).
//
// Values are staged with Add; the first query sorts and deduplicates them,
// after which Add panics.
type Compressor[T any] struct {
	vals  []T
	cmp   func(a, b T) int
	built bool
}

// NewCompressor returns an empty Compressor using the natural order of T.
func NewCompressor[T constraints.Ordered]() *Compressor[T] {
	return NewCompressorFunc(compareOrdered[T])
}

// NewCompressorFunc returns an empty Compressor ordered by cmp, which must
// return a negative number when a < b, zero when a == b and a positive
// number when a > b.
func NewCompressorFunc[T any](cmp func(a, b T) int) *Compressor[T] {
	return &Compressor[T]{cmp: cmp}
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Add stages xs for compression.
func (c *Compressor[T]) Add(xs ...T) {
	if c.built {
		violation("Compressor.Add", ErrCompressorBuilt, "cannot add %d values after the first query", len(xs))
	}
	c.vals = append(c.vals, xs...)
}

func (c *Compressor[T]) build() {
	if c.built {
		return
	}
	c.built = true
	slices.SortFunc(c.vals, c.cmp)
	c.vals = slices.CompactFunc(c.vals, func(a, b T) bool { return c.cmp(a, b) == 0 })
	c.vals = slices.Clip(c.vals)
}

// Size returns the number of distinct values.
func (c *Compressor[T]) Size() int {
	c.build()
	return len(c.vals)
}

// Ord returns the number of distinct values less than x; when x was added
// this is its rank.
func (c *Compressor[T]) Ord(x T) int {
	c.build()
	i, _ := slices.BinarySearchFunc(c.vals, x, c.cmp)
	return i
}

// UpperBound returns the number of distinct values less than or equal to x.
func (c *Compressor[T]) UpperBound(x T) int {
	c.build()
	i, found := slices.BinarySearchFunc(c.vals, x, c.cmp)
	if found {
		i++
	}
	return i
}

// Exist reports whether x was added.
func (c *Compressor[T]) Exist(x T) bool {
	c.build()
	_, found := slices.BinarySearchFunc(c.vals, x, c.cmp)
	return found
}

// Find returns the rank of x and whether x was added.
func (c *Compressor[T]) Find(x T) (int, bool) {
	c.build()
	return slices.BinarySearchFunc(c.vals, x, c.cmp)
}

// Kth returns the k-th smallest distinct value.
func (c *Compressor[T]) Kth(k int) T {
	c.build()
	if k < 0 || k >= len(c.vals) {
		violation("Compressor.Kth", ErrOutOfRange, "rank %d out of range [0, %d)", k, len(c.vals))
	}
	return c.vals[k]
}

// Values returns the sorted distinct values. The slice must not be modified.
func (c *Compressor[T]) Values() []T {
	c.build()
	return c.vals
}
