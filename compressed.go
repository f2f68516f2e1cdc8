package watrix

import "golang.org/x/exp/constraints"

// Compressed is a wavelet matrix over arbitrary ordered values. Values are
// replaced by their rank among the distinct values before indexing; queries
// translate arguments and results through the Compressor.
type Compressed[T any] struct {
	cmp *Compressor[T]
	wm  *WaveletMatrix
}

// NewCompressed builds a Compressed over vals using the natural order of T.
func NewCompressed[T constraints.Ordered](vals []T, opts ...Option) *Compressed[T] {
	return NewCompressedFuncWithCallback(vals, compareOrdered[T], nil, opts...)
}

// NewCompressedWithCallback is NewCompressed, calling f at every level of
// the underlying matrix build (see LevelFunc).
func NewCompressedWithCallback[T constraints.Ordered](vals []T, f LevelFunc, opts ...Option) *Compressed[T] {
	return NewCompressedFuncWithCallback(vals, compareOrdered[T], f, opts...)
}

// NewCompressedFunc builds a Compressed over vals ordered by cmp.
func NewCompressedFunc[T any](vals []T, cmp func(a, b T) int, opts ...Option) *Compressed[T] {
	return NewCompressedFuncWithCallback(vals, cmp, nil, opts...)
}

// NewCompressedFuncWithCallback builds a Compressed over vals ordered by
// cmp, calling f at every level of the underlying matrix build.
func NewCompressedFuncWithCallback[T any](vals []T, cmp func(a, b T) int, f LevelFunc, opts ...Option) *Compressed[T] {
	c := NewCompressorFunc(cmp)
	c.Add(vals...)
	ords := make([]uint64, len(vals))
	for i, v := range vals {
		ords[i] = uint64(c.Ord(v))
	}
	return &Compressed[T]{cmp: c, wm: NewWithCallback(ords, f, opts...)}
}

// Num returns the number of values.
func (wc *Compressed[T]) Num() uint64 {
	return wc.wm.Num()
}

// Compressor returns the value dictionary.
func (wc *Compressed[T]) Compressor() *Compressor[T] {
	return wc.cmp
}

// Matrix returns the underlying matrix over value ranks.
func (wc *Compressed[T]) Matrix() *WaveletMatrix {
	return wc.wm
}

// Lookup returns T[pos].
func (wc *Compressed[T]) Lookup(pos uint64) T {
	return wc.cmp.Kth(int(wc.wm.Lookup(pos)))
}

// AccessQuery returns T[pos], calling f as WaveletMatrix.AccessQuery does.
func (wc *Compressed[T]) AccessQuery(pos uint64, f func(level, pos uint64)) T {
	return wc.cmp.Kth(int(wc.wm.AccessQuery(pos, f)))
}

// Rank returns the number of occurrences of val in T[0...pos).
func (wc *Compressed[T]) Rank(pos uint64, val T) uint64 {
	ord, ok := wc.cmp.Find(val)
	if !ok {
		checkRange("Rank", Range{0, pos}, wc.wm.Num())
		return 0
	}
	return wc.wm.Rank(pos, uint64(ord))
}

// Select returns the position of the (rank+1)-th occurrence of val.
func (wc *Compressed[T]) Select(rank uint64, val T) (uint64, bool) {
	ord, ok := wc.cmp.Find(val)
	if !ok {
		return 0, false
	}
	return wc.wm.Select(rank, uint64(ord))
}

// NextPos returns the smallest position p >= from with T[p] == val.
func (wc *Compressed[T]) NextPos(from uint64, val T) (uint64, bool) {
	ord, ok := wc.cmp.Find(val)
	if !ok {
		checkRange("NextPos", Range{0, from}, wc.wm.Num())
		return 0, false
	}
	return wc.wm.NextPos(from, uint64(ord))
}

// PrevPos returns the largest position p < to with T[p] == val.
func (wc *Compressed[T]) PrevPos(to uint64, val T) (uint64, bool) {
	ord, ok := wc.cmp.Find(val)
	if !ok {
		checkRange("PrevPos", Range{0, to}, wc.wm.Num())
		return 0, false
	}
	return wc.wm.PrevPos(to, uint64(ord))
}

func (wc *Compressed[T]) valueRange(lo, hi T) Range {
	s, t := uint64(wc.cmp.Ord(lo)), uint64(wc.cmp.Ord(hi))
	if t < s {
		t = s
	}
	return Range{s, t}
}

// RangeFreq returns the number of values v in T[ranze.Bpos, ranze.Epos)
// with lo <= v < hi.
func (wc *Compressed[T]) RangeFreq(ranze Range, lo, hi T) uint64 {
	return wc.wm.RangeFreq(ranze, wc.valueRange(lo, hi))
}

// RangeFreqQuery is RangeFreq, calling f as WaveletMatrix.RangeFreqQuery does.
func (wc *Compressed[T]) RangeFreqQuery(ranze Range, lo, hi T, f func(level uint64, sub Range)) uint64 {
	return wc.wm.RangeFreqQuery(ranze, wc.valueRange(lo, hi), f)
}

// KthSmallest returns the (k+1)-th smallest value in T[ranze.Bpos, ranze.Epos).
func (wc *Compressed[T]) KthSmallest(ranze Range, k uint64) T {
	return wc.cmp.Kth(int(wc.wm.KthSmallest(ranze, k)))
}

// KthLargest returns the (k+1)-th largest value in T[ranze.Bpos, ranze.Epos).
func (wc *Compressed[T]) KthLargest(ranze Range, k uint64) T {
	return wc.cmp.Kth(int(wc.wm.KthLargest(ranze, k)))
}

func (wc *Compressed[T]) result(ord uint64, ok bool) (T, bool) {
	if !ok {
		var zero T
		return zero, false
	}
	return wc.cmp.Kth(int(ord)), true
}

// GE returns the smallest value >= val in T[ranze.Bpos, ranze.Epos).
func (wc *Compressed[T]) GE(ranze Range, val T) (T, bool) {
	return wc.result(wc.wm.GE(ranze, uint64(wc.cmp.Ord(val))))
}

// GT returns the smallest value > val in T[ranze.Bpos, ranze.Epos).
func (wc *Compressed[T]) GT(ranze Range, val T) (T, bool) {
	return wc.result(wc.wm.GE(ranze, uint64(wc.cmp.UpperBound(val))))
}

// LE returns the largest value <= val in T[ranze.Bpos, ranze.Epos).
func (wc *Compressed[T]) LE(ranze Range, val T) (T, bool) {
	return wc.result(wc.wm.LT(ranze, uint64(wc.cmp.UpperBound(val))))
}

// LT returns the largest value < val in T[ranze.Bpos, ranze.Epos).
func (wc *Compressed[T]) LT(ranze Range, val T) (T, bool) {
	return wc.result(wc.wm.LT(ranze, uint64(wc.cmp.Ord(val))))
}
