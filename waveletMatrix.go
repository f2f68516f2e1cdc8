// Package watrix provides a wavelet matrix (wavelet tree)
// supporting many range-query problems, including rank/select,
// range quantile, range frequency and successor/predecessor queries
// over a static integer array.
//
// The build callback (LevelFunc) and RangeFreqQuery / AccessQuery let a
// caller attach one structure per level (e.g. a Fenwick tree) and query it
// along the same decomposition the matrix uses; see package rectsum.
package watrix

import (
	"math"

	"github.com/hillbig/rsdic"
)

// Range represents a range [Bpos, Epos)
// only valid for Bpos <= Epos
type Range struct {
	Bpos uint64
	Epos uint64
}

// Len returns Epos - Bpos.
func (r Range) Len() uint64 {
	return r.Epos - r.Bpos
}

// WaveletMatrix is the core of the library.
//
// layers[b] holds bit b of every value (0 = least significant) in the order
// the values occupy after partitioning by bits above b. A built matrix is
// immutable and safe for concurrent use.
type WaveletMatrix struct {
	layers  []rsdic.RSDic
	leafIdx []uint64 // last level position -> original position
	dim     uint64
	num     uint64
	blen    uint64 // =len(layers)
}

// Num return the number of values in T
func (wm *WaveletMatrix) Num() uint64 {
	return wm.num
}

// Dim returns (max. of T[0...Num) + 1), or 0 for an empty matrix.
func (wm *WaveletMatrix) Dim() uint64 {
	return wm.dim
}

// Levels returns the number of bit levels; values lie in [0, 2^Levels()).
func (wm *WaveletMatrix) Levels() uint64 {
	return wm.blen
}

// LeafIndex returns the original position of the element at position
// leafPos of the last level order. In that order equal values are
// contiguous and keep their original relative order; groups are ascending by
// the bit-reversed value.
func (wm *WaveletMatrix) LeafIndex(leafPos uint64) uint64 {
	checkPos("LeafIndex", leafPos, wm.num)
	return wm.leafIdx[leafPos]
}

// child maps ranze at layer b to the range occupied, one layer down, by its
// elements whose bit b equals bit.
func (wm *WaveletMatrix) child(b uint64, ranze Range, bit bool) Range {
	rsd := &wm.layers[b]
	if bit {
		return Range{rsd.ZeroNum() + rsd.Rank(ranze.Bpos, true), rsd.ZeroNum() + rsd.Rank(ranze.Epos, true)}
	}
	return Range{rsd.Rank(ranze.Bpos, false), rsd.Rank(ranze.Epos, false)}
}

// step returns bit b of the element at pos of layer b and its position one
// layer down.
func (wm *WaveletMatrix) step(b, pos uint64) (bool, uint64) {
	rsd := &wm.layers[b]
	if rsd.Bit(pos) {
		return true, rsd.ZeroNum() + rsd.Rank(pos, true)
	}
	return false, rsd.Rank(pos, false)
}

func (wm *WaveletMatrix) inUniverse(val uint64) bool {
	return val>>wm.blen == 0
}

// Lookup returns T[pos]
func (wm *WaveletMatrix) Lookup(pos uint64) uint64 {
	checkPos("Lookup", pos, wm.num)
	val := uint64(0)
	for b := wm.blen; b > 0; {
		b--
		var bit bool
		bit, pos = wm.step(b, pos)
		if bit {
			val |= 1 << b
		}
	}
	return val
}

// AccessQuery returns T[pos] and calls f(level, p) for level = Levels()
// down to 0, where p is the position of T[pos] in the order passed to the
// LevelFunc for that level at build time.
func (wm *WaveletMatrix) AccessQuery(pos uint64, f func(level, pos uint64)) uint64 {
	checkPos("AccessQuery", pos, wm.num)
	val := uint64(0)
	f(wm.blen, pos)
	for b := wm.blen; b > 0; {
		b--
		var bit bool
		bit, pos = wm.step(b, pos)
		if bit {
			val |= 1 << b
		}
		f(b, pos)
	}
	return val
}

// AccessAndRank returns T[pos] and Rank(pos, T[pos]).
// Faster than Lookup and Rank
func (wm *WaveletMatrix) AccessAndRank(pos uint64) (uint64, uint64) {
	checkPos("AccessAndRank", pos, wm.num)
	val := uint64(0)
	bpos := uint64(0)
	epos := pos
	for b := wm.blen; b > 0; {
		b--
		bit := wm.layers[b].Bit(epos)
		r := wm.child(b, Range{bpos, epos}, bit)
		bpos, epos = r.Bpos, r.Epos
		if bit {
			val |= 1 << b
		}
	}
	return val, epos - bpos
}

// descend narrows ranze to the elements whose bits above ignoreBits equal
// those of val.
func (wm *WaveletMatrix) descend(ranze Range, val, ignoreBits uint64) Range {
	for b := wm.blen; b > ignoreBits; {
		b--
		ranze = wm.child(b, ranze, (val>>b)&1 == 1)
	}
	return ranze
}

// Rank returns the number of c (== val) in T[0...pos)
func (wm *WaveletMatrix) Rank(pos uint64, val uint64) uint64 {
	checkRange("Rank", Range{0, pos}, wm.num)
	if !wm.inUniverse(val) {
		return 0
	}
	return wm.descend(Range{0, pos}, val, 0).Len()
}

// RankLessThan returns the number of c (< val) in T[0...pos)
func (wm *WaveletMatrix) RankLessThan(pos uint64, val uint64) uint64 {
	return wm.RangeFreq(Range{0, pos}, Range{0, val})
}

// RankMoreThan returns the number of c (> val) in T[0...pos)
func (wm *WaveletMatrix) RankMoreThan(pos uint64, val uint64) uint64 {
	if !wm.inUniverse(val) {
		checkRange("RankMoreThan", Range{0, pos}, wm.num)
		return 0
	}
	return wm.RangeFreq(Range{0, pos}, Range{val + 1, 1 << wm.blen})
}

// PrefixFreq searches T[ranze.Bpos, ranze.Epos) and
// returns the number of c that matches the val.
//
// If ignoreBits > 0, ignoreBits-bit portion from LSB are not considered
// for match.
// This behavior is useful for IP address prefix search such as 192.168.10.0/24
// (ignoreBits in this case, is 8).
func (wm *WaveletMatrix) PrefixFreq(ranze Range, val, ignoreBits uint64) uint64 {
	checkRange("PrefixFreq", ranze, wm.num)
	if ignoreBits >= wm.blen {
		if ignoreBits < 64 && val>>ignoreBits != 0 {
			return 0
		}
		return ranze.Len()
	}
	if !wm.inUniverse(val) {
		return 0
	}
	return wm.descend(ranze, val, ignoreBits).Len()
}

// Select returns the position of (rank+1)-th val in T.
// If there are not that many, ok is false.
func (wm *WaveletMatrix) Select(rank uint64, val uint64) (pos uint64, ok bool) {
	if !wm.inUniverse(val) {
		return 0, false
	}
	r := wm.descend(Range{0, wm.num}, val, 0)
	if r.Len() <= rank {
		return 0, false
	}
	return wm.leafIdx[r.Bpos+rank], true
}

// NextPos returns the smallest position p >= from with T[p] == val.
func (wm *WaveletMatrix) NextPos(from uint64, val uint64) (uint64, bool) {
	checkRange("NextPos", Range{0, from}, wm.num)
	if !wm.inUniverse(val) {
		return 0, false
	}
	return wm.Select(wm.Rank(from, val), val)
}

// PrevPos returns the largest position p < to with T[p] == val.
func (wm *WaveletMatrix) PrevPos(to uint64, val uint64) (uint64, bool) {
	checkRange("PrevPos", Range{0, to}, wm.num)
	if !wm.inUniverse(val) {
		return 0, false
	}
	cnt := wm.Rank(to, val)
	if cnt == 0 {
		return 0, false
	}
	return wm.Select(cnt-1, val)
}

// RangeFreq searches T[ranze.Bpos, ranze.Epos) and
// returns the number of c that falls within valueRange
// i.e. [valueRange.Bpos, valueRange.Epos).
func (wm *WaveletMatrix) RangeFreq(ranze Range, valueRange Range) uint64 {
	return wm.RangeFreqQuery(ranze, valueRange, nil)
}

// RangeFreqQuery is RangeFreq, additionally calling f(level, sub) for each
// node of the canonical decomposition of the query: sub is a range of the
// order passed to the LevelFunc for level at build time, and the elements
// of all reported ranges are exactly those counted. f may be nil.
func (wm *WaveletMatrix) RangeFreqQuery(ranze Range, valueRange Range, f func(level uint64, sub Range)) uint64 {
	checkRange("RangeFreq", ranze, wm.num)
	if top := uint64(1) << wm.blen; valueRange.Epos > top {
		valueRange.Epos = top
	}
	if ranze.Bpos >= ranze.Epos || valueRange.Bpos >= valueRange.Epos {
		return 0
	}
	return wm.rangeFreq(wm.blen, ranze, 0, valueRange, f)
}

// rangeFreq counts the elements of ranze whose values, which all lie in
// [lo, lo+2^level), also lie in vr.
func (wm *WaveletMatrix) rangeFreq(level uint64, ranze Range, lo uint64, vr Range, f func(uint64, Range)) uint64 {
	hi := lo + 1<<level
	if ranze.Bpos == ranze.Epos || hi <= vr.Bpos || vr.Epos <= lo {
		return 0
	}
	if vr.Bpos <= lo && hi <= vr.Epos {
		if f != nil {
			f(level, ranze)
		}
		return ranze.Len()
	}
	b := level - 1
	mid := lo + 1<<b
	return wm.rangeFreq(b, wm.child(b, ranze, false), lo, vr, f) +
		wm.rangeFreq(b, wm.child(b, ranze, true), mid, vr, f)
}

// KthSmallest returns (k+1)th smallest value in T[ranze.Bpos, ranze.Epos)
func (wm *WaveletMatrix) KthSmallest(ranze Range, k uint64) uint64 {
	checkRange("KthSmallest", ranze, wm.num)
	if k >= ranze.Len() {
		violation("KthSmallest", ErrOutOfRange, "k = %d but range holds %d values", k, ranze.Len())
	}
	val := uint64(0)
	for b := wm.blen; b > 0; {
		b--
		zeros := wm.child(b, ranze, false)
		if nz := zeros.Len(); k < nz {
			ranze = zeros
		} else {
			k -= nz
			val |= 1 << b
			ranze = wm.child(b, ranze, true)
		}
	}
	return val
}

// Quantile is an alias of KthSmallest.
func (wm *WaveletMatrix) Quantile(ranze Range, k uint64) uint64 {
	return wm.KthSmallest(ranze, k)
}

// KthLargest returns (k+1)th largest value in T[ranze.Bpos, ranze.Epos)
func (wm *WaveletMatrix) KthLargest(ranze Range, k uint64) uint64 {
	checkRange("KthLargest", ranze, wm.num)
	if k >= ranze.Len() {
		violation("KthLargest", ErrOutOfRange, "k = %d but range holds %d values", k, ranze.Len())
	}
	return wm.KthSmallest(ranze, ranze.Len()-1-k)
}

// GE returns the smallest value >= val in T[ranze.Bpos, ranze.Epos).
func (wm *WaveletMatrix) GE(ranze Range, val uint64) (uint64, bool) {
	checkRange("GE", ranze, wm.num)
	if val >= wm.dim {
		return 0, false
	}
	cnt := wm.RangeFreq(ranze, Range{0, val})
	if cnt == ranze.Len() {
		return 0, false
	}
	return wm.KthSmallest(ranze, cnt), true
}

// GT returns the smallest value > val in T[ranze.Bpos, ranze.Epos).
func (wm *WaveletMatrix) GT(ranze Range, val uint64) (uint64, bool) {
	if val == math.MaxUint64 {
		checkRange("GT", ranze, wm.num)
		return 0, false
	}
	return wm.GE(ranze, val+1)
}

// LE returns the largest value <= val in T[ranze.Bpos, ranze.Epos).
func (wm *WaveletMatrix) LE(ranze Range, val uint64) (uint64, bool) {
	checkRange("LE", ranze, wm.num)
	if wm.dim == 0 {
		return 0, false
	}
	if val > wm.dim-1 {
		val = wm.dim - 1
	}
	cnt := wm.RangeFreq(ranze, Range{0, val + 1})
	if cnt == 0 {
		return 0, false
	}
	return wm.KthSmallest(ranze, cnt-1), true
}

// LT returns the largest value < val in T[ranze.Bpos, ranze.Epos).
func (wm *WaveletMatrix) LT(ranze Range, val uint64) (uint64, bool) {
	if val == 0 {
		checkRange("LT", ranze, wm.num)
		return 0, false
	}
	return wm.LE(ranze, val-1)
}

// LCPFreq returns res where res[k] is the number of c in
// T[ranze.Bpos, ranze.Epos) whose top k bits (of Levels()) equal those of
// val and whose next bit differs; res[Levels()] counts exact matches.
func (wm *WaveletMatrix) LCPFreq(ranze Range, val uint64) []uint64 {
	checkRange("LCPFreq", ranze, wm.num)
	res := make([]uint64, wm.blen+1)
	for b := wm.blen; b > 0; {
		b--
		before := ranze.Len()
		ranze = wm.child(b, ranze, (val>>b)&1 == 1)
		res[wm.blen-1-b] = before - ranze.Len()
	}
	res[wm.blen] = ranze.Len()
	return res
}

// Intersect returns values that occur in at least k of the ranges, in
// ascending order.
func (wm *WaveletMatrix) Intersect(ranges []Range, k int) []uint64 {
	if k < 1 {
		violation("Intersect", ErrOutOfRange, "k = %d must be positive", k)
	}
	nonEmpty := make([]Range, 0, len(ranges))
	for _, ranze := range ranges {
		checkRange("Intersect", ranze, wm.num)
		if ranze.Len() > 0 {
			nonEmpty = append(nonEmpty, ranze)
		}
	}
	if len(nonEmpty) < k {
		return []uint64{}
	}
	return wm.intersectHelper(nonEmpty, k, wm.blen, 0)
}

func (wm *WaveletMatrix) intersectHelper(ranges []Range, k int, level uint64, prefix uint64) []uint64 {
	if level == 0 {
		return []uint64{prefix}
	}
	b := level - 1
	zeroRanges := make([]Range, 0, len(ranges))
	oneRanges := make([]Range, 0, len(ranges))
	for _, ranze := range ranges {
		if z := wm.child(b, ranze, false); z.Len() > 0 {
			zeroRanges = append(zeroRanges, z)
		}
		if o := wm.child(b, ranze, true); o.Len() > 0 {
			oneRanges = append(oneRanges, o)
		}
	}
	ret := make([]uint64, 0)
	if len(zeroRanges) >= k {
		ret = append(ret, wm.intersectHelper(zeroRanges, k, b, prefix)...)
	}
	if len(oneRanges) >= k {
		ret = append(ret, wm.intersectHelper(oneRanges, k, b, prefix|1<<b)...)
	}
	return ret
}
