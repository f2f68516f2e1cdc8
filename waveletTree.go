package watrix

// WaveletTree is the query surface shared by integer wavelet structures.
type WaveletTree interface {
	Num() uint64

	Dim() uint64

	Lookup(pos uint64) uint64

	Rank(pos uint64, val uint64) uint64

	RankLessThan(pos uint64, val uint64) uint64

	RankMoreThan(pos uint64, val uint64) uint64

	RangeFreq(ranze Range, valueRange Range) uint64

	Select(rank uint64, val uint64) (uint64, bool)

	AccessAndRank(pos uint64) (uint64, uint64)

	KthSmallest(ranze Range, k uint64) uint64

	KthLargest(ranze Range, k uint64) uint64

	GE(ranze Range, val uint64) (uint64, bool)

	GT(ranze Range, val uint64) (uint64, bool)

	LE(ranze Range, val uint64) (uint64, bool)

	LT(ranze Range, val uint64) (uint64, bool)

	PrefixFreq(ranze Range, val, ignoreBits uint64) uint64

	LCPFreq(ranze Range, val uint64) []uint64

	NextPos(from uint64, val uint64) (uint64, bool)

	PrevPos(to uint64, val uint64) (uint64, bool)

	AccessQuery(pos uint64, f func(level, pos uint64)) uint64

	RangeFreqQuery(ranze Range, valueRange Range, f func(level uint64, sub Range)) uint64

	Intersect(ranges []Range, k int) []uint64

	MarshalBinary() ([]byte, error)

	UnmarshalBinary([]byte) error
}

var _ WaveletTree = (*WaveletMatrix)(nil)
