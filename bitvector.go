package watrix

import "github.com/hillbig/rsdic"

// Bitvector is an immutable bit array B[0...num) answering Access and Rank
// in constant time. The wavelet matrix levels are plain rsdic.RSDic values;
// Bitvector adds the argument checks for direct callers.
type Bitvector struct {
	rsd *rsdic.RSDic
}

// NewBitvector builds a Bitvector holding the given bits.
func NewBitvector(bs []bool) *Bitvector {
	rsd := rsdic.New()
	for _, b := range bs {
		rsd.PushBack(b)
	}
	return &Bitvector{rsd}
}

// Num returns the number of bits.
func (bv *Bitvector) Num() uint64 {
	return bv.rsd.Num()
}

// OneNum returns the number of ones.
func (bv *Bitvector) OneNum() uint64 {
	return bv.rsd.OneNum()
}

// ZeroNum returns the number of zeros.
func (bv *Bitvector) ZeroNum() uint64 {
	return bv.rsd.ZeroNum()
}

// Access returns B[pos].
func (bv *Bitvector) Access(pos uint64) bool {
	checkPos("Bitvector.Access", pos, bv.rsd.Num())
	return bv.rsd.Bit(pos)
}

// Rank returns the number of ones in B[0...pos).
func (bv *Bitvector) Rank(pos uint64) uint64 {
	if pos > bv.rsd.Num() {
		violation("Bitvector.Rank", ErrOutOfRange, "position %d exceeds length %d", pos, bv.rsd.Num())
	}
	return bv.rsd.Rank(pos, true)
}
