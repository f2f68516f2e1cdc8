package watrix

import (
	"log/slog"
	"math/bits"

	"github.com/hillbig/rsdic"
)

// LevelFunc observes the build of a wavelet matrix. It is called once with
// level = Levels() and the identity order, then once per bit b (from the most
// significant down to 0) with level = b and the original indices in the order
// they occupy after partitioning by bit b. order is only valid during the call.
type LevelFunc func(level uint64, order []uint64)

// Builder builds a WaveletMatrix from an integer array.
// A user calls PushBack()s followed by Build().
type Builder struct {
	vals []uint64
	opts []Option
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: opts}
}

// PushBack appends val to the end of T.
func (wmb *Builder) PushBack(val uint64) {
	if val>>63 != 0 {
		violation("Builder.PushBack", ErrValueTooLarge, "value %d at position %d", val, len(wmb.vals))
	}
	wmb.vals = append(wmb.vals, val)
}

// Build returns the WaveletMatrix of the values pushed so far.
func (wmb *Builder) Build() *WaveletMatrix {
	return wmb.BuildWithCallback(nil)
}

// BuildWithCallback is Build, additionally calling f at every level
// (see LevelFunc). f may be nil.
func (wmb *Builder) BuildWithCallback(f LevelFunc) *WaveletMatrix {
	o := applyOptions(wmb.opts)
	return build(wmb.vals, f, &o)
}

// New builds a WaveletMatrix over vals.
func New(vals []uint64, opts ...Option) *WaveletMatrix {
	return NewWithCallback(vals, nil, opts...)
}

// NewWithCallback builds a WaveletMatrix over vals, calling f at every level.
func NewWithCallback(vals []uint64, f LevelFunc, opts ...Option) *WaveletMatrix {
	for i, v := range vals {
		if v>>63 != 0 {
			violation("New", ErrValueTooLarge, "value %d at position %d", v, i)
		}
	}
	o := applyOptions(opts)
	return build(vals, f, &o)
}

func build(vals []uint64, f LevelFunc, o *options) *WaveletMatrix {
	num := uint64(len(vals))
	dim := getDim(vals)
	blen := getBinaryLen(dim)
	layers := make([]rsdic.RSDic, blen)

	// cur/next hold original indices in the current partition order.
	cur := make([]uint64, num)
	next := make([]uint64, num)
	for i := range cur {
		cur[i] = uint64(i)
	}
	if f != nil {
		f(blen, cur)
	}
	ones := make([]uint64, 0, num)
	for depth := blen; depth > 0; depth-- {
		b := depth - 1
		rsd := rsdic.New()
		next = filter(vals, cur, b, next[:0], &ones, rsd)
		layers[b] = *rsd
		cur, next = next, cur
		if o.debugEnabled() {
			o.logger.Debug("wavelet level built",
				slog.Uint64("level", b),
				slog.Uint64("ones", layers[b].OneNum()),
				slog.Uint64("zeros", layers[b].ZeroNum()))
		}
		if f != nil {
			f(b, cur)
		}
	}
	o.logger.Debug("wavelet matrix built",
		slog.Uint64("num", num),
		slog.Uint64("levels", blen),
		slog.Uint64("dim", dim))
	return &WaveletMatrix{
		layers:  layers,
		leafIdx: cur,
		dim:     dim,
		num:     num,
		blen:    blen,
	}
}

// filter stably partitions order by bit b of the referenced values, zeros
// first, recording the bits in rsd.
func filter(vals, order []uint64, b uint64, nextZeros []uint64, nextOnes *[]uint64, rsd *rsdic.RSDic) []uint64 {
	*nextOnes = (*nextOnes)[:0]
	for _, idx := range order {
		bit := (vals[idx]>>b)&1 == 1
		rsd.PushBack(bit)
		if bit {
			*nextOnes = append(*nextOnes, idx)
		} else {
			nextZeros = append(nextZeros, idx)
		}
	}
	return append(nextZeros, *nextOnes...)
}

func getDim(vals []uint64) uint64 {
	dim := uint64(0)
	for _, val := range vals {
		if val >= dim {
			dim = val + 1
		}
	}
	return dim
}

// getBinaryLen returns the number of levels for values in [0, dim):
// the smallest k >= 1 with 2^k >= dim.
func getBinaryLen(dim uint64) uint64 {
	if dim <= 1 {
		return 1
	}
	return uint64(bits.Len64(dim - 1))
}
