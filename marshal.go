package watrix

import (
	"fmt"

	"github.com/hillbig/rsdic"
	"github.com/ugorji/go/codec"
)

// MarshalBinary encodes WaveletMatrix into a binary form and returns the result.
func (wm *WaveletMatrix) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(wm.blen)
	if err != nil {
		return
	}
	err = enc.Encode(wm.dim)
	if err != nil {
		return
	}
	err = enc.Encode(wm.num)
	if err != nil {
		return
	}
	for i := 0; i < len(wm.layers); i++ {
		err = enc.Encode(wm.layers[i])
		if err != nil {
			return
		}
	}
	return
}

// UnmarshalBinary decodes WaveletMatrix from a binary form generated MarshalBinary.
// The leaf index is rebuilt from the levels, and the levels are checked
// against the stored length and dimension.
func (wm *WaveletMatrix) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	dst := WaveletMatrix{}
	if err = dec.Decode(&dst.blen); err != nil {
		return
	}
	if err = dec.Decode(&dst.dim); err != nil {
		return
	}
	if err = dec.Decode(&dst.num); err != nil {
		return
	}
	if dst.blen == 0 || dst.blen > 63 || getBinaryLen(dst.dim) != dst.blen {
		return fmt.Errorf("%w: %d levels for dim %d", ErrCorrupt, dst.blen, dst.dim)
	}
	dst.layers = make([]rsdic.RSDic, dst.blen)
	for i := range dst.layers {
		dst.layers[i] = *rsdic.New()
		if err = dec.Decode(&dst.layers[i]); err != nil {
			return
		}
		rsd := &dst.layers[i]
		if rsd.Num() != dst.num || rsd.OneNum()+rsd.ZeroNum() != dst.num {
			return fmt.Errorf("%w: level %d holds %d bits, want %d", ErrCorrupt, i, rsd.Num(), dst.num)
		}
	}
	if err = dst.indexLeaves(); err != nil {
		return
	}
	*wm = dst
	return nil
}

// indexLeaves walks every position down to the last level and records it in
// leafIdx. Each position must land on a distinct leaf, and the largest value
// read on the way must be dim-1.
func (wm *WaveletMatrix) indexLeaves() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCorrupt, r)
		}
	}()
	leafIdx := make([]uint64, wm.num)
	seen := make([]bool, wm.num)
	dim := uint64(0)
	for i := uint64(0); i < wm.num; i++ {
		val, pos := uint64(0), i
		for b := wm.blen; b > 0; {
			b--
			var bit bool
			bit, pos = wm.step(b, pos)
			if pos >= wm.num {
				return fmt.Errorf("%w: position %d leaves level %d", ErrCorrupt, i, b)
			}
			if bit {
				val |= 1 << b
			}
		}
		if seen[pos] {
			return fmt.Errorf("%w: leaf %d reached twice", ErrCorrupt, pos)
		}
		seen[pos] = true
		leafIdx[pos] = i
		if val >= dim {
			dim = val + 1
		}
	}
	if dim != wm.dim {
		return fmt.Errorf("%w: levels encode dim %d, header says %d", ErrCorrupt, dim, wm.dim)
	}
	wm.leafIdx = leafIdx
	return nil
}
