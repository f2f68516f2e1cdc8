// Package rectsum answers rectangle-sum queries over a fixed set of
// weighted points whose weights can be updated.
//
// The point set must be registered before the first query. It is indexed by
// a wavelet matrix over y in (x, y) order with one Fenwick tree attached to
// each level through the build callback.
package rectsum

import (
	"errors"
	"log/slog"

	watrix "github.com/AlexWan0/go-wmindex"
	"github.com/AlexWan0/go-wmindex/internal/fenwick"
)

// ErrUnknownPoint is returned by Apply for a point that was never registered.
var ErrUnknownPoint = errors.New("rectsum: point was not registered")

// Number is the set of weight types.
type Number = fenwick.Number

type point struct {
	x, y int64
}

func comparePoints(a, b point) int {
	switch {
	case a.x < b.x:
		return -1
	case a.x > b.x:
		return 1
	case a.y < b.y:
		return -1
	case a.y > b.y:
		return 1
	default:
		return 0
	}
}

type initialPoint[S Number] struct {
	p point
	w S
}

// PointAddRectangleSum sums weights of points inside axis-aligned
// rectangles. Once built, Prod calls may run concurrently with each other
// but not with Apply.
type PointAddRectangleSum[S Number] struct {
	built   bool
	pending []initialPoint[S]
	points  *watrix.Compressor[point]
	wm      *watrix.Compressed[int64]
	seg     []*fenwick.Tree[S]
	opts    []watrix.Option
}

// New returns an empty PointAddRectangleSum. opts are passed on to the
// wavelet matrix build; a logger set with watrix.WithLogger also receives
// the index summary.
func New[S Number](opts ...watrix.Option) *PointAddRectangleSum[S] {
	return &PointAddRectangleSum[S]{
		points: watrix.NewCompressorFunc(comparePoints),
		opts:   opts,
	}
}

// SetInitialPoint registers (x, y) with weight w. Registering the same point
// twice adds the weights. It panics once the structure has been built.
func (ps *PointAddRectangleSum[S]) SetInitialPoint(x, y int64, w S) {
	if ps.built {
		watrix.Violation("rectsum.SetInitialPoint", watrix.ErrAlreadyBuilt, "point (%d, %d) added after Build", x, y)
	}
	ps.pending = append(ps.pending, initialPoint[S]{point{x, y}, w})
}

// Build freezes the point set. Apply and Prod call it implicitly.
func (ps *PointAddRectangleSum[S]) Build() {
	if ps.built {
		return
	}
	ps.built = true
	for _, ip := range ps.pending {
		ps.points.Add(ip.p)
	}
	n := ps.points.Size()
	weights := make([]S, n)
	for _, ip := range ps.pending {
		weights[ps.points.Ord(ip.p)] += ip.w
	}
	ps.pending = nil

	ys := make([]int64, n)
	for i, p := range ps.points.Values() {
		ys[i] = p.y
	}
	tmp := make([]S, n)
	ps.wm = watrix.NewCompressedWithCallback(ys, func(level uint64, order []uint64) {
		for len(ps.seg) <= int(level) {
			ps.seg = append(ps.seg, nil)
		}
		for i, idx := range order {
			tmp[i] = weights[idx]
		}
		ps.seg[level] = fenwick.NewFrom(tmp)
	}, ps.opts...)
	watrix.LoggerFrom(ps.opts...).Debug("rectangle sum index built",
		slog.Int("points", n),
		slog.Int("levels", len(ps.seg)))
}

// Apply adds w to the weight of the registered point (x, y).
func (ps *PointAddRectangleSum[S]) Apply(x, y int64, w S) error {
	ps.Build()
	ord, ok := ps.points.Find(point{x, y})
	if !ok {
		return ErrUnknownPoint
	}
	ps.wm.AccessQuery(uint64(ord), func(level, pos uint64) {
		ps.seg[level].Add(int(pos), w)
	})
	return nil
}

// Prod returns the total weight of points with lx <= x < rx and ly <= y < ry.
func (ps *PointAddRectangleSum[S]) Prod(lx, rx, ly, ry int64) S {
	ps.Build()
	var res S
	if lx >= rx || ly >= ry {
		return res
	}
	l := ps.points.Ord(point{lx, minInt64})
	r := ps.points.Ord(point{rx, minInt64})
	ps.wm.RangeFreqQuery(watrix.Range{Bpos: uint64(l), Epos: uint64(r)}, ly, ry, func(level uint64, sub watrix.Range) {
		res += ps.seg[level].Sum(int(sub.Bpos), int(sub.Epos))
	})
	return res
}

// Len returns the number of distinct registered points.
func (ps *PointAddRectangleSum[S]) Len() int {
	ps.Build()
	return ps.points.Size()
}

const minInt64 = -1 << 63
