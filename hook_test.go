package watrix

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type levelRecorder struct {
	levels []uint64
	orders map[uint64][]uint64
}

func (r *levelRecorder) record(level uint64, order []uint64) {
	r.levels = append(r.levels, level)
	r.orders[level] = append([]uint64(nil), order...)
}

func newRecorder() *levelRecorder {
	return &levelRecorder{orders: make(map[uint64][]uint64)}
}

func TestBuildCallback(t *testing.T) {
	Convey("Given [5,2,5,2,8,2] built with a recording callback", t, func() {
		rec := newRecorder()
		wm := NewWithCallback([]uint64{5, 2, 5, 2, 8, 2}, rec.record)

		Convey("every level is reported once, top down", func() {
			So(rec.levels, ShouldResemble, []uint64{4, 3, 2, 1, 0})
		})
		Convey("the orders are the stable partitions", func() {
			So(rec.orders[4], ShouldResemble, []uint64{0, 1, 2, 3, 4, 5})
			So(rec.orders[3], ShouldResemble, []uint64{0, 1, 2, 3, 5, 4})
			So(rec.orders[2], ShouldResemble, []uint64{1, 3, 5, 4, 0, 2})
			So(rec.orders[1], ShouldResemble, []uint64{4, 0, 2, 1, 3, 5})
			So(rec.orders[0], ShouldResemble, []uint64{4, 1, 3, 5, 0, 2})
			for i := uint64(0); i < wm.Num(); i++ {
				So(wm.LeafIndex(i), ShouldEqual, rec.orders[0][i])
			}
		})
	})

	Convey("Partitioning conserves the element count at every level", t, func() {
		rng := rand.New(rand.NewSource(11))
		vals := randomValues(rng, 1000, 1<<12)
		var lens []int
		var top uint64
		wm := NewWithCallback(vals, func(level uint64, order []uint64) {
			if len(lens) == 0 {
				top = level
			}
			lens = append(lens, len(order))
		})
		So(top, ShouldEqual, wm.Levels())
		So(len(lens), ShouldEqual, wm.Levels()+1)
		for _, n := range lens {
			So(n, ShouldEqual, 1000)
		}
	})

	Convey("The Builder reports the same levels as NewWithCallback", t, func() {
		vals := []uint64{3, 1, 4, 1, 5, 9, 2, 6}
		a, b := newRecorder(), newRecorder()
		NewWithCallback(vals, a.record)
		wmb := NewBuilder()
		for _, v := range vals {
			wmb.PushBack(v)
		}
		wmb.BuildWithCallback(b.record)
		So(b.levels, ShouldResemble, a.levels)
		So(b.orders, ShouldResemble, a.orders)
	})
}

func TestRangeFreqQuery(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	Convey("The canonical decomposition covers exactly the counted elements", t, func() {
		for round := 0; round < 10; round++ {
			num := uint64(1 + rng.Intn(300))
			dim := uint64(1 + rng.Intn(500))
			vals := randomValues(rng, num, dim)
			weights := make([]int64, num)
			for i := range weights {
				weights[i] = rng.Int63n(1000) - 500
			}
			rec := newRecorder()
			wm := NewWithCallback(vals, rec.record)

			for q := 0; q < 40; q++ {
				ranze := generateRange(rng, num)
				s := uint64(rng.Int63n(int64(dim + 1)))
				vr := Range{s, s + uint64(rng.Int63n(int64(dim+1)))}

				covered := make(map[uint64]int)
				var sum int64
				nodes := 0
				cnt := wm.RangeFreqQuery(ranze, vr, func(level uint64, sub Range) {
					nodes++
					So(sub.Len(), ShouldBeGreaterThan, 0)
					for p := sub.Bpos; p < sub.Epos; p++ {
						idx := rec.orders[level][p]
						covered[idx]++
						sum += weights[idx]
					}
				})
				So(nodes, ShouldBeLessThanOrEqualTo, 2*int(wm.Levels())+1)

				var want int64
				wantCnt := uint64(0)
				for i := ranze.Bpos; i < ranze.Epos; i++ {
					if vr.Bpos <= vals[i] && vals[i] < vr.Epos {
						want += weights[i]
						wantCnt++
						So(covered[i], ShouldEqual, 1)
					}
				}
				So(cnt, ShouldEqual, wantCnt)
				So(uint64(len(covered)), ShouldEqual, wantCnt)
				So(sum, ShouldEqual, want)
			}
		}
	})
}

func TestAccessQuery(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	Convey("AccessQuery reports the element's position in every level order", t, func() {
		vals := randomValues(rng, 500, 77)
		rec := newRecorder()
		wm := NewWithCallback(vals, rec.record)
		for pos := uint64(0); pos < wm.Num(); pos++ {
			var levels []uint64
			v := wm.AccessQuery(pos, func(level, p uint64) {
				levels = append(levels, level)
				So(rec.orders[level][p], ShouldEqual, pos)
			})
			So(v, ShouldEqual, vals[pos])
			So(levels, ShouldResemble, rec.levels)
		}
	})
}
