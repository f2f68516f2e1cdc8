package rectsum

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand"
	"testing"

	watrix "github.com/AlexWan0/go-wmindex"
	. "github.com/smartystreets/goconvey/convey"
)

type weighted struct {
	x, y int64
	w    int64
}

func naiveProd(ps []weighted, lx, rx, ly, ry int64) int64 {
	sum := int64(0)
	for _, p := range ps {
		if lx <= p.x && p.x < rx && ly <= p.y && p.y < ry {
			sum += p.w
		}
	}
	return sum
}

func TestPointAddRectangleSum(t *testing.T) {
	Convey("Given a few points", t, func() {
		ps := New[int64]()
		ps.SetInitialPoint(1, 1, 5)
		ps.SetInitialPoint(3, 2, 7)
		ps.SetInitialPoint(3, 2, 1) // same point, weights add
		ps.SetInitialPoint(-4, 10, 2)

		So(ps.Len(), ShouldEqual, 3)
		So(ps.Prod(0, 10, 0, 10), ShouldEqual, 13)
		So(ps.Prod(-10, 10, -10, 100), ShouldEqual, 15)
		So(ps.Prod(3, 4, 2, 3), ShouldEqual, 8)
		So(ps.Prod(4, 3, 0, 10), ShouldEqual, 0)
		So(ps.Prod(0, 10, 5, 5), ShouldEqual, 0)

		Convey("Apply changes the registered weights", func() {
			So(ps.Apply(1, 1, -5), ShouldBeNil)
			So(ps.Prod(0, 2, 0, 2), ShouldEqual, 0)
			So(ps.Apply(-4, 10, 3), ShouldBeNil)
			So(ps.Prod(-10, 10, -10, 100), ShouldEqual, 13)
		})
		Convey("Apply to an unknown point fails", func() {
			So(errors.Is(ps.Apply(2, 2, 1), ErrUnknownPoint), ShouldBeTrue)
		})
		Convey("The point set is frozen after Build", func() {
			So(func() { ps.SetInitialPoint(0, 0, 1) }, ShouldPanic)
			var recovered any
			func() {
				defer func() { recovered = recover() }()
				ps.SetInitialPoint(0, 0, 1)
			}()
			ce, ok := recovered.(*watrix.ContractError)
			So(ok, ShouldBeTrue)
			So(ce.Op, ShouldEqual, "rectsum.SetInitialPoint")
			So(errors.Is(ce, watrix.ErrAlreadyBuilt), ShouldBeTrue)
		})
	})

	Convey("Given no points", t, func() {
		ps := New[float64]()
		So(ps.Prod(-100, 100, -100, 100), ShouldEqual, 0)
		So(errors.Is(ps.Apply(0, 0, 1), ErrUnknownPoint), ShouldBeTrue)
	})

	Convey("Random updates and queries agree with brute force", t, func() {
		rng := rand.New(rand.NewSource(17))
		ps := New[int64]()
		var pts []weighted
		for i := 0; i < 200; i++ {
			p := weighted{rng.Int63n(50) - 25, rng.Int63n(50) - 25, rng.Int63n(100)}
			pts = append(pts, p)
			ps.SetInitialPoint(p.x, p.y, p.w)
		}
		for q := 0; q < 300; q++ {
			if q%2 == 0 {
				i := rng.Intn(len(pts))
				w := rng.Int63n(21) - 10
				pts[i].w += w
				So(ps.Apply(pts[i].x, pts[i].y, w), ShouldBeNil)
			}
			lx := rng.Int63n(60) - 30
			rx := lx + rng.Int63n(40)
			ly := rng.Int63n(60) - 30
			ry := ly + rng.Int63n(40)
			So(ps.Prod(lx, rx, ly, ry), ShouldEqual, naiveProd(pts, lx, rx, ly, ry))
		}
	})

	Convey("Build logs through the configured logger", t, func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ps := New[int](watrix.WithLogger(logger))
		ps.SetInitialPoint(0, 0, 1)
		ps.Build()
		So(buf.String(), ShouldContainSubstring, "rectangle sum index built")
		So(buf.String(), ShouldContainSubstring, "wavelet matrix built")
	})
}
