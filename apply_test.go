package gogo_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stcrestrada/gogo/v3"
)

func TestMerge(t *testing.T) {
	Convey("Given Merge over two sources", t, func() {
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)

		Convey("it stays Pending until both sides are Ready", func() {
			a := gogo.NewOnceVar[int]()
			b := gogo.NewOnceVar[string]()
			f := gogo.Merge[int, string](onceVarFuture(a), onceVarFuture(b))
			c := f.RunComputation()

			p := c.Poll(ctx)
			So(p.IsReady(), ShouldBeFalse)

			a.Write(1)
			p2 := c.Poll(ctx)
			So(p2.IsReady(), ShouldBeFalse)

			b.Write("x")
			p3 := c.Poll(ctx)
			So(p3.IsReady(), ShouldBeTrue)
			So(p3.Value(), ShouldResemble, gogo.Pair[int, string]{First: 1, Second: "x"})
		})

		Convey("it memoizes the combined result once Ready", func() {
			f := gogo.Merge[int, int](gogo.Ready(1), gogo.Ready(2))
			c := f.RunComputation()
			p1 := c.Poll(ctx)
			p2 := c.Poll(ctx)
			So(p1.Value(), ShouldResemble, p2.Value())
		})

		Convey("if one side panics, the other is cancelled and the error is re-raised on every later poll", func() {
			boom := errors.New("merge boom")
			other := gogo.NewOnceVar[int]()
			f := gogo.Merge[int, int](onceVarFuture(other), panicFuture[int](boom))
			c := f.RunComputation()

			r1 := panicsWith(func() { c.Poll(ctx) })
			So(r1, ShouldEqual, boom)
			So(other.Abandoned(), ShouldBeTrue)

			r2 := panicsWith(func() { c.Poll(ctx) })
			So(r2, ShouldEqual, boom)
		})
	})
}

func TestFirst(t *testing.T) {
	Convey("Given First over two sources", t, func() {
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)

		Convey("the first to become Ready wins and the other is cancelled", func() {
			loserOv := gogo.NewOnceVar[int]()
			f := gogo.First(gogo.Ready(1), onceVarFuture(loserOv))
			p := f.RunComputation().Poll(ctx)
			So(p.IsReady(), ShouldBeTrue)
			So(p.Value(), ShouldEqual, 1)
			So(loserOv.Abandoned(), ShouldBeTrue)
		})

		Convey("ties favor the left argument", func() {
			f := gogo.First(gogo.Ready(10), gogo.Ready(20))
			p := f.RunComputation().Poll(ctx)
			So(p.Value(), ShouldEqual, 10)
		})

		Convey("Cancel before either side resolves cancels both", func() {
			a := gogo.NewOnceVar[int]()
			b := gogo.NewOnceVar[int]()
			f := gogo.First(onceVarFuture(a), onceVarFuture(b))
			c := f.RunComputation()
			c.Poll(ctx)
			c.Cancel()
			So(a.Abandoned(), ShouldBeTrue)
			So(b.Abandoned(), ShouldBeTrue)
		})

		Convey("given L = sleep then ready(L), R = ready(R), First(L, R) returns R and L's sleep is observed cancelled", func() {
			clock := &fakeClock{}
			l := gogo.Bind(func(gogo.Unit) gogo.Future[string] { return gogo.Ready("L") }, gogo.SleepOn(clock, 10*time.Millisecond))
			r := gogo.Ready("R")
			f := gogo.First(l, r)
			c := f.RunComputation()

			p := c.Poll(ctx)
			So(p.IsReady(), ShouldBeTrue)
			So(p.Value(), ShouldEqual, "R")
			So(clock.last.stopped, ShouldBeTrue)
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Apply waits for both the function and the argument", t, func() {
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)

		fnOv := gogo.NewOnceVar[func(int) int]()
		argOv := gogo.NewOnceVar[int]()
		f := gogo.Apply[int, int](onceVarFuture(fnOv), onceVarFuture(argOv))
		c := f.RunComputation()

		p := c.Poll(ctx)
		So(p.IsReady(), ShouldBeFalse)

		argOv.Write(4)
		p2 := c.Poll(ctx)
		So(p2.IsReady(), ShouldBeFalse)

		fnOv.Write(func(n int) int { return n * n })
		p3 := c.Poll(ctx)
		So(p3.IsReady(), ShouldBeTrue)
		So(p3.Value(), ShouldEqual, 16)
	})
}
