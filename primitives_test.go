package gogo_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stcrestrada/gogo/v3"
)

func TestReadyUnitNever(t *testing.T) {
	Convey("Ready is Ready on the very first poll, every run", t, func() {
		f := gogo.Ready(10)
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)

		c1 := f.RunComputation()
		p1 := c1.Poll(ctx)
		So(p1.IsReady(), ShouldBeTrue)
		So(p1.Value(), ShouldEqual, 10)

		c2 := f.RunComputation()
		p2 := c2.Poll(ctx)
		So(p2.IsReady(), ShouldBeTrue)
		So(p2.Value(), ShouldEqual, 10)
	})

	Convey("Never is permanently Pending", t, func() {
		f := gogo.Never[string]()
		waker, wakeCount := countingWaker()
		ctx := gogo.NewContext(waker)
		c := f.RunComputation()

		for i := 0; i < 5; i++ {
			p := c.Poll(ctx)
			So(p.IsReady(), ShouldBeFalse)
		}
		So(wakeCount(), ShouldEqual, 0)
	})

	Convey("UnitFuture resolves to Unit", t, func() {
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)
		p := gogo.UnitFuture().RunComputation().Poll(ctx)
		So(p.IsReady(), ShouldBeTrue)
		So(p.Value(), ShouldEqual, gogo.Unit{})
	})
}

func TestLazy(t *testing.T) {
	Convey("Lazy only evaluates f once, on first poll", t, func() {
		calls := 0
		f := gogo.Lazy(func() int {
			calls++
			return calls
		})
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)
		c := f.RunComputation()

		p1 := c.Poll(ctx)
		So(p1.IsReady(), ShouldBeTrue)
		So(p1.Value(), ShouldEqual, 1)

		p2 := c.Poll(ctx)
		So(p2.IsReady(), ShouldBeTrue)
		So(p2.Value(), ShouldEqual, 1)
		So(calls, ShouldEqual, 1)
	})
}

func TestDelay(t *testing.T) {
	Convey("Delay defers creator until first poll and forwards afterward", t, func() {
		created := 0
		ov := gogo.NewOnceVar[int]()
		f := gogo.Delay(func() gogo.Future[int] {
			created++
			return onceVarFuture(ov)
		})
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)
		c := f.RunComputation()

		So(created, ShouldEqual, 0)
		p := c.Poll(ctx)
		So(p.IsReady(), ShouldBeFalse)
		So(created, ShouldEqual, 1)

		ov.Write(99)
		p2 := c.Poll(ctx)
		So(p2.IsReady(), ShouldBeTrue)
		So(p2.Value(), ShouldEqual, 99)
		So(created, ShouldEqual, 1)
	})

	Convey("Cancelling Delay before creator ran prevents the inner computation from ever starting", t, func() {
		created := 0
		f := gogo.Delay(func() gogo.Future[int] {
			created++
			return gogo.Never[int]()
		})
		c := f.RunComputation()
		c.Cancel()
		So(created, ShouldEqual, 0)

		waker, _ := countingWaker()
		r := panicsWith(func() { c.Poll(gogo.NewContext(waker)) })
		So(r, ShouldEqual, gogo.ErrFutureCancelled)
	})

	Convey("Cancelling Delay after the inner computation was created cancels that inner computation too", t, func() {
		inner := gogo.NewOnceVar[int]()
		f := gogo.Delay(func() gogo.Future[int] { return onceVarFuture(inner) })
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)
		c := f.RunComputation()

		c.Poll(ctx) // forces creator() to run, building inner
		c.Cancel()

		So(inner.Abandoned(), ShouldBeTrue)
	})
}
