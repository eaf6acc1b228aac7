package gogo_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stcrestrada/gogo/v3"
)

func TestIter(t *testing.T) {
	Convey("Iter drives the body over every item in order", t, func() {
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)

		var seen []int
		f := gogo.Iter([]int{1, 2, 3}, func(x int) gogo.Future[gogo.Unit] {
			return gogo.Map(func(gogo.Unit) gogo.Unit {
				seen = append(seen, x)
				return gogo.Unit{}
			}, gogo.UnitFuture())
		})
		p := f.RunComputation().Poll(ctx)
		So(p.IsReady(), ShouldBeTrue)
		So(seen, ShouldResemble, []int{1, 2, 3})
	})

	Convey("Iter resumes exactly where it left off across a Pending item", t, func() {
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)

		gate := gogo.NewOnceVar[gogo.Unit]()
		var seen []int
		f := gogo.Iter([]int{1, 2}, func(x int) gogo.Future[gogo.Unit] {
			if x == 2 {
				return onceVarFuture(gate)
			}
			seen = append(seen, x)
			return gogo.UnitFuture()
		})
		c := f.RunComputation()

		p1 := c.Poll(ctx)
		So(p1.IsReady(), ShouldBeFalse)
		So(seen, ShouldResemble, []int{1})

		gate.Write(gogo.Unit{})
		p2 := c.Poll(ctx)
		So(p2.IsReady(), ShouldBeTrue)
	})

	Convey("Cancelling Iter mid-sequence cancels the in-flight item and latches cancellation", t, func() {
		waker, _ := countingWaker()
		ctx := gogo.NewContext(waker)

		gate := gogo.NewOnceVar[gogo.Unit]()
		f := gogo.Iter([]int{1}, func(x int) gogo.Future[gogo.Unit] {
			return onceVarFuture(gate)
		})
		c := f.RunComputation()
		c.Poll(ctx)
		c.Cancel()
		So(gate.Abandoned(), ShouldBeTrue)

		r := panicsWith(func() { c.Poll(ctx) })
		So(r, ShouldEqual, gogo.ErrFutureCancelled)
	})
}
