package gsync_test

import (
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stcrestrada/gogo/v3/gsync"
	"github.com/stcrestrada/gogo/v3/scheduler"
)

func TestSemaphore(t *testing.T) {
	Convey("Given a Semaphore with one permit", t, func() {
		s := gsync.NewSemaphore(1)

		Convey("a second Acquire waits for the first Release", func() {
			p1, err := scheduler.RunSync(s.Acquire().RunComputation())
			So(err, ShouldBeNil)

			acquired := make(chan struct{})
			go func() {
				p2, err := scheduler.RunSync(s.Acquire().RunComputation())
				if err == nil {
					p2.Release()
				}
				close(acquired)
			}()

			select {
			case <-acquired:
				t.Fatal("second Acquire should not be granted while the only permit is held")
			case <-time.After(50 * time.Millisecond):
			}

			p1.Release()
			select {
			case <-acquired:
			case <-time.After(time.Second):
				t.Fatal("second Acquire never granted after release")
			}
		})

		Convey("WithHeld reserves permits up front so Acquire sees fewer available", func() {
			reserved := gsync.NewSemaphore(2, gsync.WithHeld(1))
			p1, err := scheduler.RunSync(reserved.Acquire().RunComputation())
			So(err, ShouldBeNil)

			acquired := make(chan struct{})
			go func() {
				p2, err := scheduler.RunSync(reserved.Acquire().RunComputation())
				if err == nil {
					p2.Release()
				}
				close(acquired)
			}()

			select {
			case <-acquired:
				t.Fatal("second Acquire should not be granted while the held permit keeps capacity at one")
			case <-time.After(50 * time.Millisecond):
			}

			p1.Release()
			select {
			case <-acquired:
			case <-time.After(time.Second):
				t.Fatal("second Acquire never granted after release")
			}
		})

		Convey("at most N permits are held at once", func() {
			sN := gsync.NewSemaphore(2)
			var active, maxActive int
			var mu sync.Mutex
			done := make(chan struct{}, 5)

			for i := 0; i < 5; i++ {
				go func() {
					permit, err := scheduler.RunSync(sN.Acquire().RunComputation())
					if err == nil {
						mu.Lock()
						active++
						if active > maxActive {
							maxActive = active
						}
						mu.Unlock()
						time.Sleep(20 * time.Millisecond)
						mu.Lock()
						active--
						mu.Unlock()
						permit.Release()
					}
					done <- struct{}{}
				}()
			}
			for i := 0; i < 5; i++ {
				<-done
			}
			So(maxActive, ShouldBeLessThanOrEqualTo, 2)
		})
	})
}
