package queue_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/mq/queue"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func decision(id string) model.Decision {
	return model.Decision{ID: id, AthleteID: "ritika", CoachID: "arjun", Role: model.RolePrimary, Accepted: true}
}

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a queue with capacity 2", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		Convey("When enqueuing within capacity", func() {
			So(q.Enqueue(ctx, decision("d1")), ShouldBeNil)
			So(q.Enqueue(ctx, decision("d2")), ShouldBeNil)

			Convey("Then a third decision is refused", func() {
				err := q.Enqueue(ctx, decision("d3"))
				So(errors.Is(err, queue.ErrFull), ShouldBeTrue)
				So(q.Len(), ShouldEqual, 2)
			})

			Convey("Then decisions come out in order", func() {
				ch := q.Dequeue(ctx)
				So((<-ch).ID, ShouldEqual, "d1")
				So((<-ch).ID, ShouldEqual, "d2")
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Enqueue(ctx, decision("d1")), ShouldBeNil)
			So(q.Close(), ShouldBeNil)
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueue fails and consumers drain the rest", func() {
				So(errors.Is(q.Enqueue(ctx, decision("d2")), queue.ErrClosed), ShouldBeTrue)

				var got []string
				for d := range q.Dequeue(ctx) {
					got = append(got, d.ID)
				}
				So(got, ShouldResemble, []string{"d1"})
			})
		})

		Convey("When the context is already cancelled and the queue is full", func() {
			q.Enqueue(ctx, decision("d1"))
			q.Enqueue(ctx, decision("d2"))
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			Convey("Then enqueue returns an error", func() {
				So(q.Enqueue(cctx, decision("d3")), ShouldNotBeNil)
			})
		})
	})
}

func TestInMemoryQueueConcurrent(t *testing.T) {
	Convey("Given producers and consumers sharing a queue", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))

		const producers = 4
		const perProducer = 50
		var consumed sync.WaitGroup
		consumed.Add(producers * perProducer)
		ch := q.Dequeue(ctx)
		go func() {
			for range ch {
				consumed.Done()
			}
		}()

		var wg sync.WaitGroup
		for p := 0; p < producers; p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				for i := 0; i < perProducer; i++ {
					for q.Enqueue(ctx, decision(fmt.Sprintf("d%d-%d", p, i))) != nil {
						time.Sleep(time.Millisecond)
					}
				}
			}(p)
		}
		wg.Wait()
		consumed.Wait()

		Convey("Then everything was delivered", func() {
			So(q.Len(), ShouldEqual, 0)
		})
	})
}
