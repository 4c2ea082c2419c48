package loadtest_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/http/api"
	service "github.com/iPranay05/OneAthleteOneNation-sub000/internal/app"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/loadtest"
	logging "github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given a running service with three coaches", t, func() {
		ctx := context.Background()
		gin.SetMode(gin.TestMode)
		_ = logging.Init()

		e := service.New(service.WithWorkerCount(4))
		So(e.Start(ctx), ShouldBeNil)
		defer e.Stop(ctx)
		_, err := e.SyncRoster(ctx, []model.Coach{
			{ID: "arjun", Rating: 4.8},
			{ID: "meera", Rating: 4.1},
			{ID: "shubham", Rating: 4.6},
		}, true)
		So(err, ShouldBeNil)

		srv := httptest.NewServer(api.NewServer(e).Router(ctx))
		defer srv.Close()

		Convey("When a load run submits decisions and fails over a coach", func() {
			stats, err := loadtest.Run(ctx, &loadtest.Config{
				BaseURL:    srv.URL,
				Athletes:   20,
				Duplicates: 5,
				Workers:    4,
				Timeout:    5 * time.Second,
				Settle:     5 * time.Second,
				Failover:   true,
				Prefix:     "t-",
			})

			Convey("Then every decision is applied once and every athlete moves", func() {
				So(err, ShouldBeNil)
				So(stats.DecisionsGenerated, ShouldEqual, 45)
				So(stats.Accepted, ShouldEqual, 40)
				So(stats.Duplicate, ShouldEqual, 5)
				So(stats.Verified, ShouldEqual, 20)
				So(stats.FailedOver, ShouldEqual, 7)
				So(stats.Gaps, ShouldEqual, 0)
			})
		})

		Convey("When the service has a single coach", func() {
			_, err := e.SyncRoster(ctx, []model.Coach{{ID: "arjun"}}, true)
			So(err, ShouldBeNil)

			_, err = loadtest.Run(ctx, &loadtest.Config{BaseURL: srv.URL, Athletes: 2, Workers: 1, Timeout: time.Second})

			Convey("Then the run refuses to start", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "at least two")
			})
		})
	})
}
