package failover_test

import (
	"context"
	"testing"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/failover"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/ledger"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCoordinatorRun(t *testing.T) {
	Convey("Given shubham coaching three athletes", t, func() {
		ctx := context.Background()
		l := ledger.New()
		l.AssignPrimary(ctx, "ritika", "Ritika", "shubham")
		l.AddSecondary(ctx, "ritika", "arjun", 1)

		l.AssignPrimary(ctx, "dev", "Dev", "shubham")
		l.AddSecondary(ctx, "dev", "meera", 2)
		l.AddSecondary(ctx, "dev", "arjun", 1)

		l.AssignPrimary(ctx, "kabir", "Kabir", "shubham")
		l.AssignPrimary(ctx, "zoya", "Zoya", "meera")

		c := failover.New(l)

		Convey("When shubham becomes unavailable", func() {
			results, changed := c.Run(ctx, "shubham", "scheduling conflict")

			Convey("Then results are ordered by athlete", func() {
				So(len(results), ShouldEqual, 3)
				So(results[0].AthleteID, ShouldEqual, "dev")
				So(results[1].AthleteID, ShouldEqual, "kabir")
				So(results[2].AthleteID, ShouldEqual, "ritika")
			})

			Convey("Then backups are promoted by priority", func() {
				So(results[0].Success, ShouldBeTrue)
				So(results[0].NewPrimaryCoachID, ShouldEqual, "arjun")
				dev, _ := l.Get(ctx, "dev")
				So(dev.SecondaryCoaches, ShouldHaveLength, 1)
				So(dev.SecondaryCoaches[0].CoachID, ShouldEqual, "meera")

				ritika, _ := l.Get(ctx, "ritika")
				So(ritika.PrimaryCoachID(), ShouldEqual, "arjun")
				So(ritika.SecondaryCoaches, ShouldBeEmpty)
				last := ritika.History[len(ritika.History)-1]
				So(last.Action, ShouldEqual, model.ActionAutomaticFailover)
				So(last.Reason, ShouldEqual, "Primary coach scheduling conflict")
			})

			Convey("Then the gap is reported without clearing the primary", func() {
				So(results[1].Success, ShouldBeFalse)
				So(results[1].ErrorReason, ShouldEqual, failover.GapReason)
				So(results[1].NewPrimaryCoachID, ShouldEqual, "")
				kabir, _ := l.Get(ctx, "kabir")
				So(kabir.PrimaryCoachID(), ShouldEqual, "shubham")
				So(kabir.History, ShouldHaveLength, 1)
			})

			Convey("Then only rewritten records are returned for saving", func() {
				So(changed, ShouldHaveLength, 2)
			})

			Convey("Then other coaches' athletes are untouched", func() {
				zoya, _ := l.Get(ctx, "zoya")
				So(zoya.History, ShouldHaveLength, 1)
			})

			Convey("And running it again", func() {
				again, changedAgain := c.Run(ctx, "shubham", "scheduling conflict")

				Convey("Then migrated athletes are not touched", func() {
					So(again, ShouldHaveLength, 1)
					So(again[0].AthleteID, ShouldEqual, "kabir")
					So(changedAgain, ShouldBeEmpty)
					ritika, _ := l.Get(ctx, "ritika")
					So(ritika.History, ShouldHaveLength, 4)
				})
			})
		})

		Convey("When shubham fails over without a reason", func() {
			c.Run(ctx, "shubham", "  ")

			Convey("Then the default reason is recorded", func() {
				ritika, _ := l.Get(ctx, "ritika")
				last := ritika.History[len(ritika.History)-1]
				So(last.Reason, ShouldEqual, "Primary coach "+failover.DefaultReason)
			})
		})

		Convey("When a coach with no athletes fails over", func() {
			results, changed := c.Run(ctx, "nobody", "away")
			So(results, ShouldBeEmpty)
			So(changed, ShouldBeEmpty)
		})
	})
}
