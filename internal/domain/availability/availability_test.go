package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/availability"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/directory"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeLoads map[string]int

func (f fakeLoads) PrimaryCount(coachID string) int { return f[coachID] }

func statusPtr(s model.AvailabilityStatus) *model.AvailabilityStatus { return &s }
func intPtr(i int) *int                                              { return &i }

func TestTracker(t *testing.T) {
	Convey("Given a tracker over three coaches", t, func() {
		ctx := context.Background()
		now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
		loads := fakeLoads{}
		dir := directory.New()
		dir.Replace(ctx, []model.Coach{
			{ID: "arjun", Rating: 4.5},
			{ID: "meera", Rating: 4.9},
			{ID: "shubham", Rating: 4.5},
		})
		tr := availability.New(loads, dir,
			availability.WithDefaultCapacity(2),
			availability.WithClock(func() time.Time { return now }),
		)
		for _, c := range dir.List(ctx) {
			tr.Ensure(ctx, c.ID)
		}

		Convey("Then default records are available with the configured capacity", func() {
			rec, ok := tr.Get(ctx, "arjun")
			So(ok, ShouldBeTrue)
			So(rec.Status, ShouldEqual, model.StatusAvailable)
			So(rec.MaxCapacity, ShouldEqual, 2)
			So(rec.LastUpdated, ShouldEqual, now)
		})

		Convey("Then Available orders by rating then ID", func() {
			ids := coachIDs(tr.Available(ctx, nil))
			So(ids, ShouldResemble, []string{"meera", "arjun", "shubham"})
		})

		Convey("When a coach is at capacity", func() {
			loads["meera"] = 2

			Convey("Then it is filtered out regardless of status", func() {
				So(coachIDs(tr.Available(ctx, nil)), ShouldResemble, []string{"arjun", "shubham"})
				rec, _ := tr.Get(ctx, "meera")
				So(rec.CurrentLoad, ShouldEqual, 2)
			})
		})

		Convey("When a coach is excluded or unavailable", func() {
			_, err := tr.Update(ctx, "shubham", model.AvailabilityPatch{Status: statusPtr(model.StatusUnavailable)})
			So(err, ShouldBeNil)

			Convey("Then neither shows up", func() {
				So(coachIDs(tr.Available(ctx, []string{"meera"})), ShouldResemble, []string{"arjun"})
			})
		})

		Convey("When updating dates and schedule", func() {
			later := now.Add(time.Hour)
			now = later
			rec, err := tr.Update(ctx, "arjun", model.AvailabilityPatch{
				Schedule:            model.Schedule{"sunday": {IsOpen: true, Hours: "08:00-12:00"}},
				AddUnavailableDates: []string{"2024-03-09", "2024-03-08", "2024-03-09"},
			})
			So(err, ShouldBeNil)

			Convey("Then the patch is merged and stamped", func() {
				So(rec.UnavailableDates, ShouldResemble, []string{"2024-03-08", "2024-03-09"})
				So(rec.Schedule.OpenOn(time.Sunday), ShouldBeTrue)
				So(rec.Schedule.OpenOn(time.Monday), ShouldBeTrue)
				So(rec.LastUpdated, ShouldEqual, later)
				So(tr.IsUnavailableOn(ctx, "arjun", "2024-03-08"), ShouldBeTrue)
				So(tr.OpenOn(ctx, "arjun", time.Sunday), ShouldBeTrue)
			})

			Convey("And removing a date", func() {
				rec, err = tr.Update(ctx, "arjun", model.AvailabilityPatch{RemoveUnavailableDates: []string{"2024-03-08"}})
				So(err, ShouldBeNil)
				So(rec.UnavailableDates, ShouldResemble, []string{"2024-03-09"})
			})
		})

		Convey("When a patch is invalid", func() {
			_, errCap := tr.Update(ctx, "arjun", model.AvailabilityPatch{MaxCapacity: intPtr(0)})
			_, errStatus := tr.Update(ctx, "arjun", model.AvailabilityPatch{Status: statusPtr("busy")})
			_, errID := tr.Update(ctx, "", model.AvailabilityPatch{})

			Convey("Then it is rejected", func() {
				So(errors.Is(errCap, availability.ErrInvalidPatch), ShouldBeTrue)
				So(errors.Is(errStatus, availability.ErrInvalidPatch), ShouldBeTrue)
				So(errors.Is(errID, availability.ErrEmptyCoachID), ShouldBeTrue)
			})
		})

		Convey("When updating an unknown coach", func() {
			rec, err := tr.Update(ctx, "ghost", model.AvailabilityPatch{MaxCapacity: intPtr(5)})

			Convey("Then a default record is created first", func() {
				So(err, ShouldBeNil)
				So(rec.Status, ShouldEqual, model.StatusAvailable)
				So(rec.MaxCapacity, ShouldEqual, 5)
				So(len(tr.All(ctx)), ShouldEqual, 4)
			})
		})

		Convey("When loading stored records", func() {
			tr.Load(ctx, []model.Availability{{CoachID: "arjun", Status: model.StatusUnavailable, MaxCapacity: 1, CurrentLoad: 99}})

			Convey("Then the stored load is ignored", func() {
				rec, ok := tr.Get(ctx, "arjun")
				So(ok, ShouldBeTrue)
				So(rec.CurrentLoad, ShouldEqual, 0)
				_, ok = tr.Get(ctx, "meera")
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func coachIDs(cs []model.Coach) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
