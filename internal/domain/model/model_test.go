package model_test

import (
	"testing"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAssignmentClone(t *testing.T) {
	Convey("Given an assignment with a primary, a backup and history", t, func() {
		prio := 1
		a := model.Assignment{
			AthleteID:        "ritika",
			AthleteName:      "Ritika",
			PrimaryCoach:     &model.CoachSlot{CoachID: "shubham", Status: model.SlotActive},
			SecondaryCoaches: []model.SecondaryCoach{{CoachID: "arjun", Priority: 1, Status: model.SlotStandby}},
			History:          []model.HistoryEntry{{ID: "h1", Action: model.ActionSecondaryAdded, Priority: &prio}},
		}

		Convey("When the clone is mutated", func() {
			c := a.Clone()
			c.PrimaryCoach.CoachID = "other"
			c.SecondaryCoaches[0].Priority = 9
			*c.History[0].Priority = 7

			Convey("Then the original is untouched", func() {
				So(a.PrimaryCoach.CoachID, ShouldEqual, "shubham")
				So(a.SecondaryCoaches[0].Priority, ShouldEqual, 1)
				So(*a.History[0].Priority, ShouldEqual, 1)
			})
		})

		Convey("Then the helpers read the slots", func() {
			So(a.PrimaryCoachID(), ShouldEqual, "shubham")
			So(a.HasSecondary("arjun"), ShouldBeTrue)
			So(a.HasSecondary("shubham"), ShouldBeFalse)
			So(model.Assignment{}.PrimaryCoachID(), ShouldEqual, "")
		})
	})
}

func TestAvailabilityHelpers(t *testing.T) {
	Convey("Given an availability record", t, func() {
		a := model.Availability{
			CoachID:          "shubham",
			Status:           model.StatusAvailable,
			Schedule:         model.DefaultSchedule(),
			CurrentLoad:      2,
			MaxCapacity:      3,
			UnavailableDates: model.NormalizeDates([]string{"2024-03-02", " 2024-03-01", "2024-03-02", ""}),
		}

		Convey("Then dates are sorted and unique", func() {
			So(a.UnavailableDates, ShouldResemble, []string{"2024-03-01", "2024-03-02"})
			So(a.IsUnavailableOn("2024-03-01"), ShouldBeTrue)
			So(a.IsUnavailableOn("2024-03-05"), ShouldBeFalse)
		})

		Convey("Then the default schedule is open on weekdays only", func() {
			So(a.Schedule.OpenOn(time.Monday), ShouldBeTrue)
			So(a.Schedule.OpenOn(time.Sunday), ShouldBeFalse)
		})

		Convey("Then capacity is checked against the derived load", func() {
			So(a.HasCapacity(), ShouldBeTrue)
			a.CurrentLoad = 3
			So(a.HasCapacity(), ShouldBeFalse)
		})

		Convey("Then a clone does not share the schedule", func() {
			c := a.Clone()
			c.Schedule["monday"] = model.DaySchedule{}
			So(a.Schedule.OpenOn(time.Monday), ShouldBeTrue)
		})

		Convey("Then statuses validate", func() {
			So(model.StatusAvailable.Valid(), ShouldBeTrue)
			So(model.AvailabilityStatus("busy").Valid(), ShouldBeFalse)
		})
	})
}
