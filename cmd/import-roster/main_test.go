package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestImportRoster(t *testing.T) {
	_ = logger.Init()

	Convey("Given a file-backed store and a CSV roster", t, func() {
		dir := t.TempDir()
		state := filepath.Join(dir, "state.yaml")
		roster := filepath.Join(dir, "roster.csv")
		So(os.WriteFile(roster, []byte("id,name,specialization\nshubham,Shubham,Sprint\narjun,Arjun,Distance\n"), 0o600), ShouldBeNil)

		t.Setenv("COACHES_STORE_BACKEND", "file")
		t.Setenv("COACHES_STATE_FILE", state)

		Convey("When the roster is imported", func() {
			res, err := importRoster(context.Background(), roster, true)
			So(err, ShouldBeNil)

			Convey("Then every coach is stored with fresh availability", func() {
				So(res.Coaches, ShouldEqual, 2)
				So(res.NewAvailability, ShouldEqual, 2)
				So(res.Replaced, ShouldBeTrue)

				_, statErr := os.Stat(state)
				So(statErr, ShouldBeNil)
			})

			Convey("And a second import creates no new availability", func() {
				again, err := importRoster(context.Background(), roster, false)
				So(err, ShouldBeNil)
				So(again.Coaches, ShouldEqual, 2)
				So(again.NewAvailability, ShouldEqual, 0)
			})
		})

		Convey("When the roster file does not exist", func() {
			_, err := importRoster(context.Background(), filepath.Join(dir, "nope.csv"), false)

			Convey("Then the import fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
