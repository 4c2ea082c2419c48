package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	service "github.com/iPranay05/OneAthleteOneNation-sub000/internal/app"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/config"
	logging "github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromConfig(t *testing.T) {
	Convey("Given a config using the file backend", t, func() {
		ctx := context.Background()
		_ = logging.Init()
		dir := t.TempDir()

		cfg := config.New()
		cfg.StoreBackend = config.BackendFile
		cfg.StateFile = filepath.Join(dir, "state.yaml")
		cfg.DefaultMaxCapacity = 4

		e, err := service.FromConfig(ctx, cfg, logging.Get())
		So(err, ShouldBeNil)
		So(e.Start(ctx), ShouldBeNil)
		defer e.Stop(ctx)

		Convey("A CSV roster file is imported with the configured capacity", func() {
			path := filepath.Join(dir, "roster.csv")
			So(os.WriteFile(path, []byte("id,name,rating\narjun,Arjun,4.8\nmeera,Meera,4.1\n"), 0o600), ShouldBeNil)

			res, err := e.ImportRoster(ctx, path, false)
			So(err, ShouldBeNil)
			So(res.Coaches, ShouldEqual, 2)
			So(res.NewAvailability, ShouldEqual, 2)

			av, err := e.Availability(ctx, "arjun")
			So(err, ShouldBeNil)
			So(av.MaxCapacity, ShouldEqual, 4)

			_, err = os.Stat(cfg.StateFile)
			So(err, ShouldBeNil)
		})

		Convey("A broken roster file is invalid input", func() {
			path := filepath.Join(dir, "roster.csv")
			So(os.WriteFile(path, []byte("name\nArjun\n"), 0o600), ShouldBeNil)

			_, err := e.ImportRoster(ctx, path, false)
			So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
		})
	})

	Convey("Given an unknown backend", t, func() {
		cfg := config.New()
		cfg.StoreBackend = "redis"

		_, err := service.FromConfig(context.Background(), cfg, nil)
		So(err, ShouldNotBeNil)
	})
}
