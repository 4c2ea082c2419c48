package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("COACHES_ADDR", ":8080")
			_ = os.Setenv("COACHES_STORE_BACKEND", "file")
			_ = os.Setenv("COACHES_STATE_FILE", "/tmp/state.yaml")
			_ = os.Setenv("COACHES_REQUEST_WORKERS", "16")
			_ = os.Setenv("COACHES_ENABLE_PPROF", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendFile)
				convey.So(cfg.StateFile, convey.ShouldEqual, "/tmp/state.yaml")
				convey.So(cfg.RequestWorkers, convey.ShouldEqual, 16)
				convey.So(cfg.EnablePprof, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempFile("config-*.yaml", `
# persistence
addr: ":9090"
default_max_capacity: 12
persist_retries: 5
cors_origins: "https://admin.example"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("COACHES_CONFIG", tmpFile)
			_ = os.Setenv("COACHES_PERSIST_RETRIES", "1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DefaultMaxCapacity, convey.ShouldEqual, 12)
				convey.So(cfg.PersistRetries, convey.ShouldEqual, 1)
				convey.So(cfg.Origins(), convey.ShouldResemble, []string{"https://admin.example"})
			})
		})

		convey.Convey("When a .env file is present", func() {
			tmpFile := createTempFile("coaches-*.env", "COACHES_DEFAULT_MAX_CAPACITY=7\nCOACHES_ADDR=:7000\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("COACHES_ENV_FILE", tmpFile)
			_ = os.Setenv("COACHES_ADDR", ":6000")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it fills unset variables only", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DefaultMaxCapacity, convey.ShouldEqual, 7)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6000")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile("config-*.yaml", "addr: [unclosed\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("COACHES_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("COACHES_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("COACHES_REQUEST_QUEUE_SIZE", "lots")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the postgres backend has no DSN", func() {
			_ = os.Setenv("COACHES_STORE_BACKEND", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "postgres_dsn")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"COACHES_CONFIG",
		"COACHES_ENV_FILE",
		"COACHES_ADDR",
		"COACHES_STORE_BACKEND",
		"COACHES_STATE_FILE",
		"COACHES_REQUEST_WORKERS",
		"COACHES_REQUEST_QUEUE_SIZE",
		"COACHES_ENABLE_PPROF",
		"COACHES_PERSIST_RETRIES",
		"COACHES_DEFAULT_MAX_CAPACITY",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
