package config_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/okian/meshrank/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	vars := []string{
		"MESHRANK_CONFIG",
		"MESHRANK_ADDR",
		"MESHRANK_LOG_LEVEL",
		"MESHRANK_QUEUE_SIZE",
		"MESHRANK_WORKER_COUNT",
		"MESHRANK_MAX_TOP_N",
		"MESHRANK_RED_FLAG_THRESHOLD",
		"MESHRANK_MIN_GEM_SCORE",
		"MESHRANK_WEIGHT_PRESET",
		"MESHRANK_PREDICTOR_ENABLED",
		"MESHRANK_PREDICT_LATENCY_MIN_MS",
		"MESHRANK_PREDICT_LATENCY_MAX_MS",
	}
	for _, v := range vars {
		_ = os.Unsetenv(v)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 100_000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
				convey.So(cfg.WeightPreset, convey.ShouldEqual, "default")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("MESHRANK_ADDR", ":8080")
			_ = os.Setenv("MESHRANK_QUEUE_SIZE", "50000")
			_ = os.Setenv("MESHRANK_WORKER_COUNT", "16")
			_ = os.Setenv("MESHRANK_WEIGHT_PRESET", "mentorship")
			_ = os.Setenv("MESHRANK_RED_FLAG_THRESHOLD", "75")
			_ = os.Setenv("MESHRANK_PREDICTOR_ENABLED", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 50000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.WeightPreset, convey.ShouldEqual, "mentorship")
				convey.So(cfg.RedFlagThreshold, convey.ShouldEqual, 75)
				convey.So(cfg.PredictorEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			clearConfigEnvVars()

			content := []byte("addr: \":7070\"\nmax_top_n: 25\nweight_preset: roi\nmin_gem_score: 65\n")
			path := filepath.Join(t.TempDir(), "meshrank.yaml")
			convey.So(os.WriteFile(path, content, 0o600), convey.ShouldBeNil)
			_ = os.Setenv("MESHRANK_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 25)
				convey.So(cfg.WeightPreset, convey.ShouldEqual, "roi")
				convey.So(cfg.MinGemScore, convey.ShouldEqual, 65)
			})
		})

		convey.Convey("When env vars and a file both set the same key", func() {
			clearConfigEnvVars()

			content := []byte("addr: \":7070\"\n")
			path := filepath.Join(t.TempDir(), "meshrank.yaml")
			convey.So(os.WriteFile(path, content, 0o600), convey.ShouldBeNil)
			_ = os.Setenv("MESHRANK_CONFIG", path)
			_ = os.Setenv("MESHRANK_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the environment should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()
			_ = os.Setenv("MESHRANK_CONFIG", "/nonexistent/meshrank.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the latency bounds are inverted", func() {
			clearConfigEnvVars()
			_ = os.Setenv("MESHRANK_PREDICT_LATENCY_MIN_MS", "200")
			_ = os.Setenv("MESHRANK_PREDICT_LATENCY_MAX_MS", "100")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation should reject the config", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
