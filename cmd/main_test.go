package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/okian/meshrank/internal/adapters/http/api"
	app "github.com/okian/meshrank/internal/app"
	"github.com/okian/meshrank/internal/config"
	"github.com/okian/meshrank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainComponents(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("MESHRANK_ADDR", ":8080")
			_ = os.Setenv("MESHRANK_QUEUE_SIZE", "1000")
			_ = os.Setenv("MESHRANK_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("MESHRANK_ADDR")
				_ = os.Unsetenv("MESHRANK_QUEUE_SIZE")
				_ = os.Unsetenv("MESHRANK_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When creating the service", func() {
			convey.Convey("Then it should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And with custom options", func() {
				svc := app.New(
					app.WithWorkerCount(8),
					app.WithQueueSize(2000),
					app.WithWeightPreset("mentorship"),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating the HTTP server", func() {
			svc := app.New()

			convey.Convey("Then it should register routes on a mux", func() {
				server := api.NewServer(svc, svc, 100, 50)
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				convey.So(func() {
					server.Register(context.Background(), mux)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When creating a metrics manager", func() {
			registry := prometheus.NewRegistry()
			manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
			convey.So(manager, convey.ShouldNotBeNil)
		})
	})
}

func TestServiceMetricsUpdater(t *testing.T) {
	convey.Convey("Given the service metrics updater", t, func() {
		svc := app.New()
		convey.So(svc, convey.ShouldNotBeNil)

		convey.Convey("When it runs until its context expires", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startServiceMetricsUpdater(ctx, svc)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When metrics are refreshed from an idle service", func() {
			convey.So(func() {
				updateServiceMetrics(svc)
			}, convey.ShouldNotPanic)
		})
	})
}

func TestMainErrorHandling(t *testing.T) {
	convey.Convey("Given invalid configuration", t, func() {
		convey.Convey("When the address is blanked out", func() {
			_ = os.Setenv("MESHRANK_ADDR", "")
			defer func() { _ = os.Unsetenv("MESHRANK_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the service is created with extreme option values", func() {
			svc := app.New(
				app.WithWorkerCount(0),
				app.WithQueueSize(0),
			)

			convey.Convey("Then the defaults should take over", func() {
				convey.So(svc, convey.ShouldNotBeNil)
				stats := svc.GetStats()
				convey.So(stats, convey.ShouldNotBeNil)
			})
		})
	})
}
