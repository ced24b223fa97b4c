package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with degenerate option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults should survive", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("When recording scoring metrics", func() {
			Convey("Then it should record processed jobs", func() {
				So(func() {
					RecordJobProcessed()
					RecordJobProcessed()
					RecordJobProcessed()
				}, ShouldNotPanic)
			})

			Convey("And it should record ingested profiles", func() {
				So(func() {
					RecordProfileIngested()
					RecordProfileIngested()
				}, ShouldNotPanic)
			})

			Convey("And it should record scoring latency", func() {
				So(func() {
					RecordScoringLatency(100.0)
					RecordScoringLatency(150.0)
					RecordScoringLatency(200.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record stored pairs", func() {
				So(func() {
					RecordPairStored()
					RecordPairStored()
				}, ShouldNotPanic)
			})

			Convey("And it should record red flags and hidden gems", func() {
				So(func() {
					RecordRedFlagDetected()
					RecordHiddenGemFound()
				}, ShouldNotPanic)
			})

			Convey("And it should record batch runs", func() {
				So(func() {
					RecordBatchRun()
					RecordBatchRunDuration(250.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording operational metrics", func() {
			Convey("Then it should update queue size", func() {
				So(func() {
					UpdateQueueSize(1000)
					UpdateQueueSize(2000)
					UpdateQueueSize(500)
				}, ShouldNotPanic)
			})

			Convey("And it should update worker count", func() {
				So(func() {
					UpdateWorkerCount(8)
					UpdateWorkerCount(16)
					UpdateWorkerCount(4)
				}, ShouldNotPanic)
			})

			Convey("And it should update store gauges", func() {
				So(func() {
					UpdateProfileCount(10000)
					UpdatePairCount(150000)
					UpdateCorpusSkillCount(800)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record HTTP requests", func() {
				So(func() {
					RecordHTTPRequest("/healthz", "GET", "200")
					RecordHTTPRequest("/profiles", "POST", "202")
					RecordHTTPRequest("/recommendations/", "GET", "200")
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP request duration", func() {
				So(func() {
					RecordHTTPRequestDuration("/healthz", "GET", "200", 5.0)
					RecordHTTPRequestDuration("/profiles", "POST", "202", 10.0)
					RecordHTTPRequestDuration("/recommendations/", "GET", "200", 15.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record scoring errors", func() {
				So(func() {
					RecordScoringError()
					RecordScoringError()
				}, ShouldNotPanic)
			})

			Convey("And it should record pair store errors", func() {
				So(func() {
					RecordPairStoreError()
					RecordPairStoreError()
				}, ShouldNotPanic)
			})

			Convey("And it should record errors by component", func() {
				So(func() {
					RecordErrorByComponent("scoring", "timeout")
					RecordErrorByComponent("repository", "not_found")
					RecordErrorByComponent("queue", "full")
				}, ShouldNotPanic)
			})

			Convey("And it should record errors by type", func() {
				So(func() {
					RecordErrorByType("timeout", "error")
					RecordErrorByType("validation_error", "warning")
				}, ShouldNotPanic)
			})

			Convey("And it should record errors by endpoint", func() {
				So(func() {
					RecordErrorByEndpoint("/profiles", "POST", "timeout")
					RecordErrorByEndpoint("/gems/", "GET", "not_found")
					RecordErrorByEndpoint("/compatibility", "POST", "validation_error")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording queue metrics", func() {
			So(func() {
				UpdateQueueCapacity(100000)
				UpdateQueueUtilization(0.75)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordQueueProcessingLatency(20.0)
			}, ShouldNotPanic)
		})

		Convey("When recording worker metrics", func() {
			So(func() {
				UpdateWorkerActiveCount(4)
				UpdateWorkerIdleCount(2)
				UpdateWorkerMessagesPerSecond(150.0)
				RecordWorkerProcessingLatency(50.0)
				RecordWorkerError()
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When using zero values", func() {
			So(func() {
				UpdateQueueSize(0)
				UpdateWorkerCount(0)
				UpdateProfileCount(0)
				RecordScoringLatency(0.0)
				RecordHTTPRequestDuration("/test", "GET", "200", 0.0)
			}, ShouldNotPanic)
		})

		Convey("When using negative values", func() {
			So(func() {
				UpdateQueueSize(-100)
				UpdateWorkerCount(-10)
				UpdatePairCount(-1000)
			}, ShouldNotPanic)
		})

		Convey("When using very large values", func() {
			So(func() {
				UpdateQueueSize(1000000)
				UpdatePairCount(10000000)
				RecordScoringLatency(10000.0)
				RecordHTTPRequestDuration("/test", "GET", "200", 30000.0)
			}, ShouldNotPanic)
		})

		Convey("When using empty label values", func() {
			So(func() {
				RecordHTTPRequest("", "", "200")
				RecordHTTPRequestDuration("", "", "200", 10.0)
				RecordErrorByComponent("", "")
				RecordErrorByType("", "")
				RecordErrorByEndpoint("", "", "")
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent metric writers", t, func() {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordJobProcessed()
					UpdateQueueSize(1000 + j)
					RecordScoringLatency(float64(j))
					RecordHTTPRequest("/test", "GET", "200")
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		Convey("Then concurrent access should not panic", func() {
			So(true, ShouldBeTrue)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should be the custom registry", func() {
				So(registry, ShouldNotBeNil)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
