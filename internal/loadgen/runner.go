package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/meshrank/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	outputPermission    = 0600
)

// Run executes the complete load and verification pass.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting meshrank load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("profiles", config.NumProfiles),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("strategy", config.Strategy),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate profiles
	profiles, err := generateProfiles(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("profile generation failed: %w", err)
	}

	// Step 3: Submit the ingestion batch
	if err := submitProfiles(ctx, config, profiles, stats); err != nil {
		return fmt.Errorf("profile submission failed: %w", err)
	}

	// Step 4: Wait for the scoring backlog to drain
	if err := waitForDrain(ctx, config); err != nil {
		return fmt.Errorf("scoring drain failed: %w", err)
	}

	// Step 5: Retrieve recommendations concurrently
	results, err := fetchRecommendations(ctx, config, profiles, stats)
	if err != nil {
		return fmt.Errorf("recommendation retrieval failed: %w", err)
	}

	// Step 6: Verify invariants
	if err := verifyResults(ctx, config, results, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 7: Save profiles to file
	if err := saveProfilesToFile(ctx, config, profiles); err != nil {
		logger.Get().Warn(ctx, "failed to save profiles to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "load run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the endpoint serves Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// waitForDrain polls /stats until the scoring job queue is empty.
func waitForDrain(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "waiting for pair scoring to finish")

	client := newHTTPClient(config.Timeout)
	deadline := time.Now().Add(drainTimeout)

	for {
		if time.Now().After(deadline) {
			return fmt.Errorf("scoring queue did not drain within %s", drainTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(drainPollInterval):
		}

		snapshot, err := fetchStats(ctx, client, config.BaseURL)
		if err != nil {
			logger.Get().Warn(ctx, "stats poll failed", logger.Error(err))
			continue
		}
		if snapshot.QueueLength == 0 {
			logger.Get().Info(ctx, "scoring queue drained",
				logger.Int("scoredPairs", snapshot.ScoredPairs))
			return nil
		}
		if config.Verbose {
			logger.Get().Info(ctx, "scoring in progress",
				logger.Int("queueLength", snapshot.QueueLength),
				logger.Int("scoredPairs", snapshot.ScoredPairs))
		}
	}
}

// saveProfilesToFile saves the generated profiles to a JSON file.
func saveProfilesToFile(ctx context.Context, config *Config, profiles []Profile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_profiles_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	if err := os.WriteFile(filename, data, outputPermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "profiles saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var recsPerUser float64
	if stats.UsersQueried > 0 {
		recsPerUser = float64(stats.RecommendationsTotal) / float64(stats.UsersQueried)
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("profilesAccepted", stats.ProfilesAccepted),
		logger.Int("pairsEnqueued", stats.PairsEnqueued),
		logger.Int("usersQueried", stats.UsersQueried),
		logger.Int("recommendationsTotal", stats.RecommendationsTotal),
		logger.Int("verificationFailures", stats.VerificationFailures),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("recommendationsPerUser", recsPerUser))
}
