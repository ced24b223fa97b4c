package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/meshrank/internal/loadgen"
)

// Default configuration constants.
const (
	defaultNumProfiles = 200
	defaultTopN        = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numProfiles = flag.Int("profiles", defaultNumProfiles, "Number of synthetic profiles to generate and submit")
		topN        = flag.Int("top", defaultTopN, "Number of recommendations to fetch per user")
		strategy    = flag.String("strategy", "balanced", "Ranking strategy to request")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Output file for generated profiles (default: generated_profiles_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for run output (default: loadgen_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}

	// Setup logging
	if err := loadgen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &loadgen.Config{
		BaseURL:     *baseURL,
		NumProfiles: *numProfiles,
		TopN:        *topN,
		Strategy:    *strategy,
		Workers:     *workers,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the load pass
	if err := loadgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load run failed: " + err.Error() + "\n")
		return
	}
}
