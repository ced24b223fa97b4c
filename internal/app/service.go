// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/meshrank/internal/adapters/mq/queue"
	workerpool "github.com/okian/meshrank/internal/adapters/mq/worker"
	repository "github.com/okian/meshrank/internal/adapters/repository"
	"github.com/okian/meshrank/internal/domain/compat"
	"github.com/okian/meshrank/internal/domain/gems"
	"github.com/okian/meshrank/internal/domain/model"
	"github.com/okian/meshrank/internal/domain/predictor"
	"github.com/okian/meshrank/internal/domain/recommend"
	"github.com/okian/meshrank/internal/domain/redflags"
	"github.com/okian/meshrank/internal/domain/types"
	"github.com/okian/meshrank/pkg/logger"
	"github.com/okian/meshrank/pkg/metrics"
)

// Thresholds for counting detector hits in batch metrics.
const (
	redFlagMetricThreshold = 50.0
	gemMetricThreshold     = 70.0
)

// Service implements the API dependencies for the connection scoring system.
type Service struct {
	mu sync.RWMutex

	// Core components
	profiles    repository.ProfileStore
	pairs       repository.PairStore
	jobQueue    jobqueue.Queue
	engine      *compat.Engine
	redFlags    *redflags.Detector
	gemDetector *gems.Detector
	predict     predictor.Predictor
	recommender *recommend.Recommender
	workerPool  *workerpool.Pool

	// Corpus statistics from the last batch pass.
	skillStats *gems.SkillStats

	// Configuration
	workerCount      int
	queueSize        int
	weightPreset     string
	weightOverrides  map[string]float64
	redFlagThreshold float64
	predictorEnabled bool
	predictMinLat    time.Duration
	predictMaxLat    time.Duration
	spamKeywords     []string
	highValueSkills  []string

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the scoring job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWeightPreset selects the compatibility weighting scheme by name.
func WithWeightPreset(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.weightPreset = name
		}
	}
}

// WithWeightOverrides overrides individual factor weights.
func WithWeightOverrides(overrides map[string]float64) Option {
	return func(s *Service) {
		s.weightOverrides = overrides
	}
}

// WithRedFlagThreshold sets the score above which candidates are filtered
// from recommendations.
func WithRedFlagThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.redFlagThreshold = threshold
		}
	}
}

// WithPredictor enables the weighted-sum predictor for pair scoring.
func WithPredictor(enabled bool) Option {
	return func(s *Service) {
		s.predictorEnabled = enabled
	}
}

// WithPredictLatencyRange sets the simulated model latency range.
func WithPredictLatencyRange(minLat, maxLat time.Duration) Option {
	return func(s *Service) {
		if minLat > 0 && maxLat > minLat {
			s.predictMinLat = minLat
			s.predictMaxLat = maxLat
		}
	}
}

// WithSpamKeywords extends the red-flag spam lexicon.
func WithSpamKeywords(keywords []string) Option {
	return func(s *Service) {
		s.spamKeywords = keywords
	}
}

// WithHighValueSkills extends the hidden-gem domain skill lexicon.
func WithHighValueSkills(skills []string) Option {
	return func(s *Service) {
		s.highValueSkills = skills
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2,
		queueSize:        100000,
		weightPreset:     "default",
		redFlagThreshold: 50,
		stopCh:           make(chan struct{}),
		logger:           nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting connection scoring service...")

	// Initialize components
	s.profiles = repository.NewMemoryProfileStore()
	s.pairs = repository.NewMemoryPairStore()
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	weights := compat.PresetWeights(s.weightPreset)
	for name, w := range s.weightOverrides {
		weights[name] = w
	}
	s.engine = compat.NewEngine(compat.WithWeights(weights))

	s.redFlags = redflags.NewDetector(
		redflags.WithSpamKeywords(s.spamKeywords),
	)
	s.gemDetector = gems.NewDetector(
		gems.WithHighValueSkills(s.highValueSkills),
	)
	s.skillStats = gems.BuildSkillStats(nil)

	popts := []predictor.Option{}
	if s.predictMinLat > 0 {
		popts = append(popts, predictor.WithLatencyRange(s.predictMinLat, s.predictMaxLat))
	}
	s.predict = predictor.NewWeightedSum(popts...)

	s.recommender = recommend.New(s.pairs, s.profiles,
		recommend.WithRedFlagThreshold(s.redFlagThreshold),
	)

	// Create and start worker pool; the service itself scores pairs.
	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s, s.pairs)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "connection scoring service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.String("weightPreset", s.weightPreset),
		logger.Bool("predictorEnabled", s.predictorEnabled),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping connection scoring service...")

	// Stop worker pool
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	// Close queue
	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	// Signal cleanup loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "connection scoring service stopped")
}

// IngestProfiles normalizes and stores a batch of profiles, then runs a
// full batch scoring pass over the corpus. Returns the number of profiles
// accepted and the number of pair jobs enqueued.
func (s *Service) IngestProfiles(ctx context.Context, batch []model.Profile) (int, int, error) {
	accepted := 0
	for i := range batch {
		p := batch[i]
		p.Normalize()
		if p.ProfileID == "" {
			s.logger.Warn(ctx, "skipping profile without id",
				logger.String("name", p.Name),
			)
			continue
		}
		if err := s.profiles.Upsert(ctx, &p); err != nil {
			return accepted, 0, fmt.Errorf("upsert profile %s: %w", p.ProfileID, err)
		}
		metrics.RecordProfileIngested()
		accepted++
	}

	enqueued, err := s.RunBatch(ctx)
	if err != nil {
		return accepted, 0, err
	}
	return accepted, enqueued, nil
}

// RunBatch rescans the corpus: rebuilds skill statistics, refreshes the
// per-profile detector scores, and enqueues a scoring job for every ordered
// pair. Pair scoring itself happens asynchronously on the worker pool.
func (s *Service) RunBatch(ctx context.Context) (int, error) {
	start := time.Now()
	metrics.RecordBatchRun()

	all := s.profiles.All(ctx)

	// Phase 1: corpus statistics, then per-profile detector passes.
	stats := gems.BuildSkillStats(all)
	s.mu.Lock()
	s.skillStats = stats
	s.mu.Unlock()
	metrics.UpdateCorpusSkillCount(stats.Size())

	for _, p := range all {
		flags := s.redFlags.Analyze(p)
		gem := s.gemDetector.Analyze(p, stats)
		derived := model.DerivedScores{
			RedFlagScore:      flags.RedFlagScore,
			RedFlagReasons:    flags.Reasons,
			EngagementQuality: flags.EngagementQuality,
			GemScore:          gem.GemScore,
			GemType:           gem.GemType,
			GemReason:         gem.GemReason,
		}
		if err := s.profiles.SetDerivedScores(ctx, p.ProfileID, derived); err != nil {
			return 0, fmt.Errorf("set derived scores for %s: %w", p.ProfileID, err)
		}
		if flags.RedFlagScore > redFlagMetricThreshold {
			metrics.RecordRedFlagDetected()
		}
		if gem.GemScore > gemMetricThreshold {
			metrics.RecordHiddenGemFound()
		}
	}

	// Phase 2: drop stale vectors and enqueue every ordered pair. Pairs
	// are independent, so workers can score them in any order.
	s.pairs.Reset(ctx)

	enqueued := 0
	for _, user := range all {
		for _, candidate := range all {
			if user.ProfileID == candidate.ProfileID {
				continue
			}
			job := model.ScoreJob{
				JobID:       uuid.NewString(),
				UserID:      user.ProfileID,
				CandidateID: candidate.ProfileID,
			}
			if !s.jobQueue.Enqueue(ctx, job) {
				s.logger.Warn(ctx, "job queue full, dropping pair",
					logger.String("userID", job.UserID),
					logger.String("candidateID", job.CandidateID),
				)
				continue
			}
			enqueued++
		}
	}

	metrics.RecordBatchRunDuration(float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "batch pass enqueued",
		logger.Int("profiles", len(all)),
		logger.Int("pairs", enqueued),
		logger.Int("corpusSkills", stats.Size()),
	)
	return enqueued, nil
}

// ScorePair computes the feature vector for one ordered pair. It satisfies
// the worker pool's Scorer interface.
func (s *Service) ScorePair(ctx context.Context, userID, candidateID string) (model.FeatureVector, error) {
	user, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return model.FeatureVector{}, fmt.Errorf("load user %s: %w", userID, err)
	}
	candidate, err := s.profiles.Profile(ctx, candidateID)
	if err != nil {
		return model.FeatureVector{}, fmt.Errorf("load candidate %s: %w", candidateID, err)
	}

	fv := s.engine.CalculateFeatures(user, candidate)

	if s.predictorEnabled {
		predicted, err := s.predict.Predict(ctx, predictor.FeaturesFromVector(&fv))
		if err != nil {
			return model.FeatureVector{}, fmt.Errorf("predict pair %s/%s: %w", userID, candidateID, err)
		}
		fv.CompatibilityScore = math.Round(predicted*100) / 100
	}

	// Penalize against the candidate's red-flag score from phase 1.
	fv.CompatibilityScore = predictor.ApplyRedFlagPenalty(
		fv.CompatibilityScore, candidate.Scores.RedFlagScore)

	return fv, nil
}

// ScoreFeatures scores two ad-hoc profiles synchronously without touching
// the stores. Used for one-off compatibility checks.
func (s *Service) ScoreFeatures(ctx context.Context, user, target model.Profile) (model.FeatureVector, error) {
	user.Normalize()
	target.Normalize()

	fv := s.engine.CalculateFeatures(&user, &target)

	if s.predictorEnabled {
		predicted, err := s.predict.Predict(ctx, predictor.FeaturesFromVector(&fv))
		if err != nil {
			return model.FeatureVector{}, fmt.Errorf("predict: %w", err)
		}
		fv.CompatibilityScore = math.Round(predicted*100) / 100
	}

	return fv, nil
}

// PredictScore runs the predictor over an externally supplied feature
// vector. Used by the standalone scoring endpoints.
func (s *Service) PredictScore(ctx context.Context, fv model.FeatureVector) (float64, error) {
	predicted, err := s.predict.Predict(ctx, predictor.FeaturesFromVector(&fv))
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	return math.Round(predicted*100) / 100, nil
}

// Recommend returns ranked candidate connections for a user.
func (s *Service) Recommend(ctx context.Context, userID string, topN int, minCompatibility float64, strategy string) ([]types.Recommendation, error) {
	return s.recommender.Recommend(ctx, userID, topN, minCompatibility, recommend.ParseStrategy(strategy))
}

// HiddenGems returns undervalued candidates for a user.
func (s *Service) HiddenGems(ctx context.Context, userID string, topN int, minGemScore float64) ([]types.GemRecommendation, error) {
	return s.recommender.HiddenGems(ctx, userID, topN, minGemScore)
}

// Evaluate returns the full structured evaluation of one pair.
func (s *Service) Evaluate(ctx context.Context, userID, candidateID string) (types.Evaluation, error) {
	return s.recommender.Evaluate(ctx, userID, candidateID)
}

// Profile returns a stored profile by id.
func (s *Service) Profile(ctx context.Context, id string) (*model.Profile, error) {
	return s.profiles.Profile(ctx, id)
}

// PendingJobs returns the current scoring job backlog.
func (s *Service) PendingJobs(ctx context.Context) int {
	return s.jobQueue.Len(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"weightPreset": s.weightPreset,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		totalProfiles := s.profiles.Count(ctx)
		totalPairs := s.pairs.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalProfiles"] = totalProfiles
		stats["scoredPairs"] = totalPairs
		stats["corpusSkills"] = s.skillStats.Size()

		// Update metrics
		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateProfileCount(totalProfiles)
		metrics.UpdatePairCount(totalPairs)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
