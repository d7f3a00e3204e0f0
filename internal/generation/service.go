// Package generation orchestrates the lifecycle of scene submissions: record
// creation, validation, prompt synthesis, the provider call, and the final
// record update. One synchronous unit of work per request; sequences run
// strictly sequentially.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CeciG24/fibo-backend/internal/domain"
	"github.com/CeciG24/fibo-backend/internal/infra"
	"github.com/CeciG24/fibo-backend/internal/providers/fibo"
	"github.com/CeciG24/fibo-backend/internal/providers/prompt"
	"github.com/CeciG24/fibo-backend/internal/scene"
)

// ProviderClient is the slice of the fibo client the orchestrator needs.
type ProviderClient interface {
	Generate(ctx context.Context, req fibo.Request) fibo.GenerationResult
	GetResult(ctx context.Context, generationID string) fibo.GenerationResult
	HealthCheck(ctx context.Context) string
	MockMode() bool
}

// Options configures the orchestrator.
type Options struct {
	Repo       domain.GenerationRepository
	Client     ProviderClient
	Logger     *infra.Logger
	DailyQuota int
}

// Service coordinates scene generation against the repository and provider.
type Service struct {
	repo   domain.GenerationRepository
	client ProviderClient
	logger infra.Logger
	quota  int
}

// SequenceResult aggregates the outcome of a multi-scene run.
type SequenceResult struct {
	Total       int
	Completed   int
	Failed      int
	Generations []domain.Generation
}

// NewService constructs the orchestrator. A nil logger falls back to a no-op.
func NewService(opts Options) *Service {
	svc := &Service{
		repo:   opts.Repo,
		client: opts.Client,
		quota:  opts.DailyQuota,
	}
	if opts.Logger != nil {
		svc.logger = *opts.Logger
	} else {
		svc.logger = zerolog.Nop()
	}
	return svc
}

// RemainingQuota reports how many generations the user has left today. A
// non-positive configured quota means unlimited.
func (s *Service) RemainingQuota(ctx context.Context, userID string) (int, error) {
	if s.quota <= 0 {
		return math.MaxInt32, nil
	}
	used, err := s.repo.CountToday(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	remaining := s.quota - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// GenerateSingle runs one scene through the full lifecycle and returns the
// final record. Validation failures are recorded as failed records and
// reported as domain.ErrInvalidScene; they never reach the provider. Provider
// failures are recorded on the record, not returned as errors.
func (s *Service) GenerateSingle(ctx context.Context, userID, projectID string, sc scene.Scene) (*domain.Generation, error) {
	remaining, err := s.RemainingQuota(ctx, userID)
	if err != nil {
		return nil, err
	}
	if remaining < 1 {
		return nil, domain.ErrQuotaExceeded
	}
	return s.generate(ctx, userID, projectID, sc)
}

// GenerateSequence runs the scenes strictly sequentially in input order. Each
// scene gets its own record; one failure never aborts the rest.
func (s *Service) GenerateSequence(ctx context.Context, userID, projectID string, scenes []scene.Scene) (*SequenceResult, error) {
	remaining, err := s.RemainingQuota(ctx, userID)
	if err != nil {
		return nil, err
	}
	if remaining < len(scenes) {
		return nil, domain.ErrQuotaExceeded
	}

	result := &SequenceResult{Total: len(scenes)}
	for i, sc := range scenes {
		if sc.SceneNumber == nil {
			n := i + 1
			sc.SceneNumber = &n
		}
		record, err := s.generate(ctx, userID, projectID, sc)
		if err != nil && record == nil {
			// Repository failure before a record existed. Synthesize a failed
			// entry so the aggregate invariant completed+failed=total holds.
			record = &domain.Generation{
				UserID:       userID,
				ProjectID:    projectID,
				Prompt:       sc.Prompt,
				SceneNumber:  sc.SceneNumber,
				Status:       domain.GenerationStatusFailed,
				ErrorMessage: err.Error(),
			}
		}
		if record.Status == domain.GenerationStatusCompleted {
			result.Completed++
		} else {
			result.Failed++
		}
		result.Generations = append(result.Generations, *record)
	}
	return result, nil
}

// Health exposes the provider health probe.
func (s *Service) Health(ctx context.Context) string {
	return s.client.HealthCheck(ctx)
}

func (s *Service) generate(ctx context.Context, userID, projectID string, sc scene.Scene) (*domain.Generation, error) {
	record := &domain.Generation{
		ID:             uuid.NewString(),
		UserID:         userID,
		ProjectID:      projectID,
		Prompt:         sc.Prompt,
		NegativePrompt: sc.NegativePrompt,
		Seed:           sc.Seed,
		SceneNumber:    sc.SceneNumber,
		Status:         domain.GenerationStatusGenerating,
	}

	payload := sc.ProviderPayload()
	enhanced := prompt.EnhanceScene(sc)
	payload["prompt"] = enhanced
	if raw, err := json.Marshal(payload); err == nil {
		record.ParametersJSON = raw
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create generation: %w", err)
	}

	if err := sc.Validate(); err != nil {
		s.finish(ctx, record, domain.GenerationStatusFailed, func(g *domain.Generation) {
			g.ErrorMessage = err.Error()
		})
		return record, fmt.Errorf("%w: %v", domain.ErrInvalidScene, err)
	}

	started := time.Now()
	result := s.client.Generate(ctx, fibo.Request{
		Prompt:     enhanced,
		Width:      sc.Width,
		Height:     sc.Height,
		Seed:       sc.Seed,
		Parameters: payload,
	})
	elapsed := math.Round(time.Since(started).Seconds()*10) / 10

	switch {
	case result.Succeeded():
		s.logger.Info().
			Str("generation_id", record.ID).
			Str("provider_id", result.GenerationID).
			Bool("mock", result.Mock).
			Float64("elapsed_s", elapsed).
			Msg("generation completed")
		s.finish(ctx, record, domain.GenerationStatusCompleted, func(g *domain.Generation) {
			g.ImageURL = result.ImageURL
			g.ProviderGenerationID = result.GenerationID
			if result.Seed != 0 {
				seed := result.Seed
				g.Seed = &seed
			}
			g.GenerationTime = &elapsed
		})
	case result.Failed():
		s.logger.Warn().
			Str("generation_id", record.ID).
			Str("error", result.ErrorMessage).
			Str("suggestion", result.Suggestion).
			Msg("generation failed")
		s.finish(ctx, record, domain.GenerationStatusFailed, func(g *domain.Generation) {
			g.ErrorMessage = result.ErrorMessage
		})
	default:
		s.logger.Info().
			Str("generation_id", record.ID).
			Str("provider_id", result.GenerationID).
			Str("provider_status", result.PendingStatus).
			Msg("generation pending")
		s.finish(ctx, record, domain.GenerationStatusPending, func(g *domain.Generation) {
			g.ProviderGenerationID = result.GenerationID
		})
	}
	return record, nil
}

// finish applies the outcome to the record and persists it. A persistence
// error here is logged but does not override the provider outcome the caller
// already holds.
func (s *Service) finish(ctx context.Context, record *domain.Generation, status domain.GenerationStatus, apply func(*domain.Generation)) {
	record.Status = status
	apply(record)
	if record.Terminal() {
		now := time.Now().UTC()
		record.CompletedAt = &now
	}
	if err := s.repo.UpdateOutcome(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("generation_id", record.ID).Msg("update generation outcome")
	}
}
