package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/analysis"
	"github.com/RanaNomiRana/backend-afa/internal/metrics"
	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
)

// AnalysisOptions configures the aggregation pipeline.
type AnalysisOptions struct {
	WindowStart time.Time
	Location    *time.Location
	Concurrency int
	Now         func() time.Time
}

type AnalysisService interface {
	AddressCounts(ctx context.Context, store *repository.Store) ([]models.AddressCount, error)
	Search(ctx context.Context, store *repository.Store, keyword string) (*models.SearchResult, error)
	Timeline(ctx context.Context, store *repository.Store, withDetails bool) ([]models.TimelineEntry, error)
	URLAnalysis(ctx context.Context, store *repository.Store) (*models.URLAnalysis, error)
	Correlation(ctx context.Context, store *repository.Store) ([]models.CorrelationEntry, error)
}

type analysisService struct {
	spam   *analysis.SpamMatcher
	opts   AnalysisOptions
	logger *zap.Logger
}

func NewAnalysisService(spam *analysis.SpamMatcher, opts AnalysisOptions, logger *zap.Logger) AnalysisService {
	return &analysisService{spam: spam, opts: opts.withDefaults(), logger: logger}
}

func (o AnalysisOptions) withDefaults() AnalysisOptions {
	if o.WindowStart.IsZero() {
		o.WindowStart = analysis.DefaultWindowStart
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Concurrency <= 0 {
		o.Concurrency = analysis.DefaultConcurrency
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (s *analysisService) AddressCounts(ctx context.Context, store *repository.Store) ([]models.AddressCount, error) {
	return store.Messages.AddressCounts(ctx)
}

// ValidateKeyword rejects empty keywords. Pattern syntax is checked by the
// database that runs the search.
func ValidateKeyword(keyword string) error {
	if keyword == "" {
		return &FieldError{Field: "keyword"}
	}
	return nil
}

func (s *analysisService) Search(ctx context.Context, store *repository.Store, keyword string) (*models.SearchResult, error) {
	if err := ValidateKeyword(keyword); err != nil {
		return nil, err
	}

	messages, err := store.Messages.Search(ctx, keyword)
	if err != nil {
		return nil, searchError("messages", err)
	}
	calls, err := store.CallLogs.Search(ctx, keyword)
	if err != nil {
		return nil, searchError("call logs", err)
	}
	contacts, err := store.Contacts.Search(ctx, keyword)
	if err != nil {
		return nil, searchError("contacts", err)
	}

	return &models.SearchResult{Messages: messages, CallLogs: calls, Contacts: contacts}, nil
}

func searchError(collection string, err error) error {
	if errors.Is(err, repository.ErrInvalidPattern) {
		return fmt.Errorf("%w: %v", ErrInvalidKeyword, err)
	}
	return fmt.Errorf("failed to search %s: %w", collection, err)
}

func (s *analysisService) Timeline(ctx context.Context, store *repository.Store, withDetails bool) ([]models.TimelineEntry, error) {
	timeline, err := s.buildTimeline(ctx, store, withDetails)
	if err != nil {
		return nil, err
	}
	if err := store.Timeline.Replace(ctx, timeline); err != nil {
		return nil, fmt.Errorf("failed to save timeline: %w", err)
	}
	return timeline, nil
}

func (s *analysisService) buildTimeline(ctx context.Context, store *repository.Store, withDetails bool) ([]models.TimelineEntry, error) {
	messages, err := store.Messages.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	calls, err := store.CallLogs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load call logs: %w", err)
	}

	return s.opts.timeline(messages, calls, withDetails), nil
}

func (o AnalysisOptions) timeline(messages []models.Message, calls []models.CallLogEntry, withDetails bool) []models.TimelineEntry {
	return analysis.BuildTimeline(messages, calls, analysis.TimelineOptions{
		Window:      analysis.Window{Start: o.WindowStart, End: o.Now()},
		Location:    o.Location,
		WithDetails: withDetails,
	})
}

func (s *analysisService) URLAnalysis(ctx context.Context, store *repository.Store) (*models.URLAnalysis, error) {
	messages, err := store.Messages.WithURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages with urls: %w", err)
	}

	result := analysis.AnalyzeURLs(messages, s.spam)
	if err := store.URLFindings.Replace(ctx, result.SpamURLs); err != nil {
		return nil, fmt.Errorf("failed to save spam url findings: %w", err)
	}
	return &result, nil
}

func (s *analysisService) Correlation(ctx context.Context, store *repository.Store) ([]models.CorrelationEntry, error) {
	messages, err := store.Messages.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	groups := analysis.GroupByAddress(messages)
	valid := groups[:0]
	for _, g := range groups {
		if g.Number != "" {
			valid = append(valid, g)
		}
	}

	results := correlateCalls(ctx, store, valid, s.opts.Concurrency, s.logger)
	if err := store.Correlations.Replace(ctx, results); err != nil {
		return nil, fmt.Errorf("failed to save data correlation: %w", err)
	}
	return results, nil
}

func correlateCalls(ctx context.Context, store *repository.Store, groups []models.CorrelationEntry, concurrency int, logger *zap.Logger) []models.CorrelationEntry {
	return analysis.Correlate(ctx, groups, store.CallLogs.FindByNumber, concurrency, func(number string, err error) {
		metrics.CorrelationLookupErrorsTotal.Inc()
		logger.Error("Failed to fetch call logs for number", zap.String("number", number), zap.Error(err))
	})
}
