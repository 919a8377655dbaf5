package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
)

// DefaultReportCorrelationLimit is how many of the busiest numbers the comprehensive report correlates.
const DefaultReportCorrelationLimit = 10

// ShortReportRequest is the body of a short-report submission.
type ShortReportRequest struct {
	CaseNumber string `json:"caseNumber"`
	Remark     string `json:"remark"`
}

func (r ShortReportRequest) Validate() error {
	if r.CaseNumber == "" {
		return &FieldError{Field: "caseNumber"}
	}
	if r.Remark == "" {
		return &FieldError{Field: "remark"}
	}
	return nil
}

type ReportService interface {
	Comprehensive(ctx context.Context, store *repository.Store, deviceName string) (*models.ComprehensiveReport, error)
	Short(ctx context.Context, store *repository.Store, deviceName string) (*models.ShortReport, error)
	SubmitShort(ctx context.Context, store *repository.Store, deviceName string, req ShortReportRequest, investigatorID *string) (*models.Report, error)
	List(ctx context.Context, store *repository.Store) ([]models.Report, error)
}

type reportService struct {
	opts             AnalysisOptions
	correlationLimit int
	logger           *zap.Logger
}

func NewReportService(opts AnalysisOptions, correlationLimit int, logger *zap.Logger) ReportService {
	if correlationLimit <= 0 {
		correlationLimit = DefaultReportCorrelationLimit
	}
	return &reportService{opts: opts.withDefaults(), correlationLimit: correlationLimit, logger: logger}
}

func (s *reportService) Comprehensive(ctx context.Context, store *repository.Store, deviceName string) (*models.ComprehensiveReport, error) {
	report := &models.ComprehensiveReport{DeviceName: deviceName}
	var counts []models.AddressCount

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report.Messages, err = store.Messages.All(gctx)
		return wrap(err, "failed to load messages")
	})
	g.Go(func() (err error) {
		report.CallLogs, err = store.CallLogs.All(gctx)
		return wrap(err, "failed to load call logs")
	})
	g.Go(func() (err error) {
		report.Contacts, err = store.Contacts.All(gctx)
		return wrap(err, "failed to load contacts")
	})
	g.Go(func() (err error) {
		report.MessageStats, err = store.Messages.Stats(gctx)
		return wrap(err, "failed to compute message stats")
	})
	g.Go(func() (err error) {
		report.CallStats, err = store.CallLogs.Stats(gctx)
		return wrap(err, "failed to compute call stats")
	})
	g.Go(func() (err error) {
		report.MessagesWithURL, err = store.Messages.WithURLs(gctx)
		return wrap(err, "failed to load messages with urls")
	})
	g.Go(func() (err error) {
		counts, err = store.Messages.AddressCounts(gctx)
		return wrap(err, "failed to count messages by address")
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to generate comprehensive report", zap.String("namespace", store.Namespace), zap.Error(err))
		return nil, err
	}

	report.Timeline = s.opts.timeline(report.Messages, report.CallLogs, false)

	if len(counts) > s.correlationLimit {
		counts = counts[:s.correlationLimit]
	}
	groups := make([]models.CorrelationEntry, 0, len(counts))
	for _, c := range counts {
		groups = append(groups, models.CorrelationEntry{Number: c.Address, SMSCount: c.TotalMessages})
	}
	report.Correlation = correlateCalls(ctx, store, groups, s.opts.Concurrency, s.logger)
	report.GeneratedAt = s.opts.Now()

	return report, nil
}

func (s *reportService) Short(ctx context.Context, store *repository.Store, deviceName string) (*models.ShortReport, error) {
	contacts, err := store.Contacts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	messageStats, err := store.Messages.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute message stats: %w", err)
	}
	callStats, err := store.CallLogs.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute call stats: %w", err)
	}

	return &models.ShortReport{
		DeviceName:    deviceName,
		TotalContacts: contacts,
		MessageStats:  messageStats,
		CallStats:     callStats,
	}, nil
}

func (s *reportService) SubmitShort(ctx context.Context, store *repository.Store, deviceName string, req ShortReportRequest, investigatorID *string) (*models.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	short, err := s.Short(ctx, store, deviceName)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:             uuid.NewString(),
		CaseNumber:     req.CaseNumber,
		Remark:         req.Remark,
		DeviceName:     deviceName,
		InvestigatorID: investigatorID,
		TotalContacts:  short.TotalContacts,
		MessageStats:   short.MessageStats,
		CallStats:      short.CallStats,
		CreatedAt:      time.Now(),
	}
	if err := store.Reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Info("Short report saved",
		zap.String("namespace", store.Namespace),
		zap.String("report_id", report.ID),
		zap.String("case_number", report.CaseNumber))
	return report, nil
}

func (s *reportService) List(ctx context.Context, store *repository.Store) ([]models.Report, error) {
	return store.Reports.List(ctx)
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
