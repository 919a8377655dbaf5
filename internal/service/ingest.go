package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/classifier"
	"github.com/RanaNomiRana/backend-afa/internal/metrics"
	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/normalize"
	"github.com/RanaNomiRana/backend-afa/internal/parser"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
)

// DeviceSource returns raw content-provider dumps from the connected device.
type DeviceSource interface {
	Name(ctx context.Context) (string, error)
	Messages(ctx context.Context) (string, error)
	CallLog(ctx context.Context) (string, error)
	Contacts(ctx context.Context) (string, error)
}

// SuspiciousNotifier is told about ingestions that produced suspicious messages.
type SuspiciousNotifier interface {
	NotifySuspicious(ctx context.Context, deviceName string, stats models.MessageStats) error
}

type IngestService interface {
	DeviceName(ctx context.Context) (string, error)
	IngestMessages(ctx context.Context, store *repository.Store, deviceName string) ([]models.Message, error)
	IngestCallLog(ctx context.Context, store *repository.Store) ([]models.CallLogEntry, error)
	IngestContacts(ctx context.Context, store *repository.Store) ([]models.Contact, error)
}

type ingestService struct {
	device     DeviceSource
	normalizer *normalize.Normalizer
	classifier *classifier.Classifier
	notifier   SuspiciousNotifier
	logger     *zap.Logger
}

// NewIngestService wires the device pipeline. notifier may be nil.
func NewIngestService(device DeviceSource, normalizer *normalize.Normalizer, cls *classifier.Classifier, notifier SuspiciousNotifier, logger *zap.Logger) IngestService {
	return &ingestService{
		device:     device,
		normalizer: normalizer,
		classifier: cls,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *ingestService) DeviceName(ctx context.Context) (string, error) {
	name, err := s.device.Name(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch device name", zap.Error(err))
		return "", err
	}
	return name, nil
}

func (s *ingestService) IngestMessages(ctx context.Context, store *repository.Store, deviceName string) ([]models.Message, error) {
	raw, err := s.device.Messages(ctx)
	if err != nil {
		return nil, err
	}

	contacts, err := store.Contacts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		if c.Number != nil {
			names[*c.Number] = c.DisplayName
		}
	}

	messages := []models.Message{}
	var stats models.MessageStats
	for rec := range parser.ParseEntity(raw, parser.SMS) {
		msg, ok := s.normalizer.Message(rec)
		if !ok {
			continue
		}
		if name, ok := names[msg.Address]; ok {
			msg.ContactName = &name
		}
		s.classifier.Apply(&msg)
		countCategory(&stats, msg)
		metrics.ClassifiedMessagesTotal.WithLabelValues(string(msg.Category)).Inc()
		messages = append(messages, msg)
	}

	if err := store.Messages.Replace(ctx, messages); err != nil {
		return nil, fmt.Errorf("failed to save messages: %w", err)
	}
	metrics.IngestedRecordsTotal.WithLabelValues("sms").Add(float64(len(messages)))
	s.logger.Info("Messages ingested",
		zap.String("namespace", store.Namespace),
		zap.Int("total", stats.TotalMessages),
		zap.Int("suspicious", stats.SuspiciousMessages))

	if stats.SuspiciousMessages > 0 && s.notifier != nil {
		if err := s.notifier.NotifySuspicious(ctx, deviceName, stats); err != nil {
			s.logger.Warn("Failed to send suspicious message alert", zap.Error(err))
		}
	}
	return messages, nil
}

func (s *ingestService) IngestCallLog(ctx context.Context, store *repository.Store) ([]models.CallLogEntry, error) {
	raw, err := s.device.CallLog(ctx)
	if err != nil {
		return nil, err
	}

	calls := []models.CallLogEntry{}
	for rec := range parser.ParseEntity(raw, parser.CallLog) {
		if entry, ok := s.normalizer.CallLog(rec); ok {
			calls = append(calls, entry)
		}
	}

	if err := store.CallLogs.Replace(ctx, calls); err != nil {
		return nil, fmt.Errorf("failed to save call log: %w", err)
	}
	metrics.IngestedRecordsTotal.WithLabelValues("call_log").Add(float64(len(calls)))
	s.logger.Info("Call log ingested", zap.String("namespace", store.Namespace), zap.Int("total", len(calls)))
	return calls, nil
}

func (s *ingestService) IngestContacts(ctx context.Context, store *repository.Store) ([]models.Contact, error) {
	raw, err := s.device.Contacts(ctx)
	if err != nil {
		return nil, err
	}

	contacts := []models.Contact{}
	for rec := range parser.ParseEntity(raw, parser.Contacts) {
		if c, ok := s.normalizer.Contact(rec); ok {
			contacts = append(contacts, c)
		}
	}

	if err := store.Contacts.Replace(ctx, contacts); err != nil {
		return nil, fmt.Errorf("failed to save contacts: %w", err)
	}
	metrics.IngestedRecordsTotal.WithLabelValues("contacts").Add(float64(len(contacts)))
	s.logger.Info("Contacts ingested", zap.String("namespace", store.Namespace), zap.Int("total", len(contacts)))
	return contacts, nil
}

func countCategory(stats *models.MessageStats, msg models.Message) {
	stats.TotalMessages++
	if msg.IsSuspicious {
		stats.SuspiciousMessages++
	}
	switch msg.Category {
	case models.CategoryFraud:
		stats.Fraud++
	case models.CategoryCriminal:
		stats.Criminal++
	case models.CategoryCyberbullying:
		stats.Cyberbullying++
	case models.CategoryThreat:
		stats.Threat++
	case models.CategoryNegativeSentiment:
		stats.NegativeSentiment++
	}
}
