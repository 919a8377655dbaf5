package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
)

// ConnectionRequest is the body of a connection-detail submission.
type ConnectionRequest struct {
	ConnectorID    string  `json:"connectorId"`
	AdditionalInfo *string `json:"additionalInfo"`
	InvestigatorID string  `json:"investigatorId"`
}

func (r ConnectionRequest) Validate() error {
	if r.ConnectorID == "" {
		return &FieldError{Field: "connectorId"}
	}
	if r.InvestigatorID == "" {
		return &FieldError{Field: "investigatorId"}
	}
	return nil
}

type ConnectionService interface {
	Record(ctx context.Context, deviceName string, req ConnectionRequest) (*models.ConnectionDetail, error)
	List(ctx context.Context) ([]models.ConnectionDetail, error)
}

type connectionService struct {
	repo   repository.ConnectionRepository
	logger *zap.Logger
}

func NewConnectionService(repo repository.ConnectionRepository, logger *zap.Logger) ConnectionService {
	return &connectionService{repo: repo, logger: logger}
}

func (s *connectionService) Record(ctx context.Context, deviceName string, req ConnectionRequest) (*models.ConnectionDetail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	detail := &models.ConnectionDetail{
		DeviceName:     deviceName,
		ConnectorID:    req.ConnectorID,
		AdditionalInfo: req.AdditionalInfo,
		InvestigatorID: req.InvestigatorID,
	}
	if err := s.repo.Create(ctx, detail); err != nil {
		return nil, fmt.Errorf("failed to save connection detail: %w", err)
	}

	s.logger.Info("Connection detail recorded",
		zap.String("device_name", deviceName),
		zap.String("connector_id", detail.ConnectorID),
		zap.String("investigator_id", detail.InvestigatorID))
	return detail, nil
}

func (s *connectionService) List(ctx context.Context) ([]models.ConnectionDetail, error) {
	return s.repo.List(ctx)
}
