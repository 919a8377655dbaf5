package handler

import (
	"context"
	"errors"
	"time"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
	"github.com/RanaNomiRana/backend-afa/internal/service"
)

var errBoom = errors.New("boom")

type fakeStores struct {
	opened []string
	err    error
}

func (f *fakeStores) Open(_ context.Context, deviceName string) (*repository.Store, error) {
	f.opened = append(f.opened, deviceName)
	if f.err != nil {
		return nil, f.err
	}
	return &repository.Store{Namespace: "device_" + deviceName}, nil
}

type fakeIngest struct {
	name     string
	nameErr  error
	messages []models.Message
	calls    []models.CallLogEntry
	contacts []models.Contact
	err      error
}

func (f *fakeIngest) DeviceName(context.Context) (string, error) { return f.name, f.nameErr }

func (f *fakeIngest) IngestMessages(context.Context, *repository.Store, string) ([]models.Message, error) {
	return f.messages, f.err
}

func (f *fakeIngest) IngestCallLog(context.Context, *repository.Store) ([]models.CallLogEntry, error) {
	return f.calls, f.err
}

func (f *fakeIngest) IngestContacts(context.Context, *repository.Store) ([]models.Contact, error) {
	return f.contacts, f.err
}

type fakeAnalysis struct {
	counts      []models.AddressCount
	search      *models.SearchResult
	timeline    []models.TimelineEntry
	urls        *models.URLAnalysis
	correlation []models.CorrelationEntry
	err         error
	details     bool
}

func (f *fakeAnalysis) AddressCounts(context.Context, *repository.Store) ([]models.AddressCount, error) {
	return f.counts, f.err
}

func (f *fakeAnalysis) Search(context.Context, *repository.Store, string) (*models.SearchResult, error) {
	return f.search, f.err
}

func (f *fakeAnalysis) Timeline(_ context.Context, _ *repository.Store, details bool) ([]models.TimelineEntry, error) {
	f.details = details
	return f.timeline, f.err
}

func (f *fakeAnalysis) URLAnalysis(context.Context, *repository.Store) (*models.URLAnalysis, error) {
	return f.urls, f.err
}

func (f *fakeAnalysis) Correlation(context.Context, *repository.Store) ([]models.CorrelationEntry, error) {
	return f.correlation, f.err
}

type fakeReports struct {
	comprehensive *models.ComprehensiveReport
	short         *models.ShortReport
	saved         []models.Report
	err           error
}

func (f *fakeReports) Comprehensive(_ context.Context, _ *repository.Store, deviceName string) (*models.ComprehensiveReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := *f.comprehensive
	r.DeviceName = deviceName
	return &r, nil
}

func (f *fakeReports) Short(_ context.Context, _ *repository.Store, deviceName string) (*models.ShortReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := *f.short
	r.DeviceName = deviceName
	return &r, nil
}

func (f *fakeReports) SubmitShort(_ context.Context, _ *repository.Store, deviceName string, req service.ShortReportRequest, investigatorID *string) (*models.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	r := models.Report{
		ID:             "r-1",
		CaseNumber:     req.CaseNumber,
		Remark:         req.Remark,
		DeviceName:     deviceName,
		InvestigatorID: investigatorID,
		TotalContacts:  f.short.TotalContacts,
		MessageStats:   f.short.MessageStats,
		CallStats:      f.short.CallStats,
		CreatedAt:      time.Now(),
	}
	f.saved = append(f.saved, r)
	return &r, nil
}

func (f *fakeReports) List(context.Context, *repository.Store) ([]models.Report, error) {
	return f.saved, f.err
}

type fakeConnections struct {
	recorded []service.ConnectionRequest
	err      error
}

func (f *fakeConnections) Record(_ context.Context, deviceName string, req service.ConnectionRequest) (*models.ConnectionDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.recorded = append(f.recorded, req)
	return &models.ConnectionDetail{ID: 1, DeviceName: deviceName, ConnectorID: req.ConnectorID, InvestigatorID: req.InvestigatorID}, nil
}

func (f *fakeConnections) List(context.Context) ([]models.ConnectionDetail, error) {
	return []models.ConnectionDetail{}, f.err
}

type fakeAuth struct {
	token string
	err   error
}

func (f *fakeAuth) Register(_ context.Context, username, _, role string) (*models.Investigator, error) {
	if f.err != nil {
		return nil, f.err
	}
	if role == "" {
		role = service.RoleInvestigator
	}
	return &models.Investigator{ID: 2, Username: username, Role: role}, nil
}

func (f *fakeAuth) Login(context.Context, string, string) (string, time.Time, error) {
	return f.token, time.Now().Add(time.Hour), f.err
}

func (f *fakeAuth) Bootstrap(context.Context, string, string) error { return nil }

func (f *fakeAuth) ParseToken(string) (*models.Claims, error) { return nil, f.err }
