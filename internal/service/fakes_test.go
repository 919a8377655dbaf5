package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/RanaNomiRana/backend-afa/internal/analysis"
	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
)

var errStore = errors.New("store unavailable")

type fakeDevice struct {
	name, messages, calls, contacts string
	err                             error
}

func (d *fakeDevice) Name(context.Context) (string, error)     { return d.name, d.err }
func (d *fakeDevice) Messages(context.Context) (string, error) { return d.messages, d.err }
func (d *fakeDevice) CallLog(context.Context) (string, error)  { return d.calls, d.err }
func (d *fakeDevice) Contacts(context.Context) (string, error) { return d.contacts, d.err }

type fakeNotifier struct {
	calls []models.MessageStats
	err   error
}

func (n *fakeNotifier) NotifySuspicious(_ context.Context, _ string, stats models.MessageStats) error {
	n.calls = append(n.calls, stats)
	return n.err
}

type memMessages struct {
	rows       []models.Message
	replaceErr error
}

func (m *memMessages) Replace(_ context.Context, rows []models.Message) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.rows = append([]models.Message(nil), rows...)
	return nil
}

func (m *memMessages) All(context.Context) ([]models.Message, error) {
	return append([]models.Message{}, m.rows...), nil
}

func (m *memMessages) AddressCounts(context.Context) ([]models.AddressCount, error) {
	var out []models.AddressCount
	for _, g := range analysis.GroupByAddress(m.rows) {
		out = append(out, models.AddressCount{Address: g.Number, TotalMessages: g.SMSCount})
	}
	return out, nil
}

// compileSearch mirrors the database rejecting a malformed pattern.
func compileSearch(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidPattern, err)
	}
	return re, nil
}

func (m *memMessages) Search(_ context.Context, pattern string) ([]models.Message, error) {
	re, err := compileSearch(pattern)
	if err != nil {
		return nil, err
	}
	out := []models.Message{}
	for _, r := range m.rows {
		if re.MatchString(r.Address) || (r.Body != nil && re.MatchString(*r.Body)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memMessages) Stats(context.Context) (models.MessageStats, error) {
	var s models.MessageStats
	for _, r := range m.rows {
		countCategory(&s, r)
	}
	return s, nil
}

func (m *memMessages) WithURLs(context.Context) ([]models.Message, error) {
	re := regexp.MustCompile(`(?i)http://|https://|www\.`)
	out := []models.Message{}
	for _, r := range m.rows {
		if r.Body != nil && re.MatchString(*r.Body) {
			out = append(out, r)
		}
	}
	return out, nil
}

type memCalls struct {
	mu      sync.Mutex
	rows    []models.CallLogEntry
	failFor map[string]bool
	lookups int
}

func (m *memCalls) Replace(_ context.Context, rows []models.CallLogEntry) error {
	m.rows = append([]models.CallLogEntry(nil), rows...)
	return nil
}

func (m *memCalls) All(context.Context) ([]models.CallLogEntry, error) {
	return append([]models.CallLogEntry{}, m.rows...), nil
}

func (m *memCalls) FindByNumber(_ context.Context, number string) ([]models.CallLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.failFor[number] {
		return nil, errStore
	}
	out := []models.CallLogEntry{}
	for _, r := range m.rows {
		if r.Number == number {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memCalls) Search(_ context.Context, pattern string) ([]models.CallLogEntry, error) {
	re, err := compileSearch(pattern)
	if err != nil {
		return nil, err
	}
	out := []models.CallLogEntry{}
	for _, r := range m.rows {
		if re.MatchString(r.Number) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memCalls) Stats(context.Context) (models.CallStats, error) {
	var s models.CallStats
	for _, r := range m.rows {
		s.TotalCalls++
		if r.Direction == nil {
			continue
		}
		switch *r.Direction {
		case models.CallIncoming:
			s.IncomingCalls++
		case models.CallOutgoing:
			s.OutgoingCalls++
		case models.CallMissed:
			s.MissedCalls++
		}
	}
	return s, nil
}

type memContacts struct {
	rows   []models.Contact
	allErr error
}

func (m *memContacts) Replace(_ context.Context, rows []models.Contact) error {
	m.rows = append([]models.Contact(nil), rows...)
	return nil
}

func (m *memContacts) All(context.Context) ([]models.Contact, error) {
	if m.allErr != nil {
		return nil, m.allErr
	}
	return append([]models.Contact{}, m.rows...), nil
}

func (m *memContacts) Search(_ context.Context, pattern string) ([]models.Contact, error) {
	re, err := compileSearch(pattern)
	if err != nil {
		return nil, err
	}
	out := []models.Contact{}
	for _, r := range m.rows {
		if re.MatchString(r.DisplayName) || (r.Number != nil && re.MatchString(*r.Number)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memContacts) Count(context.Context) (int, error) { return len(m.rows), nil }

type memTimeline struct{ rows []models.TimelineEntry }

func (m *memTimeline) Replace(_ context.Context, rows []models.TimelineEntry) error {
	m.rows = rows
	return nil
}

type memCorrelations struct{ rows []models.CorrelationEntry }

func (m *memCorrelations) Replace(_ context.Context, rows []models.CorrelationEntry) error {
	m.rows = rows
	return nil
}

type memFindings struct{ rows []models.URLFinding }

func (m *memFindings) Replace(_ context.Context, rows []models.URLFinding) error {
	m.rows = rows
	return nil
}

type memReports struct{ rows []models.Report }

func (m *memReports) Create(_ context.Context, r *models.Report) error {
	m.rows = append([]models.Report{*r}, m.rows...)
	return nil
}

func (m *memReports) List(context.Context) ([]models.Report, error) {
	return append([]models.Report{}, m.rows...), nil
}

type memStore struct {
	*repository.Store
	messages     *memMessages
	calls        *memCalls
	contacts     *memContacts
	timeline     *memTimeline
	correlations *memCorrelations
	findings     *memFindings
	reports      *memReports
}

func newMemStore() *memStore {
	m := &memStore{
		messages:     &memMessages{},
		calls:        &memCalls{failFor: map[string]bool{}},
		contacts:     &memContacts{},
		timeline:     &memTimeline{},
		correlations: &memCorrelations{},
		findings:     &memFindings{},
		reports:      &memReports{},
	}
	m.Store = &repository.Store{
		Namespace:    "device_test",
		Messages:     m.messages,
		CallLogs:     m.calls,
		Contacts:     m.contacts,
		Timeline:     m.timeline,
		Correlations: m.correlations,
		URLFindings:  m.findings,
		Reports:      m.reports,
	}
	return m
}

type memInvestigators struct {
	rows map[string]*models.Investigator
}

func (m *memInvestigators) Create(_ context.Context, inv *models.Investigator) error {
	inv.ID = int64(len(m.rows) + 1)
	m.rows[inv.Username] = inv
	return nil
}

func (m *memInvestigators) GetByUsername(_ context.Context, username string) (*models.Investigator, error) {
	return m.rows[username], nil
}

func (m *memInvestigators) Count(context.Context) (int, error) { return len(m.rows), nil }

type memConnections struct{ rows []models.ConnectionDetail }

func (m *memConnections) Create(_ context.Context, d *models.ConnectionDetail) error {
	d.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *d)
	return nil
}

func (m *memConnections) List(context.Context) ([]models.ConnectionDetail, error) {
	return m.rows, nil
}

func strPtr(s string) *string { return &s }
