package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/analysis"
	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
)

func newTestAnalysis(t *testing.T) AnalysisService {
	spam, err := analysis.NewSpamMatcher(analysis.DefaultSpamPatterns)
	require.NoError(t, err)
	return NewAnalysisService(spam, AnalysisOptions{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC) },
	}, zap.NewNop())
}

func TestTimeline_UnionOfDaysIsPersisted(t *testing.T) {
	store := newMemStore()
	store.messages.rows = []models.Message{{Address: "+1", Date: strPtr("2024-03-01 10:00:00"), IsSuspicious: true}}
	store.calls.rows = []models.CallLogEntry{{Number: "+1", Date: strPtr("2024-03-02 11:00:00"), Direction: strPtr("missed")}}

	timeline, err := newTestAnalysis(t).Timeline(context.Background(), store.Store, false)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, "2024-03-01", timeline[0].Date)
	assert.Equal(t, 1, timeline[0].SuspiciousMessages)
	assert.Equal(t, 0, timeline[0].TotalCalls)
	assert.Equal(t, "2024-03-02", timeline[1].Date)
	assert.Equal(t, 1, timeline[1].MissedCalls)
	assert.Equal(t, 0, timeline[1].TotalMessages)
	assert.Equal(t, timeline, store.timeline.rows)
}

func TestTimeline_WithDetails(t *testing.T) {
	store := newMemStore()
	store.messages.rows = []models.Message{{Address: "+1", Date: strPtr("2024-03-01 10:00:00")}}

	timeline, err := newTestAnalysis(t).Timeline(context.Background(), store.Store, true)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Len(t, timeline[0].Messages, 1)
}

func TestCorrelation_IsolatesLookupFailures(t *testing.T) {
	store := newMemStore()
	store.messages.rows = []models.Message{
		{Address: "A"}, {Address: "A"}, {Address: "A"}, {Address: "B"}, {Address: "C"}, {Address: ""},
	}
	store.calls.rows = []models.CallLogEntry{{Number: "A"}, {Number: "C"}}
	store.calls.failFor["C"] = true

	results, err := newTestAnalysis(t).Correlation(context.Background(), store.Store)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "A", results[0].Number)
	assert.Equal(t, 3, results[0].SMSCount)
	assert.Len(t, results[0].Messages, 3)
	assert.Len(t, results[0].CallLogs, 1)

	assert.Equal(t, "B", results[1].Number)
	assert.NotNil(t, results[1].CallLogs)
	assert.Empty(t, results[1].CallLogs)

	assert.Equal(t, "C", results[2].Number)
	assert.Empty(t, results[2].CallLogs)

	assert.Equal(t, results, store.correlations.rows)
}

func TestURLAnalysis_PersistsOnlySpam(t *testing.T) {
	store := newMemStore()
	store.messages.rows = []models.Message{
		{Address: "+1", Body: strPtr("visit http://example-spam-domain.com/win")},
		{Address: "+2", Body: strPtr("docs at https://golang.org")},
		{Address: "+3", Body: strPtr("plain text")},
	}

	result, err := newTestAnalysis(t).URLAnalysis(context.Background(), store.Store)
	require.NoError(t, err)
	require.Len(t, result.SpamURLs, 1)
	require.Len(t, result.NonSpamURLs, 1)
	assert.Equal(t, "+1", result.SpamURLs[0].Sender)
	assert.Equal(t, []string{"https://golang.org"}, []string(result.NonSpamURLs[0].URLs))
	assert.Equal(t, result.SpamURLs, store.findings.rows)
}

func TestSearch(t *testing.T) {
	store := newMemStore()
	store.messages.rows = []models.Message{{Address: "+100", Body: strPtr("Prize inside")}}
	store.calls.rows = []models.CallLogEntry{{Number: "+100"}, {Number: "+200"}}
	store.contacts.rows = []models.Contact{{DisplayName: "Alice", Number: strPtr("+100")}}

	svc := newTestAnalysis(t)

	res, err := svc.Search(context.Background(), store.Store, "prize")
	require.NoError(t, err)
	assert.Len(t, res.Messages, 1)
	assert.Empty(t, res.CallLogs)
	assert.Empty(t, res.Contacts)

	res, err = svc.Search(context.Background(), store.Store, "100")
	require.NoError(t, err)
	assert.Len(t, res.Messages, 1)
	assert.Len(t, res.CallLogs, 1)
	assert.Len(t, res.Contacts, 1)
}

func TestValidateKeyword(t *testing.T) {
	err := ValidateKeyword("")
	assert.ErrorIs(t, err, ErrMissingField)
	assert.EqualError(t, err, "keyword is required")

	assert.NoError(t, ValidateKeyword("prize"))
	assert.NoError(t, ValidateKeyword("a(b"))
}

func TestAnalysisService_SearchRejectedPattern(t *testing.T) {
	store := newMemStore()
	svc := newTestAnalysis(t)

	_, err := svc.Search(context.Background(), store.Store, "a(b")
	assert.ErrorIs(t, err, ErrInvalidKeyword)
	assert.ErrorIs(t, err, repository.ErrInvalidPattern)
}
