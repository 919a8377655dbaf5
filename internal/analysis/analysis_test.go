package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanaNomiRana/backend-afa/internal/models"
)

func sp(s string) *string { return &s }

func testWindow() TimelineOptions {
	return TimelineOptions{
		Window: Window{
			Start: DefaultWindowStart,
			End:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Location: time.UTC,
	}
}

func TestBuildTimeline_UnionOfDays(t *testing.T) {
	messages := []models.Message{
		{Address: "A", Date: sp("2024-03-01 10:00:00"), IsSuspicious: true},
		{Address: "A", Date: sp("2024-03-01 23:59:59")},
	}
	calls := []models.CallLogEntry{
		{Number: "A", Date: sp("2024-03-02 08:00:00"), Direction: sp(models.CallIncoming)},
		{Number: "B", Date: sp("2024-03-02 09:00:00"), Direction: sp(models.CallMissed)},
		{Number: "B", Date: sp("2024-03-02 09:30:00"), Direction: sp(models.CallOutgoing)},
	}

	tl := BuildTimeline(messages, calls, testWindow())
	require.Len(t, tl, 2)

	assert.Equal(t, "2024-03-01", tl[0].Date)
	assert.Equal(t, 2, tl[0].TotalMessages)
	assert.Equal(t, 1, tl[0].SuspiciousMessages)
	assert.Equal(t, 0, tl[0].TotalCalls)

	assert.Equal(t, "2024-03-02", tl[1].Date)
	assert.Equal(t, 0, tl[1].TotalMessages)
	assert.Equal(t, 3, tl[1].TotalCalls)
	assert.Equal(t, 1, tl[1].IncomingCalls)
	assert.Equal(t, 1, tl[1].OutgoingCalls)
	assert.Equal(t, 1, tl[1].MissedCalls)
	assert.Nil(t, tl[1].CallLogs)
}

func TestBuildTimeline_DropsOutOfWindowAndUndated(t *testing.T) {
	messages := []models.Message{
		{Address: "A", Date: sp("2023-12-31 23:59:59")},
		{Address: "A", Date: sp("2030-01-01 00:00:00")},
		{Address: "A"},
		{Address: "A", Date: sp("not a date")},
		{Address: "A", Date: sp("2024-01-01 00:00:00")},
	}
	tl := BuildTimeline(messages, nil, testWindow())
	require.Len(t, tl, 1)
	assert.Equal(t, "2024-01-01", tl[0].Date)
	assert.Equal(t, 1, tl[0].TotalMessages)
}

func TestBuildTimeline_SortedWithDetails(t *testing.T) {
	opts := testWindow()
	opts.WithDetails = true
	messages := []models.Message{
		{Address: "A", Date: sp("2024-05-10 10:00:00")},
		{Address: "B", Date: sp("2024-02-10 10:00:00")},
	}
	calls := []models.CallLogEntry{{Number: "C", Date: sp("2024-04-01 00:00:00")}}

	tl := BuildTimeline(messages, calls, opts)
	require.Len(t, tl, 3)
	assert.Equal(t, []string{"2024-02-10", "2024-04-01", "2024-05-10"}, []string{tl[0].Date, tl[1].Date, tl[2].Date})
	assert.Len(t, tl[0].Messages, 1)
	assert.Len(t, tl[1].CallLogs, 1)
	assert.Equal(t, 1, tl[1].TotalCalls)
	assert.Equal(t, 0, tl[1].IncomingCalls)
}

func TestGroupByAddress(t *testing.T) {
	messages := []models.Message{
		{Address: "B"}, {Address: "A"}, {Address: "A"}, {Address: "C"}, {Address: "A"},
	}
	groups := GroupByAddress(messages)
	require.Len(t, groups, 3)
	assert.Equal(t, "A", groups[0].Number)
	assert.Equal(t, 3, groups[0].SMSCount)
	assert.Len(t, groups[0].Messages, 3)
	assert.Equal(t, "B", groups[1].Number)
	assert.Equal(t, "C", groups[2].Number)
}

func TestCorrelate_MissingCallsAreEmptyNotError(t *testing.T) {
	groups := GroupByAddress([]models.Message{{Address: "A"}, {Address: "A"}, {Address: "A"}, {Address: "B"}})
	calls := map[string][]models.CallLogEntry{
		"A": {{Number: "A"}, {Number: "A"}},
	}
	lookup := func(_ context.Context, number string) ([]models.CallLogEntry, error) {
		return calls[number], nil
	}

	out := Correlate(context.Background(), groups, lookup, 2, nil)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Number)
	assert.Len(t, out[0].CallLogs, 2)
	assert.Equal(t, "B", out[1].Number)
	assert.NotNil(t, out[1].CallLogs)
	assert.Empty(t, out[1].CallLogs)
}

func TestCorrelate_FailureIsIsolated(t *testing.T) {
	groups := []models.CorrelationEntry{{Number: "A", SMSCount: 2}, {Number: "B", SMSCount: 1}, {Number: "C", SMSCount: 1}}
	lookup := func(_ context.Context, number string) ([]models.CallLogEntry, error) {
		if number == "B" {
			return nil, errors.New("connection reset")
		}
		return []models.CallLogEntry{{Number: number}}, nil
	}

	var mu sync.Mutex
	var failed []string
	out := Correlate(context.Background(), groups, lookup, 0, func(number string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, number)
	})

	require.Len(t, out, 3)
	assert.Len(t, out[0].CallLogs, 1)
	assert.Empty(t, out[1].CallLogs)
	assert.NotNil(t, out[1].CallLogs)
	assert.Len(t, out[2].CallLogs, 1)
	assert.Equal(t, []string{"B"}, failed)
}

func TestExtractURLs(t *testing.T) {
	assert.Equal(t, []string{"https://a.example/x", "http://b.example"}, ExtractURLs("go https://a.example/x or http://b.example now"))
	assert.Empty(t, ExtractURLs("visit www.example.com"))
}

func TestAnalyzeURLs(t *testing.T) {
	matcher, err := NewSpamMatcher(DefaultSpamPatterns)
	require.NoError(t, err)

	messages := []models.Message{
		{Address: "S", Body: sp("win at http://example-spam-domain.com/claim")},
		{Address: "N", Body: sp("docs at https://golang.org")},
		{Address: "W", Body: sp("see www.example.org")},
		{Address: "X", Body: sp("no links here")},
		{Address: "Y"},
	}
	res := AnalyzeURLs(messages, matcher)
	require.Len(t, res.SpamURLs, 1)
	assert.Equal(t, "S", res.SpamURLs[0].Sender)
	assert.Equal(t, []string{"http://example-spam-domain.com/claim"}, []string(res.SpamURLs[0].URLs))

	require.Len(t, res.NonSpamURLs, 2)
	assert.Equal(t, "N", res.NonSpamURLs[0].Sender)
	assert.Equal(t, "W", res.NonSpamURLs[1].Sender)
	assert.Empty(t, res.NonSpamURLs[1].URLs)
}

func TestNewSpamMatcher_InvalidPattern(t *testing.T) {
	_, err := NewSpamMatcher([]string{"("})
	assert.Error(t, err)
}
