// Package analysis holds the aggregation side of the pipeline: day
// timelines, message/call correlation and URL findings.
package analysis

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/RanaNomiRana/backend-afa/internal/models"
)

// DefaultConcurrency bounds the per-number call-log lookups.
const DefaultConcurrency = 8

// CallLookup returns every call whose number equals number exactly.
type CallLookup func(ctx context.Context, number string) ([]models.CallLogEntry, error)

// GroupByAddress groups messages by address, largest group first. Ties are
// ordered by address so the result is deterministic.
func GroupByAddress(messages []models.Message) []models.CorrelationEntry {
	index := make(map[string]int)
	var groups []models.CorrelationEntry
	for _, m := range messages {
		i, ok := index[m.Address]
		if !ok {
			i = len(groups)
			index[m.Address] = i
			groups = append(groups, models.CorrelationEntry{Number: m.Address})
		}
		groups[i].SMSCount++
		groups[i].Messages = append(groups[i].Messages, m)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].SMSCount != groups[b].SMSCount {
			return groups[a].SMSCount > groups[b].SMSCount
		}
		return groups[a].Number < groups[b].Number
	})
	return groups
}

// Correlate fills CallLogs for every group using lookup, running at most
// concurrency lookups at a time. A failed lookup leaves that group with an
// empty call list and is reported to onError; the other lookups continue.
func Correlate(ctx context.Context, groups []models.CorrelationEntry, lookup CallLookup, concurrency int, onError func(number string, err error)) []models.CorrelationEntry {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	out := make([]models.CorrelationEntry, len(groups))
	copy(out, groups)

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range out {
		g.Go(func() error {
			calls, err := lookup(ctx, out[i].Number)
			if err != nil {
				if onError != nil {
					onError(out[i].Number, err)
				}
				calls = nil
			}
			if calls == nil {
				calls = []models.CallLogEntry{}
			}
			out[i].CallLogs = calls
			return nil
		})
	}
	_ = g.Wait()
	return out
}
