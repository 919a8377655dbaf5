package analysis

import (
	"fmt"
	"regexp"

	"github.com/RanaNomiRana/backend-afa/internal/models"
)

// DefaultSpamPatterns flag known spam domains.
var DefaultSpamPatterns = []string{
	`example-spam-domain\.com`,
	`another-spam-site\.net`,
}

var (
	urlPattern    = regexp.MustCompile(`(?:http|https)://[^\s]+`)
	hasURLPattern = regexp.MustCompile(`(?i)http://|https://|www\.`)
)

// ExtractURLs returns every http(s) URL in text, in order of appearance.
func ExtractURLs(text string) []string {
	urls := urlPattern.FindAllString(text, -1)
	if urls == nil {
		return []string{}
	}
	return urls
}

// HasURL reports whether text looks like it carries a link.
func HasURL(text string) bool {
	return hasURLPattern.MatchString(text)
}

type SpamMatcher struct {
	patterns []*regexp.Regexp
}

func NewSpamMatcher(patterns []string) (*SpamMatcher, error) {
	m := &SpamMatcher{}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid spam pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

func (m *SpamMatcher) IsSpam(url string) bool {
	for _, re := range m.patterns {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}

// AnalyzeURLs splits link-bearing messages into spam and non-spam findings.
// A message is spam when any of its URLs matches a spam pattern.
func AnalyzeURLs(messages []models.Message, m *SpamMatcher) models.URLAnalysis {
	res := models.URLAnalysis{
		SpamURLs:    []models.URLFinding{},
		NonSpamURLs: []models.URLFinding{},
	}
	for _, msg := range messages {
		if msg.Body == nil || !HasURL(*msg.Body) {
			continue
		}
		urls := ExtractURLs(*msg.Body)
		finding := models.URLFinding{
			Sender: msg.Address,
			Date:   msg.Date,
			Body:   *msg.Body,
			URLs:   urls,
		}
		spam := false
		for _, u := range urls {
			if m.IsSpam(u) {
				spam = true
				break
			}
		}
		if spam {
			res.SpamURLs = append(res.SpamURLs, finding)
		} else {
			res.NonSpamURLs = append(res.NonSpamURLs, finding)
		}
	}
	return res
}
