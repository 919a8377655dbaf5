// Package classifier assigns a risk category and a sentiment glyph to free text
// using fixed keyword tables, regular expressions and a polarity lexicon.
package classifier

import (
	"regexp"
	"strings"

	"github.com/RanaNomiRana/backend-afa/internal/models"
)

var wordSplit = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Signals are the five independent risk indicators for one text.
type Signals struct {
	Fraud             bool `json:"fraud"`
	Criminal          bool `json:"criminal"`
	Cyberbullying     bool `json:"cyberbullying"`
	Threat            bool `json:"threat"`
	NegativeSentiment bool `json:"negativeSentiment"`
}

// Any reports whether at least one signal fired.
func (s Signals) Any() bool {
	return s.Fraud || s.Criminal || s.Cyberbullying || s.Threat || s.NegativeSentiment
}

// Category returns the first signal that fired in priority order
// fraud > criminal > cyberbullying > threat > negative_sentiment, else normal.
func (s Signals) Category() models.Category {
	switch {
	case s.Fraud:
		return models.CategoryFraud
	case s.Criminal:
		return models.CategoryCriminal
	case s.Cyberbullying:
		return models.CategoryCyberbullying
	case s.Threat:
		return models.CategoryThreat
	case s.NegativeSentiment:
		return models.CategoryNegativeSentiment
	default:
		return models.CategoryNormal
	}
}

// Result is the outcome of classifying one text.
type Result struct {
	Signals        Signals
	Score          int
	IsSuspicious   bool
	Category       models.Category
	SentimentEmoji string
}

type Classifier struct {
	detectors []Detector
}

// New returns a classifier over detectors; nil selects DefaultDetectors.
func New(detectors []Detector) *Classifier {
	if detectors == nil {
		detectors = DefaultDetectors
	}
	return &Classifier{detectors: detectors}
}

// Tokenize lower-cases text and splits it into words.
func Tokenize(text string) []string {
	parts := wordSplit.Split(strings.ToLower(text), -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

func (c *Classifier) Classify(text string) Result {
	tokens := make(map[string]struct{})
	for _, w := range Tokenize(text) {
		tokens[w] = struct{}{}
	}

	var s Signals
	for _, d := range c.detectors {
		if !d.Match(tokens, text) {
			continue
		}
		switch d.Category {
		case models.CategoryFraud:
			s.Fraud = true
		case models.CategoryCriminal:
			s.Criminal = true
		case models.CategoryCyberbullying:
			s.Cyberbullying = true
		case models.CategoryThreat:
			s.Threat = true
		}
	}

	score := SentimentScore(text)
	s.NegativeSentiment = score < NegativeThreshold

	return Result{
		Signals:        s,
		Score:          score,
		IsSuspicious:   s.Any(),
		Category:       s.Category(),
		SentimentEmoji: Emoji(score),
	}
}

// Apply classifies the message body in place. A missing body classifies as empty text.
func (c *Classifier) Apply(msg *models.Message) Result {
	text := ""
	if msg.Body != nil {
		text = *msg.Body
	}
	r := c.Classify(text)
	msg.IsSuspicious = r.IsSuspicious
	msg.Category = r.Category
	msg.SentimentEmoji = r.SentimentEmoji
	return r
}
