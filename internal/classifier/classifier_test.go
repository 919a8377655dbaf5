package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RanaNomiRana/backend-afa/internal/models"
)

func TestClassify_FraudBeatsCriminal(t *testing.T) {
	r := New(nil).Classify("this scam involves a robbery")
	assert.True(t, r.Signals.Fraud)
	assert.True(t, r.Signals.Criminal)
	assert.Equal(t, models.CategoryFraud, r.Category)
	assert.True(t, r.IsSuspicious)
}

func TestClassify_PatternMatchesRawText(t *testing.T) {
	r := New(nil).Classify("Claim your CASH PRIZE today")
	assert.True(t, r.Signals.Fraud)
	assert.Equal(t, models.CategoryFraud, r.Category)
}

func TestClassify_MultiWordKeywordOnlyThroughPattern(t *testing.T) {
	// "money laundering" never equals a single token and no fraud pattern covers it.
	r := New(nil).Classify("talk about money laundering later")
	assert.False(t, r.Signals.Fraud)
}

func TestClassify_Categories(t *testing.T) {
	c := New(nil)
	cases := []struct {
		text string
		want models.Category
	}{
		{"the gang is wanted by police", models.CategoryCriminal},
		{"stop trying to humiliate me", models.CategoryCyberbullying},
		{"there is a hazard near the door", models.CategoryThreat},
		{"see you at lunch tomorrow", models.CategoryNormal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Classify(tc.text).Category, tc.text)
	}
}

func TestClassify_NegativeSentiment(t *testing.T) {
	r := New(nil).Classify("you are a stupid ugly loser")
	assert.False(t, r.Signals.Fraud || r.Signals.Criminal || r.Signals.Cyberbullying || r.Signals.Threat)
	assert.True(t, r.Signals.NegativeSentiment)
	assert.Equal(t, models.CategoryNegativeSentiment, r.Category)
	assert.Equal(t, EmojiAngry, r.SentimentEmoji)
}

func TestClassify_SuspiciousIffNotNormal(t *testing.T) {
	c := New(nil)
	texts := []string{
		"", "hello", "fraud alert", "bomb", "I hate this awful terrible day",
		"great news, we won!", "mock exam on friday", "don't worry",
	}
	for _, text := range texts {
		r := c.Classify(text)
		assert.Equal(t, r.Signals.Any(), r.IsSuspicious, text)
		assert.Equal(t, !r.IsSuspicious, r.Category == models.CategoryNormal, text)
	}
}

func TestSignals_CategoryPriority(t *testing.T) {
	all := Signals{Fraud: true, Criminal: true, Cyberbullying: true, Threat: true, NegativeSentiment: true}
	assert.Equal(t, models.CategoryFraud, all.Category())

	all.Fraud = false
	assert.Equal(t, models.CategoryCriminal, all.Category())
	all.Criminal = false
	assert.Equal(t, models.CategoryCyberbullying, all.Category())
	all.Cyberbullying = false
	assert.Equal(t, models.CategoryThreat, all.Category())
	all.Threat = false
	assert.Equal(t, models.CategoryNegativeSentiment, all.Category())
	all.NegativeSentiment = false
	assert.Equal(t, models.CategoryNormal, all.Category())
}

func TestEmoji(t *testing.T) {
	assert.Equal(t, EmojiAngry, Emoji(-3))
	assert.Equal(t, EmojiSad, Emoji(-2))
	assert.Equal(t, EmojiSad, Emoji(-1))
	assert.Equal(t, EmojiNeutral, Emoji(0))
	assert.Equal(t, EmojiHappy, Emoji(1))
	assert.Equal(t, EmojiHappy, Emoji(2))
	assert.Equal(t, EmojiVeryHappy, Emoji(3))
}

func TestSentimentScore_Negation(t *testing.T) {
	assert.Equal(t, 3, SentimentScore("good"))
	assert.Equal(t, -3, SentimentScore("not good"))
	assert.Equal(t, 6, SentimentScore("Good, good!"))
}

func TestSentimentScore_Lexicon(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"I am furious and miserable", -6},
		{"you are a liar and a coward, disgraceful", -8},
		{"devastated, hopeless, depressed", -6},
		{"outstanding work, thrilled", 10},
		{"never trusted him", -2},
		{"this wasn't helpful", -2},
		{"hostage situation", -2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SentimentScore(tc.text), tc.text)
	}
}

func TestClassify_LexiconNegativeSentiment(t *testing.T) {
	c := New(nil)
	for _, text := range []string{
		"I am furious and miserable",
		"you are a liar and a coward, disgraceful",
		"devastated, hopeless, depressed",
	} {
		r := c.Classify(text)
		assert.True(t, r.IsSuspicious, text)
		assert.Equal(t, models.CategoryNegativeSentiment, r.Category, text)
		assert.Equal(t, EmojiAngry, r.SentimentEmoji, text)
	}
}

func TestLexicon_Loaded(t *testing.T) {
	assert.Greater(t, len(lexicon), 3000)
	for w, v := range lexicon {
		assert.True(t, v >= -5 && v <= 5, w)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"call", "me", "at", "5pm", "ok"}, Tokenize("Call me, at 5pm... OK?"))
	assert.Empty(t, Tokenize("  ,, "))
}

func TestApply_NilBody(t *testing.T) {
	msg := models.Message{Address: "x"}
	New(nil).Apply(&msg)
	assert.False(t, msg.IsSuspicious)
	assert.Equal(t, models.CategoryNormal, msg.Category)
	assert.Equal(t, EmojiNeutral, msg.SentimentEmoji)
}
