package classifier

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// NegativeThreshold: a score below it makes a message negative.
const NegativeThreshold = -2

const (
	EmojiAngry     = "😡"
	EmojiSad       = "😞"
	EmojiNeutral   = "😐"
	EmojiHappy     = "😊"
	EmojiVeryHappy = "😁"
)

var sentimentStrip = regexp.MustCompile("[.,/#!?$%^&*;:{}=_`\"~()\\[\\]<>|+\\\\-]")

// negators flip the polarity of the word that follows them.
var negators = map[string]struct{}{
	"aint": {}, "ain't": {}, "arent": {}, "aren't": {}, "cannot": {}, "cant": {}, "can't": {},
	"couldnt": {}, "couldn't": {}, "didnt": {}, "didn't": {}, "doesnt": {}, "doesn't": {},
	"dont": {}, "don't": {}, "hadnt": {}, "hadn't": {}, "hasnt": {}, "hasn't": {},
	"havent": {}, "haven't": {}, "isnt": {}, "isn't": {}, "mightnt": {}, "mightn't": {},
	"neednt": {}, "needn't": {}, "neither": {}, "never": {}, "no": {}, "nobody": {},
	"none": {}, "nor": {}, "not": {}, "nothing": {}, "nowhere": {}, "shant": {}, "shan't": {},
	"shouldnt": {}, "shouldn't": {}, "wasnt": {}, "wasn't": {}, "werent": {}, "weren't": {},
	"without": {}, "wont": {}, "won't": {}, "wouldnt": {}, "wouldn't": {},
}

// afinn165.json is the AFINN-165 word list: word -> polarity in [-5, 5].
//
//go:embed afinn165.json
var afinn165 []byte

var lexicon = mustLoadLexicon(afinn165)

func mustLoadLexicon(data []byte) map[string]int {
	words := make(map[string]int)
	if err := json.Unmarshal(data, &words); err != nil {
		panic(fmt.Sprintf("classifier: invalid sentiment lexicon: %v", err))
	}
	return words
}

// SentimentScore sums word polarities, flipping a word's polarity when it
// directly follows a negator.
func SentimentScore(text string) int {
	cleaned := strings.ToLower(strings.ReplaceAll(text, "\n", " "))
	cleaned = sentimentStrip.ReplaceAllString(cleaned, " ")
	words := strings.Fields(cleaned)

	score := 0
	for i, w := range words {
		v, ok := lexicon[w]
		if !ok {
			continue
		}
		if i > 0 {
			if _, neg := negators[words[i-1]]; neg {
				v = -v
			}
		}
		score += v
	}
	return score
}

// Emoji maps a sentiment score to its display glyph.
func Emoji(score int) string {
	switch {
	case score < NegativeThreshold:
		return EmojiAngry
	case score < 0:
		return EmojiSad
	case score == 0:
		return EmojiNeutral
	case score <= 2:
		return EmojiHappy
	default:
		return EmojiVeryHappy
	}
}
