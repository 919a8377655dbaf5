package classifier

import (
	"regexp"

	"github.com/RanaNomiRana/backend-afa/internal/models"
)

// Detector flags text whose tokens contain one of Keywords or whose raw form matches Pattern.
// Multi-word keywords never equal a single token; they only take effect through Pattern.
type Detector struct {
	Category models.Category
	Keywords []string
	Pattern  *regexp.Regexp
}

// Match reports whether the detector fires for text with the given token set.
func (d Detector) Match(tokens map[string]struct{}, text string) bool {
	for _, kw := range d.Keywords {
		if _, ok := tokens[kw]; ok {
			return true
		}
	}
	return d.Pattern.MatchString(text)
}

// DefaultDetectors are evaluated in category priority order.
var DefaultDetectors = []Detector{
	{
		Category: models.CategoryFraud,
		Keywords: []string{
			"fraud", "scam", "money laundering", "tax evasion", "illegal transaction",
			"advance fee", "phishing", "investment scheme", "fake lottery", "unclaimed prize",
			"giveaway", "credit card fraud", "identity theft", "wire transfer", "account verification",
			"personal information", "confidentiality", "guaranteed win", "earn money fast", "risk-free",
		},
		Pattern: regexp.MustCompile(`(?i)buy now|limited time offer|guaranteed|risk-free|call now|exclusive deal|free gift|act now|urgent|cash prize`),
	},
	{
		Category: models.CategoryCriminal,
		Keywords: []string{
			"crime", "theft", "robbery", "murder", "assault", "terrorism", "drug trafficking",
			"illegal possession", "kidnapping", "extortion", "arson", "stolen goods", "gang violence",
			"underworld", "mafia", "hitman", "warrant", "crime scene", "criminal record",
			"dakati", "qatal", "dhoka", "bomb", "explosive", "attack", "violence", "assassin",
		},
		Pattern: regexp.MustCompile(`(?i)criminal|felony|law enforcement|arrest|warrant|wanted|gang|drug deal|illegal|offender|explosive|attack|violence`),
	},
	{
		Category: models.CategoryCyberbullying,
		Keywords: []string{
			"bully", "harass", "threaten", "abuse", "victim", "cyberstalk", "intimidate",
			"insult", "demean", "humiliate", "shame", "mock", "belittle", "coerce", "blackmail",
			"derogatory", "malicious", "discriminate", "targeted attack", "online harassment",
		},
		Pattern: regexp.MustCompile(`(?i)bully|harassment|intimidation|abuse|stalker|humiliate|shame|mock|insult|derogatory`),
	},
	{
		Category: models.CategoryThreat,
		Keywords: []string{
			"explosive", "bomb", "attack", "threat", "danger", "hazard", "weapon",
			"assassinate", "kidnap", "hostage", "terror", "risk", "emergency",
			"unsafe", "explosive device", "chemical weapon", "biological weapon",
		},
		Pattern: regexp.MustCompile(`(?i)bomb|explosive|attack|danger|threat|risk|terror|unsafe`),
	},
}
