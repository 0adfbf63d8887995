package explain

import "strings"

// Fixed indicator vocabularies. These are part of the explanation design,
// not configuration: they only steer the display heuristic and play no role
// in classification.
var spamIndicators = []string{
	"winner", "prize", "free", "click", "urgent", "limited", "offer",
	"deal", "money", "cash", "win", "congratulations", "act now",
	"guaranteed", "http", "www", "buy now", "discount", "sale",
	"credit", "loan",
}

var legitimateIndicators = []string{
	"meeting", "please", "thanks", "thank", "follow", "question",
	"discussion", "project", "team", "schedule", "agenda", "report",
	"review", "update",
}

// matchIndicator checks a lower-cased token against both vocabularies.
// Containment rather than equality, so punctuation-carrying tokens like
// "winner!!" or "http://spam-link.com" still match. Spam wins when a token
// somehow contains entries from both sets.
func matchIndicator(token string) (spam bool, matched bool) {
	for _, w := range spamIndicators {
		if strings.Contains(token, w) {
			return true, true
		}
	}
	for _, w := range legitimateIndicators {
		if strings.Contains(token, w) {
			return false, true
		}
	}
	return false, false
}
