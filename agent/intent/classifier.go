// Package intent holds the heuristic classification of a single exchange:
// whether the user has shown clear purchase intent, and what phase the
// conversation is in. Both passes are pure functions over the exchange text.
//
// Matching is substring containment on lower-cased text, not word-boundary
// matching. That keeps classification outcomes stable against the phrase
// tables below; "upgrading" to tokenized matching changes results.
package intent

import (
	"strings"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

// strongPurchaseIntent phrases in the user's text alone are enough to flag
// lead capture. They are explicit statements of wanting to buy, sign up,
// apply or proceed, so informational questions don't trip them.
var strongPurchaseIntent = []string{
	"i want to sign up",
	"i want to apply",
	"i want to purchase",
	"i want to buy",
	"i want to subscribe",
	"i'd like to sign up",
	"i'd like to apply",
	"i'd like to purchase",
	"i'd like to buy",
	"i'd like to subscribe",
	"i would like to sign up",
	"i would like to apply",
	"i would like to purchase",
	"i would like to buy",
	"i would like to subscribe",
	"sign me up",
	"i'm ready to apply",
	"i'm ready to purchase",
	"i'm ready to buy",
	"i'm ready to sign up",
	"i'm ready to subscribe",
	"let's proceed",
	"let's move forward",
	"i'll take it",
	"i'll take this",
	"i want this policy",
	"i want this insurance",
	"how do i apply",
	"how do i sign up",
	"how do i purchase",
	"how do i buy",
	"how can i apply",
	"how can i sign up",
	"how can i purchase",
	"how can i buy",
	"i'm ready",
	"ready to apply",
	"ready to purchase",
	"ready to buy",
	"ready to sign up",
}

// contactRequestPhrases mark the agent as having initiated contact-info
// collection.
var contactRequestPhrases = []string{
	"could i get your name",
	"can i get your name",
	"may i have your name",
	"could i get your phone",
	"can i get your phone",
	"may i have your phone",
	"could i get your email",
	"can i get your email",
	"may i have your email",
	"contact information",
	"phone number",
	"email address",
}

// purchaseHints are weaker signals that only count once the agent is already
// asking for contact details.
var purchaseHints = []string{
	"sign up", "apply", "purchase", "buy", "subscribe", "get started",
	"proceed", "move forward", "ready", "interested in getting",
}

// DetectPurchaseIntent reports whether the exchange shows clear purchase
// intent: either a strong phrase in the user's text, or the agent asking for
// contact details while the user drops a purchase hint.
func DetectPurchaseIntent(userText, agentText string) bool {
	userLower := strings.ToLower(userText)
	agentLower := strings.ToLower(agentText)

	for _, phrase := range strongPurchaseIntent {
		if strings.Contains(userLower, phrase) {
			return true
		}
	}

	agentAsking := false
	for _, phrase := range contactRequestPhrases {
		if strings.Contains(agentLower, phrase) {
			agentAsking = true
			break
		}
	}
	if !agentAsking {
		return false
	}

	for _, hint := range purchaseHints {
		if strings.Contains(userLower, hint) {
			return true
		}
	}
	return false
}

var stateKeywords = []struct {
	state    contractx.ConversationState
	keywords []string
}{
	{contractx.StateGreeting, []string{"hello", "hi", "greeting", "welcome"}},
	{contractx.StateNeedsAssessment, []string{"need", "looking for", "situation", "family", "dependents", "budget"}},
	{contractx.StateProductRecommendation, []string{"term life", "whole life", "universal life", "variable life", "recommend", "suitable", "product", "policy"}},
	{contractx.StateLeadCapture, []string{"name", "phone", "email", "contact"}},
}

// ClassifyState evaluates the exchange against keyword categories in fixed
// priority order; the first matching category wins, and unclear exchanges
// default to needs assessment.
func ClassifyState(userText, agentText string) contractx.ConversationState {
	combined := strings.ToLower(userText + " " + agentText)

	for _, entry := range stateKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(combined, keyword) {
				return entry.state
			}
		}
	}
	return contractx.StateNeedsAssessment
}
