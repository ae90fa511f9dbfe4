package llm

import (
	"fmt"
	"strings"
)

// BuildRiskExplanationPrompt asks for a short free-text explanation of
// one item's computed risk. Output is prose, not JSON.
func BuildRiskExplanationPrompt(
	itemName string,
	category string,
	daysUntilExpiry int,
	consumptionFrequency float64,
	riskScore int,
) string {
	return fmt.Sprintf(`You are a food waste prevention assistant.

An inventory item was scored for expiration risk:
- Item: %s
- Category: %s
- Days until expiry: %d
- Consumption frequency: %.1f uses per week
- Risk score: %d out of 100

Write ONE short sentence (max 25 words) explaining the risk to the user.
Plain text only. No markdown. No preamble.`,
		itemName,
		category,
		daysUntilExpiry,
		consumptionFrequency,
		riskScore,
	)
}

// BuildInsightsPrompt asks for waste-reduction insights as a strict
// JSON array. Callers must run the result through ExtractJSON.
func BuildInsightsPrompt(
	percentile int,
	userGrams float64,
	communityAvgGrams float64,
	worstCategories []string,
	recentReasons []string,
) string {
	return fmt.Sprintf(`You are a food waste reduction coach.

User data:
- Weekly waste: %.0f grams (community average: %.0f grams)
- Percentile: %d (higher is better)
- Categories wasting more than the community: %s
- Recent waste reasons: %s

Your task:
- Output a STRICT JSON array of at most 3 insight objects.
- Output MUST start with [ and end with ].
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.

Required JSON schema:
[
  {
    "title": "string",
    "description": "string",
    "action_items": ["string"]
  }
]`,
		userGrams,
		communityAvgGrams,
		percentile,
		orNone(worstCategories),
		orNone(recentReasons),
	)
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
