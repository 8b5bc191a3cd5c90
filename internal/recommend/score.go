// internal/recommend/score.go
package recommend

import (
	"strings"

	"card-advisor/internal/models"
)

// ScoringOptions tunes the ranking heuristic.
type ScoringOptions struct {
	// FeePenaltyEnabled subtracts (annualFee+joiningFee)/1000 from the
	// score. Off by default.
	FeePenaltyEnabled bool
	// TopK caps the number of recommended cards. Defaults to 5.
	TopK int
}

// DefaultTopK is the recommendation list cap.
const DefaultTopK = 5

// Eligible is the admission gate: income only. Age and employment type
// influence the score, not eligibility.
func Eligible(card models.CardRecord, user models.UserProfile) bool {
	return user.Income >= card.MinMonthlyIncome
}

// Score ranks an eligible card against the user profile:
//   - +50 when the preferred reward type is a substring of the card's
//     reward type (case-insensitive)
//   - +20 when the employment type matches the same way
//   - +10 per percentage point of the card's best reward rate
//
// Scores are not normalized. Equal scores keep catalog order through the
// caller's stable sort.
func Score(card models.CardRecord, user models.UserProfile, opts ScoringOptions) float64 {
	score := 0.0

	if containsFold(card.RewardType, user.RewardType) {
		score += 50
	}
	if containsFold(card.EmploymentType, user.EmploymentType) {
		score += 20
	}
	if len(card.RewardRate) > 0 {
		score += 10 * card.MaxRewardRate()
	}

	if opts.FeePenaltyEnabled {
		score -= float64((card.AnnualFee + card.JoiningFee) / 1000)
	}

	return score
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
