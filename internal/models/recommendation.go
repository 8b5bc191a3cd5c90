// internal/models/recommendation.go
package models

// ScoredCard pairs a catalog entry with its heuristic score and the
// generated reason for recommending it.
type ScoredCard struct {
	Card   CardRecord `json:"card"`
	Score  float64    `json:"score"`
	Reason string     `json:"reason"`
}

// RankedRecommendation is the response entity: at most five cards ordered by
// score descending, catalog order preserved among equal scores.
type RankedRecommendation struct {
	Cards []ScoredCard `json:"cards"`
}
