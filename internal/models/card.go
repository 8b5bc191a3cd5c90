// internal/models/card.go
package models

// RawCard is one scraped catalog entry before normalization. Every field
// arrives as free text from the provider pages; any of them may be empty.
type RawCard struct {
	CardName         string `json:"cardName"`
	JoiningFee       string `json:"joiningFee"`
	AnnualFee        string `json:"annualFee"`
	RewardType       string `json:"rewardType"`
	RewardRate       string `json:"rewardRate"`
	MinMonthlyIncome int    `json:"minMonthlyIncome"`
	EmploymentType   string `json:"employmentType"`
	Eligibility      string `json:"eligibility"`
	Features         string `json:"features"`
	CardImage        string `json:"cardImage"`
	AffiliateLink    string `json:"affiliateLink,omitempty"`
}

// CardRecord is one normalized catalog entry. Records are created once by
// the normalizer and immutable afterwards.
//
// RewardRate is never empty; the normalizer guarantees a [0.0] fallback.
// AgeRange is nil when the eligibility text carries no "Age:" marker and
// [0] when the marker is present but no digits follow it.
type CardRecord struct {
	CardName         string    `json:"cardName"`
	MinMonthlyIncome int       `json:"minMonthlyIncome"`
	AgeRange         []int     `json:"age,omitempty"`
	JoiningFee       int       `json:"joiningFee"`
	AnnualFee        int       `json:"annualFee"`
	RewardType       string    `json:"rewardType"`
	RewardRate       []float64 `json:"rewardRate"`
	EmploymentType   string    `json:"employmentType"`
	Eligibility      string    `json:"eligibility"`
	Features         string    `json:"features"`
	CardImage        string    `json:"cardImage"`
}

// MaxRewardRate returns the best advertised rate.
func (c CardRecord) MaxRewardRate() float64 {
	max := 0.0
	for _, r := range c.RewardRate {
		if r > max {
			max = r
		}
	}
	return max
}

// Dataset mirrors the persisted catalog file layout.
type Dataset struct {
	Dataset []CardRecord `json:"dataset"`
}

// RawDataset mirrors the scraper output consumed by the normalizer.
type RawDataset struct {
	Dataset []RawCard `json:"dataset"`
}
