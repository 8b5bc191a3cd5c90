// internal/models/profile.go
package models

import (
	"fmt"
	"strings"
)

// Employment types accepted by UserProfile.
const (
	EmploymentSalaried     = "salaried"
	EmploymentSelfEmployed = "self-employed"
)

// RewardTypes is the fixed set of reward categories a user may prefer.
var RewardTypes = []string{
	"Reward Points",
	"Shopping",
	"Lifestyle",
	"Business",
	"Travel",
	"Cashback",
	"Dining",
	"Rewards",
	"Lounge",
	"Fuel",
}

// UserProfile holds one request's decision inputs. Spending travels inside
// the profile so no state is shared between requests.
type UserProfile struct {
	Spending       int    `json:"spending"`
	Age            int    `json:"age"`
	Income         int    `json:"income"`
	EmploymentType string `json:"employmentType"`
	RewardType     string `json:"rewardType"`
}

// Validate enforces the two fixed enumerations. The employment type is
// normalized in place from free text before being checked.
func (p *UserProfile) Validate() error {
	emp, err := NormalizeEmploymentType(p.EmploymentType)
	if err != nil {
		return err
	}
	p.EmploymentType = emp

	if !validRewardType(p.RewardType) {
		return fmt.Errorf("invalid reward type %q", p.RewardType)
	}

	return nil
}

// NormalizeEmploymentType coerces free text to one of the two accepted
// employment types: anything mentioning "salaried" is salaried, anything
// mentioning "self" or "business" is self-employed.
func NormalizeEmploymentType(raw string) (string, error) {
	v := strings.ToLower(raw)
	switch {
	case strings.Contains(v, "salaried"):
		return EmploymentSalaried, nil
	case strings.Contains(v, "self"), strings.Contains(v, "business"):
		return EmploymentSelfEmployed, nil
	default:
		return "", fmt.Errorf("invalid employment type %q", raw)
	}
}

func validRewardType(v string) bool {
	for _, r := range RewardTypes {
		if r == v {
			return true
		}
	}
	return false
}
