// internal/catalog/normalize.go
package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"card-advisor/internal/models"
)

var (
	feeRe    = regexp.MustCompile(`\d[\d,]*`)
	rateRe   = regexp.MustCompile(`(\d+\.?\d*)%`)
	digitsRe = regexp.MustCompile(`\d+`)
)

// Normalize converts one raw scraped record into a CardRecord. Scraped text
// is noisy, so every parse degrades to a default instead of failing.
func Normalize(raw models.RawCard) models.CardRecord {
	return models.CardRecord{
		CardName:         raw.CardName,
		MinMonthlyIncome: raw.MinMonthlyIncome,
		AgeRange:         ParseAgeRange(raw.Eligibility),
		JoiningFee:       ParseFee(raw.JoiningFee),
		AnnualFee:        ParseFee(raw.AnnualFee),
		RewardType:       raw.RewardType,
		RewardRate:       ParseRewardRate(raw.RewardRate),
		EmploymentType:   raw.EmploymentType,
		Eligibility:      raw.Eligibility,
		Features:         raw.Features,
		CardImage:        raw.CardImage,
	}
}

// ParseFee extracts the first run of digits (comma grouping allowed) from a
// free-text fee description. Returns 0 when no digits are found.
func ParseFee(s string) int {
	m := feeRe.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// ParseRewardRate extracts every percentage token from free text. Returns
// [0.0] when none are found so the sequence is never empty.
func ParseRewardRate(s string) []float64 {
	matches := rateRe.FindAllStringSubmatch(s, -1)
	rates := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		rates = append(rates, v)
	}
	if len(rates) == 0 {
		return []float64{0.0}
	}
	return rates
}

// ParseAgeRange scans eligibility text for an "Age:" marker and collects the
// digit runs up to the next colon-delimited section. A nil result means the
// marker is absent (no age restriction recorded); [0] means the marker was
// present but no digits followed it.
func ParseAgeRange(eligibility string) []int {
	_, after, found := strings.Cut(eligibility, "Age:")
	if !found {
		return nil
	}

	section := after
	if idx := strings.Index(after, ":"); idx >= 0 {
		section = after[:idx]
	}

	matches := digitsRe.FindAllString(section, -1)
	if len(matches) == 0 {
		return []int{0}
	}

	ages := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ages = append(ages, n)
	}
	if len(ages) == 0 {
		return []int{0}
	}
	return ages
}
