// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-advisor/internal/ai"
	"card-advisor/internal/catalog"
	"card-advisor/internal/common/logger"
	"card-advisor/internal/httpapi"
	"card-advisor/internal/models"
	"card-advisor/internal/recommend"
)

// scriptedGenerator answers structuring prompts with a fixed profile and
// explanation prompts with one reason per card named in the prompt, standing
// in for the external text-generation service.
type scriptedGenerator struct {
	profileJSON string
	cardNames   []string
}

func (g *scriptedGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Rewrite this in the format") {
		return g.profileJSON, nil
	}

	entries := make([]string, 0, len(g.cardNames))
	for _, name := range g.cardNames {
		if strings.Contains(prompt, name) {
			entries = append(entries, fmt.Sprintf(`{"%s": "Strong fit for your reward preference and income."}`, name))
		}
	}
	return fmt.Sprintf(`{"reasons": [%s]}`, strings.Join(entries, ", ")), nil
}

const testDataset = `{
	"dataset": [
		{
			"cardName": "Metro Rewards Gold",
			"minMonthlyIncome": 20000,
			"age": [21, 60],
			"joiningFee": 500,
			"annualFee": 500,
			"rewardType": "Shopping",
			"rewardRate": [1.5, 3.0],
			"employmentType": "Salaried",
			"eligibility": "Age:21 to 60:Income: above 20000"
		},
		{
			"cardName": "Metro Cashback Plus",
			"minMonthlyIncome": 30000,
			"age": [21, 65],
			"joiningFee": 1000,
			"annualFee": 1000,
			"rewardType": "Cashback",
			"rewardRate": [5.0],
			"employmentType": "Salaried",
			"eligibility": "Age:21 to 65:Income: above 30000"
		},
		{
			"cardName": "Metro Elite Travel",
			"minMonthlyIncome": 150000,
			"joiningFee": 10000,
			"annualFee": 10000,
			"rewardType": "Travel",
			"rewardRate": [2.0],
			"employmentType": "Salaried or Self Employed",
			"eligibility": "Income: above 150000"
		}
	]
}`

func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))

	cat, err := catalog.Open(context.Background(), catalog.NewFileStore(path))
	require.NoError(t, err)

	generator := &scriptedGenerator{
		profileJSON: `{"rewardType": "Cashback", "spending": 20000, "age": 30, "income": 60000, "employmentType": "salaried"}`,
		cardNames:   []string{"Metro Rewards Gold", "Metro Cashback Plus", "Metro Elite Travel"},
	}

	log := logger.NewTestLogger(t)
	structurer := ai.NewStructurer(generator, nil, 5*time.Second, log)
	explainer := ai.NewExplainer(generator, 5*time.Second, log)
	recommender := recommend.New(cat, explainer, recommend.ScoringOptions{}, log)

	handler := httpapi.NewHandler(structurer, recommender, log)
	mux := httpapi.NewServeMux(handler, nil, log)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestFullPipeline(t *testing.T) {
	srv := startServer(t)

	// 1. Structure free-text answers into a profile
	resp := postJSON(t, srv.URL+"/v1/parse-input", map[string]string{
		"spending":       "I spend around 20000 on online shopping",
		"age":            "I am 30",
		"employmentType": "I am salaried",
		"monthlyIncome":  "60000",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Profile models.UserProfile `json:"profile"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal(t, "Cashback", parsed.Profile.RewardType)
	assert.Equal(t, models.EmploymentSalaried, parsed.Profile.EmploymentType)

	// 2. Feed the structured profile into the recommender
	resp = postJSON(t, srv.URL+"/v1/recommend", parsed.Profile)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recommendation models.RankedRecommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recommendation))

	// Elite Travel's income floor excludes it; Cashback Plus outranks Gold.
	require.Len(t, recommendation.Cards, 2)
	assert.Equal(t, "Metro Cashback Plus", recommendation.Cards[0].Card.CardName)
	assert.Equal(t, "Metro Rewards Gold", recommendation.Cards[1].Card.CardName)
	assert.Greater(t, recommendation.Cards[0].Score, recommendation.Cards[1].Score)
	for _, sc := range recommendation.Cards {
		assert.NotEmpty(t, sc.Reason)
	}
}

func TestFullPipeline_NoEligibleCards(t *testing.T) {
	srv := startServer(t)

	profile := models.UserProfile{
		Income:         5000,
		EmploymentType: models.EmploymentSalaried,
		RewardType:     "Cashback",
	}
	resp := postJSON(t, srv.URL+"/v1/recommend", profile)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	srv := startServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkRecommend(b *testing.B) {
	path := filepath.Join(b.TempDir(), "cards.json")
	if err := os.WriteFile(path, []byte(testDataset), 0o644); err != nil {
		b.Fatal(err)
	}

	cat, err := catalog.Open(context.Background(), catalog.NewFileStore(path))
	if err != nil {
		b.Fatal(err)
	}

	generator := &scriptedGenerator{
		cardNames: []string{"Metro Rewards Gold", "Metro Cashback Plus", "Metro Elite Travel"},
	}
	log := logger.NewNoOpLogger()
	explainer := ai.NewExplainer(generator, 5*time.Second, log)
	recommender := recommend.New(cat, explainer, recommend.ScoringOptions{}, log)

	user := models.UserProfile{
		Spending:       20000,
		Age:            30,
		Income:         60000,
		EmploymentType: models.EmploymentSalaried,
		RewardType:     "Cashback",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := recommender.Recommend(context.Background(), user); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNormalize(b *testing.B) {
	raw := models.RawCard{
		CardName:         "Metro Rewards Gold",
		JoiningFee:       "₹1,500 + GST",
		AnnualFee:        "Nil",
		RewardType:       "Shopping",
		RewardRate:       "2% to 5% on partner brands",
		MinMonthlyIncome: 20000,
		EmploymentType:   "Salaried",
		Eligibility:      "Age:21 to 60 years:Income: above 20000",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		catalog.Normalize(raw)
	}
}
