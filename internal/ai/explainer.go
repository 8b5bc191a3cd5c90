// internal/ai/explainer.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "card-advisor/internal/common/errors"
	"card-advisor/internal/common/logger"
	"card-advisor/internal/common/metrics"
	"card-advisor/internal/models"
)

const explainPrompt = `Create a response in JSON style with the following fields stating positive reasons for choosing the card:
{"reasons": [{"<cardName>": "<reason>"}, {"<cardName>": "<reason>"} ...]}
When user input was:
%s
And chosen cards are:
%s

Every chosen card must appear exactly once, keyed by its cardName.
output should have this structure: {"reasons": <list of single-key objects>}`

// cardBundle is the public display-field view of a card sent to the model.
type cardBundle struct {
	CardName         string    `json:"cardName"`
	MinMonthlyIncome int       `json:"minMonthlyIncome"`
	RewardType       string    `json:"rewardType"`
	RewardRate       []float64 `json:"rewardRate"`
	JoiningFee       int       `json:"joiningFee"`
	AnnualFee        int       `json:"annualFee"`
	Features         string    `json:"features"`
	Eligibility      string    `json:"eligibility"`
	UserSpending     int       `json:"userSpending"`
}

// Explainer generates one short positive reason per chosen card through the
// external explanation service.
type Explainer struct {
	generator ContentGenerator
	timeout   time.Duration
	logger    logger.Logger
}

// NewExplainer creates an Explainer.
func NewExplainer(generator ContentGenerator, timeout time.Duration, log logger.Logger) *Explainer {
	return &Explainer{
		generator: generator,
		timeout:   timeout,
		logger:    log.WithFields(map[string]interface{}{"component": "explainer"}),
	}
}

// Explain returns reasons keyed by card name. Unparseable model output
// fails the call; the orchestrator never returns cards without reasons.
func (e *Explainer) Explain(ctx context.Context, user models.UserProfile, cards []models.CardRecord) (map[string]string, error) {
	bundles := make([]cardBundle, len(cards))
	for i, card := range cards {
		bundles[i] = cardBundle{
			CardName:         card.CardName,
			MinMonthlyIncome: card.MinMonthlyIncome,
			RewardType:       card.RewardType,
			RewardRate:       card.RewardRate,
			JoiningFee:       card.JoiningFee,
			AnnualFee:        card.AnnualFee,
			Features:         card.Features,
			Eligibility:      card.Eligibility,
			UserSpending:     user.Spending,
		}
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, stderrors.NewExplanationParseFailedError(err)
	}
	chosenJSON, err := json.Marshal(bundles)
	if err != nil {
		return nil, stderrors.NewExplanationParseFailedError(err)
	}

	prompt := fmt.Sprintf(explainPrompt, userJSON, chosenJSON)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	raw, err := e.generator.GenerateContent(ctx, prompt)
	metrics.LLMCallDuration.WithLabelValues("explain").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallsTotal.WithLabelValues("explain", "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, stderrors.NewLLMTimeoutError("explain")
		}
		return nil, stderrors.NewLLMUpstreamFailedError(err)
	}
	metrics.LLMCallsTotal.WithLabelValues("explain", "ok").Inc()

	reasons, err := parseReasons(raw)
	if err != nil {
		return nil, stderrors.NewExplanationParseFailedError(err)
	}

	e.logger.Info("reasons generated", map[string]interface{}{
		"cards":   len(cards),
		"reasons": len(reasons),
	})

	return reasons, nil
}

// parseReasons decodes {"reasons": [{name: reason}, ...]} into a map keyed
// by card name.
func parseReasons(raw string) (map[string]string, error) {
	block, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Reasons []map[string]string `json:"reasons"`
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, fmt.Errorf("decode reasons: %w", err)
	}
	if len(payload.Reasons) == 0 {
		return nil, errors.New("model output carries no reasons")
	}

	reasons := make(map[string]string, len(payload.Reasons))
	for _, entry := range payload.Reasons {
		for name, reason := range entry {
			reasons[name] = reason
		}
	}
	return reasons, nil
}
