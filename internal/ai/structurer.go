// internal/ai/structurer.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	stderrors "card-advisor/internal/common/errors"
	"card-advisor/internal/common/logger"
	"card-advisor/internal/common/metrics"
	"card-advisor/internal/models"
)

// structurePrompt carries the target schema and one worked example. The
// reward-type list is substituted at call time.
const structurePrompt = `We got user input as: %s

Rewrite this in the format:
{
    "rewardType": <choose the most suitable one from {%s}>,
    "spending": <(integer) how much the user spends on that reward>,
    "age": <integer>,
    "income": <integer>,
    "employmentType": <'salaried' or 'self-employed'>
}

Example:
Input: {"spending": "I spend about 6000 on fuel and 500 on dining", "Age": "I am 21", "employmentType": "I have a business", "monthlyIncome": "50000"}
Output: {"rewardType": "Fuel", "spending": 6000, "age": 21, "income": 50000, "employmentType": "self-employed"}

Respond with a single JSON object and nothing else.`

// Structurer converts free-text user answers into a validated UserProfile
// via the external structuring service.
type Structurer struct {
	generator ContentGenerator
	cache     *StructuringCache
	timeout   time.Duration
	logger    logger.Logger
}

// NewStructurer creates a Structurer. cache may be nil.
func NewStructurer(generator ContentGenerator, cache *StructuringCache, timeout time.Duration, log logger.Logger) *Structurer {
	return &Structurer{
		generator: generator,
		cache:     cache,
		timeout:   timeout,
		logger:    log.WithFields(map[string]interface{}{"component": "structurer"}),
	}
}

// Structure delegates the answer map to the model, extracts the first JSON
// object from its output, and builds a validated profile. Parse and
// validation failures surface as bad-request errors carrying the cause.
func (s *Structurer) Structure(ctx context.Context, answers map[string]string) (models.UserProfile, error) {
	var profile models.UserProfile

	payload, err := json.Marshal(answers)
	if err != nil {
		return profile, stderrors.NewStructuringParseFailedError(err)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, payload); ok {
			return cached, nil
		}
	}

	prompt := fmt.Sprintf(structurePrompt, payload, strings.Join(models.RewardTypes, ", "))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.generator.GenerateContent(ctx, prompt)
	metrics.LLMCallDuration.WithLabelValues("structure").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallsTotal.WithLabelValues("structure", "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return profile, stderrors.NewLLMTimeoutError("structure")
		}
		return profile, stderrors.NewLLMUpstreamFailedError(err)
	}
	metrics.LLMCallsTotal.WithLabelValues("structure", "ok").Inc()

	block, err := extractJSONObject(raw)
	if err != nil {
		return profile, stderrors.NewStructuringParseFailedError(err)
	}

	if err := json.Unmarshal([]byte(block), &profile); err != nil {
		return profile, stderrors.NewStructuringParseFailedError(err)
	}

	if err := profile.Validate(); err != nil {
		return models.UserProfile{}, stderrors.NewProfileValidationFailedError(err.Error())
	}

	s.logger.Info("profile structured", map[string]interface{}{
		"rewardType":     profile.RewardType,
		"employmentType": profile.EmploymentType,
	})

	if s.cache != nil {
		s.cache.Set(ctx, payload, profile)
	}

	return profile, nil
}
