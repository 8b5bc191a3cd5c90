// internal/recommend/recommender.go

// Package recommend ties the eligibility filter, the scoring heuristic, and
// the external explanation service into the recommendation pipeline.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"card-advisor/internal/catalog"
	stderrors "card-advisor/internal/common/errors"
	"card-advisor/internal/common/logger"
	"card-advisor/internal/common/metrics"
	"card-advisor/internal/models"
)

// Explainer is the external explanation capability: one short positive
// reason per chosen card, keyed by card name.
type Explainer interface {
	Explain(ctx context.Context, user models.UserProfile, cards []models.CardRecord) (map[string]string, error)
}

// Recommender runs the filter -> score -> rank -> explain pipeline over the
// loaded catalog.
type Recommender struct {
	catalog   *catalog.Catalog
	explainer Explainer
	opts      ScoringOptions
	logger    logger.Logger
}

// New creates a Recommender.
func New(cat *catalog.Catalog, explainer Explainer, opts ScoringOptions, log logger.Logger) *Recommender {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	return &Recommender{
		catalog:   cat,
		explainer: explainer,
		opts:      opts,
		logger:    log.WithFields(map[string]interface{}{"component": "recommender"}),
	}
}

// Recommend returns the top-K eligible cards with generated reasons.
// Reasons are matched to cards by card name; a missing name fails the whole
// recommendation rather than misattributing reason text.
func (r *Recommender) Recommend(ctx context.Context, user models.UserProfile) (*models.RankedRecommendation, error) {
	var scored []models.ScoredCard
	for _, card := range r.catalog.Cards() {
		if !Eligible(card, user) {
			continue
		}
		scored = append(scored, models.ScoredCard{
			Card:  card,
			Score: Score(card, user, r.opts),
		})
	}

	if len(scored) == 0 {
		r.logger.Info("no eligible cards", map[string]interface{}{
			"income":      user.Income,
			"catalogSize": r.catalog.Len(),
		})
		return nil, stderrors.NewNoEligibleCardsError(user.Income)
	}

	eligibleCount := len(scored)

	// Stable: ties keep catalog load order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.opts.TopK {
		scored = scored[:r.opts.TopK]
	}

	top := make([]models.CardRecord, len(scored))
	for i, sc := range scored {
		top[i] = sc.Card
	}

	reasons, err := r.explainer.Explain(ctx, user, top)
	if err != nil {
		return nil, err
	}

	for i := range scored {
		reason, ok := reasons[scored[i].Card.CardName]
		if !ok {
			return nil, stderrors.NewExplanationParseFailedError(
				fmt.Errorf("no reason returned for card %q", scored[i].Card.CardName))
		}
		scored[i].Reason = reason
	}

	r.logger.Info("recommendation produced", map[string]interface{}{
		"eligible": eligibleCount,
		"returned": len(scored),
		"topScore": scored[0].Score,
	})
	metrics.RecommendationsServed.Inc()

	return &models.RankedRecommendation{Cards: scored}, nil
}
