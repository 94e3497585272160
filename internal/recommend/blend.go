package recommend

import "go.uber.org/zap"

// Blend weights. The external model dominates when present; the rule score
// keeps a floor of influence.
const (
	modelBlendWeight = 0.6
	ruleBlendWeight  = 0.4
)

// MatchPredictor is the narrow capability the blender depends on: given the
// engineered feature vector, return the probability of a good match. The
// concrete implementation (statistical classifier, future neural scorer) is
// swappable without touching the pipeline.
type MatchPredictor interface {
	Predict(features []float32) (float64, error)
}

// Blender combines the external model's prediction with the rule score.
// A nil predictor or a failing prediction falls back to the rule score
// alone; the fallback never surfaces as an error to the caller.
type Blender struct {
	predictor MatchPredictor
	logger    *zap.Logger
}

// NewBlender creates a Blender. predictor may be nil when no model is
// loaded; logger may be nil to disable the fallback warning.
func NewBlender(predictor MatchPredictor, logger *zap.Logger) *Blender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Blender{predictor: predictor, logger: logger}
}

// Blend returns the final score for a candidate given its rule score.
func (b *Blender) Blend(profile UserProfile, c Candidate, ruleScore float64) float64 {
	if b == nil || b.predictor == nil {
		return ruleScore
	}

	prob, err := b.predictor.Predict(ExtractFeatures(profile, c).Vector())
	if err != nil {
		b.logger.Warn("match model prediction failed, falling back to rule score",
			zap.String("scholarship_id", c.ID.String()),
			zap.Error(err))
		return ruleScore
	}

	return modelBlendWeight*(prob*100) + ruleBlendWeight*ruleScore
}
