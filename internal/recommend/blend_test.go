package recommend

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubPredictor struct {
	prob float64
	err  error
}

func (s stubPredictor) Predict(_ []float32) (float64, error) {
	return s.prob, s.err
}

func TestBlend_WeightedAverage(t *testing.T) {
	b := NewBlender(stubPredictor{prob: 0.9}, nil)

	final := b.Blend(baselineProfile(), Candidate{ID: uuid.New()}, 50)

	// 0.6*90 + 0.4*50
	assert.InDelta(t, 74.0, final, 0.0001)
}

func TestBlend_PredictorErrorFallsBackToRuleScore(t *testing.T) {
	b := NewBlender(stubPredictor{err: errors.New("session not initialized")}, nil)

	final := b.Blend(baselineProfile(), Candidate{ID: uuid.New()}, 62.5)

	assert.Equal(t, 62.5, final)
}

func TestBlend_NilPredictorFallsBackToRuleScore(t *testing.T) {
	b := NewBlender(nil, nil)

	final := b.Blend(baselineProfile(), Candidate{ID: uuid.New()}, 30)

	assert.Equal(t, 30.0, final)
}
