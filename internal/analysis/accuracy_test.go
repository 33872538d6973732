package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessassist/internal/analysis"
)

func TestCalculateAccuracy_Examples(t *testing.T) {
	tests := []struct {
		name       string
		before     float64
		after      float64
		whiteMoved bool
		want       float64
	}{
		{"no change", 1.0, 1.0, true, 100},
		{"five centipawns", 1.0, 0.95, true, 95},
		{"lost one and a half pawns", 1.0, -0.5, true, 25},
		{"improved position", 0.2, 0.8, true, 100},
		{"ten centipawns is still 95", 0.5, 0.4, true, 95},
		{"thirty centipawns", 1.0, 0.7, true, 85},
		{"sixty centipawns", 1.0, 0.4, true, 70},
		{"one pawn", 1.0, 0.0, true, 50},
		{"just over one pawn", 1.0, -0.01, true, 25},
		{"black keeps eval", -0.5, -0.5, false, 100},
		{"black lets white gain", -0.5, 0.5, false, 50},
		{"black improves", 0.3, -0.3, false, 100},
		{"black small slip", -1.0, -0.8, false, 85},
		{"half a centipawn", 1.0, 0.995, true, 95},
		{"fraction past ten centipawns", 1.0, 0.896, true, 85},
		{"fraction past thirty centipawns", 1.0, 0.6995, true, 70},
		{"fraction past one pawn", 1.0, -0.004, true, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.CalculateAccuracy(tt.before, tt.after, tt.whiteMoved))
		})
	}
}

func TestCalculateAccuracy_MateScores(t *testing.T) {
	inf := math.Inf(1)

	assert.Equal(t, 25.0, analysis.CalculateAccuracy(inf, 0, true), "white threw away a forced mate")
	assert.Equal(t, 100.0, analysis.CalculateAccuracy(0, inf, true), "white found a mate")
	assert.Equal(t, 100.0, analysis.CalculateAccuracy(inf, inf, true), "mate kept")
	assert.Equal(t, 25.0, analysis.CalculateAccuracy(0, inf, false), "black walked into mate")
	assert.Equal(t, 100.0, analysis.CalculateAccuracy(-inf, -inf, false))
}

func TestCalculateAccuracy_NonPositiveLossIsExcellent(t *testing.T) {
	for _, before := range []float64{-3, -0.5, 0, 0.25, 4} {
		for _, gain := range []float64{0, 0.01, 0.5, 2} {
			acc := analysis.CalculateAccuracy(before, before+gain, true)
			assert.Equal(t, 100.0, acc)
			assert.Equal(t, analysis.Excellent, analysis.ClassifyAccuracy(acc))

			acc = analysis.CalculateAccuracy(before, before-gain, false)
			assert.Equal(t, 100.0, acc)
		}
	}
}

func TestCalculateAccuracy_MonotonicInLoss(t *testing.T) {
	prev := math.Inf(1)
	for cp := -50; cp <= 300; cp++ {
		loss := float64(cp) / 100
		acc := analysis.CalculateAccuracy(0, -loss, true)
		assert.LessOrEqual(t, acc, prev, "loss %.2f", loss)
		prev = acc
	}
}

func TestClassifyAccuracy(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{100, analysis.Excellent},
		{95, analysis.Excellent},
		{94.9, analysis.Good},
		{85, analysis.Good},
		{84, analysis.Inaccuracy},
		{70, analysis.Inaccuracy},
		{69.99, analysis.Mistake},
		{50, analysis.Mistake},
		{49, analysis.Blunder},
		{25, analysis.Blunder},
		{0, analysis.Blunder},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.ClassifyAccuracy(tt.accuracy))
		})
	}
}
