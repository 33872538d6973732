package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessassist/internal/analysis"
)

// MockEvaluator is a mock implementation of analysis.Evaluator
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, fen string) (analysis.EvalResult, error) {
	args := m.Called(ctx, fen)
	return args.Get(0).(analysis.EvalResult), args.Error(1)
}

// ReturnScores queues one successful evaluation per score, in call order.
func (m *MockEvaluator) ReturnScores(scores ...float64) {
	for _, s := range scores {
		m.On("Evaluate", mock.Anything, mock.Anything).Return(analysis.EvalResult{Score: s, BestMove: "e2e4"}, nil).Once()
	}
}
