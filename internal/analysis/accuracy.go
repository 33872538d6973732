package analysis

import "math"

// Classification labels for a single move.
const (
	Excellent  = "excellent"
	Good       = "good"
	Inaccuracy = "inaccuracy"
	Mistake    = "mistake"
	Blunder    = "blunder"
)

// lossEpsilon absorbs float noise such as 1.0-0.7 = 0.30000000000000004 at
// the bucket edges.
const lossEpsilon = 1e-9

// Classifications lists every label from best to worst.
var Classifications = []string{Excellent, Good, Inaccuracy, Mistake, Blunder}

// CalculateAccuracy scores one move from the evaluations, in pawns from
// white's perspective, of the position before and after it was played.
func CalculateAccuracy(evalBefore, evalAfter float64, whiteMoved bool) float64 {
	// Evaluations are from white's side; flip them so loss is from the mover's side.
	if !whiteMoved {
		evalBefore, evalAfter = -evalBefore, -evalAfter
	}

	loss := evalBefore - evalAfter
	if math.IsNaN(loss) {
		// Mate before and after for the same side.
		loss = 0
	}

	switch {
	case loss <= 0+lossEpsilon:
		return 100
	case loss <= 0.1+lossEpsilon:
		return 95
	case loss <= 0.3+lossEpsilon:
		return 85
	case loss <= 0.6+lossEpsilon:
		return 70
	case loss <= 1.0+lossEpsilon:
		return 50
	default:
		return 25
	}
}

// ClassifyAccuracy maps an accuracy score to its label.
func ClassifyAccuracy(accuracy float64) string {
	switch {
	case accuracy >= 95:
		return Excellent
	case accuracy >= 85:
		return Good
	case accuracy >= 70:
		return Inaccuracy
	case accuracy >= 50:
		return Mistake
	default:
		return Blunder
	}
}
