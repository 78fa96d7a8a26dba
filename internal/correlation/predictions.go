package correlation

import (
	"math"
	"strings"

	"github.com/jonathan/jobsearch-insights/internal/calc"
	"github.com/jonathan/jobsearch-insights/internal/normalize"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

// PredictionAccuracy compares self-predicted success probabilities with the
// outcomes that were eventually recorded. A positive CalibrationGap means
// predictions ran higher than reality.
func PredictionAccuracy(predictions []types.PredictionRecord, n *normalize.Normalizer) types.PredictionAccuracy {
	var result types.PredictionAccuracy
	predicted := make([]float64, 0, len(predictions))
	successes := 0

	for _, p := range predictions {
		if math.IsNaN(p.OverallProbability) || math.IsInf(p.OverallProbability, 0) {
			continue
		}
		if strings.TrimSpace(p.ActualOutcome) == "" {
			result.PendingPredictions++
			continue
		}
		predicted = append(predicted, normalize.NormalizeProbability(p.OverallProbability))
		if normalize.IsOffer(n.InterviewOutcome(p.ActualOutcome)) {
			successes++
		}
	}

	result.Samples = len(predicted)
	result.AvgPredicted = calc.Mean(predicted)
	result.ActualSuccessRate = calc.Percent(successes, result.Samples)
	if result.Samples > 0 {
		result.CalibrationGap = result.AvgPredicted - result.ActualSuccessRate
	}
	return result
}
