package metrics

import (
	"math"

	"github.com/spboyer/journeys/internal/models"
)

// EngineStats summarizes the runs of one engine. Durations are in milliseconds.
type EngineStats struct {
	Engine   models.EngineKey `json:"engine"`
	Runs     int              `json:"runs"`
	PassRate float64          `json:"pass_rate"`
	MeanMs   float64          `json:"mean_ms"`
	StdDevMs float64          `json:"stddev_ms"`
	CI95Low  float64          `json:"ci95_low_ms"`
	CI95High float64          `json:"ci95_high_ms"`
}

// ComputeEngineStats groups results by engine, in first-seen order.
func ComputeEngineStats(results []models.JourneyResult) []EngineStats {
	var order []models.EngineKey
	durations := map[models.EngineKey][]float64{}
	passed := map[models.EngineKey]int{}
	for _, r := range results {
		if _, ok := durations[r.EngineKey]; !ok {
			order = append(order, r.EngineKey)
		}
		durations[r.EngineKey] = append(durations[r.EngineKey], float64(r.DurationMs))
		if r.Succeeded() {
			passed[r.EngineKey]++
		}
	}

	out := make([]EngineStats, 0, len(order))
	for _, e := range order {
		d := durations[e]
		lo, hi := ConfidenceInterval95(d)
		out = append(out, EngineStats{
			Engine:   e,
			Runs:     len(d),
			PassRate: float64(passed[e]) / float64(len(d)),
			MeanMs:   Mean(d),
			StdDevMs: StdDev(d),
			CI95Low:  lo,
			CI95High: hi,
		})
	}
	return out
}

// DisagreeingInputs returns the input key values that passed on some engines
// and failed on others, in first-seen order.
func DisagreeingInputs(results []models.JourneyResult, inputKey string) []string {
	var order []string
	total := map[string]int{}
	passed := map[string]int{}
	for _, r := range results {
		v := r.Input[inputKey]
		if _, ok := total[v]; !ok {
			order = append(order, v)
		}
		total[v]++
		if r.Succeeded() {
			passed[v]++
		}
	}

	var out []string
	for _, v := range order {
		if IsFlaky(float64(passed[v]) / float64(total[v])) {
			out = append(out, v)
		}
	}
	return out
}

// Mean returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the population standard deviation; 0 for empty input.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// ConfidenceInterval95 uses the normal approximation with the sample
// standard deviation. Fewer than 2 values give (mean, mean).
func ConfidenceInterval95(values []float64) (float64, float64) {
	n := len(values)
	m := Mean(values)
	if n < 2 {
		return m, m
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	margin := 1.96 * math.Sqrt(sumSq/float64(n-1)) / math.Sqrt(float64(n))
	return m - margin, m + margin
}

// IsFlaky is true when passRate is strictly between 0 and 1.
func IsFlaky(passRate float64) bool {
	return passRate > 0 && passRate < 1
}
