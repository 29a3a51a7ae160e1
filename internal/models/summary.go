package models

// Digest aggregates a batch of journey results.
type Digest struct {
	Total      int            `json:"total"`
	Succeeded  int            `json:"succeeded"`
	Failed     int            `json:"failed"`
	DurationMs int64          `json:"duration_ms"`
	Engines    []EngineDigest `json:"engines,omitempty"`
}

// EngineDigest holds the counts for a single engine.
type EngineDigest struct {
	Engine    EngineKey `json:"engine"`
	Succeeded int       `json:"succeeded"`
	Total     int       `json:"total"`
}

// SuccessRate returns the fraction of runs that succeeded, or 0 for an empty batch.
func (d Digest) SuccessRate() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Succeeded) / float64(d.Total)
}

// Summarize computes a Digest. Engines appear in the order they were first seen.
func Summarize(results []JourneyResult) Digest {
	var d Digest
	idx := map[EngineKey]int{}
	for _, r := range results {
		d.Total++
		d.DurationMs += r.DurationMs
		if r.Succeeded() {
			d.Succeeded++
		} else {
			d.Failed++
		}

		i, ok := idx[r.EngineKey]
		if !ok {
			i = len(d.Engines)
			idx[r.EngineKey] = i
			d.Engines = append(d.Engines, EngineDigest{Engine: r.EngineKey})
		}
		d.Engines[i].Total++
		if r.Succeeded() {
			d.Engines[i].Succeeded++
		}
	}
	return d
}
