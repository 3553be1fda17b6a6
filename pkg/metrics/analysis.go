package metrics

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// StatSummary holds final statistical results for a single set of
// measurements (e.g. for WallClocks).
type StatSummary struct {
	Count int
	Mean  time.Duration
	P50   time.Duration // Median
	P95   time.Duration
	Min   time.Duration
	Max   time.Duration
}

// TimeTotalsStats holds a complete StatSummary for each time type.
type TimeTotalsStats struct {
	WallClock StatSummary
	User      StatSummary
	System    StatSummary
}

// ComponentResult holds all statistical summaries for a single conceptual
// component, one entry per phase it was measured under (Commit, Respond,
// Verify, ...).
type ComponentResult struct {
	ConceptualName string
	Summaries      map[string]TimeTotalsStats
}

// AnalysisResult is the final output of the analyzer.
type AnalysisResult struct {
	Components map[string]ComponentResult
	Recorders  []*Recorder // For reference only, in writing the raw output to file.
}

// Analyzer processes recorders from repeated proof runs and produces a
// final statistical summary per component and phase.
type Analyzer struct {
	recorders []*Recorder
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Add collects a recorder from a single proof run.
func (a *Analyzer) Add(recorder *Recorder) {
	a.recorders = append(a.recorders, recorder)
}

type timeTotalsSlices struct {
	wallClocks  []time.Duration
	userTimes   []time.Duration
	systemTimes []time.Duration
}

// Analyze walks every recorder's measurement tree and, for each conceptual
// name, buckets its Inclusive timings by phase (MeasurementType), then
// computes mean/median/p95/min/max over every recorded run.
func (a *Analyzer) Analyze() AnalysisResult {
	byComponent := make(map[string]map[string]*timeTotalsSlices)

	for _, rec := range a.recorders {
		for _, root := range rec.RootMeasurements() {
			walk(root, byComponent)
		}
	}

	result := AnalysisResult{
		Components: make(map[string]ComponentResult),
		Recorders:  a.recorders,
	}
	for name, phases := range byComponent {
		comp := ComponentResult{ConceptualName: name, Summaries: make(map[string]TimeTotalsStats)}
		for phase, slices := range phases {
			comp.Summaries[phase] = calculateAllStats(slices)
		}
		result.Components[name] = comp
	}
	return result
}

func walk(m *Measurement, byComponent map[string]map[string]*timeTotalsSlices) {
	phases, ok := byComponent[m.ConceptualName]
	if !ok {
		phases = make(map[string]*timeTotalsSlices)
		byComponent[m.ConceptualName] = phases
	}
	slices, ok := phases[m.Type.String()]
	if !ok {
		slices = &timeTotalsSlices{}
		phases[m.Type.String()] = slices
	}
	slices.wallClocks = append(slices.wallClocks, m.Inclusive.WallClock)
	slices.userTimes = append(slices.userTimes, m.Inclusive.UserTime)
	slices.systemTimes = append(slices.systemTimes, m.Inclusive.SystemTime)

	for _, child := range m.Children {
		walk(child, byComponent)
	}
}

func calculateAllStats(slices *timeTotalsSlices) TimeTotalsStats {
	return TimeTotalsStats{
		WallClock: calculateStats(slices.wallClocks),
		User:      calculateStats(slices.userTimes),
		System:    calculateStats(slices.systemTimes),
	}
}

func calculateStats(durations []time.Duration) StatSummary {
	if len(durations) == 0 {
		return StatSummary{}
	}

	floats := make([]float64, len(durations))
	for i, v := range durations {
		floats[i] = float64(v.Microseconds())
	}
	sort.Float64s(floats)

	mmin, mmax := durations[0], durations[0]
	for _, v := range durations {
		if v < mmin {
			mmin = v
		}
		if v > mmax {
			mmax = v
		}
	}

	return StatSummary{
		Count: len(durations),
		Mean:  time.Duration(stat.Mean(floats, nil)) * time.Microsecond,
		P50:   time.Duration(stat.Quantile(0.5, stat.Empirical, floats, nil)) * time.Microsecond,
		P95:   time.Duration(stat.Quantile(0.95, stat.Empirical, floats, nil)) * time.Microsecond,
		Min:   mmin,
		Max:   mmax,
	}
}
