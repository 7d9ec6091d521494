package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/relieflabs/claims-analytics/internal/models"
)

// Engine answers the fixed set of reporting queries over a loaded dataset.
// It holds read-only views plus two lookup maps built once at construction;
// nothing is mutated afterward, so concurrent readers need no locking.
type Engine struct {
	ds *models.Dataset

	// disastersByState counts disasters per state name. States with zero
	// disasters never appear as keys.
	disastersByState map[string]int

	disastersByID map[int]models.Disaster
}

func NewEngine(ds *models.Dataset) *Engine {
	e := &Engine{
		ds:               ds,
		disastersByState: make(map[string]int, 64),
		disastersByID:    make(map[int]models.Disaster, len(ds.Disasters)),
	}
	for _, d := range ds.Disasters {
		e.disastersByState[d.State]++
		e.disastersByID[d.ID] = d
	}
	return e
}

// roundCents rounds a decimal sum to whole cents, half away from zero.
// Decimal arithmetic here is deliberate: summing estimate costs as float64
// loses the ".005" boundary cases (10.005 + 5.00 must round to 15.01).
func roundCents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func roundDensity(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }
