package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/relieflabs/claims-analytics/internal/models"
)

// ClosedClaimCount returns the number of settled claims.
func (e *Engine) ClosedClaimCount() int {
	count := 0
	for _, c := range e.ds.Claims {
		if c.Closed() {
			count++
		}
	}
	return count
}

// ClaimCountForHandler returns how many claims are assigned to a handler.
func (e *Engine) ClaimCountForHandler(handlerID int) int {
	count := 0
	for _, c := range e.ds.Claims {
		if c.ClaimHandlerAssignedID == handlerID {
			count++
		}
	}
	return count
}

// DisasterCountForState returns how many disasters were declared in a state.
func (e *Engine) DisasterCountForState(state string) int {
	return e.disastersByState[state]
}

// TotalClaimCostForDisaster sums estimate costs of every claim filed against
// a disaster, rounded to cents. Returns nil when no claim references the id.
func (e *Engine) TotalClaimCostForDisaster(disasterID int) *float64 {
	total := decimal.Zero
	found := false
	for _, c := range e.ds.Claims {
		if c.DisasterID == disasterID {
			total = total.Add(decimal.NewFromFloat(c.EstimateCost))
			found = true
		}
	}
	if !found {
		return nil
	}
	return ptrFloat(roundCents(total))
}

// AverageClaimCostForHandler returns the mean estimate cost over a handler's
// claims, rounded to cents, or nil when the handler has none.
func (e *Engine) AverageClaimCostForHandler(handlerID int) *float64 {
	total := decimal.Zero
	count := 0
	for _, c := range e.ds.Claims {
		if c.ClaimHandlerAssignedID == handlerID {
			total = total.Add(decimal.NewFromFloat(c.EstimateCost))
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := total.Div(decimal.NewFromInt(int64(count)))
	return ptrFloat(roundCents(avg))
}

// StateWithMostDisasters returns the state with the highest disaster count.
// Ties go to the lexicographically smallest name. States with zero disasters
// are not in the index and therefore cannot win.
func (e *Engine) StateWithMostDisasters() string {
	best, bestCount := "", 0
	for state, count := range e.disastersByState {
		if count > bestCount || (count == bestCount && (best == "" || state < best)) {
			best, bestCount = state, count
		}
	}
	return best
}

// StateWithLeastDisasters returns the state with the lowest disaster count
// among states that had at least one disaster, ties broken alphabetically.
func (e *Engine) StateWithLeastDisasters() string {
	best := ""
	bestCount := math.MaxInt
	for state, count := range e.disastersByState {
		if count < bestCount || (count == bestCount && state < best) {
			best, bestCount = state, count
		}
	}
	return best
}

// MostSpokenLanguageForState tallies secondary languages of agents in a
// state. Empty values and "English" are excluded. Ties go to the
// lexicographically smallest language; "" means nothing qualified.
func (e *Engine) MostSpokenLanguageForState(state string) string {
	tally := make(map[string]int)
	for _, a := range e.ds.Agents {
		if a.State != state {
			continue
		}
		if a.SecondaryLanguage == "" || a.SecondaryLanguage == models.EnglishSentinel {
			continue
		}
		tally[a.SecondaryLanguage]++
	}

	best, bestCount := "", 0
	for lang, count := range tally {
		if count > bestCount || (count == bestCount && lang < best) {
			best, bestCount = lang, count
		}
	}
	return best
}

// OpenClaimCountForAgent counts the agent's open claims at or above a
// severity threshold. Three-valued result, encoded the way callers must
// distinguish the cases:
//   - pointer to -1 when minSeverity is outside [1,10]
//   - nil when the agent has no claims at all, open or closed
//   - pointer to the count otherwise
func (e *Engine) OpenClaimCountForAgent(agentID, minSeverity int) *int {
	if minSeverity <= 0 || minSeverity > 10 {
		return ptrInt(-1)
	}

	total, open := 0, 0
	for _, c := range e.ds.Claims {
		if c.AgentAssignedID != agentID {
			continue
		}
		total++
		if !c.Closed() && c.SeverityRating >= minSeverity {
			open++
		}
	}
	if total == 0 {
		return nil
	}
	return ptrInt(open)
}

// DisastersDeclaredAfterEndCount counts disasters whose declaration date is
// strictly later than their end date. Dates compare at day precision.
func (e *Engine) DisastersDeclaredAfterEndCount() int {
	count := 0
	for _, d := range e.ds.Disasters {
		if d.DeclaredDate.After(d.EndDate.Time) {
			count++
		}
	}
	return count
}

// TotalClaimCostByAgent maps every loaded agent id to the summed estimate
// cost of its claims, rounded to cents. Agents with no claims map to 0.
// Claims whose agent id does not resolve to a loaded agent are dropped; the
// presence check is explicit so a legitimate zero total is never confused
// with a missing agent.
func (e *Engine) TotalClaimCostByAgent() map[int]float64 {
	totals := make(map[int]decimal.Decimal, len(e.ds.Agents))
	for _, a := range e.ds.Agents {
		totals[a.ID] = decimal.Zero
	}
	for _, c := range e.ds.Claims {
		if _, ok := totals[c.AgentAssignedID]; !ok {
			continue
		}
		totals[c.AgentAssignedID] = totals[c.AgentAssignedID].Add(decimal.NewFromFloat(c.EstimateCost))
	}

	out := make(map[int]float64, len(totals))
	for id, total := range totals {
		out[id] = roundCents(total)
	}
	return out
}

// ClaimDensityForDisaster returns claims per square mile of the disaster's
// circular impact zone, rounded to 5 decimals. Returns nil when no claim
// references the id, and also when the disaster record itself is missing
// (the radius is unknowable, so absence rather than a NaN).
func (e *Engine) ClaimDensityForDisaster(disasterID int) *float64 {
	count := 0
	for _, c := range e.ds.Claims {
		if c.DisasterID == disasterID {
			count++
		}
	}
	if count == 0 {
		return nil
	}

	d, ok := e.disastersByID[disasterID]
	if !ok {
		return nil
	}
	density := float64(count) / (math.Pi * d.RadiusMiles * d.RadiusMiles)
	return ptrFloat(roundDensity(density))
}

// TopThreeMonthsByClaimCost buckets claim costs by the month the claim's
// disaster was declared and returns up to three "January 2024" style labels,
// highest total first. Claims referencing unknown disasters are skipped.
// Bucket sums stay unrounded; ties sort by the label itself, ascending.
func (e *Engine) TopThreeMonthsByClaimCost() []string {
	buckets := make(map[string]decimal.Decimal)
	for _, c := range e.ds.Claims {
		d, ok := e.disastersByID[c.DisasterID]
		if !ok {
			continue
		}
		key := d.DeclaredDate.Format("January 2006")
		buckets[key] = buckets[key].Add(decimal.NewFromFloat(c.EstimateCost))
	}

	months := make([]string, 0, len(buckets))
	for key := range buckets {
		months = append(months, key)
	}
	sort.Slice(months, func(i, j int) bool {
		cmp := buckets[months[i]].Cmp(buckets[months[j]])
		if cmp != 0 {
			return cmp > 0
		}
		return months[i] < months[j]
	})

	if len(months) > 3 {
		months = months[:3]
	}
	return months
}
