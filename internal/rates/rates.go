// Package rates holds the fixed commission matrix. Amounts are flat rupee
// values per (purchaser tier, referrer tier) pair, one matrix per level,
// loaded once as an immutable value and handed to the ledger.
package rates

import (
	"fmt"

	"affiliate-service/internal/models"
)

type Table struct {
	direct   map[models.Tier]map[models.Tier]float64
	indirect map[models.Tier]map[models.Tier]float64
}

// New builds a table from per-level matrices keyed by referrer tier then
// purchaser tier. Both matrices must cover all nine tier pairs.
func New(direct, indirect map[models.Tier]map[models.Tier]float64) Table {
	for _, tables := range []map[models.Tier]map[models.Tier]float64{direct, indirect} {
		for _, referrer := range []models.Tier{models.TierSilver, models.TierGold, models.TierPlatinum} {
			row, ok := tables[referrer]
			if !ok {
				panic(fmt.Sprintf("rates: missing row for referrer tier %s", referrer))
			}
			for _, purchaser := range []models.Tier{models.TierSilver, models.TierGold, models.TierPlatinum} {
				if _, ok := row[purchaser]; !ok {
					panic(fmt.Sprintf("rates: missing entry for referrer %s / purchaser %s", referrer, purchaser))
				}
			}
		}
	}
	return Table{direct: direct, indirect: indirect}
}

// Default returns the production matrix.
func Default() Table {
	return New(
		map[models.Tier]map[models.Tier]float64{
			models.TierSilver:   {models.TierSilver: 1000, models.TierGold: 1400, models.TierPlatinum: 1800},
			models.TierGold:     {models.TierSilver: 1200, models.TierGold: 2000, models.TierPlatinum: 2600},
			models.TierPlatinum: {models.TierSilver: 1400, models.TierGold: 2400, models.TierPlatinum: 3600},
		},
		map[models.Tier]map[models.Tier]float64{
			models.TierSilver:   {models.TierSilver: 200, models.TierGold: 300, models.TierPlatinum: 400},
			models.TierGold:     {models.TierSilver: 300, models.TierGold: 500, models.TierPlatinum: 700},
			models.TierPlatinum: {models.TierSilver: 400, models.TierGold: 700, models.TierPlatinum: 1000},
		},
	)
}

// Amount returns the flat commission for a purchase at the given level.
// An unknown tier or level is a configuration defect and panics; the matrix
// must stay total so the ledger never silently pays zero by accident.
func (t Table) Amount(purchaser, referrer models.Tier, level int) float64 {
	var matrix map[models.Tier]map[models.Tier]float64
	switch level {
	case models.LevelDirect:
		matrix = t.direct
	case models.LevelIndirect:
		matrix = t.indirect
	default:
		panic(fmt.Sprintf("rates: undefined level %d", level))
	}

	row, ok := matrix[referrer]
	if !ok {
		panic(fmt.Sprintf("rates: undefined referrer tier %q", referrer))
	}
	amount, ok := row[purchaser]
	if !ok {
		panic(fmt.Sprintf("rates: undefined purchaser tier %q", purchaser))
	}
	return amount
}
