package rates

import (
	"testing"

	"affiliate-service/internal/models"

	"github.com/stretchr/testify/assert"
)

var allTiers = []models.Tier{models.TierSilver, models.TierGold, models.TierPlatinum}

func TestDefaultTableIsTotal(t *testing.T) {
	table := Default()

	for _, purchaser := range allTiers {
		for _, referrer := range allTiers {
			for _, level := range []int{models.LevelDirect, models.LevelIndirect} {
				var amount float64
				assert.NotPanics(t, func() {
					amount = table.Amount(purchaser, referrer, level)
				}, "amount for %s/%s level %d", purchaser, referrer, level)
				assert.GreaterOrEqual(t, amount, 0.0)
			}
		}
	}
}

func TestIndirectPaysLessThanDirect(t *testing.T) {
	table := Default()

	for _, purchaser := range allTiers {
		for _, referrer := range allTiers {
			direct := table.Amount(purchaser, referrer, models.LevelDirect)
			indirect := table.Amount(purchaser, referrer, models.LevelIndirect)
			assert.Less(t, indirect, direct, "%s/%s", purchaser, referrer)
		}
	}
}

func TestHigherReferrerTierEarnsMore(t *testing.T) {
	table := Default()

	for _, purchaser := range allTiers {
		silver := table.Amount(purchaser, models.TierSilver, models.LevelDirect)
		gold := table.Amount(purchaser, models.TierGold, models.LevelDirect)
		platinum := table.Amount(purchaser, models.TierPlatinum, models.LevelDirect)

		assert.LessOrEqual(t, silver, gold)
		assert.LessOrEqual(t, gold, platinum)
	}
}

func TestAmountPanicsOnUndefinedCombination(t *testing.T) {
	table := Default()

	assert.Panics(t, func() { table.Amount("BRONZE", models.TierGold, models.LevelDirect) })
	assert.Panics(t, func() { table.Amount(models.TierGold, "DIAMOND", models.LevelIndirect) })
	assert.Panics(t, func() { table.Amount(models.TierGold, models.TierGold, 3) })
	assert.Panics(t, func() { table.Amount(models.TierGold, models.TierGold, 0) })
}

func TestNewRejectsPartialMatrix(t *testing.T) {
	partial := map[models.Tier]map[models.Tier]float64{
		models.TierSilver: {models.TierSilver: 100},
	}
	full := Default().direct

	assert.Panics(t, func() { New(partial, full) })
	assert.Panics(t, func() { New(full, partial) })
}
