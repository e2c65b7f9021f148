package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/production"
)

func TestNextCost_PrototypeThenProduction(t *testing.T) {
	d := production.DefaultDesign(1, production.CategoryCombat)

	money, metal := d.NextCost()
	assert.Equal(t, 1500, money)
	assert.Equal(t, 600, metal)

	d.PrototypeBuilt = true

	money, metal = d.NextCost()
	assert.Equal(t, 900, money)
	assert.Equal(t, 400, metal)
}

func TestDefaultDesign_StockBlueprints(t *testing.T) {
	for _, category := range production.Categories {
		d := production.DefaultDesign(7, category)

		assert.Equal(t, 7, d.PlayerID)
		assert.Equal(t, category, d.Category)
		assert.NotEmpty(t, d.Name)
		assert.Greater(t, d.PrototypeMoney, d.ProductionMoney)
		assert.Greater(t, d.PrototypeMetal, d.ProductionMetal)
		assert.False(t, d.PrototypeBuilt)
	}
}

func TestNewQueueItem_Unfinished(t *testing.T) {
	item := production.NewQueueItem(1, 10, 3, 12)

	assert.Equal(t, 10, item.PlanetID)
	assert.Equal(t, 3, item.DesignID)
	assert.Equal(t, 12, item.QueuedTurn)
	assert.False(t, item.Finished)
}
