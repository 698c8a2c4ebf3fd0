package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

func TestCandidateFilter_Filter(t *testing.T) {
	filter := NewCandidateFilter(testLogger())

	zone := func(z int) *models.Criteria {
		return &models.Criteria{HardinessZone: &z}
	}

	t.Run("zone intersection eliminates incompatible plants", func(t *testing.T) {
		inRange := testPlant("Acer campestre")
		inRange.HardinessZoneMin, inRange.HardinessZoneMax = 3, 7

		outOfRange := testPlant("Buddleja davidii")
		outOfRange.HardinessZoneMin, outOfRange.HardinessZoneMax = 6, 9

		survivors := filter.Filter(zone(5), []models.PlantRecord{inRange, outOfRange})
		assert.Len(t, survivors, 1)
		assert.Equal(t, "Acer campestre", survivors[0].BotanicalName)
	})

	t.Run("deer resistance required is a hard constraint", func(t *testing.T) {
		resistant := testPlant("Buxus sempervirens")
		resistant.DeerResistant = true
		tasty := testPlant("Hosta sieboldiana")

		criteria := &models.Criteria{DeerResistantRequired: true}
		survivors := filter.Filter(criteria, []models.PlantRecord{tasty, resistant})
		assert.Len(t, survivors, 1)
		assert.Equal(t, "Buxus sempervirens", survivors[0].BotanicalName)
	})

	t.Run("pollinator friendly required is a hard constraint", func(t *testing.T) {
		friendly := testPlant("Lavandula angustifolia")
		friendly.PollinatorFriendly = true
		plain := testPlant("Fagus sylvatica")

		criteria := &models.Criteria{PollinatorFriendlyRequired: true}
		survivors := filter.Filter(criteria, []models.PlantRecord{friendly, plain})
		assert.Len(t, survivors, 1)
		assert.Equal(t, "Lavandula angustifolia", survivors[0].BotanicalName)
	})

	t.Run("soft criteria never eliminate", func(t *testing.T) {
		shade := "Full Shade"
		criteria := &models.Criteria{SunExposure: &shade}

		sunLover := testPlant("Rosa rugosa")
		sunLover.SunExposure = "Full Sun"

		survivors := filter.Filter(criteria, []models.PlantRecord{sunLover})
		assert.Len(t, survivors, 1)
	})

	t.Run("no criteria keeps every plant in catalog order", func(t *testing.T) {
		plants := []models.PlantRecord{
			testPlant("Cornus mas"), testPlant("Amelanchier lamarckii"), testPlant("Betula pendula"),
		}
		survivors := filter.Filter(&models.Criteria{}, plants)
		assert.Equal(t, plants, survivors)
	})

	t.Run("empty survivor set is valid", func(t *testing.T) {
		plant := testPlant("Ilex aquifolium")
		plant.HardinessZoneMin, plant.HardinessZoneMax = 7, 9

		survivors := filter.Filter(zone(3), []models.PlantRecord{plant})
		assert.Empty(t, survivors)
	})
}
