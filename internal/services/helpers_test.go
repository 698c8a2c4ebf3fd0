package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func testOptions() models.CriteriaOptions {
	return models.CriteriaOptions{
		HardinessZones:    []string{"3", "4", "5", "6", "7", "8", "9"},
		SunExposures:      []string{"Full Sun", "Partial Shade", "Full Shade"},
		SoilTypes:         []string{"Clay", "Loam", "Sand"},
		MoistureLevels:    []string{"Dry", "Moist", "Wet"},
		BloomSeasons:      []string{"Spring", "Summer", "Autumn", "Winter"},
		BloomColors:       []string{"White", "Yellow", "Pink", "Purple", "Red"},
		MaintenanceLevels: []string{"Low", "Medium", "High"},
		BudgetRanges:      []string{"Budget", "Moderate", "Premium"},
	}
}

// testPlant builds a catalog record that matches a moderate brief; tests
// override the fields they exercise.
func testPlant(botanicalName string) models.PlantRecord {
	return models.PlantRecord{
		ID:               uuid.New(),
		BotanicalName:    botanicalName,
		CommonName:       "Test Plant",
		Category:         "Shrub",
		HeightMin:        1.0,
		HeightMax:        2.0,
		WidthMin:         0.5,
		WidthMax:         1.5,
		HardinessZoneMin: 4,
		HardinessZoneMax: 8,
		SunExposure:      "Full Sun",
		SoilType:         "Loam",
		SoilPHMin:        6.0,
		SoilPHMax:        7.5,
		MoistureLevel:    "Moist",
		MaintenanceLevel: "Low",
		BloomColors:      []string{"White", "Pink"},
		BloomSeason:      "Summer",
		Price:            24.50,
		BudgetBand:       "Moderate",
	}
}
