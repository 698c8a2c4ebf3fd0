package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// DatabaseQuerier is the slice of pgxpool.Pool the stores need, small enough
// for pgxmock to stand in during tests.
type DatabaseQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// PlantCatalog supplies the full read-only catalog snapshot for one
// recommendation computation. The engine never writes through it.
type PlantCatalog interface {
	ListPlants(ctx context.Context) ([]models.PlantRecord, error)
}

// PostgresPlantCatalog reads the plants table owned by the catalog CRUD
// service. Budget bands are derived from price at load time so the scoring
// engine can match them against the budget_range enumeration.
type PostgresPlantCatalog struct {
	db     DatabaseQuerier
	logger *logrus.Logger
}

func NewPostgresPlantCatalog(db DatabaseQuerier, logger *logrus.Logger) *PostgresPlantCatalog {
	return &PostgresPlantCatalog{db: db, logger: logger}
}

const listPlantsQuery = `
	SELECT id, botanical_name, common_name, category,
		height_min, height_max, width_min, width_max,
		hardiness_zone_min, hardiness_zone_max,
		sun_exposure, soil_type, soil_ph_min, soil_ph_max,
		moisture_level, maintenance_level,
		bloom_colors, bloom_season,
		native, wildlife_friendly, deer_resistant, pollinator_friendly,
		suitable_for_containers, suitable_for_screening, suitable_for_hedging,
		suitable_for_groundcover, suitable_for_slopes,
		price
	FROM plants
	ORDER BY botanical_name`

func (c *PostgresPlantCatalog) ListPlants(ctx context.Context) ([]models.PlantRecord, error) {
	rows, err := c.db.Query(ctx, listPlantsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query plant catalog: %w", err)
	}
	defer rows.Close()

	var plants []models.PlantRecord
	for rows.Next() {
		var p models.PlantRecord
		err := rows.Scan(
			&p.ID, &p.BotanicalName, &p.CommonName, &p.Category,
			&p.HeightMin, &p.HeightMax, &p.WidthMin, &p.WidthMax,
			&p.HardinessZoneMin, &p.HardinessZoneMax,
			&p.SunExposure, &p.SoilType, &p.SoilPHMin, &p.SoilPHMax,
			&p.MoistureLevel, &p.MaintenanceLevel,
			&p.BloomColors, &p.BloomSeason,
			&p.Native, &p.WildlifeFriendly, &p.DeerResistant, &p.PollinatorFriendly,
			&p.SuitableForContainers, &p.SuitableForScreening, &p.SuitableForHedging,
			&p.SuitableForGroundcover, &p.SuitableForSlopes,
			&p.Price,
		)
		if err != nil {
			c.logger.WithError(err).Warn("Failed to scan plant record, skipping")
			continue
		}
		p.BudgetBand = budgetBandForPrice(p.Price)
		plants = append(plants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading plant catalog rows: %w", err)
	}
	return plants, nil
}

// Budget band boundaries in catalog currency per plant. These mirror the
// budget_range labels served by the criteria options collaborator.
const (
	budgetBandLowCeiling    = 15.0
	budgetBandMediumCeiling = 50.0
)

func budgetBandForPrice(price float64) string {
	switch {
	case price < budgetBandLowCeiling:
		return "Budget"
	case price < budgetBandMediumCeiling:
		return "Moderate"
	default:
		return "Premium"
	}
}
