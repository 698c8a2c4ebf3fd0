package services

import "github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"

// Dimension identifies one scoring dimension of the design brief.
type Dimension string

const (
	DimHardinessZone    Dimension = "hardiness_zone"
	DimSunExposure      Dimension = "sun_exposure"
	DimSoilType         Dimension = "soil_type"
	DimSoilPH           Dimension = "soil_ph"
	DimMoistureLevel    Dimension = "moisture_level"
	DimHeight           Dimension = "height"
	DimWidth            Dimension = "width"
	DimColor            Dimension = "color"
	DimBloomSeason      Dimension = "bloom_season"
	DimMaintenanceLevel Dimension = "maintenance_level"
	DimBudgetRange      Dimension = "budget_range"
	DimNative           Dimension = "native"
	DimWildlife         Dimension = "wildlife"
	DimContainer        Dimension = "container"
	DimScreening        Dimension = "screening"
	DimHedging          Dimension = "hedging"
	DimGroundcover      Dimension = "groundcover"
	DimSlope            Dimension = "slope"
)

// WeightTable is the named, versioned per-dimension weight mapping injected
// into the scoring engine. Core environmental criteria carry the highest
// weights; project-context booleans the lowest.
type WeightTable struct {
	Version string
	Weights map[Dimension]float64
}

// Weight returns the configured weight for a dimension, falling back to a
// small non-zero weight for dimensions missing from the table so a supplied
// criterion can never silently vanish from the overall score.
func (wt WeightTable) Weight(dim Dimension) float64 {
	if w, ok := wt.Weights[dim]; ok && w > 0 {
		return w
	}
	return 0.1
}

// DefaultWeightTable is the shipped tuning. Overridable per dimension via
// engine.weights.dimensions in config.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		Version: "2024.1",
		Weights: map[Dimension]float64{
			DimHardinessZone:    1.0,
			DimSunExposure:      1.0,
			DimMoistureLevel:    0.9,
			DimSoilType:         0.8,
			DimSoilPH:           0.8,
			DimHeight:           0.7,
			DimWidth:            0.6,
			DimColor:            0.5,
			DimBloomSeason:      0.5,
			DimMaintenanceLevel: 0.4,
			DimBudgetRange:      0.4,
			DimNative:           0.25,
			DimWildlife:         0.25,
			DimContainer:        0.25,
			DimScreening:        0.25,
			DimHedging:          0.25,
			DimGroundcover:      0.25,
			DimSlope:            0.25,
		},
	}
}

// WeightTableFromConfig merges configured dimension weights over the default
// table. An empty config yields the default table unchanged.
func WeightTableFromConfig(cfg config.WeightsConfig) WeightTable {
	table := DefaultWeightTable()
	if cfg.Version != "" {
		table.Version = cfg.Version
	}
	for name, weight := range cfg.Dimensions {
		if weight > 0 {
			table.Weights[Dimension(name)] = weight
		}
	}
	return table
}
