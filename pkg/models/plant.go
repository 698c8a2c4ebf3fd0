package models

import "github.com/google/uuid"

// PlantRecord is a read-only catalog entry borrowed from the plant catalog
// collaborator. It is never mutated within a recommendation computation.
type PlantRecord struct {
	ID            uuid.UUID `json:"id"`
	BotanicalName string    `json:"botanical_name"`
	CommonName    string    `json:"common_name"`
	Category      string    `json:"category"`

	HeightMin float64 `json:"height_min"`
	HeightMax float64 `json:"height_max"`
	WidthMin  float64 `json:"width_min"`
	WidthMax  float64 `json:"width_max"`

	HardinessZoneMin int `json:"hardiness_zone_min"`
	HardinessZoneMax int `json:"hardiness_zone_max"`

	SunExposure      string  `json:"sun_exposure"`
	SoilType         string  `json:"soil_type"`
	SoilPHMin        float64 `json:"soil_ph_min"`
	SoilPHMax        float64 `json:"soil_ph_max"`
	MoistureLevel    string  `json:"moisture_level"`
	MaintenanceLevel string  `json:"maintenance_level"`

	BloomColors []string `json:"bloom_colors"`
	BloomSeason string   `json:"bloom_season"`

	Native             bool `json:"native"`
	WildlifeFriendly   bool `json:"wildlife_friendly"`
	DeerResistant      bool `json:"deer_resistant"`
	PollinatorFriendly bool `json:"pollinator_friendly"`

	SuitableForContainers  bool `json:"suitable_for_containers"`
	SuitableForScreening   bool `json:"suitable_for_screening"`
	SuitableForHedging     bool `json:"suitable_for_hedging"`
	SuitableForGroundcover bool `json:"suitable_for_groundcover"`
	SuitableForSlopes      bool `json:"suitable_for_slopes"`

	Price float64 `json:"price"`
	// BudgetBand is derived from Price when the catalog snapshot is loaded,
	// using the budget range enumeration from the options collaborator.
	BudgetBand string `json:"budget_band"`
}

// ZoneCompatible reports whether the plant's hardiness range contains the
// given zone.
func (p *PlantRecord) ZoneCompatible(zone int) bool {
	return zone >= p.HardinessZoneMin && zone <= p.HardinessZoneMax
}
