package models

// Criteria is the normalized, typed design brief. Every field is optional;
// pointer fields distinguish "not supplied" from "supplied as zero". Boolean
// flags default to false when absent from the raw payload.
type Criteria struct {
	HardinessZone    *int     `json:"hardiness_zone,omitempty"`
	SunExposure      *string  `json:"sun_exposure,omitempty"`
	SoilType         *string  `json:"soil_type,omitempty"`
	SoilPH           *float64 `json:"soil_ph,omitempty"`
	MoistureLevel    *string  `json:"moisture_level,omitempty"`
	DesiredHeightMin *float64 `json:"desired_height_min,omitempty"`
	DesiredHeightMax *float64 `json:"desired_height_max,omitempty"`
	DesiredWidthMin  *float64 `json:"desired_width_min,omitempty"`
	DesiredWidthMax  *float64 `json:"desired_width_max,omitempty"`
	ColorPreferences []string `json:"color_preferences,omitempty"`
	BloomSeason      *string  `json:"bloom_season,omitempty"`
	MaintenanceLevel *string  `json:"maintenance_level,omitempty"`
	BudgetRange      *string  `json:"budget_range,omitempty"`

	NativePreference           bool `json:"native_preference"`
	WildlifeFriendly           bool `json:"wildlife_friendly"`
	DeerResistantRequired      bool `json:"deer_resistant_required"`
	PollinatorFriendlyRequired bool `json:"pollinator_friendly_required"`
	ContainerPlanting          bool `json:"container_planting"`
	ScreeningPurpose           bool `json:"screening_purpose"`
	HedgingPurpose             bool `json:"hedging_purpose"`
	GroundcoverPurpose         bool `json:"groundcover_purpose"`
	SlopePlanting              bool `json:"slope_planting"`
}

// Supplied reports whether any criterion at all was provided. A brief with
// no criteria still produces a result: every surviving candidate scores a
// neutral baseline.
func (c *Criteria) Supplied() bool {
	if c.HardinessZone != nil || c.SunExposure != nil || c.SoilType != nil ||
		c.SoilPH != nil || c.MoistureLevel != nil ||
		c.DesiredHeightMin != nil || c.DesiredHeightMax != nil ||
		c.DesiredWidthMin != nil || c.DesiredWidthMax != nil ||
		len(c.ColorPreferences) > 0 || c.BloomSeason != nil ||
		c.MaintenanceLevel != nil || c.BudgetRange != nil {
		return true
	}
	return c.NativePreference || c.WildlifeFriendly ||
		c.DeerResistantRequired || c.PollinatorFriendlyRequired ||
		c.ContainerPlanting || c.ScreeningPurpose || c.HedgingPurpose ||
		c.GroundcoverPurpose || c.SlopePlanting
}

// HasHeightRange reports whether at least one height bound was supplied.
func (c *Criteria) HasHeightRange() bool {
	return c.DesiredHeightMin != nil || c.DesiredHeightMax != nil
}

// HasWidthRange reports whether at least one width bound was supplied.
func (c *Criteria) HasWidthRange() bool {
	return c.DesiredWidthMin != nil || c.DesiredWidthMax != nil
}

// CriteriaOptions holds the valid enumerations supplied by the criteria
// options collaborator. The normalizer validates every categorical criterion
// against these lists; values are canonicalized to the spelling found here.
type CriteriaOptions struct {
	HardinessZones    []string `json:"hardiness_zones"`
	SunExposures      []string `json:"sun_exposures"`
	SoilTypes         []string `json:"soil_types"`
	MoistureLevels    []string `json:"moisture_levels"`
	BloomSeasons      []string `json:"bloom_seasons"`
	BloomColors       []string `json:"bloom_colors"`
	MaintenanceLevels []string `json:"maintenance_levels"`
	BudgetRanges      []string `json:"budget_ranges"`
}
