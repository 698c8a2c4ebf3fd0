package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// knownCriteriaFields is the full set of accepted payload keys. Anything
// else is rejected with a field error rather than silently ignored.
var knownCriteriaFields = map[string]bool{
	"hardiness_zone":               true,
	"sun_exposure":                 true,
	"soil_type":                    true,
	"soil_ph":                      true,
	"moisture_level":               true,
	"desired_height_min":           true,
	"desired_height_max":           true,
	"desired_width_min":            true,
	"desired_width_max":            true,
	"color_preferences":            true,
	"bloom_season":                 true,
	"maintenance_level":            true,
	"budget_range":                 true,
	"native_preference":            true,
	"wildlife_friendly":            true,
	"deer_resistant_required":      true,
	"pollinator_friendly_required": true,
	"container_planting":           true,
	"screening_purpose":            true,
	"hedging_purpose":              true,
	"groundcover_purpose":          true,
	"slope_planting":               true,
}

// CriteriaNormalizer validates and types a raw criteria payload against the
// enumerations supplied by the criteria options collaborator. It is pure:
// the same payload and options always produce the same result, and nothing
// is mutated.
type CriteriaNormalizer struct {
	logger *logrus.Logger
}

func NewCriteriaNormalizer(logger *logrus.Logger) *CriteriaNormalizer {
	return &CriteriaNormalizer{logger: logger}
}

// Normalize returns a typed Criteria, or a *ValidationError listing every
// offending field. Categorical values are matched case-insensitively and
// canonicalized to the option spelling.
func (n *CriteriaNormalizer) Normalize(raw map[string]interface{}, opts models.CriteriaOptions) (*models.Criteria, error) {
	verr := &ValidationError{}
	criteria := &models.Criteria{}

	for key := range raw {
		if !knownCriteriaFields[key] {
			verr.add(key, raw[key], "unknown criteria field")
		}
	}

	if v, ok := raw["hardiness_zone"]; ok {
		criteria.HardinessZone = n.parseZone(v, opts.HardinessZones, verr)
	}
	criteria.SunExposure = n.parseEnum(raw, "sun_exposure", opts.SunExposures, verr)
	criteria.SoilType = n.parseEnum(raw, "soil_type", opts.SoilTypes, verr)
	criteria.MoistureLevel = n.parseEnum(raw, "moisture_level", opts.MoistureLevels, verr)
	criteria.BloomSeason = n.parseEnum(raw, "bloom_season", opts.BloomSeasons, verr)
	criteria.MaintenanceLevel = n.parseEnum(raw, "maintenance_level", opts.MaintenanceLevels, verr)
	criteria.BudgetRange = n.parseEnum(raw, "budget_range", opts.BudgetRanges, verr)

	if v, ok := raw["soil_ph"]; ok {
		if ph := n.parseFloat("soil_ph", v, verr); ph != nil {
			if *ph < 1 || *ph > 14 {
				verr.add("soil_ph", v, "soil pH must be between 1 and 14")
			} else {
				criteria.SoilPH = ph
			}
		}
	}

	criteria.DesiredHeightMin = n.parseSize(raw, "desired_height_min", verr)
	criteria.DesiredHeightMax = n.parseSize(raw, "desired_height_max", verr)
	criteria.DesiredWidthMin = n.parseSize(raw, "desired_width_min", verr)
	criteria.DesiredWidthMax = n.parseSize(raw, "desired_width_max", verr)

	n.checkPair("desired_height_min", "desired_height_max", criteria.DesiredHeightMin, criteria.DesiredHeightMax, verr)
	n.checkPair("desired_width_min", "desired_width_max", criteria.DesiredWidthMin, criteria.DesiredWidthMax, verr)

	if v, ok := raw["color_preferences"]; ok {
		criteria.ColorPreferences = n.parseColors(v, opts.BloomColors, verr)
	}

	criteria.NativePreference = n.parseBool(raw, "native_preference", verr)
	criteria.WildlifeFriendly = n.parseBool(raw, "wildlife_friendly", verr)
	criteria.DeerResistantRequired = n.parseBool(raw, "deer_resistant_required", verr)
	criteria.PollinatorFriendlyRequired = n.parseBool(raw, "pollinator_friendly_required", verr)
	criteria.ContainerPlanting = n.parseBool(raw, "container_planting", verr)
	criteria.ScreeningPurpose = n.parseBool(raw, "screening_purpose", verr)
	criteria.HedgingPurpose = n.parseBool(raw, "hedging_purpose", verr)
	criteria.GroundcoverPurpose = n.parseBool(raw, "groundcover_purpose", verr)
	criteria.SlopePlanting = n.parseBool(raw, "slope_planting", verr)

	if verr.hasErrors() {
		return nil, verr
	}
	return criteria, nil
}

func (n *CriteriaNormalizer) parseZone(v interface{}, zones []string, verr *ValidationError) *int {
	var zoneStr string
	switch z := v.(type) {
	case string:
		zoneStr = strings.TrimSpace(z)
	case float64:
		if z != math.Trunc(z) {
			verr.add("hardiness_zone", v, "must be a whole zone number")
			return nil
		}
		zoneStr = strconv.Itoa(int(z))
	case int:
		zoneStr = strconv.Itoa(z)
	default:
		verr.add("hardiness_zone", v, "must be a zone number")
		return nil
	}

	canonical, ok := matchOption(zoneStr, zones)
	if !ok {
		verr.add("hardiness_zone", v, "not a recognized hardiness zone")
		return nil
	}

	zone, err := strconv.Atoi(canonical)
	if err != nil {
		verr.add("hardiness_zone", v, "not a recognized hardiness zone")
		return nil
	}
	return &zone
}

func (n *CriteriaNormalizer) parseEnum(raw map[string]interface{}, field string, options []string, verr *ValidationError) *string {
	v, ok := raw[field]
	if !ok {
		return nil
	}

	s, ok := v.(string)
	if !ok {
		verr.add(field, v, "must be a string")
		return nil
	}

	canonical, ok := matchOption(s, options)
	if !ok {
		verr.add(field, v, "not one of the valid options: %s", strings.Join(options, ", "))
		return nil
	}
	return &canonical
}

func (n *CriteriaNormalizer) parseFloat(field string, v interface{}, verr *ValidationError) *float64 {
	switch f := v.(type) {
	case float64:
		return &f
	case int:
		val := float64(f)
		return &val
	case string:
		val, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			verr.add(field, v, "must be a number")
			return nil
		}
		return &val
	default:
		verr.add(field, v, "must be a number")
		return nil
	}
}

func (n *CriteriaNormalizer) parseSize(raw map[string]interface{}, field string, verr *ValidationError) *float64 {
	v, ok := raw[field]
	if !ok {
		return nil
	}

	f := n.parseFloat(field, v, verr)
	if f == nil {
		return nil
	}
	if *f < 0 {
		verr.add(field, v, "must not be negative")
		return nil
	}
	return f
}

func (n *CriteriaNormalizer) checkPair(minField, maxField string, min, max *float64, verr *ValidationError) {
	if min != nil && max != nil && *min > *max {
		verr.add(minField, *min, "%s must not exceed %s", minField, maxField)
	}
}

func (n *CriteriaNormalizer) parseColors(v interface{}, validColors []string, verr *ValidationError) []string {
	var rawColors []string
	switch list := v.(type) {
	case []interface{}:
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				verr.add("color_preferences", item, "color entries must be strings")
				return nil
			}
			rawColors = append(rawColors, s)
		}
	case []string:
		rawColors = list
	default:
		verr.add("color_preferences", v, "must be an array of colors")
		return nil
	}

	seen := make(map[string]bool)
	var colors []string
	for _, c := range rawColors {
		canonical, ok := matchOption(c, validColors)
		if !ok {
			verr.add("color_preferences", c, "not a recognized bloom color")
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			colors = append(colors, canonical)
		}
	}
	return colors
}

func (n *CriteriaNormalizer) parseBool(raw map[string]interface{}, field string, verr *ValidationError) bool {
	v, ok := raw[field]
	if !ok {
		return false
	}

	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			verr.add(field, v, "must be a boolean")
			return false
		}
		return parsed
	default:
		verr.add(field, v, "must be a boolean")
		return false
	}
}

var optionFolder = cases.Fold()

// matchOption finds a case-insensitive match in an option list and returns
// the canonical option spelling.
func matchOption(value string, options []string) (string, bool) {
	folded := optionFolder.String(strings.TrimSpace(value))
	for _, opt := range options {
		if optionFolder.String(opt) == folded {
			return opt, true
		}
	}
	return "", false
}
