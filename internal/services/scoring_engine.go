package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// neutralBaselineScore is assigned to every surviving candidate when the
// brief supplied no criteria at all.
const neutralBaselineScore = 0.5

// Hardiness partials after the hard filter: a zone strictly inside the
// plant's range is a full match; a zone sitting on the range boundary is
// marginal and surfaces as a warning.
const (
	zoneInsidePartial = 1.0
	zoneEdgePartial   = 0.35
)

// dimensionScore is one per-dimension partial result, retained so the
// explanation generator never recomputes what scoring already knows.
type dimensionScore struct {
	Dimension Dimension
	Weight    float64
	Partial   float64
	Reason    string
	Warning   string
}

// scoredCandidate pairs a plant with its overall score and the partials it
// was derived from.
type scoredCandidate struct {
	Plant    models.PlantRecord
	Score    float64
	Partials []dimensionScore
}

// ScoringEngine computes a weighted match score in [0,1] for a candidate
// against the brief. Pure function of (candidate, criteria, weight table):
// no I/O, no shared state, safe to run from many workers at once.
type ScoringEngine struct {
	weights     WeightTable
	phTolerance float64
	logger      *logrus.Logger
}

func NewScoringEngine(weights WeightTable, phTolerance float64, logger *logrus.Logger) *ScoringEngine {
	if phTolerance <= 0 {
		phTolerance = 2.0
	}
	return &ScoringEngine{
		weights:     weights,
		phTolerance: phTolerance,
		logger:      logger,
	}
}

// Score evaluates every supplied dimension of the brief. Unsupplied criteria
// contribute neither score nor penalty; a brief with no criteria yields the
// neutral baseline for every candidate.
func (s *ScoringEngine) Score(plant models.PlantRecord, criteria *models.Criteria) scoredCandidate {
	if !criteria.Supplied() {
		return scoredCandidate{Plant: plant, Score: neutralBaselineScore}
	}

	partials := s.evaluate(plant, criteria)

	values := make([]float64, len(partials))
	weights := make([]float64, len(partials))
	for i, p := range partials {
		values[i] = p.Partial
		weights[i] = p.Weight
	}

	score := stat.Mean(values, weights)
	if math.IsNaN(score) {
		score = neutralBaselineScore
	}
	score = clamp01(score)

	return scoredCandidate{Plant: plant, Score: score, Partials: partials}
}

func (s *ScoringEngine) evaluate(plant models.PlantRecord, c *models.Criteria) []dimensionScore {
	var partials []dimensionScore

	add := func(dim Dimension, partial float64, reason, warning string) {
		partials = append(partials, dimensionScore{
			Dimension: dim,
			Weight:    s.weights.Weight(dim),
			Partial:   clamp01(partial),
			Reason:    reason,
			Warning:   warning,
		})
	}

	if c.HardinessZone != nil {
		zone := *c.HardinessZone
		partial := zonePartial(zone, plant.HardinessZoneMin, plant.HardinessZoneMax)
		add(DimHardinessZone, partial,
			fmt.Sprintf("Suited to hardiness zone %d (hardy in zones %d-%d)", zone, plant.HardinessZoneMin, plant.HardinessZoneMax),
			fmt.Sprintf("Zone %d sits at the edge of its %d-%d hardiness range", zone, plant.HardinessZoneMin, plant.HardinessZoneMax))
	}

	if c.SunExposure != nil {
		partial := exactMatchPartial(plant.SunExposure, *c.SunExposure)
		add(DimSunExposure, partial,
			fmt.Sprintf("Thrives in %s as requested", strings.ToLower(*c.SunExposure)),
			fmt.Sprintf("Prefers %s rather than %s", strings.ToLower(plant.SunExposure), strings.ToLower(*c.SunExposure)))
	}

	if c.SoilType != nil {
		partial := exactMatchPartial(plant.SoilType, *c.SoilType)
		add(DimSoilType, partial,
			fmt.Sprintf("Well suited to %s soil", strings.ToLower(*c.SoilType)),
			fmt.Sprintf("Prefers %s soil over %s", strings.ToLower(plant.SoilType), strings.ToLower(*c.SoilType)))
	}

	if c.SoilPH != nil {
		partial := s.phPartial(*c.SoilPH, plant.SoilPHMin, plant.SoilPHMax)
		add(DimSoilPH, partial,
			fmt.Sprintf("Happy at soil pH %.1f", *c.SoilPH),
			fmt.Sprintf("Soil pH %.1f is outside its preferred %.1f-%.1f range", *c.SoilPH, plant.SoilPHMin, plant.SoilPHMax))
	}

	if c.MoistureLevel != nil {
		partial := exactMatchPartial(plant.MoistureLevel, *c.MoistureLevel)
		add(DimMoistureLevel, partial,
			fmt.Sprintf("Matches the %s moisture level", strings.ToLower(*c.MoistureLevel)),
			fmt.Sprintf("Prefers %s moisture conditions", strings.ToLower(plant.MoistureLevel)))
	}

	if c.HasHeightRange() {
		partial := rangeOverlapPartial(plant.HeightMin, plant.HeightMax, c.DesiredHeightMin, c.DesiredHeightMax)
		add(DimHeight, partial,
			fmt.Sprintf("Mature height %.1f-%.1fm fits the desired envelope", plant.HeightMin, plant.HeightMax),
			fmt.Sprintf("Mature height %.1f-%.1fm falls outside the desired envelope", plant.HeightMin, plant.HeightMax))
	}

	if c.HasWidthRange() {
		partial := rangeOverlapPartial(plant.WidthMin, plant.WidthMax, c.DesiredWidthMin, c.DesiredWidthMax)
		add(DimWidth, partial,
			fmt.Sprintf("Spread %.1f-%.1fm fits the desired envelope", plant.WidthMin, plant.WidthMax),
			fmt.Sprintf("Spread %.1f-%.1fm falls outside the desired envelope", plant.WidthMin, plant.WidthMax))
	}

	if len(c.ColorPreferences) > 0 {
		partial, matched := colorOverlapPartial(c.ColorPreferences, plant.BloomColors)
		add(DimColor, partial,
			fmt.Sprintf("Blooms in %s as requested", strings.ToLower(strings.Join(matched, ", "))),
			fmt.Sprintf("Bloom colors do not include %s", strings.ToLower(strings.Join(c.ColorPreferences, ", "))))
	}

	if c.BloomSeason != nil {
		partial := exactMatchPartial(plant.BloomSeason, *c.BloomSeason)
		add(DimBloomSeason, partial,
			fmt.Sprintf("Blooms in %s as requested", strings.ToLower(*c.BloomSeason)),
			fmt.Sprintf("Blooms in %s, not %s", strings.ToLower(plant.BloomSeason), strings.ToLower(*c.BloomSeason)))
	}

	if c.MaintenanceLevel != nil {
		partial := maintenancePartial(plant.MaintenanceLevel, *c.MaintenanceLevel)
		add(DimMaintenanceLevel, partial,
			fmt.Sprintf("%s maintenance as requested", *c.MaintenanceLevel),
			fmt.Sprintf("Needs %s maintenance rather than %s", strings.ToLower(plant.MaintenanceLevel), strings.ToLower(*c.MaintenanceLevel)))
	}

	if c.BudgetRange != nil {
		partial := exactMatchPartial(plant.BudgetBand, *c.BudgetRange)
		add(DimBudgetRange, partial,
			fmt.Sprintf("Fits the %s budget range", strings.ToLower(*c.BudgetRange)),
			fmt.Sprintf("Priced in the %s range, not the requested %s", strings.ToLower(plant.BudgetBand), strings.ToLower(*c.BudgetRange)))
	}

	if c.NativePreference {
		add(DimNative, boolPartial(plant.Native),
			"Native species", "Not a native species")
	}
	if c.WildlifeFriendly {
		add(DimWildlife, boolPartial(plant.WildlifeFriendly),
			"Supports local wildlife", "Offers little value to wildlife")
	}
	if c.ContainerPlanting {
		add(DimContainer, boolPartial(plant.SuitableForContainers),
			"Grows well in containers", "Not recommended for containers")
	}
	if c.ScreeningPurpose {
		add(DimScreening, boolPartial(plant.SuitableForScreening),
			"Works well as a screen", "Not dense enough for screening")
	}
	if c.HedgingPurpose {
		add(DimHedging, boolPartial(plant.SuitableForHedging),
			"Takes well to hedging", "Does not respond well to hedging")
	}
	if c.GroundcoverPurpose {
		add(DimGroundcover, boolPartial(plant.SuitableForGroundcover),
			"Effective as groundcover", "Does not spread as groundcover")
	}
	if c.SlopePlanting {
		add(DimSlope, boolPartial(plant.SuitableForSlopes),
			"Stabilizes slopes well", "Not suited to slope planting")
	}

	return partials
}

// phPartial measures exponential-style proximity of the requested pH to the
// plant's tolerated range: zero distance inside the range, then linear
// falloff over the configured tolerance.
func (s *ScoringEngine) phPartial(requested, phMin, phMax float64) float64 {
	var dist float64
	switch {
	case requested >= phMin && requested <= phMax:
		dist = 0
	case requested < phMin:
		dist = phMin - requested
	default:
		dist = requested - phMax
	}
	return math.Max(0, 1-dist/s.phTolerance)
}

func zonePartial(zone, zoneMin, zoneMax int) float64 {
	if zone < zoneMin || zone > zoneMax {
		return 0
	}
	if zone == zoneMin || zone == zoneMax {
		return zoneEdgePartial
	}
	return zoneInsidePartial
}

func exactMatchPartial(actual, requested string) float64 {
	if _, ok := matchOption(actual, []string{requested}); ok {
		return 1.0
	}
	return 0.0
}

// rangeOverlapPartial treats the desired range as an envelope: a candidate
// range fully inside it scores 1.0, disjoint ranges score zero, and partial
// overlap scores the intersection as a fraction of the narrower range. With a
// single bound supplied the candidate either can or cannot reach it.
func rangeOverlapPartial(candMin, candMax float64, desMin, desMax *float64) float64 {
	switch {
	case desMin != nil && desMax != nil:
		lo := math.Max(candMin, *desMin)
		hi := math.Min(candMax, *desMax)
		if hi < lo {
			return 0
		}
		length := math.Min(candMax-candMin, *desMax-*desMin)
		if length == 0 {
			// A point range intersecting at all is a full match.
			return 1
		}
		return clamp01((hi - lo) / length)
	case desMin != nil:
		if candMax >= *desMin {
			return 1
		}
		return 0
	case desMax != nil:
		if candMin <= *desMax {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func colorOverlapPartial(requested, actual []string) (float64, []string) {
	if len(requested) == 0 {
		return 0, nil
	}
	var matched []string
	for _, want := range requested {
		if _, ok := matchOption(want, actual); ok {
			matched = append(matched, want)
		}
	}
	return float64(len(matched)) / float64(len(requested)), matched
}

// maintenanceLevels is the fixed ordinal scale for maintenance distance.
var maintenanceLevels = []string{"Low", "Medium", "High"}

func maintenancePartial(actual, requested string) float64 {
	actualIdx := maintenanceIndex(actual)
	requestedIdx := maintenanceIndex(requested)
	if actualIdx < 0 || requestedIdx < 0 {
		return 0
	}
	maxDistance := float64(len(maintenanceLevels) - 1)
	return 1 - math.Abs(float64(actualIdx-requestedIdx))/maxDistance
}

func maintenanceIndex(level string) int {
	for i, l := range maintenanceLevels {
		if _, ok := matchOption(level, []string{l}); ok {
			return i
		}
	}
	return -1
}

func boolPartial(satisfied bool) float64 {
	if satisfied {
		return 1
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
