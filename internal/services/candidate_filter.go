package services

import (
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// CandidateFilter prunes the catalog to plants that can possibly satisfy the
// brief. Only hard constraints eliminate candidates: hardiness zone
// compatibility and the *_required boolean flags. Everything else is soft
// and handled by scoring.
type CandidateFilter struct {
	logger *logrus.Logger
}

func NewCandidateFilter(logger *logrus.Logger) *CandidateFilter {
	return &CandidateFilter{logger: logger}
}

// Filter returns the surviving candidates, preserving catalog order. An
// empty result is a valid outcome, not an error.
func (f *CandidateFilter) Filter(criteria *models.Criteria, plants []models.PlantRecord) []models.PlantRecord {
	survivors := make([]models.PlantRecord, 0, len(plants))
	for _, plant := range plants {
		if f.passes(criteria, &plant) {
			survivors = append(survivors, plant)
		}
	}

	f.logger.WithFields(logrus.Fields{
		"catalog_size": len(plants),
		"survivors":    len(survivors),
	}).Debug("Hard-constraint filtering completed")

	return survivors
}

func (f *CandidateFilter) passes(criteria *models.Criteria, plant *models.PlantRecord) bool {
	if criteria.HardinessZone != nil && !plant.ZoneCompatible(*criteria.HardinessZone) {
		return false
	}
	if criteria.DeerResistantRequired && !plant.DeerResistant {
		return false
	}
	if criteria.PollinatorFriendlyRequired && !plant.PollinatorFriendly {
		return false
	}
	return true
}
