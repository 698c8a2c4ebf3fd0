package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// ExplanationGenerator turns the per-dimension partials retained by the
// scoring engine into ordered match reasons and warnings. Thresholds come
// from the injected ThresholdTable, never inline constants.
type ExplanationGenerator struct {
	thresholds config.ThresholdTable
	logger     *logrus.Logger
}

func NewExplanationGenerator(thresholds config.ThresholdTable, logger *logrus.Logger) *ExplanationGenerator {
	return &ExplanationGenerator{
		thresholds: thresholds,
		logger:     logger,
	}
}

// Explain converts a scored candidate into the outward ScoredPlant: reasons
// for strongly matching dimensions, warnings for weak but non-eliminating
// ones, both ordered by dimension weight descending. A candidate scored with
// zero supplied criteria has no partials and so gets neither.
func (g *ExplanationGenerator) Explain(candidate scoredCandidate) models.ScoredPlant {
	partials := make([]dimensionScore, len(candidate.Partials))
	copy(partials, candidate.Partials)

	// Weight descending, dimension name as the deterministic tie-break.
	sort.SliceStable(partials, func(i, j int) bool {
		if partials[i].Weight != partials[j].Weight {
			return partials[i].Weight > partials[j].Weight
		}
		return partials[i].Dimension < partials[j].Dimension
	})

	var reasons, warnings []string
	for _, p := range partials {
		switch {
		case p.Partial >= g.thresholds.Strong && p.Reason != "":
			reasons = append(reasons, p.Reason)
		case p.Partial < g.thresholds.Weak && p.Warning != "":
			warnings = append(warnings, p.Warning)
		}
	}

	// A positive score must always be explicable: when no dimension crossed
	// the strong threshold, surface the best-matching one.
	if len(reasons) == 0 && candidate.Score > 0 && len(partials) > 0 {
		best := partials[0]
		for _, p := range partials[1:] {
			if p.Partial > best.Partial {
				best = p
			}
		}
		if best.Partial > 0 && best.Reason != "" {
			reasons = append(reasons, best.Reason)
		}
	}

	return models.ScoredPlant{
		Plant:        candidate.Plant,
		Score:        candidate.Score,
		MatchReasons: reasons,
		Warnings:     warnings,
	}
}
