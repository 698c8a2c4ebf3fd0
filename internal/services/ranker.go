package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// Ranker sorts scored candidates into their final, fully deterministic order
// and truncates to the configured top-N.
type Ranker struct {
	logger *logrus.Logger
}

func NewRanker(logger *logrus.Logger) *Ranker {
	return &Ranker{logger: logger}
}

// Rank orders descending by score, breaking ties by: more match reasons,
// then native species when the brief asked for natives, then botanical name
// ascending, then plant ID. Identical inputs always produce identical output
// order, no matter what order scoring workers finished in.
func (r *Ranker) Rank(scored []models.ScoredPlant, criteria *models.Criteria, topN int) []models.ScoredPlant {
	ranked := make([]models.ScoredPlant, len(scored))
	copy(ranked, scored)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.MatchReasons) != len(b.MatchReasons) {
			return len(a.MatchReasons) > len(b.MatchReasons)
		}
		if criteria.NativePreference && a.Plant.Native != b.Plant.Native {
			return a.Plant.Native
		}
		if a.Plant.BotanicalName != b.Plant.BotanicalName {
			return a.Plant.BotanicalName < b.Plant.BotanicalName
		}
		// Distinct records can share a botanical name; the ID keeps the
		// order independent of how the input happened to arrive.
		return a.Plant.ID.String() < b.Plant.ID.String()
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
