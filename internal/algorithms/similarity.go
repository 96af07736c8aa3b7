package algorithms

import (
	"sort"

	"constru_backend/internal/repositories"
)

// SimilarUser is one scored entry of the similar-user ranking.
type SimilarUser struct {
	UserID          string  `json:"userId"`
	SimilarityScore float64 `json:"similarityScore"`
}

// RankSimilarUsers turns raw favorite overlaps into Jaccard similarity
// scores (0-1). ownCount is the subject's favorite-set size.
//
// |A ∩ B| / |A ∪ B| with the intersection taken from the overlap query.
func RankSimilarUsers(overlaps []repositories.UserOverlap, ownCount int64) []SimilarUser {
	if ownCount == 0 {
		return nil
	}

	ranked := make([]SimilarUser, 0, len(overlaps))
	for _, o := range overlaps {
		union := ownCount + o.FavoriteCount - o.Shared
		if union <= 0 {
			continue
		}
		ranked = append(ranked, SimilarUser{
			UserID:          o.UserID,
			SimilarityScore: float64(o.Shared) / float64(union),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].SimilarityScore > ranked[j].SimilarityScore
	})
	return ranked
}

// ScoreMaterialAffinity converts an order-frequency row into a 0-100
// recommendation score with the reasons that produced it.
func ScoreMaterialAffinity(freq repositories.MaterialFrequency, maxCount int64) (float64, string) {
	if maxCount == 0 {
		return 0, ""
	}

	// Ordered share of the window (70 points)
	score := 70 * float64(freq.Count) / float64(maxCount)
	reason := "Frequently ordered in the last weeks"

	// Repeat purchases push toward the top (30 points)
	if freq.Count >= 3 {
		score += 30
		reason = "Repeatedly ordered; likely to reorder"
	} else if freq.Count == 2 {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score, reason
}
