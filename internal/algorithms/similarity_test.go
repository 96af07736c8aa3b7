package algorithms

import (
	"testing"

	"constru_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestRankSimilarUsersJaccard(t *testing.T) {
	overlaps := []repositories.UserOverlap{
		{UserID: "a", Shared: 2, FavoriteCount: 4}, // 2 / (5+4-2) = 0.2857
		{UserID: "b", Shared: 5, FavoriteCount: 5}, // 5 / (5+5-5) = 1.0
		{UserID: "c", Shared: 1, FavoriteCount: 10}, // 1 / (5+10-1) = 0.0714
	}

	ranked := RankSimilarUsers(overlaps, 5)

	assert.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].UserID)
	assert.InDelta(t, 1.0, ranked[0].SimilarityScore, 1e-9)
	assert.Equal(t, "a", ranked[1].UserID)
	assert.InDelta(t, 2.0/7.0, ranked[1].SimilarityScore, 1e-9)
	assert.Equal(t, "c", ranked[2].UserID)
}

func TestRankSimilarUsersEmptyOwnSet(t *testing.T) {
	overlaps := []repositories.UserOverlap{
		{UserID: "a", Shared: 1, FavoriteCount: 3},
	}
	assert.Nil(t, RankSimilarUsers(overlaps, 0))
}

func TestScoreMaterialAffinity(t *testing.T) {
	top := repositories.MaterialFrequency{MaterialID: "m1", Count: 5}
	score, reason := ScoreMaterialAffinity(top, 5)
	assert.Equal(t, 100.0, score)
	assert.NotEmpty(t, reason)

	single := repositories.MaterialFrequency{MaterialID: "m2", Count: 1}
	score, _ = ScoreMaterialAffinity(single, 5)
	assert.InDelta(t, 14.0, score, 0.001)

	// A zero window produces no score.
	score, reason = ScoreMaterialAffinity(single, 0)
	assert.Zero(t, score)
	assert.Empty(t, reason)
}

func TestScoreMaterialAffinityCapped(t *testing.T) {
	freq := repositories.MaterialFrequency{MaterialID: "m1", Count: 10}
	score, _ := ScoreMaterialAffinity(freq, 10)
	assert.LessOrEqual(t, score, 100.0)
}
