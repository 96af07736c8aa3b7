package services

import (
	"context"
	"testing"
	"time"

	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Fakes embed the interface so only the methods a test exercises need
// real bodies. Calling an unimplemented method panics, which is the
// point: it flags a path the test did not mean to take.

type fakeRecRepo struct {
	repositories.RecommendationRepository

	recs              map[string]*models.UserRecommendation
	statusWrites      map[string]models.RecommendationStatus
	overlaps          []repositories.UserOverlap
	searchTerms       []repositories.TermFrequency
	interactionCounts map[models.InteractionType]int64
	lastListLimit     int
	expired           int64
}

func (f *fakeRecRepo) FindByID(db *gorm.DB, id string) (*models.UserRecommendation, error) {
	if rec, ok := f.recs[id]; ok {
		return rec, nil
	}
	return nil, repositories.ErrRecommendationNotFound
}

func (f *fakeRecRepo) FindByUserID(db *gorm.DB, userID string, status models.RecommendationStatus, limit int) ([]models.UserRecommendation, error) {
	f.lastListLimit = limit
	var out []models.UserRecommendation
	for _, rec := range f.recs {
		if rec.UserID != userID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRecRepo) UpdateStatus(db *gorm.DB, id string, status models.RecommendationStatus) error {
	if _, ok := f.recs[id]; !ok {
		return repositories.ErrRecommendationNotFound
	}
	if f.statusWrites == nil {
		f.statusWrites = map[string]models.RecommendationStatus{}
	}
	f.statusWrites[id] = status
	return nil
}

func (f *fakeRecRepo) TopSearchTerms(db *gorm.DB, userID string, days, limit int) ([]repositories.TermFrequency, error) {
	return f.searchTerms, nil
}

func (f *fakeRecRepo) FavoriteOverlaps(db *gorm.DB, userID string, limit int) ([]repositories.UserOverlap, error) {
	return f.overlaps, nil
}

func (f *fakeRecRepo) InteractionCounts(db *gorm.DB, userID string, days int) (map[models.InteractionType]int64, error) {
	return f.interactionCounts, nil
}

func (f *fakeRecRepo) ExpireDue(db *gorm.DB, now time.Time) (int64, error) {
	return f.expired, nil
}

type fakeOrderRepo struct {
	repositories.OrderRepository

	topMaterials []repositories.MaterialFrequency
	orderCount   int64
}

func (f *fakeOrderRepo) TopMaterialsForUser(db *gorm.DB, userID string, days, limit int) ([]repositories.MaterialFrequency, error) {
	return f.topMaterials, nil
}

func (f *fakeOrderRepo) FindWithFilter(db *gorm.DB, filter repositories.OrderFilter) ([]models.Order, int64, error) {
	return nil, f.orderCount, nil
}

type fakeProjectRepo struct {
	repositories.ProjectRepository

	typeCounts map[string]int64
}

func (f *fakeProjectRepo) ProjectTypeCounts(db *gorm.DB, userID string, days int) (map[string]int64, error) {
	return f.typeCounts, nil
}

type fakeFavoriteRepo struct {
	repositories.UserFavoriteRepository

	templateIDs []string
	pairs       map[string]map[string]bool // userID -> templateID set
}

func (f *fakeFavoriteRepo) FindTemplateIDsByUserID(db *gorm.DB, userID string) ([]string, error) {
	return f.templateIDs, nil
}

func (f *fakeFavoriteRepo) AddFavorite(db *gorm.DB, userID, templateID string) error {
	if f.pairs == nil {
		f.pairs = map[string]map[string]bool{}
	}
	if f.pairs[userID] == nil {
		f.pairs[userID] = map[string]bool{}
	}
	// Existing pairs are a no-op, like ON CONFLICT DO NOTHING.
	f.pairs[userID][templateID] = true
	return nil
}

func (f *fakeFavoriteRepo) RemoveFavorite(db *gorm.DB, userID, templateID string) (bool, error) {
	if !f.pairs[userID][templateID] {
		return false, nil
	}
	delete(f.pairs[userID], templateID)
	return true, nil
}

func (f *fakeFavoriteRepo) IsFavorite(db *gorm.DB, userID, templateID string) (bool, error) {
	return f.pairs[userID][templateID], nil
}

func (f *fakeFavoriteRepo) GetFavoriteCount(db *gorm.DB, templateID string) (int64, error) {
	var count int64
	for _, set := range f.pairs {
		if set[templateID] {
			count++
		}
	}
	return count, nil
}

func newRecFixture(t *testing.T) (RecommendationService, *fakeRecRepo, *fakeOrderRepo, *fakeProjectRepo, *fakeFavoriteRepo) {
	t.Helper()
	setServiceTestConfig(t)

	recs := &fakeRecRepo{recs: map[string]*models.UserRecommendation{}}
	orders := &fakeOrderRepo{}
	projects := &fakeProjectRepo{}
	favorites := &fakeFavoriteRepo{}
	svc := NewRecommendationService(recs, orders, projects, favorites, nil)
	return svc, recs, orders, projects, favorites
}

func TestRecommendationTransitions(t *testing.T) {
	cases := []struct {
		from, to models.RecommendationStatus
		ok       bool
	}{
		{models.RecommendationStatusActive, models.RecommendationStatusDismissed, true},
		{models.RecommendationStatusActive, models.RecommendationStatusConverted, true},
		{models.RecommendationStatusActive, models.RecommendationStatusExpired, true},
		{models.RecommendationStatusDismissed, models.RecommendationStatusActive, true},
		{models.RecommendationStatusDismissed, models.RecommendationStatusConverted, false},
		{models.RecommendationStatusConverted, models.RecommendationStatusActive, false},
		{models.RecommendationStatusConverted, models.RecommendationStatusDismissed, false},
		{models.RecommendationStatusExpired, models.RecommendationStatusActive, false},
		{models.RecommendationStatusActive, models.RecommendationStatusActive, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, transitionAllowed(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestGetForUserDefaultLimit(t *testing.T) {
	svc, recs, _, _, _ := newRecFixture(t)

	_, err := svc.GetForUser(context.Background(), nil, "u1", &dto.RecommendationListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 20, recs.lastListLimit)

	_, err = svc.GetForUser(context.Background(), nil, "u1", &dto.RecommendationListQuery{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, recs.lastListLimit)
}

func TestUpdateStatusOwnershipMasked(t *testing.T) {
	svc, recs, _, _, _ := newRecFixture(t)
	recs.recs["r1"] = &models.UserRecommendation{
		UserID: "owner", Status: models.RecommendationStatusActive,
	}
	recs.recs["r1"].ID = "r1"

	// Unknown and foreign recommendations are indistinguishable.
	_, err := svc.UpdateStatus(context.Background(), nil, "owner", "missing", models.RecommendationStatusDismissed)
	assert.ErrorIs(t, err, apperrors.ErrRecommendationNotFound)

	_, err = svc.UpdateStatus(context.Background(), nil, "intruder", "r1", models.RecommendationStatusDismissed)
	assert.ErrorIs(t, err, apperrors.ErrRecommendationNotFound)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	svc, recs, _, _, _ := newRecFixture(t)
	recs.recs["r1"] = &models.UserRecommendation{
		UserID: "owner", Status: models.RecommendationStatusConverted,
	}
	recs.recs["r1"].ID = "r1"

	_, err := svc.UpdateStatus(context.Background(), nil, "owner", "r1", models.RecommendationStatusActive)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
	assert.Empty(t, recs.statusWrites)
}

func TestUpdateStatusHappyPath(t *testing.T) {
	svc, recs, _, _, _ := newRecFixture(t)
	recs.recs["r1"] = &models.UserRecommendation{
		UserID: "owner", Status: models.RecommendationStatusActive,
	}
	recs.recs["r1"].ID = "r1"

	updated, err := svc.UpdateStatus(context.Background(), nil, "owner", "r1", models.RecommendationStatusDismissed)
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationStatusDismissed, updated.Status)
	assert.Equal(t, models.RecommendationStatusDismissed, recs.statusWrites["r1"])
}

func TestLogInteractionOwnership(t *testing.T) {
	svc, recs, _, _, _ := newRecFixture(t)
	recs.recs["r1"] = &models.UserRecommendation{
		UserID: "owner", Status: models.RecommendationStatusActive,
	}
	recs.recs["r1"].ID = "r1"

	err := svc.LogInteraction(context.Background(), nil, "intruder", "r1", models.InteractionTypeView)
	assert.ErrorIs(t, err, apperrors.ErrRecommendationNotFound)

	err = svc.LogInteraction(context.Background(), nil, "owner", "missing", models.InteractionTypeClick)
	assert.ErrorIs(t, err, apperrors.ErrRecommendationNotFound)
}

func TestFindSimilarUsers(t *testing.T) {
	svc, recs, _, _, favorites := newRecFixture(t)
	favorites.templateIDs = []string{"t1", "t2", "t3", "t4", "t5"}
	recs.overlaps = []repositories.UserOverlap{
		{UserID: "close", Shared: 5, FavoriteCount: 5},
		{UserID: "far", Shared: 1, FavoriteCount: 10},
	}

	similar, err := svc.FindSimilarUsers(context.Background(), nil, "me", 10)
	require.NoError(t, err)
	require.Len(t, similar, 2)
	assert.Equal(t, "close", similar[0].UserID)
	assert.Greater(t, similar[0].SimilarityScore, similar[1].SimilarityScore)
}

func TestGetBehaviorPatternAggregates(t *testing.T) {
	svc, recs, orders, projects, favorites := newRecFixture(t)

	orders.topMaterials = []repositories.MaterialFrequency{
		{MaterialID: "m1", CategoryID: "cat-cement", Count: 4},
		{MaterialID: "m2", CategoryID: "cat-cement", Count: 3},
		{MaterialID: "m3", CategoryID: "cat-steel", Count: 2},
	}
	orders.orderCount = 7
	recs.searchTerms = []repositories.TermFrequency{
		{Term: "rebar", Count: 6},
	}
	favorites.templateIDs = []string{"t1", "t2"}
	projects.typeCounts = map[string]int64{"residential": 3}
	recs.interactionCounts = map[models.InteractionType]int64{
		models.InteractionTypeView:  9,
		models.InteractionTypeClick: 4,
	}

	pattern, err := svc.GetBehaviorPattern(context.Background(), nil, "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", pattern.UserID)
	assert.Equal(t, 30, pattern.WindowDays)
	assert.Equal(t, 7, pattern.OrderCount)
	assert.Equal(t, 2, pattern.FavoriteCount)
	assert.Equal(t, map[string]int{"view": 9, "click": 4}, pattern.Interactions)
	assert.Equal(t, []string{"residential"}, pattern.PreferredProjects)

	// m1 and m2 collapse into one category bucket.
	require.Len(t, pattern.TopCategories, 2)
	byCategory := map[string]int{}
	for _, c := range pattern.TopCategories {
		byCategory[c.CategoryID] = c.Count
	}
	assert.Equal(t, 7, byCategory["cat-cement"])
	assert.Equal(t, 2, byCategory["cat-steel"])

	require.Len(t, pattern.TopSearchTerms, 1)
	assert.Equal(t, "rebar", pattern.TopSearchTerms[0].Term)
	assert.Equal(t, 6, pattern.TopSearchTerms[0].Count)
	assert.WithinDuration(t, time.Now(), pattern.ComputedAt, time.Minute)
}

func TestExpireDuePassthrough(t *testing.T) {
	svc, recs, _, _, _ := newRecFixture(t)
	recs.expired = 42

	n, err := svc.ExpireDue(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}
