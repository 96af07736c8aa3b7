package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTemplateRepo struct {
	repositories.TemplateRepository

	mu        sync.Mutex
	templates map[string]*models.CalculationTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[string]*models.CalculationTemplate{}}
}

func (f *fakeTemplateRepo) add(id, createdBy string) *models.CalculationTemplate {
	template := &models.CalculationTemplate{
		Name:      "Template " + id,
		CreatedBy: createdBy,
		Published: true,
	}
	template.ID = id
	f.templates[id] = template
	return template
}

func (f *fakeTemplateRepo) FindByID(db *gorm.DB, id string) (*models.CalculationTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if template, ok := f.templates[id]; ok {
		return template, nil
	}
	return nil, repositories.ErrTemplateNotFound
}

func (f *fakeTemplateRepo) Exists(db *gorm.DB, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.templates[id]
	return ok, nil
}

func (f *fakeTemplateRepo) Create(db *gorm.DB, template *models.CalculationTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if template.ID == "" {
		template.ID = "tpl-" + template.Name
	}
	f.templates[template.ID] = template
	return nil
}

func (f *fakeTemplateRepo) Update(db *gorm.DB, template *models.CalculationTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.templates[template.ID]; !ok {
		return repositories.ErrTemplateNotFound
	}
	f.templates[template.ID] = template
	return nil
}

func (f *fakeTemplateRepo) Delete(db *gorm.DB, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.templates[id]; !ok {
		return repositories.ErrTemplateNotFound
	}
	delete(f.templates, id)
	return nil
}

func newTemplateFixture(t *testing.T) (TemplateService, *fakeTemplateRepo, *fakeFavoriteRepo) {
	t.Helper()
	setServiceTestConfig(t)
	templates := newFakeTemplateRepo()
	favorites := &fakeFavoriteRepo{}
	return NewTemplateService(templates, favorites), templates, favorites
}

func TestGetUserFavoritesKeepsRecencyOrder(t *testing.T) {
	svc, templates, favorites := newTemplateFixture(t)

	// Most recently favorited first, as the repository returns them.
	favorites.templateIDs = []string{"t3", "t1", "t2"}
	templates.add("t1", "author")
	templates.add("t2", "author")
	templates.add("t3", "author")

	result, err := svc.GetUserFavorites(context.Background(), nil, "u1")
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "t3", result[0].ID)
	assert.Equal(t, "t1", result[1].ID)
	assert.Equal(t, "t2", result[2].ID)
}

func TestGetUserFavoritesDropsDeletedTemplates(t *testing.T) {
	svc, templates, favorites := newTemplateFixture(t)

	favorites.templateIDs = []string{"t1", "gone", "t2"}
	templates.add("t1", "author")
	templates.add("t2", "author")

	result, err := svc.GetUserFavorites(context.Background(), nil, "u1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "t1", result[0].ID)
	assert.Equal(t, "t2", result[1].ID)
}

func TestGetUserFavoritesEmpty(t *testing.T) {
	svc, _, favorites := newTemplateFixture(t)
	favorites.templateIDs = nil

	result, err := svc.GetUserFavorites(context.Background(), nil, "u1")
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestGetUserFavoritesManyExercisesConcurrencyLimit(t *testing.T) {
	svc, templates, favorites := newTemplateFixture(t)

	// More favorites than worker slots.
	var ids []string
	for i := 0; i < favoriteResolveConcurrency*3; i++ {
		id := fmt.Sprintf("tpl-%02d", i)
		ids = append(ids, id)
		templates.add(id, "author")
	}
	favorites.templateIDs = ids

	result, err := svc.GetUserFavorites(context.Background(), nil, "u1")
	require.NoError(t, err)
	require.Len(t, result, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, result[i].ID)
	}
}

func TestToggleFavoriteAlternatesState(t *testing.T) {
	svc, templates, favorites := newTemplateFixture(t)
	templates.add("t1", "author")
	toggler := svc.(*templateService)

	// First toggle favorites.
	favorited, count, err := toggler.toggleFavoriteTx(nil, "u1", "t1")
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, int64(1), count)

	isFav, err := favorites.IsFavorite(nil, "u1", "t1")
	require.NoError(t, err)
	assert.True(t, isFav)

	// Second toggle returns to the original state.
	favorited, count, err = toggler.toggleFavoriteTx(nil, "u1", "t1")
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, int64(0), count)

	isFav, err = favorites.IsFavorite(nil, "u1", "t1")
	require.NoError(t, err)
	assert.False(t, isFav)
}

func TestToggleFavoriteCountsAcrossUsers(t *testing.T) {
	svc, templates, _ := newTemplateFixture(t)
	templates.add("t1", "author")
	toggler := svc.(*templateService)

	_, _, err := toggler.toggleFavoriteTx(nil, "u1", "t1")
	require.NoError(t, err)
	_, count, err := toggler.toggleFavoriteTx(nil, "u2", "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestToggleFavoriteMissingTemplateWritesNothing(t *testing.T) {
	svc, _, favorites := newTemplateFixture(t)
	toggler := svc.(*templateService)

	_, _, err := toggler.toggleFavoriteTx(nil, "u1", "ghost")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)

	isFav, err := favorites.IsFavorite(nil, "u1", "ghost")
	require.NoError(t, err)
	assert.False(t, isFav)

	count, err := favorites.GetFavoriteCount(nil, "ghost")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetDetailCarriesFavoriteState(t *testing.T) {
	svc, templates, favorites := newTemplateFixture(t)
	templates.add("t1", "author")
	require.NoError(t, favorites.AddFavorite(nil, "u1", "t1"))
	require.NoError(t, favorites.AddFavorite(nil, "u2", "t1"))

	detail, err := svc.GetDetail(context.Background(), nil, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", detail.ID)
	assert.True(t, detail.Favorited)
	assert.Equal(t, int64(2), detail.FavoriteCount)

	// A user who never favorited sees the count but not the flag.
	detail, err = svc.GetDetail(context.Background(), nil, "u3", "t1")
	require.NoError(t, err)
	assert.False(t, detail.Favorited)
	assert.Equal(t, int64(2), detail.FavoriteCount)

	_, err = svc.GetDetail(context.Background(), nil, "u1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)
}

func TestTemplateGetByIDNotFound(t *testing.T) {
	svc, _, _ := newTemplateFixture(t)

	_, err := svc.GetByID(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)
}

func TestTemplateUpdateOwnership(t *testing.T) {
	svc, templates, _ := newTemplateFixture(t)
	templates.add("t1", "author")

	name := &dto.UpdateTemplateRequest{Name: "Renamed"}

	_, err := svc.Update(context.Background(), nil, "stranger", false, "t1", name)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	updated, err := svc.Update(context.Background(), nil, "stranger", true, "t1", name)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	updated, err = svc.Update(context.Background(), nil, "author", false, "t1", &dto.UpdateTemplateRequest{Name: "Again"})
	require.NoError(t, err)
	assert.Equal(t, "Again", updated.Name)
}

func TestTemplateDeleteOwnership(t *testing.T) {
	svc, templates, _ := newTemplateFixture(t)
	templates.add("t1", "author")

	err := svc.Delete(context.Background(), nil, "stranger", false, "t1")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, svc.Delete(context.Background(), nil, "author", false, "t1"))

	err = svc.Delete(context.Background(), nil, "author", false, "t1")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)
}
