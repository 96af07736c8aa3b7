package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"constru_backend/internal/models"
	"constru_backend/internal/services"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTemplateService struct {
	services.TemplateService

	favorites   []models.CalculationTemplate
	toggleState bool
	getErr      error
}

func (f *fakeTemplateService) GetDetail(ctx context.Context, db *gorm.DB, userID, id string) (*dto.TemplateDetail, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	template := &models.CalculationTemplate{Name: "Concrete slab"}
	template.ID = id
	return &dto.TemplateDetail{CalculationTemplate: template, Favorited: true, FavoriteCount: 3}, nil
}

func (f *fakeTemplateService) ToggleFavorite(ctx context.Context, db *gorm.DB, userID, templateID string) (*dto.ToggleFavoriteResponse, error) {
	f.toggleState = !f.toggleState
	var count int64
	if f.toggleState {
		count = 1
	}
	return &dto.ToggleFavoriteResponse{TemplateID: templateID, Favorited: f.toggleState, FavoriteCount: count}, nil
}

func (f *fakeTemplateService) GetUserFavorites(ctx context.Context, db *gorm.DB, userID string) ([]models.CalculationTemplate, error) {
	return f.favorites, nil
}

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func templateTestRouter(svc services.TemplateService, identity gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTemplateHandler(NewBaseHandler(), svc)

	public := r.Group("")
	protected := r.Group("")
	if identity != nil {
		protected.Use(identity)
	}
	h.RegisterRoutes(public, protected)
	return r
}

func TestFavoritesRouteNotShadowedByParam(t *testing.T) {
	svc := &fakeTemplateService{
		favorites: []models.CalculationTemplate{{Name: "A"}, {Name: "B"}},
	}
	r := templateTestRouter(svc, asUser("u1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates/favorites", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                         `json:"success"`
		Data    []models.CalculationTemplate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "A", resp.Data[0].Name)
}

func TestGetTemplateByID(t *testing.T) {
	svc := &fakeTemplateService{}
	r := templateTestRouter(svc, asUser("u1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates/tpl-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tpl-1")
	assert.Contains(t, w.Body.String(), "Concrete slab")
	assert.Contains(t, w.Body.String(), `"favorited":true`)
	assert.Contains(t, w.Body.String(), `"favoriteCount":3`)
}

func TestGetTemplateNotFoundEnvelope(t *testing.T) {
	svc := &fakeTemplateService{getErr: apperrors.ErrTemplateNotFound}
	r := templateTestRouter(svc, asUser("u1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates/missing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestToggleFavoriteAlternates(t *testing.T) {
	svc := &fakeTemplateService{}
	r := templateTestRouter(svc, asUser("u1"))

	type toggleResp struct {
		Success bool                       `json:"success"`
		Data    dto.ToggleFavoriteResponse `json:"data"`
	}

	toggle := func() toggleResp {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/templates/tpl-1/favorite", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var resp toggleResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	first := toggle()
	second := toggle()
	assert.True(t, first.Data.Favorited)
	assert.False(t, second.Data.Favorited)
	assert.Equal(t, "tpl-1", first.Data.TemplateID)
}

func TestFavoritesRequireIdentity(t *testing.T) {
	svc := &fakeTemplateService{}
	// No identity middleware: GetUserID writes the 401.
	r := templateTestRouter(svc, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates/favorites", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/templates/tpl-1/favorite", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
