package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"constru_backend/internal/models"
	"constru_backend/internal/services"
	"constru_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecommendationService struct {
	services.RecommendationService

	loggedRecID string
	loggedType  models.InteractionType
	logErr      error
}

func (f *fakeRecommendationService) LogInteraction(ctx context.Context, db *gorm.DB, userID, recID string, interactionType models.InteractionType) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.loggedRecID = recID
	f.loggedType = interactionType
	return nil
}

func recommendationTestRouter(svc services.RecommendationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRecommendationHandler(NewBaseHandler(), svc)

	protected := r.Group("")
	protected.Use(asUser("u1"))
	h.RegisterRoutes(protected)
	return r
}

func TestLogInteractionAcknowledgesWith202(t *testing.T) {
	svc := &fakeRecommendationService{}
	r := recommendationTestRouter(svc)

	body := strings.NewReader(`{"interactionType":"view"}`)
	req := httptest.NewRequest(http.MethodPost, "/recommendations/r1/interactions", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "Interaction recorded")
	assert.Equal(t, "r1", svc.loggedRecID)
	assert.Equal(t, models.InteractionTypeView, svc.loggedType)
}

func TestLogInteractionUnknownRecommendation(t *testing.T) {
	svc := &fakeRecommendationService{logErr: apperrors.ErrRecommendationNotFound}
	r := recommendationTestRouter(svc)

	body := strings.NewReader(`{"interactionType":"click"}`)
	req := httptest.NewRequest(http.MethodPost, "/recommendations/missing/interactions", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestLogInteractionRejectsUnknownType(t *testing.T) {
	svc := &fakeRecommendationService{}
	r := recommendationTestRouter(svc)

	body := strings.NewReader(`{"interactionType":"shrug"}`)
	req := httptest.NewRequest(http.MethodPost, "/recommendations/r1/interactions", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.loggedRecID)
}
