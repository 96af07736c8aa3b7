package services

import (
	"context"
	"errors"
	"sync"

	"constru_backend/internal/logger"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// favoriteResolveConcurrency bounds the parallel template lookups when a
// favorites list is resolved.
const favoriteResolveConcurrency = 8

// TemplateService manages calculation templates and the user favorites
// relation on top of them.
type TemplateService interface {
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.CalculationTemplate, error)

	// GetDetail resolves a template together with the viewing user's
	// favorite flag and the template's overall favorite count.
	GetDetail(ctx context.Context, db *gorm.DB, userID, id string) (*dto.TemplateDetail, error)
	List(ctx context.Context, db *gorm.DB, query *dto.TemplateListQuery, page, pageSize int) ([]models.CalculationTemplate, int64, error)
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTemplateRequest) (*models.CalculationTemplate, error)
	Update(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string, req *dto.UpdateTemplateRequest) (*models.CalculationTemplate, error)
	Delete(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) error

	// ToggleFavorite flips the favorite relation for (userID, templateID)
	// in one transaction and reports the resulting state.
	ToggleFavorite(ctx context.Context, db *gorm.DB, userID, templateID string) (*dto.ToggleFavoriteResponse, error)

	// GetUserFavorites resolves the user's favorited templates, most
	// recently favorited first. Templates deleted since being favorited
	// are silently dropped.
	GetUserFavorites(ctx context.Context, db *gorm.DB, userID string) ([]models.CalculationTemplate, error)
}

type templateService struct {
	templateRepo repositories.TemplateRepository
	favoriteRepo repositories.UserFavoriteRepository
}

func NewTemplateService(
	templateRepo repositories.TemplateRepository,
	favoriteRepo repositories.UserFavoriteRepository,
) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		favoriteRepo: favoriteRepo,
	}
}

func (s *templateService) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.CalculationTemplate, error) {
	template, err := s.templateRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

func (s *templateService) GetDetail(ctx context.Context, db *gorm.DB, userID, id string) (*dto.TemplateDetail, error) {
	template, err := s.GetByID(ctx, db, id)
	if err != nil {
		return nil, err
	}

	favorited, err := s.favoriteRepo.IsFavorite(db, userID, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	count, err := s.favoriteRepo.GetFavoriteCount(db, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TemplateDetail{
		CalculationTemplate: template,
		Favorited:           favorited,
		FavoriteCount:       count,
	}, nil
}

func (s *templateService) List(ctx context.Context, db *gorm.DB, query *dto.TemplateListQuery, page, pageSize int) ([]models.CalculationTemplate, int64, error) {
	filter := repositories.TemplateFilter{
		ProjectType: query.ProjectType,
		Published:   query.Published,
		Search:      query.Search,
		Page:        page,
		PageSize:    pageSize,
	}
	templates, total, err := s.templateRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return templates, total, nil
}

func (s *templateService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTemplateRequest) (*models.CalculationTemplate, error) {
	template := &models.CalculationTemplate{
		Name:        req.Name,
		Description: req.Description,
		ProjectType: req.ProjectType,
		CreatedBy:   userID,
		Published:   req.Published,
	}
	if err := s.templateRepo.Create(db, template); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "template created", "template_id", template.ID)
	return template, nil
}

func (s *templateService) Update(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string, req *dto.UpdateTemplateRequest) (*models.CalculationTemplate, error) {
	template, err := s.GetByID(ctx, db, id)
	if err != nil {
		return nil, err
	}

	if template.CreatedBy != userID && !isAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Name != "" {
		template.Name = req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.ProjectType != "" {
		template.ProjectType = req.ProjectType
	}
	if req.Published != nil {
		template.Published = *req.Published
	}

	if err := s.templateRepo.Update(db, template); err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

func (s *templateService) Delete(ctx context.Context, db *gorm.DB, userID string, isAdmin bool, id string) error {
	template, err := s.GetByID(ctx, db, id)
	if err != nil {
		return err
	}

	if template.CreatedBy != userID && !isAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.templateRepo.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return apperrors.ErrTemplateNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "template deleted", "template_id", id)
	return nil
}

// ToggleFavorite runs the whole toggle inside one transaction so two
// concurrent toggles of the same pair cannot interleave into a double
// insert or a lost delete. A missing template aborts with no writes.
func (s *templateService) ToggleFavorite(ctx context.Context, db *gorm.DB, userID, templateID string) (*dto.ToggleFavoriteResponse, error) {
	var favorited bool
	var count int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		favorited, count, txErr = s.toggleFavoriteTx(tx, userID, templateID)
		return txErr
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "favorite toggled", "template_id", templateID, "favorited", favorited)
	return &dto.ToggleFavoriteResponse{
		TemplateID:    templateID,
		Favorited:     favorited,
		FavoriteCount: count,
	}, nil
}

// toggleFavoriteTx is the transaction body of ToggleFavorite: existence
// check, delete-if-present, conditional insert, resulting count.
func (s *templateService) toggleFavoriteTx(tx *gorm.DB, userID, templateID string) (bool, int64, error) {
	exists, err := s.templateRepo.Exists(tx, templateID)
	if err != nil {
		return false, 0, err
	}
	if !exists {
		return false, 0, apperrors.ErrTemplateNotFound
	}

	var favorited bool
	removed, err := s.favoriteRepo.RemoveFavorite(tx, userID, templateID)
	if err != nil {
		return false, 0, err
	}
	if removed {
		favorited = false
	} else {
		// Nothing to remove, so this toggle adds. ON CONFLICT DO NOTHING
		// keeps a racing duplicate insert from failing the transaction.
		if err := s.favoriteRepo.AddFavorite(tx, userID, templateID); err != nil {
			return false, 0, err
		}
		favorited = true
	}

	count, err := s.favoriteRepo.GetFavoriteCount(tx, templateID)
	if err != nil {
		return false, 0, err
	}
	return favorited, count, nil
}

func (s *templateService) GetUserFavorites(ctx context.Context, db *gorm.DB, userID string) ([]models.CalculationTemplate, error) {
	ids, err := s.favoriteRepo.FindTemplateIDsByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(ids) == 0 {
		return []models.CalculationTemplate{}, nil
	}

	// Resolve the templates in parallel. Slots keep the recency order of
	// the favorites; deleted templates leave a nil slot that is dropped.
	resolved := make([]*models.CalculationTemplate, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(favoriteResolveConcurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			template, err := s.templateRepo.FindByID(db, id)
			if err != nil {
				if errors.Is(err, repositories.ErrTemplateNotFound) {
					return nil
				}
				return err
			}
			mu.Lock()
			resolved[i] = template
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	templates := make([]models.CalculationTemplate, 0, len(resolved))
	for _, t := range resolved {
		if t != nil {
			templates = append(templates, *t)
		}
	}
	return templates, nil
}
