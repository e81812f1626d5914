package service

import (
	"context"
	"errors"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/validation"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filters dto.TitleFilters, page, pageSize int) (*dto.PaginatedTitleResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filters dto.TitleFilters, page, pageSize int) (*dto.PaginatedTitleResponse, error) {
	titles, total, err := s.titleRepo.List(ctx, filters, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i]))
	}

	return dto.NewPaginatedTitleResponse(responses, int(total), page, pageSize), nil
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return dto.FromModelToTitleResponse(title), nil
}

// resolveCategory maps a slug reference to an existing category; unknown
// slugs are a validation error, not an implicit create.
func (s *titleService) resolveCategory(ctx context.Context, slug string, v *validation.Violations) *models.Category {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		v.Add("category", "category with this slug does not exist")
		return nil
	}
	return category
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string, v *validation.Violations) []models.Genre {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil || len(genres) != len(slugs) {
		v.Add("genre", "one or more genre slugs do not exist")
		return nil
	}
	return genres
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	var v validation.Violations
	if req.Year != nil {
		v = append(v, validation.ValidateYear(*req.Year)...)
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != nil {
		if category := s.resolveCategory(ctx, *req.Category, &v); category != nil {
			title.CategoryID = &category.ID
		}
	}

	var genres []models.Genre
	if len(req.Genre) > 0 {
		genres = s.resolveGenres(ctx, req.Genre, &v)
	}

	if len(v) > 0 {
		return nil, v
	}

	title.Genres = genres
	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	// Reload with nested taxonomy and the (absent) rating.
	return s.GetByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	var v validation.Violations
	if req.Year != nil {
		v = append(v, validation.ValidateYear(*req.Year)...)
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		if category := s.resolveCategory(ctx, *req.Category, &v); category != nil {
			title.CategoryID = &category.ID
		}
	}

	var genres []models.Genre
	if req.Genre != nil {
		genres = s.resolveGenres(ctx, *req.Genre, &v)
	}

	if len(v) > 0 {
		return nil, v
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}
	if req.Genre != nil {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, title.ID)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.titleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return s.titleRepo.Delete(ctx, id)
}
