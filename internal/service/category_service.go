package service

import (
	"context"
	"errors"
	"fmt"

	"voltstock/internal/model"
	"voltstock/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrCategoryExists is returned when creating a category whose name is taken.
var ErrCategoryExists = errors.New("category already exists")

// CategoryService manages the user-defined category set used to filter stock.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	stockRepo repository.StockRepository
}

func NewCategoryService(repo repository.CategoryRepository, stockRepo repository.StockRepository) CategoryService {
	return &categoryService{repo: repo, stockRepo: stockRepo}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryExists, name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	c := &model.Category{Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the category and blanks it on every stock item that used
// it. Items are never deleted with their category.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.stockRepo.ClearCategory(ctx, c.Name); err != nil {
		log.Error().Err(err).Str("category", c.Name).Msg("categories: clearing deleted category from stock failed")
		return err
	}
	return nil
}
