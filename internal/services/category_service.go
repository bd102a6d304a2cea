package services

import (
	"context"

	"swapcycle/internal/models"
)

// CategorySource is the catalog access the category service needs,
// satisfied by repositories.CategoryRepository.
type CategorySource interface {
	ListCategories(ctx context.Context, categoryType string, withCounts bool) ([]models.Category, error)
	CategoryExists(ctx context.Context, categoryType string, id int) (bool, error)
	SubcategoryBelongs(ctx context.Context, categoryType string, categoryID, subcategoryID int) (bool, error)
}

type CategoryService struct {
	Categories CategorySource
}

// ListCategories returns the category tree for one listing type, or the
// trees of both types merged when categoryType names neither. The search
// family speaks in plurals, so both vocabularies are accepted. Each
// category carries its Type so merged results stay distinguishable.
func (s *CategoryService) ListCategories(ctx context.Context, categoryType string, withCounts bool) ([]models.Category, error) {
	var types []string
	switch categoryType {
	case models.CategoryTypeProduct, models.SearchTypeProducts:
		types = []string{models.CategoryTypeProduct}
	case models.CategoryTypeService, models.SearchTypeServices:
		types = []string{models.CategoryTypeService}
	default:
		types = []string{models.CategoryTypeProduct, models.CategoryTypeService}
	}

	var out []models.Category
	for _, t := range types {
		categories, err := s.Categories.ListCategories(ctx, t, withCounts)
		if err != nil {
			return nil, err
		}
		out = append(out, categories...)
	}
	return out, nil
}

// ValidateCategory checks that a category exists for the given listing
// type and, when a subcategory is supplied, that it belongs to it.
func (s *CategoryService) ValidateCategory(ctx context.Context, categoryType string, categoryID int, subcategoryID *int) error {
	ok, err := s.Categories.CategoryExists(ctx, categoryType, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrCategoryNotFound
	}
	if subcategoryID != nil {
		ok, err = s.Categories.SubcategoryBelongs(ctx, categoryType, categoryID, *subcategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return models.ErrCategoryNotFound
		}
	}
	return nil
}
