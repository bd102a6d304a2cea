package services

import (
	"context"
	"testing"

	"swapcycle/internal/models"
)

type fakeCategorySource struct {
	listedTypes []string
}

func (f *fakeCategorySource) ListCategories(_ context.Context, categoryType string, _ bool) ([]models.Category, error) {
	f.listedTypes = append(f.listedTypes, categoryType)
	return []models.Category{{ID: 1, Name: "tools", Type: categoryType}}, nil
}

func (f *fakeCategorySource) CategoryExists(_ context.Context, _ string, id int) (bool, error) {
	return id == 1, nil
}

func (f *fakeCategorySource) SubcategoryBelongs(_ context.Context, _ string, _, _ int) (bool, error) {
	return false, nil
}

func TestListCategoriesAcceptsBothTypeVocabularies(t *testing.T) {
	cases := []struct {
		name string
		typ  string
		want []string
	}{
		{"plural products", models.SearchTypeProducts, []string{models.CategoryTypeProduct}},
		{"singular product", models.CategoryTypeProduct, []string{models.CategoryTypeProduct}},
		{"plural services", models.SearchTypeServices, []string{models.CategoryTypeService}},
		{"singular service", models.CategoryTypeService, []string{models.CategoryTypeService}},
		{"empty means both", "", []string{models.CategoryTypeProduct, models.CategoryTypeService}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &fakeCategorySource{}
			svc := &CategoryService{Categories: src}

			got, err := svc.ListCategories(context.Background(), tc.typ, false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d categories, got %d", len(tc.want), len(got))
			}
			for i, typ := range tc.want {
				if src.listedTypes[i] != typ {
					t.Errorf("query %d: expected type %q, got %q", i, typ, src.listedTypes[i])
				}
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	svc := &CategoryService{Categories: &fakeCategorySource{}}

	if err := svc.ValidateCategory(context.Background(), models.CategoryTypeProduct, 1, nil); err != nil {
		t.Fatalf("expected known category to validate, got %v", err)
	}
	if err := svc.ValidateCategory(context.Background(), models.CategoryTypeProduct, 99, nil); err != models.ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	sub := 5
	if err := svc.ValidateCategory(context.Background(), models.CategoryTypeProduct, 1, &sub); err != models.ErrCategoryNotFound {
		t.Fatalf("expected stray subcategory to fail validation, got %v", err)
	}
}
