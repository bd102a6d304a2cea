package services

import (
	"context"

	"swapcycle/internal/models"
	"swapcycle/internal/repositories"
)

type ProductService struct {
	ProductRepo  *repositories.ProductRepository
	CategoryRepo *repositories.CategoryRepository
}

func (s *ProductService) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	ok, err := s.CategoryRepo.CategoryExists(ctx, models.CategoryTypeProduct, p.CategoryID)
	if err != nil {
		return models.Product{}, err
	}
	if !ok {
		return models.Product{}, models.ErrCategoryNotFound
	}
	if p.SubcategoryID != nil {
		ok, err = s.CategoryRepo.SubcategoryBelongs(ctx, models.CategoryTypeProduct, p.CategoryID, *p.SubcategoryID)
		if err != nil {
			return models.Product{}, err
		}
		if !ok {
			return models.Product{}, models.ErrCategoryNotFound
		}
	}
	if p.Quantity <= 0 {
		p.Quantity = 1
	}
	p.UpdateAvailability()
	return s.ProductRepo.CreateProduct(ctx, p)
}

func (s *ProductService) GetProductByID(ctx context.Context, id int) (models.Product, error) {
	return s.ProductRepo.GetProductByID(ctx, id)
}

func (s *ProductService) UpdateProduct(ctx context.Context, userID int, p models.Product) (models.Product, error) {
	existing, err := s.ProductRepo.GetProductByID(ctx, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	if existing.UserID != userID {
		return models.Product{}, models.ErrNotOwner
	}
	p.UserID = existing.UserID
	p.UpdateAvailability()
	return s.ProductRepo.UpdateProduct(ctx, p)
}

func (s *ProductService) DeleteProduct(ctx context.Context, userID, id int) error {
	existing, err := s.ProductRepo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return models.ErrNotOwner
	}
	return s.ProductRepo.DeleteProduct(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, f repositories.ProductListFilter, page, perPage int) (models.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	products, total, err := s.ProductRepo.ListProducts(ctx, f, perPage, (page-1)*perPage)
	if err != nil {
		return models.ProductListResponse{}, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return models.ProductListResponse{
		Products:    products,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	}, nil
}
