package services

import (
	"context"
	"errors"

	"swapcycle/internal/models"
	"swapcycle/internal/repositories"
)

var ErrInvalidFavorite = errors.New("favorite must reference exactly one product or service")

type FavoriteService struct {
	FavoriteRepo *repositories.FavoriteRepository
	ProductRepo  *repositories.ProductRepository
	ServiceRepo  *repositories.ServiceRepository
}

func (s *FavoriteService) AddFavorite(ctx context.Context, f models.Favorite) (models.Favorite, error) {
	if (f.ProductID == nil) == (f.ServiceID == nil) {
		return models.Favorite{}, ErrInvalidFavorite
	}

	if f.ProductID != nil {
		if _, err := s.ProductRepo.GetProductByID(ctx, *f.ProductID); err != nil {
			return models.Favorite{}, err
		}
		f.ItemType = models.CategoryTypeProduct
	} else {
		if _, err := s.ServiceRepo.GetServiceByID(ctx, *f.ServiceID); err != nil {
			return models.Favorite{}, err
		}
		f.ItemType = models.CategoryTypeService
	}

	exists, err := s.FavoriteRepo.IsFavorite(ctx, f.UserID, f.ProductID, f.ServiceID)
	if err != nil {
		return models.Favorite{}, err
	}
	if exists {
		return models.Favorite{}, models.ErrDuplicateFavorite
	}

	return s.FavoriteRepo.AddFavorite(ctx, f)
}

// IsFavorite reports whether the user already saved the given listing.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID int, productID, serviceID *int) (bool, error) {
	if (productID == nil) == (serviceID == nil) {
		return false, ErrInvalidFavorite
	}
	return s.FavoriteRepo.IsFavorite(ctx, userID, productID, serviceID)
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, favoriteID int) error {
	return s.FavoriteRepo.RemoveFavorite(ctx, userID, favoriteID)
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID int, itemType string) ([]models.Favorite, error) {
	if itemType != models.CategoryTypeProduct && itemType != models.CategoryTypeService {
		itemType = ""
	}
	favorites, err := s.FavoriteRepo.ListFavoritesByUser(ctx, userID, itemType)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	return favorites, nil
}
