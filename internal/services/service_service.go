package services

import (
	"context"

	"swapcycle/internal/models"
	"swapcycle/internal/repositories"
)

type ServiceService struct {
	ServiceRepo  *repositories.ServiceRepository
	CategoryRepo *repositories.CategoryRepository
}

func (s *ServiceService) CreateService(ctx context.Context, svc models.Service) (models.Service, error) {
	ok, err := s.CategoryRepo.CategoryExists(ctx, models.CategoryTypeService, svc.CategoryID)
	if err != nil {
		return models.Service{}, err
	}
	if !ok {
		return models.Service{}, models.ErrCategoryNotFound
	}
	if svc.SubcategoryID != nil {
		ok, err = s.CategoryRepo.SubcategoryBelongs(ctx, models.CategoryTypeService, svc.CategoryID, *svc.SubcategoryID)
		if err != nil {
			return models.Service{}, err
		}
		if !ok {
			return models.Service{}, models.ErrCategoryNotFound
		}
	}
	svc.NormalizeLocation()
	if !svc.IsOnline && (svc.Address == nil || *svc.Address == "") {
		return models.Service{}, models.ErrAddressRequired
	}
	svc.AvailabilityStatus = models.StatusAvailable
	return s.ServiceRepo.CreateService(ctx, svc)
}

func (s *ServiceService) GetServiceByID(ctx context.Context, id int) (models.Service, error) {
	return s.ServiceRepo.GetServiceByID(ctx, id)
}

func (s *ServiceService) UpdateService(ctx context.Context, userID int, svc models.Service) (models.Service, error) {
	existing, err := s.ServiceRepo.GetServiceByID(ctx, svc.ID)
	if err != nil {
		return models.Service{}, err
	}
	if existing.UserID != userID {
		return models.Service{}, models.ErrNotOwner
	}
	svc.UserID = existing.UserID
	svc.NormalizeLocation()
	if !svc.IsOnline && (svc.Address == nil || *svc.Address == "") {
		return models.Service{}, models.ErrAddressRequired
	}
	return s.ServiceRepo.UpdateService(ctx, svc)
}

func (s *ServiceService) DeleteService(ctx context.Context, userID, id int) error {
	existing, err := s.ServiceRepo.GetServiceByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return models.ErrNotOwner
	}
	return s.ServiceRepo.DeleteService(ctx, id)
}

func (s *ServiceService) ListServices(ctx context.Context, f repositories.ServiceListFilter, page, perPage int) (models.ServiceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	services, total, err := s.ServiceRepo.ListServices(ctx, f, perPage, (page-1)*perPage)
	if err != nil {
		return models.ServiceListResponse{}, err
	}
	if services == nil {
		services = []models.Service{}
	}
	return models.ServiceListResponse{
		Services:    services,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	}, nil
}
