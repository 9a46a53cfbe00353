package service

import (
	"context"
	"errors"

	"stockledger/internal/apperr"
	"stockledger/internal/dto"
	"stockledger/internal/model"
	"stockledger/internal/repository"

	"gorm.io/gorm"
)

// CatalogService owns parts and locations. Parts are immutable once created;
// duplicate detection on (manufacturer, category, supplier, sku) is surfaced
// as a non-error branch so the client may force-create.
//
// Delete policy: restrict. A part or location still referenced by inventory
// records cannot be deleted (ConstraintError); projections therefore never
// meet an orphaned record.
type CatalogService interface {
	CreatePart(ctx context.Context, req dto.CreatePartRequest, force bool) (*dto.CreatePartResponse, error)
	ListParts(ctx context.Context, filter dto.PartFilter) ([]dto.PartResponse, error)
	DeletePart(ctx context.Context, id uint) error

	CreateLocation(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error)
	ListLocations(ctx context.Context) ([]dto.LocationResponse, error)
	DeleteLocation(ctx context.Context, id uint) error
}

type catalogService struct {
	parts     repository.PartRepository
	locations repository.LocationRepository
	inventory repository.InventoryRepository
}

func NewCatalogService(
	parts repository.PartRepository,
	locations repository.LocationRepository,
	inventory repository.InventoryRepository,
) CatalogService {
	return &catalogService{parts: parts, locations: locations, inventory: inventory}
}

func mapPart(p model.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:           p.ID,
		PartNumber:   p.PartNumber,
		Name:         p.Name,
		Manufacturer: p.Manufacturer,
		Category:     p.Category,
		Supplier:     p.Supplier,
		SKU:          p.SKU,
		Description:  p.Description,
	}
}

func (s *catalogService) CreatePart(ctx context.Context, req dto.CreatePartRequest, force bool) (*dto.CreatePartResponse, error) {
	duplicates, err := s.parts.FindDuplicates(ctx, req.Manufacturer, req.Category, req.Supplier, req.SKU)
	if err != nil {
		return nil, err
	}
	if len(duplicates) > 0 && !force {
		resp := &dto.CreatePartResponse{
			Message:    "Potential duplicates found.",
			Duplicates: make([]dto.PartResponse, 0, len(duplicates)),
		}
		for _, d := range duplicates {
			resp.Duplicates = append(resp.Duplicates, mapPart(d))
		}
		return resp, nil
	}

	p := &model.Part{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		Category:     req.Category,
		Supplier:     req.Supplier,
		SKU:          req.SKU,
		Description:  req.Description,
	}
	if err := s.parts.Create(ctx, p); err != nil {
		return nil, err
	}
	created := mapPart(*p)
	return &dto.CreatePartResponse{
		Message:    "Part created successfully.",
		Created:    &created,
		Duplicates: []dto.PartResponse{},
	}, nil
}

func (s *catalogService) ListParts(ctx context.Context, filter dto.PartFilter) ([]dto.PartResponse, error) {
	parts, err := s.parts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		result = append(result, mapPart(p))
	}
	return result, nil
}

func (s *catalogService) DeletePart(ctx context.Context, id uint) error {
	refs, err := s.inventory.CountByPartID(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &apperr.ConstraintError{Reason: "part has inventory records and cannot be deleted"}
	}
	if err := s.parts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("part", id)
		}
		return err
	}
	return nil
}

func (s *catalogService) CreateLocation(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	l := &model.Location{Name: req.Name}
	if err := s.locations.Create(ctx, l); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.ConstraintError{Reason: "a location with that name already exists"}
		}
		return nil, err
	}
	return &dto.LocationResponse{ID: l.ID, Name: l.Name}, nil
}

func (s *catalogService) ListLocations(ctx context.Context) ([]dto.LocationResponse, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		result = append(result, dto.LocationResponse{ID: l.ID, Name: l.Name})
	}
	return result, nil
}

func (s *catalogService) DeleteLocation(ctx context.Context, id uint) error {
	refs, err := s.inventory.CountByLocationID(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &apperr.ConstraintError{Reason: "location has inventory records and cannot be deleted"}
	}
	if err := s.locations.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("location", id)
		}
		return err
	}
	return nil
}
