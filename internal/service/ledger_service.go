package service

import (
	"context"
	"errors"
	"fmt"

	"stockledger/internal/apperr"
	"stockledger/internal/dto"
	"stockledger/internal/infra"
	"stockledger/internal/model"
	"stockledger/internal/repository"

	"gorm.io/gorm"
)

// LedgerService exposes the three mutating operations on the inventory
// ledger. MergeCreate is an unconditional additive upsert; Adjust is guarded
// by an optimistic version token; Move transfers stock between two locations
// atomically.
//
// Move deliberately takes no version token while Adjust requires one — the
// asymmetry is inherited from the system this replaces and is kept until
// product intent says otherwise. The two-row update is still atomic, so the
// only observable race is an Adjust whose token goes stale across a
// concurrent Move, which the Adjust caller sees as a conflict.
type LedgerService interface {
	MergeCreate(ctx context.Context, req dto.MergeCreateRequest) (*dto.InventoryResponse, error)
	Adjust(ctx context.Context, req dto.AdjustRequest) (*dto.AdjustResponse, error)
	Move(ctx context.Context, req dto.MoveRequest) (*dto.MoveResponse, error)
}

type ledgerService struct {
	parts     repository.PartRepository
	locations repository.LocationRepository
	inventory repository.InventoryRepository
	cache     *infra.StockCache
}

func NewLedgerService(
	parts repository.PartRepository,
	locations repository.LocationRepository,
	inventory repository.InventoryRepository,
	cache *infra.StockCache,
) LedgerService {
	return &ledgerService{parts: parts, locations: locations, inventory: inventory, cache: cache}
}

const timeLayout = "2006-01-02T15:04:05Z"

func mapInventory(rec *model.InventoryRecord) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:           rec.ID,
		PartID:       rec.PartID,
		LocationID:   rec.LocationID,
		Quantity:     rec.Quantity,
		Version:      rec.Version,
		LastModified: rec.LastModified.UTC().Format(timeLayout),
	}
}

// resolvePart validates the part reference and returns it so callers can use
// the part number for cache invalidation.
func (s *ledgerService) resolvePart(ctx context.Context, partID uint) (*model.Part, error) {
	p, err := s.parts.FindByID(ctx, partID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("part", partID)
		}
		return nil, err
	}
	return p, nil
}

func (s *ledgerService) resolveLocation(ctx context.Context, locationID uint) error {
	if _, err := s.locations.FindByID(ctx, locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("location", locationID)
		}
		return err
	}
	return nil
}

func (s *ledgerService) MergeCreate(ctx context.Context, req dto.MergeCreateRequest) (*dto.InventoryResponse, error) {
	if req.Quantity < 0 {
		return nil, apperr.Validationf("quantity must not be negative, got %d", req.Quantity)
	}
	part, err := s.resolvePart(ctx, req.PartID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	rec, err := s.inventory.MergeCreate(ctx, req.PartID, req.LocationID, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, part.PartNumber)

	resp := mapInventory(rec)
	return &resp, nil
}

func (s *ledgerService) Adjust(ctx context.Context, req dto.AdjustRequest) (*dto.AdjustResponse, error) {
	part, err := s.resolvePart(ctx, req.PartID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	rec, err := s.inventory.Adjust(ctx, req.PartID, req.LocationID, req.QuantityChange, req.Version)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, part.PartNumber)

	return &dto.AdjustResponse{
		Message: fmt.Sprintf(
			"Quantity for part_id=%d, location_id=%d adjusted successfully (new version %d)",
			req.PartID, req.LocationID, rec.Version),
		Inventory: mapInventory(rec),
	}, nil
}

func (s *ledgerService) Move(ctx context.Context, req dto.MoveRequest) (*dto.MoveResponse, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Validationf("move quantity must be positive, got %d", req.Quantity)
	}
	if req.FromLocationID == req.ToLocationID {
		return nil, apperr.Validationf("source and destination locations must differ")
	}
	part, err := s.resolvePart(ctx, req.PartID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveLocation(ctx, req.FromLocationID); err != nil {
		return nil, err
	}
	if err := s.resolveLocation(ctx, req.ToLocationID); err != nil {
		return nil, err
	}

	src, dst, err := s.inventory.Move(ctx, req.PartID, req.FromLocationID, req.ToLocationID, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, part.PartNumber)

	return &dto.MoveResponse{
		Message: fmt.Sprintf("Moved %d units of part %d from location %d to %d",
			req.Quantity, req.PartID, req.FromLocationID, req.ToLocationID),
		Result: dto.MoveResult{
			From: dto.MoveSource{LocationID: src.LocationID, Remaining: src.Quantity},
			To:   dto.MoveDestination{LocationID: dst.LocationID, NewTotal: dst.Quantity},
		},
	}, nil
}
