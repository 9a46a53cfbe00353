package service

import (
	"context"
	"errors"

	"stockledger/internal/apperr"
	"stockledger/internal/dto"
	"stockledger/internal/repository"

	"gorm.io/gorm"
)

// ReportService computes the read-side projections on demand. It holds no
// state of its own: every call re-derives its view from the ledger and the
// catalog. Inner-join semantics throughout — a part with no inventory records
// does not appear in the aggregate.
type ReportService interface {
	FullDetail(ctx context.Context) ([]dto.FullInventoryRow, error)
	AggregatedByPart(ctx context.Context) ([]dto.AggregatedInventoryRow, error)
	StockCheck(ctx context.Context, partNumber string) (*dto.StockCheckResponse, error)
}

type reportService struct {
	parts     repository.PartRepository
	inventory repository.InventoryRepository
}

func NewReportService(parts repository.PartRepository, inventory repository.InventoryRepository) ReportService {
	return &reportService{parts: parts, inventory: inventory}
}

func (s *reportService) FullDetail(ctx context.Context) ([]dto.FullInventoryRow, error) {
	recs, err := s.inventory.ListWithRefs(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.FullInventoryRow, 0, len(recs))
	for _, rec := range recs {
		// Inner join: the restrict delete policy means references are always
		// resolvable, but a record missing either side is skipped, not fatal.
		if rec.Part == nil || rec.Location == nil {
			continue
		}
		rows = append(rows, dto.FullInventoryRow{
			PartNumber:   rec.Part.PartNumber,
			PartName:     rec.Part.Name,
			LocationName: rec.Location.Name,
			Quantity:     rec.Quantity,
			Manufacturer: rec.Part.Manufacturer,
			Category:     rec.Part.Category,
			Supplier:     rec.Part.Supplier,
			SKU:          rec.Part.SKU,
			Version:      rec.Version,
			LastModified: rec.LastModified.UTC().Format(timeLayout),
		})
	}
	return rows, nil
}

func (s *reportService) AggregatedByPart(ctx context.Context) ([]dto.AggregatedInventoryRow, error) {
	recs, err := s.inventory.ListWithRefs(ctx)
	if err != nil {
		return nil, err
	}
	// Records arrive ordered by part id; totals keep that order.
	totals := make(map[uint]int, len(recs))
	var order []uint
	byPart := make(map[uint]dto.AggregatedInventoryRow, len(recs))
	for _, rec := range recs {
		if rec.Part == nil {
			continue
		}
		if _, seen := totals[rec.PartID]; !seen {
			order = append(order, rec.PartID)
			byPart[rec.PartID] = dto.AggregatedInventoryRow{
				PartName:     rec.Part.Name,
				Manufacturer: rec.Part.Manufacturer,
				Category:     rec.Part.Category,
				Supplier:     rec.Part.Supplier,
				SKU:          rec.Part.SKU,
			}
		}
		totals[rec.PartID] += rec.Quantity
	}
	rows := make([]dto.AggregatedInventoryRow, 0, len(order))
	for _, partID := range order {
		row := byPart[partID]
		row.TotalQuantity = totals[partID]
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *reportService) StockCheck(ctx context.Context, partNumber string) (*dto.StockCheckResponse, error) {
	p, err := s.parts.FindByPartNumber(ctx, partNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Resource: "part", Ref: partNumber}
		}
		return nil, err
	}
	recs, err := s.inventory.ListByPartID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockCheckResponse{
		PartNumber: p.PartNumber,
		Name:       p.Name,
		Locations:  make([]dto.StockCheckLocation, 0, len(recs)),
	}
	for _, rec := range recs {
		name := ""
		if rec.Location != nil {
			name = rec.Location.Name
		}
		resp.Locations = append(resp.Locations, dto.StockCheckLocation{
			LocationName: name,
			Quantity:     rec.Quantity,
		})
		resp.Total += rec.Quantity
	}
	return resp, nil
}
