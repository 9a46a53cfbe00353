package repository

import (
	"context"
	"fmt"

	"stockledger/internal/dto"
	"stockledger/internal/model"

	"gorm.io/gorm"
)

// PartRepository defines the data access contract for catalog parts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type PartRepository interface {
	// Create inserts the part and derives its part number from the
	// sequence-assigned id inside the same transaction.
	Create(ctx context.Context, p *model.Part) error
	FindByID(ctx context.Context, id uint) (*model.Part, error)
	FindByPartNumber(ctx context.Context, partNumber string) (*model.Part, error)
	// FindDuplicates returns every part matching all four attributes exactly.
	FindDuplicates(ctx context.Context, manufacturer, category, supplier, sku string) ([]model.Part, error)
	List(ctx context.Context, filter dto.PartFilter) ([]model.Part, error)
	Delete(ctx context.Context, id uint) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type partRepo struct{ db *gorm.DB }

func NewPartRepository(db *gorm.DB) PartRepository { return &partRepo{db: db} }

func (r *partRepo) Create(ctx context.Context, p *model.Part) error {
	// The id comes from the bigserial sequence, so concurrent creates can
	// never collide; the derived number is written before commit so no row
	// is ever visible without one.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Placeholder satisfies the NOT NULL constraint until the id is known.
		p.PartNumber = ""
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		p.PartNumber = fmt.Sprintf("P%05d", p.ID)
		return tx.Model(p).Update("part_number", p.PartNumber).Error
	})
}

func (r *partRepo) FindByID(ctx context.Context, id uint) (*model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partRepo) FindByPartNumber(ctx context.Context, partNumber string) (*model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).Where("part_number = ?", partNumber).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partRepo) FindDuplicates(ctx context.Context, manufacturer, category, supplier, sku string) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.WithContext(ctx).
		Where("manufacturer = ? AND category = ? AND supplier = ? AND sku = ?",
			manufacturer, category, supplier, sku).
		Find(&parts).Error
	return parts, err
}

func (r *partRepo) List(ctx context.Context, filter dto.PartFilter) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.WithContext(ctx).
		Order("id ASC").Offset(filter.Skip).Limit(filter.Limit).
		Find(&parts).Error
	return parts, err
}

func (r *partRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Part{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *partRepo) DB() *gorm.DB { return r.db }
