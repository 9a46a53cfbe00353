package repository

import (
	"context"
	"errors"
	"time"

	"stockledger/internal/apperr"
	"stockledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository is the ledger's storage contract. Every mutating method
// executes its read-then-write as one atomic unit against the database, so no
// lost update is possible no matter how many callers race: Adjust is a
// compare-and-swap on the version column, MergeCreate a relative upsert, and
// Move a single transaction holding row locks on both records.
type InventoryRepository interface {
	Get(ctx context.Context, partID, locationID uint) (*model.InventoryRecord, error)
	// ListWithRefs returns every record with its part and location preloaded,
	// for the read-side projections.
	ListWithRefs(ctx context.Context) ([]model.InventoryRecord, error)
	ListByPartID(ctx context.Context, partID uint) ([]model.InventoryRecord, error)
	CountByPartID(ctx context.Context, partID uint) (int64, error)
	CountByLocationID(ctx context.Context, locationID uint) (int64, error)

	MergeCreate(ctx context.Context, partID, locationID uint, quantity int) (*model.InventoryRecord, error)
	Adjust(ctx context.Context, partID, locationID uint, change, expectedVersion int) (*model.InventoryRecord, error)
	Move(ctx context.Context, partID, fromLocationID, toLocationID uint, quantity int) (*model.InventoryRecord, *model.InventoryRecord, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

// mutationTime matches the source-of-record granularity: whole seconds.
func mutationTime() time.Time { return time.Now().Truncate(time.Second) }

func (r *inventoryRepo) Get(ctx context.Context, partID, locationID uint) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("part_id = ? AND location_id = ?", partID, locationID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *inventoryRepo) ListWithRefs(ctx context.Context) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Part").Preload("Location").
		Order("part_id ASC, location_id ASC").
		Find(&recs).Error
	return recs, err
}

func (r *inventoryRepo) ListByPartID(ctx context.Context, partID uint) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("part_id = ?", partID).
		Order("location_id ASC").
		Find(&recs).Error
	return recs, err
}

func (r *inventoryRepo) CountByPartID(ctx context.Context, partID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventoryRecord{}).
		Where("part_id = ?", partID).Count(&n).Error
	return n, err
}

func (r *inventoryRepo) CountByLocationID(ctx context.Context, locationID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventoryRecord{}).
		Where("location_id = ?", locationID).Count(&n).Error
	return n, err
}

// MergeCreate adds quantity to the (part, location) record, creating it with
// version 1 when absent. Unconditional and cumulative: repeated calls always
// add. The relative UPDATE carries no read-modify-write gap, and the composite
// unique index backstops the create branch against a concurrent first insert.
func (r *inventoryRepo) MergeCreate(ctx context.Context, partID, locationID uint, quantity int) (*model.InventoryRecord, error) {
	now := mutationTime()
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.InventoryRecord{}).
			Where("part_id = ? AND location_id = ?", partID, locationID).
			Updates(map[string]any{
				"quantity":      gorm.Expr("quantity + ?", quantity),
				"version":       gorm.Expr("version + 1"),
				"last_modified": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			rec = model.InventoryRecord{
				PartID:       partID,
				LocationID:   locationID,
				Quantity:     quantity,
				Version:      1,
				LastModified: now,
			}
			err := tx.Create(&rec).Error
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			// Lost the create race — the row exists now, add to it instead.
			res = tx.Model(&model.InventoryRecord{}).
				Where("part_id = ? AND location_id = ?", partID, locationID).
				Updates(map[string]any{
					"quantity":      gorm.Expr("quantity + ?", quantity),
					"version":       gorm.Expr("version + 1"),
					"last_modified": now,
				})
			if res.Error != nil {
				return res.Error
			}
		}
		return tx.Where("part_id = ? AND location_id = ?", partID, locationID).First(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Adjust applies a signed quantity change guarded by the caller's version
// token. The fast path is a single conditional UPDATE with the version match
// and the non-negativity guard in the WHERE clause; zero rows affected means
// the pair is absent, the token is stale, or stock is insufficient, which the
// fallback discriminates under a row lock so the reported cause is accurate.
func (r *inventoryRepo) Adjust(ctx context.Context, partID, locationID uint, change, expectedVersion int) (*model.InventoryRecord, error) {
	now := mutationTime()
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.InventoryRecord{}).
			Where("part_id = ? AND location_id = ? AND version = ? AND quantity + ? >= 0",
				partID, locationID, expectedVersion, change).
			Updates(map[string]any{
				"quantity":      gorm.Expr("quantity + ?", change),
				"version":       gorm.Expr("version + 1"),
				"last_modified": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return tx.Where("part_id = ? AND location_id = ?", partID, locationID).First(&rec).Error
		}

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("part_id = ? AND location_id = ?", partID, locationID).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Creating from nothing cannot conflict; the supplied token is
			// ignored and the record starts at version 1.
			if change < 0 {
				return apperr.Validationf("insufficient stock: cannot create record with negative quantity %d", change)
			}
			rec = model.InventoryRecord{
				PartID:       partID,
				LocationID:   locationID,
				Quantity:     change,
				Version:      1,
				LastModified: now,
			}
			return tx.Create(&rec).Error
		}
		if err != nil {
			return err
		}
		if rec.Version != expectedVersion {
			return &apperr.ConflictError{Expected: rec.Version, Got: expectedVersion}
		}
		if rec.Quantity+change < 0 {
			return apperr.Validationf("insufficient stock: %d available, change %d requested", rec.Quantity, change)
		}
		// The CAS lost a race that has since resolved in the caller's favor;
		// the row lock is held, so applying here is safe.
		rec.Quantity += change
		rec.Version++
		rec.LastModified = now
		return tx.Model(&model.InventoryRecord{}).Where("id = ?", rec.ID).
			Updates(map[string]any{
				"quantity":      rec.Quantity,
				"version":       rec.Version,
				"last_modified": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Move transfers quantity between two locations of the same part as one
// indivisible unit: both rows are locked for the duration of the transaction,
// and a concurrent reader can never observe the decrement without the
// increment. Rows are locked in ascending location order so two opposing
// moves cannot deadlock. No version token is taken — see the LedgerService
// doc for the inherited asymmetry with Adjust.
func (r *inventoryRepo) Move(ctx context.Context, partID, fromLocationID, toLocationID uint, quantity int) (*model.InventoryRecord, *model.InventoryRecord, error) {
	now := mutationTime()
	var src, dst model.InventoryRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := func(locationID uint) (*model.InventoryRecord, error) {
			var rec model.InventoryRecord
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("part_id = ? AND location_id = ?", partID, locationID).
				First(&rec).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &rec, nil
		}

		order := []uint{fromLocationID, toLocationID}
		if toLocationID < fromLocationID {
			order[0], order[1] = toLocationID, fromLocationID
		}
		locked := make(map[uint]*model.InventoryRecord, 2)
		for _, locationID := range order {
			rec, err := lock(locationID)
			if err != nil {
				return err
			}
			locked[locationID] = rec
		}

		source := locked[fromLocationID]
		if source == nil || source.Quantity < quantity {
			available := 0
			if source != nil {
				available = source.Quantity
			}
			return apperr.Validationf("insufficient stock at source location: %d available, %d requested", available, quantity)
		}

		src = *source
		src.Quantity -= quantity
		src.Version++
		src.LastModified = now
		if err := tx.Model(&model.InventoryRecord{}).Where("id = ?", src.ID).
			Updates(map[string]any{
				"quantity":      src.Quantity,
				"version":       src.Version,
				"last_modified": now,
			}).Error; err != nil {
			return err
		}

		if dest := locked[toLocationID]; dest != nil {
			dst = *dest
			dst.Quantity += quantity
			dst.Version++
			dst.LastModified = now
			return tx.Model(&model.InventoryRecord{}).Where("id = ?", dst.ID).
				Updates(map[string]any{
					"quantity":      dst.Quantity,
					"version":       dst.Version,
					"last_modified": now,
				}).Error
		}
		dst = model.InventoryRecord{
			PartID:       partID,
			LocationID:   toLocationID,
			Quantity:     quantity,
			Version:      1,
			LastModified: now,
		}
		return tx.Create(&dst).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &src, &dst, nil
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
