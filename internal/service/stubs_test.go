package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stockledger/internal/apperr"
	"stockledger/internal/dto"
	"stockledger/internal/model"

	"gorm.io/gorm"
)

// ── In-memory store backing the repository stubs ─────────────────────────────
// One mutex-guarded store implements all three repository contracts through
// thin typed wrappers. Mutations follow the same semantics as the GORM
// implementations (CAS on version, insufficient-stock guards, restrict
// deletes are enforced by the services themselves).

type pairKey struct{ partID, locationID uint }

type memStore struct {
	mu        sync.Mutex
	parts     map[uint]*model.Part
	locations map[uint]*model.Location
	recs      map[pairKey]*model.InventoryRecord
	nextPart  uint
	nextLoc   uint
	nextRec   uint
}

func newMemStore() *memStore {
	return &memStore{
		parts:     make(map[uint]*model.Part),
		locations: make(map[uint]*model.Location),
		recs:      make(map[pairKey]*model.InventoryRecord),
	}
}

func (s *memStore) now() time.Time { return time.Now().Truncate(time.Second) }

func (s *memStore) partRepo() *memParts         { return &memParts{s: s} }
func (s *memStore) locationRepo() *memLocations { return &memLocations{s: s} }
func (s *memStore) inventoryRepo() *memInventory {
	return &memInventory{s: s}
}

// ── PartRepository ───────────────────────────────────────────────────────────

type memParts struct{ s *memStore }

func (m *memParts) Create(_ context.Context, p *model.Part) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.nextPart++
	p.ID = m.s.nextPart
	p.PartNumber = fmt.Sprintf("P%05d", p.ID)
	cp := *p
	m.s.parts[p.ID] = &cp
	return nil
}

func (m *memParts) FindByID(_ context.Context, id uint) (*model.Part, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.parts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memParts) FindByPartNumber(_ context.Context, partNumber string) (*model.Part, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.parts {
		if p.PartNumber == partNumber {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memParts) FindDuplicates(_ context.Context, manufacturer, category, supplier, sku string) ([]model.Part, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Part
	for id := uint(1); id <= m.s.nextPart; id++ {
		p, ok := m.s.parts[id]
		if !ok {
			continue
		}
		if p.Manufacturer == manufacturer && p.Category == category && p.Supplier == supplier && p.SKU == sku {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *memParts) List(_ context.Context, filter dto.PartFilter) ([]model.Part, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var all []model.Part
	for id := uint(1); id <= m.s.nextPart; id++ {
		if p, ok := m.s.parts[id]; ok {
			all = append(all, *p)
		}
	}
	if filter.Skip >= len(all) {
		return nil, nil
	}
	all = all[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (m *memParts) Delete(_ context.Context, id uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.parts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.parts, id)
	return nil
}

func (m *memParts) DB() *gorm.DB { return nil }

// ── LocationRepository ───────────────────────────────────────────────────────

type memLocations struct{ s *memStore }

func (m *memLocations) Create(_ context.Context, l *model.Location) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.locations {
		if existing.Name == l.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.s.nextLoc++
	l.ID = m.s.nextLoc
	cp := *l
	m.s.locations[l.ID] = &cp
	return nil
}

func (m *memLocations) FindByID(_ context.Context, id uint) (*model.Location, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	l, ok := m.s.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLocations) List(_ context.Context) ([]model.Location, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var all []model.Location
	for id := uint(1); id <= m.s.nextLoc; id++ {
		if l, ok := m.s.locations[id]; ok {
			all = append(all, *l)
		}
	}
	return all, nil
}

func (m *memLocations) Delete(_ context.Context, id uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.locations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.locations, id)
	return nil
}

// ── InventoryRepository ──────────────────────────────────────────────────────

type memInventory struct{ s *memStore }

func (m *memInventory) Get(_ context.Context, partID, locationID uint) (*model.InventoryRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rec, ok := m.s.recs[pairKey{partID, locationID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memInventory) ListWithRefs(_ context.Context) ([]model.InventoryRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var all []model.InventoryRecord
	for id := uint(1); id <= m.s.nextRec; id++ {
		for _, rec := range m.s.recs {
			if rec.ID != id {
				continue
			}
			cp := *rec
			if p, ok := m.s.parts[rec.PartID]; ok {
				pc := *p
				cp.Part = &pc
			}
			if l, ok := m.s.locations[rec.LocationID]; ok {
				lc := *l
				cp.Location = &lc
			}
			all = append(all, cp)
		}
	}
	return all, nil
}

func (m *memInventory) ListByPartID(_ context.Context, partID uint) ([]model.InventoryRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var all []model.InventoryRecord
	for locID := uint(1); locID <= m.s.nextLoc; locID++ {
		rec, ok := m.s.recs[pairKey{partID, locID}]
		if !ok {
			continue
		}
		cp := *rec
		if l, ok := m.s.locations[locID]; ok {
			lc := *l
			cp.Location = &lc
		}
		all = append(all, cp)
	}
	return all, nil
}

func (m *memInventory) CountByPartID(_ context.Context, partID uint) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for key := range m.s.recs {
		if key.partID == partID {
			n++
		}
	}
	return n, nil
}

func (m *memInventory) CountByLocationID(_ context.Context, locationID uint) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for key := range m.s.recs {
		if key.locationID == locationID {
			n++
		}
	}
	return n, nil
}

func (m *memInventory) MergeCreate(_ context.Context, partID, locationID uint, quantity int) (*model.InventoryRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	key := pairKey{partID, locationID}
	rec, ok := m.s.recs[key]
	if !ok {
		m.s.nextRec++
		rec = &model.InventoryRecord{
			ID:           m.s.nextRec,
			PartID:       partID,
			LocationID:   locationID,
			Quantity:     quantity,
			Version:      1,
			LastModified: m.s.now(),
		}
		m.s.recs[key] = rec
	} else {
		rec.Quantity += quantity
		rec.Version++
		rec.LastModified = m.s.now()
	}
	cp := *rec
	return &cp, nil
}

func (m *memInventory) Adjust(_ context.Context, partID, locationID uint, change, expectedVersion int) (*model.InventoryRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	key := pairKey{partID, locationID}
	rec, ok := m.s.recs[key]
	if !ok {
		if change < 0 {
			return nil, apperr.Validationf("insufficient stock: cannot create record with negative quantity %d", change)
		}
		m.s.nextRec++
		rec = &model.InventoryRecord{
			ID:           m.s.nextRec,
			PartID:       partID,
			LocationID:   locationID,
			Quantity:     change,
			Version:      1,
			LastModified: m.s.now(),
		}
		m.s.recs[key] = rec
		cp := *rec
		return &cp, nil
	}
	if rec.Version != expectedVersion {
		return nil, &apperr.ConflictError{Expected: rec.Version, Got: expectedVersion}
	}
	if rec.Quantity+change < 0 {
		return nil, apperr.Validationf("insufficient stock: %d available, change %d requested", rec.Quantity, change)
	}
	rec.Quantity += change
	rec.Version++
	rec.LastModified = m.s.now()
	cp := *rec
	return &cp, nil
}

func (m *memInventory) Move(_ context.Context, partID, fromLocationID, toLocationID uint, quantity int) (*model.InventoryRecord, *model.InventoryRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	src, ok := m.s.recs[pairKey{partID, fromLocationID}]
	if !ok || src.Quantity < quantity {
		available := 0
		if ok {
			available = src.Quantity
		}
		return nil, nil, apperr.Validationf("insufficient stock at source location: %d available, %d requested", available, quantity)
	}
	src.Quantity -= quantity
	src.Version++
	src.LastModified = m.s.now()

	dstKey := pairKey{partID, toLocationID}
	dst, ok := m.s.recs[dstKey]
	if ok {
		dst.Quantity += quantity
		dst.Version++
		dst.LastModified = m.s.now()
	} else {
		m.s.nextRec++
		dst = &model.InventoryRecord{
			ID:           m.s.nextRec,
			PartID:       partID,
			LocationID:   toLocationID,
			Quantity:     quantity,
			Version:      1,
			LastModified: m.s.now(),
		}
		m.s.recs[dstKey] = dst
	}
	srcCp, dstCp := *src, *dst
	return &srcCp, &dstCp, nil
}

func (m *memInventory) DB() *gorm.DB { return nil }
