package model

import "time"

// InventoryRecord holds the quantity of one part at one location. The pair
// (part_id, location_id) is unique: at most one row per pair exists at any
// time. Version starts at 1 and increments by exactly 1 on every successful
// mutation — it is the optimistic-lock token checked by adjust. Quantity is
// never negative in any committed state.
type InventoryRecord struct {
	ID           uint      `gorm:"primaryKey"`
	PartID       uint      `gorm:"not null;uniqueIndex:idx_part_location"`
	LocationID   uint      `gorm:"not null;uniqueIndex:idx_part_location"`
	Quantity     int       `gorm:"not null;default:0"`
	Version      int       `gorm:"not null;default:1"`
	LastModified time.Time `gorm:"not null"`

	Part     *Part     `gorm:"foreignKey:PartID"`
	Location *Location `gorm:"foreignKey:LocationID"`
}

// TableName overrides GORM's default pluralization (inventory_records → inventory).
func (InventoryRecord) TableName() string { return "inventory" }
