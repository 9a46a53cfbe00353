package model

// Part is a catalog entry for a discrete part. Attributes are immutable after
// creation; only the catalog owns these rows, inventory references them by id.
// PartNumber is derived from the sequence-assigned id ("P" + zero-padded to 5
// digits) inside the same insert transaction, so numbers are unique and never
// reused.
type Part struct {
	ID           uint    `gorm:"primaryKey"`
	PartNumber   string  `gorm:"size:50;uniqueIndex;not null"`
	Name         string  `gorm:"size:100;not null"`
	Manufacturer string  `gorm:"size:100;not null"`
	Category     string  `gorm:"size:100;not null"`
	Supplier     string  `gorm:"size:100;not null"`
	SKU          string  `gorm:"column:sku;size:50;not null"`
	Description  *string `gorm:"size:255"`
}
