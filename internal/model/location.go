package model

// Location is a physical storage location. Name is unique; a duplicate insert
// surfaces as a ConstraintError at the service layer.
type Location struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}
