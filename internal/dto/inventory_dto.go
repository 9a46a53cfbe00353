package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// MergeCreateRequest is the additive, unconditional upsert: repeated calls
// always add, no version token is involved.
type MergeCreateRequest struct {
	PartID     uint `json:"part_id"     validate:"required"`
	LocationID uint `json:"location_id" validate:"required"`
	Quantity   int  `json:"quantity"    validate:"min=0"`
}

// AdjustRequest carries a signed change plus the version the caller read.
// A stale version fails with a conflict; the caller re-reads and retries.
type AdjustRequest struct {
	PartID         uint `json:"part_id"         validate:"required"`
	LocationID     uint `json:"location_id"     validate:"required"`
	QuantityChange int  `json:"quantity_change"`
	Version        int  `json:"version"         validate:"min=1"`
}

type MoveRequest struct {
	PartID         uint `json:"part_id"          validate:"required"`
	FromLocationID uint `json:"location_id"      validate:"required"`
	ToLocationID   uint `json:"to_location_id"   validate:"required"`
	Quantity       int  `json:"quantity"         validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryResponse struct {
	ID           uint   `json:"id"`
	PartID       uint   `json:"part_id"`
	LocationID   uint   `json:"location_id"`
	Quantity     int    `json:"quantity"`
	Version      int    `json:"version"`
	LastModified string `json:"last_modified"`
}

type AdjustResponse struct {
	Message   string            `json:"message"`
	Inventory InventoryResponse `json:"inventory"`
}

type MoveSource struct {
	LocationID uint `json:"location_id"`
	Remaining  int  `json:"remaining"`
}

type MoveDestination struct {
	LocationID uint `json:"location_id"`
	NewTotal   int  `json:"new_total"`
}

type MoveResult struct {
	From MoveSource      `json:"from"`
	To   MoveDestination `json:"to"`
}

type MoveResponse struct {
	Message string     `json:"message"`
	Result  MoveResult `json:"result"`
}
