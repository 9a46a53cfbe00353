package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreatePartRequest struct {
	Name         string  `json:"name"         validate:"required,min=1,max=100"`
	Manufacturer string  `json:"manufacturer" validate:"required,min=1,max=100"`
	Category     string  `json:"category"     validate:"required,min=1,max=100"`
	Supplier     string  `json:"supplier"     validate:"required,min=1,max=100"`
	SKU          string  `json:"sku"          validate:"required,min=1,max=50"`
	Description  *string `json:"description"  validate:"omitempty,max=255"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type PartFilter struct {
	Skip  int `form:"skip,default=0"    validate:"min=0"`
	Limit int `form:"limit,default=100" validate:"min=1,max=1000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PartResponse struct {
	ID           uint    `json:"id"`
	PartNumber   string  `json:"part_number"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	Category     string  `json:"category"`
	Supplier     string  `json:"supplier"`
	SKU          string  `json:"sku"`
	Description  *string `json:"description"`
}

// CreatePartResponse is the non-error duplicate branch: when potential
// duplicates exist and force was not set, Created is nil and Duplicates lists
// every exact match so the client may choose to force-create.
type CreatePartResponse struct {
	Message    string         `json:"message"`
	Created    *PartResponse  `json:"created"`
	Duplicates []PartResponse `json:"duplicates"`
}
