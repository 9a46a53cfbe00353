package dto

// FullInventoryRow is one ledger record inner-joined against its part and
// location.
type FullInventoryRow struct {
	PartNumber   string `json:"part_number"`
	PartName     string `json:"part_name"`
	LocationName string `json:"location_name"`
	Quantity     int    `json:"quantity"`
	Manufacturer string `json:"manufacturer"`
	Category     string `json:"category"`
	Supplier     string `json:"supplier"`
	SKU          string `json:"sku"`
	Version      int    `json:"version"`
	LastModified string `json:"last_modified"`
}

// AggregatedInventoryRow sums one part's quantity across all locations. Parts
// with no ledger records do not appear (inner-join semantics).
type AggregatedInventoryRow struct {
	PartName      string `json:"part_name"`
	Manufacturer  string `json:"manufacturer"`
	Category      string `json:"category"`
	Supplier      string `json:"supplier"`
	SKU           string `json:"sku"`
	TotalQuantity int    `json:"total_quantity"`
}

// StockCheckResponse is the public availability lookup by part number.
type StockCheckResponse struct {
	PartNumber string               `json:"part_number"`
	Name       string               `json:"name"`
	Locations  []StockCheckLocation `json:"locations"`
	Total      int                  `json:"total"`
}

type StockCheckLocation struct {
	LocationName string `json:"location_name"`
	Quantity     int    `json:"quantity"`
}
