package service

import (
	"context"
	"testing"

	"stockledger/internal/apperr"
	"stockledger/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(t *testing.T) (ReportService, LedgerService, *memStore) {
	t.Helper()
	store := newMemStore()
	report := NewReportService(store.partRepo(), store.inventoryRepo())
	ledger := NewLedgerService(store.partRepo(), store.locationRepo(), store.inventoryRepo(), nil)
	return report, ledger, store
}

func TestFullDetailJoinsPartAndLocation(t *testing.T) {
	report, ledger, store := newReportFixture(t)
	ctx := context.Background()

	widget := seedPart(t, store, "Widget")
	gadget := seedPart(t, store, "Gadget")
	locA := seedLocation(t, store, "A")
	locB := seedLocation(t, store, "B")

	for _, seed := range []struct {
		part, loc uint
		qty       int
	}{
		{widget, locA, 5},
		{widget, locB, 10},
		{gadget, locB, 3},
	} {
		_, err := ledger.MergeCreate(ctx, dto.MergeCreateRequest{PartID: seed.part, LocationID: seed.loc, Quantity: seed.qty})
		require.NoError(t, err)
	}

	rows, err := report.FullDetail(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "P00001", rows[0].PartNumber)
	assert.Equal(t, "Widget", rows[0].PartName)
	assert.Equal(t, "A", rows[0].LocationName)
	assert.Equal(t, 5, rows[0].Quantity)
	assert.Equal(t, 1, rows[0].Version)
	assert.Equal(t, "Acme", rows[0].Manufacturer)
	assert.NotEmpty(t, rows[0].LastModified)

	assert.Equal(t, "B", rows[1].LocationName)
	assert.Equal(t, "Gadget", rows[2].PartName)
}

func TestAggregatedByPartSumsAcrossLocations(t *testing.T) {
	report, ledger, store := newReportFixture(t)
	ctx := context.Background()

	widget := seedPart(t, store, "Widget")
	// A part with no ledger records must not appear in the aggregate.
	seedPart(t, store, "Ghost")
	locA := seedLocation(t, store, "A")
	locB := seedLocation(t, store, "B")

	_, err := ledger.MergeCreate(ctx, dto.MergeCreateRequest{PartID: widget, LocationID: locA, Quantity: 5})
	require.NoError(t, err)
	_, err = ledger.MergeCreate(ctx, dto.MergeCreateRequest{PartID: widget, LocationID: locB, Quantity: 10})
	require.NoError(t, err)

	rows, err := report.AggregatedByPart(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].PartName)
	assert.Equal(t, 15, rows[0].TotalQuantity)
}

func TestStockCheck(t *testing.T) {
	report, ledger, store := newReportFixture(t)
	ctx := context.Background()

	widget := seedPart(t, store, "Widget")
	locA := seedLocation(t, store, "A")
	locB := seedLocation(t, store, "B")

	_, err := ledger.MergeCreate(ctx, dto.MergeCreateRequest{PartID: widget, LocationID: locA, Quantity: 4})
	require.NoError(t, err)
	_, err = ledger.MergeCreate(ctx, dto.MergeCreateRequest{PartID: widget, LocationID: locB, Quantity: 6})
	require.NoError(t, err)

	resp, err := report.StockCheck(ctx, "P00001")
	require.NoError(t, err)
	assert.Equal(t, "Widget", resp.Name)
	assert.Equal(t, 10, resp.Total)
	require.Len(t, resp.Locations, 2)
	assert.Equal(t, "A", resp.Locations[0].LocationName)
	assert.Equal(t, 4, resp.Locations[0].Quantity)

	var notFound *apperr.NotFoundError
	_, err = report.StockCheck(ctx, "P09999")
	require.ErrorAs(t, err, &notFound)
}
