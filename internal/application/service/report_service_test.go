package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/domain/enum"
	"github.com/sangkips/restropos-api/internal/storage"
)

func seedOrders(t *testing.T, store storage.Store, orders []entity.Order) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), storage.KeyOrders, orders))
}

func newReportFixture(t *testing.T) (*ReportService, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	cart := NewCartService(store)
	settings := NewSettingsService(store)
	require.NoError(t, settings.EnsureDefaults(context.Background()))
	orders := NewOrderService(store, cart, settings)
	return NewReportService(orders, settings), store
}

func TestParseReportPeriod(t *testing.T) {
	period, err := ParseReportPeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodToday, period)

	period, err = ParseReportPeriod(" WEEK ")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, period)

	_, err = ParseReportPeriod("fortnight")
	assert.Error(t, err)
}

func TestBuildReport(t *testing.T) {
	ctx := context.Background()
	svc, store := newReportFixture(t)

	now := time.Now()
	seedOrders(t, store, []entity.Order{
		{
			ID: "1", Date: now,
			Items:       []entity.OrderItem{{ItemID: "a", Name: "Dosa", Qty: 2, Price: 120}},
			Subtotal:    240, Tax: 43.2, Total: 283.2,
			PaymentMode: enum.PaymentModeCash,
		},
		{
			ID: "2", Date: now,
			Items:       []entity.OrderItem{{ItemID: "b", Name: "Tea", Qty: 3, Price: 20}},
			Subtotal:    60, Tax: 10.8, Total: 70.8,
			PaymentMode: enum.PaymentModeUPI,
		},
		{
			// last month, outside the today window
			ID: "3", Date: now.AddDate(0, -2, 0),
			Items:       []entity.OrderItem{{ItemID: "a", Name: "Dosa", Qty: 1, Price: 120}},
			Subtotal:    120, Tax: 21.6, Total: 141.6,
			PaymentMode: enum.PaymentModeCard,
		},
	})

	report, err := svc.BuildReport(ctx, PeriodToday)
	require.NoError(t, err)

	assert.Equal(t, 2, report.OrderCount)
	assert.InDelta(t, 354.0, report.Revenue, 0.001)
	assert.InDelta(t, 54.0, report.Tax, 0.001)
	assert.InDelta(t, 177.0, report.AverageOrder, 0.001)

	assert.InDelta(t, 283.2, report.ByPayment["cash"], 0.001)
	assert.InDelta(t, 70.8, report.ByPayment["upi"], 0.001)

	// top items sorted by quantity sold
	require.Len(t, report.TopItems, 2)
	assert.Equal(t, "Tea", report.TopItems[0].Name)
	assert.Equal(t, 3, report.TopItems[0].Quantity)

	require.Len(t, report.Series, 1)
	assert.Equal(t, 2, report.Series[0].Orders)
}

func TestBuildReportAllPeriodsIncludesHistory(t *testing.T) {
	ctx := context.Background()
	svc, store := newReportFixture(t)

	now := time.Now()
	seedOrders(t, store, []entity.Order{
		{ID: "1", Date: now, Total: 100, PaymentMode: enum.PaymentModeCash},
		{ID: "2", Date: now.AddDate(-1, 0, 0), Total: 50, PaymentMode: enum.PaymentModeCash},
	})

	report, err := svc.BuildReport(ctx, PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 2, report.OrderCount)
	assert.InDelta(t, 150.0, report.Revenue, 0.001)

	// all-period series buckets by month
	assert.Len(t, report.Series, 2)
}

func TestFormatText(t *testing.T) {
	ctx := context.Background()
	svc, store := newReportFixture(t)

	seedOrders(t, store, []entity.Order{
		{
			ID: "1", Date: time.Now(),
			Items:       []entity.OrderItem{{ItemID: "a", Name: "Dosa", Qty: 2, Price: 120}},
			Total:       283.2, Tax: 43.2,
			PaymentMode: enum.PaymentModeCash,
		},
	})

	report, err := svc.BuildReport(ctx, PeriodToday)
	require.NoError(t, err)

	text, err := svc.FormatText(ctx, report)
	require.NoError(t, err)

	assert.Contains(t, text, "Orders: 1")
	assert.Contains(t, text, "₹283.20")
	assert.Contains(t, text, "CASH")
	assert.Contains(t, text, "Dosa x2")
}

func TestPeriodBounds(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	from, to := periodBounds(PeriodToday, now)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), to)

	from, _ = periodBounds(PeriodWeek, now)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), from)

	from, _ = periodBounds(PeriodMonth, now)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), from)

	from, _ = periodBounds(PeriodYear, now)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)

	from, to = periodBounds(PeriodAll, now)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())
}
