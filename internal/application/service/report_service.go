package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sangkips/restropos-api/pkg/apperror"
)

// ReportPeriod selects the date window for analytics.
type ReportPeriod string

const (
	PeriodToday ReportPeriod = "today"
	PeriodWeek  ReportPeriod = "week"
	PeriodMonth ReportPeriod = "month"
	PeriodYear  ReportPeriod = "year"
	PeriodAll   ReportPeriod = "all"
)

// ParseReportPeriod validates a period string, defaulting empty to today.
func ParseReportPeriod(s string) (ReportPeriod, error) {
	switch ReportPeriod(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return PeriodToday, nil
	case PeriodToday:
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	case PeriodAll:
		return PeriodAll, nil
	}
	return "", apperror.NewBadRequestError("Unknown report period")
}

// ItemSales aggregates quantity and revenue per menu item.
type ItemSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// SeriesPoint is one bucket of the sales trend, keyed by day or month.
type SeriesPoint struct {
	Label   string  `json:"label"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// SalesReport is the full analytics payload for a period.
type SalesReport struct {
	Period       ReportPeriod       `json:"period"`
	From         time.Time          `json:"from"`
	To           time.Time          `json:"to"`
	OrderCount   int                `json:"orderCount"`
	Revenue      float64            `json:"revenue"`
	Tax          float64            `json:"tax"`
	AverageOrder float64            `json:"averageOrder"`
	ByPayment    map[string]float64 `json:"byPaymentMode"`
	TopItems     []ItemSales        `json:"topItems"`
	Series       []SeriesPoint      `json:"series"`
}

// ReportService computes sales analytics over the committed order log.
type ReportService struct {
	orders   *OrderService
	settings *SettingsService
}

// NewReportService creates a new report service
func NewReportService(orders *OrderService, settings *SettingsService) *ReportService {
	return &ReportService{orders: orders, settings: settings}
}

// periodBounds maps a period onto a [from, to) window anchored at now. The
// all period leaves both bounds open.
func periodBounds(period ReportPeriod, now time.Time) (from, to time.Time) {
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodToday:
		return startOfDay, startOfDay.AddDate(0, 0, 1)
	case PeriodWeek:
		return startOfDay.AddDate(0, 0, -6), startOfDay.AddDate(0, 0, 1)
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), startOfDay.AddDate(0, 0, 1)
	case PeriodYear:
		return time.Date(y, 1, 1, 0, 0, 0, 0, now.Location()), startOfDay.AddDate(0, 0, 1)
	default:
		return time.Time{}, time.Time{}
	}
}

// BuildReport aggregates orders in the period into a SalesReport.
func (s *ReportService) BuildReport(ctx context.Context, period ReportPeriod) (*SalesReport, error) {
	now := time.Now()
	from, to := periodBounds(period, now)

	orders, err := s.orders.ListOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Period:    period,
		From:      from,
		To:        to,
		ByPayment: map[string]float64{},
	}

	itemTotals := map[string]*ItemSales{}
	buckets := map[string]*SeriesPoint{}
	monthly := period == PeriodYear || period == PeriodAll

	for _, o := range orders {
		report.OrderCount++
		report.Revenue += o.Total
		report.Tax += o.Tax
		report.ByPayment[string(o.PaymentMode)] += o.Total

		for _, it := range o.Items {
			agg, ok := itemTotals[it.Name]
			if !ok {
				agg = &ItemSales{Name: it.Name}
				itemTotals[it.Name] = agg
			}
			agg.Quantity += it.Qty
			agg.Revenue += it.Price * float64(it.Qty)
		}

		label := o.Date.Format("2006-01-02")
		if monthly {
			label = o.Date.Format("2006-01")
		}
		bucket, ok := buckets[label]
		if !ok {
			bucket = &SeriesPoint{Label: label}
			buckets[label] = bucket
		}
		bucket.Orders++
		bucket.Revenue += o.Total
	}

	if report.OrderCount > 0 {
		report.AverageOrder = report.Revenue / float64(report.OrderCount)
	}

	for _, agg := range itemTotals {
		report.TopItems = append(report.TopItems, *agg)
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		if report.TopItems[i].Quantity != report.TopItems[j].Quantity {
			return report.TopItems[i].Quantity > report.TopItems[j].Quantity
		}
		return report.TopItems[i].Name < report.TopItems[j].Name
	})
	if len(report.TopItems) > 10 {
		report.TopItems = report.TopItems[:10]
	}

	for _, bucket := range buckets {
		report.Series = append(report.Series, *bucket)
	}
	sort.Slice(report.Series, func(i, j int) bool {
		return report.Series[i].Label < report.Series[j].Label
	})

	return report, nil
}

// FormatText renders a report as the plain-text summary sent over WhatsApp.
func (s *ReportService) FormatText(ctx context.Context, report *SalesReport) (string, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	cur := settings.Currency

	var b strings.Builder
	fmt.Fprintf(&b, "*Sales Report (%s)*\n", report.Period)
	fmt.Fprintf(&b, "Orders: %d\n", report.OrderCount)
	fmt.Fprintf(&b, "Revenue: %s%.2f\n", cur, report.Revenue)
	fmt.Fprintf(&b, "Tax collected: %s%.2f\n", cur, report.Tax)
	fmt.Fprintf(&b, "Avg order: %s%.2f\n", cur, report.AverageOrder)

	if len(report.ByPayment) > 0 {
		b.WriteString("\n*By payment mode*\n")
		modes := make([]string, 0, len(report.ByPayment))
		for mode := range report.ByPayment {
			modes = append(modes, mode)
		}
		sort.Strings(modes)
		for _, mode := range modes {
			fmt.Fprintf(&b, "%s: %s%.2f\n", strings.ToUpper(mode), cur, report.ByPayment[mode])
		}
	}

	if len(report.TopItems) > 0 {
		b.WriteString("\n*Top items*\n")
		for i, it := range report.TopItems {
			fmt.Fprintf(&b, "%d. %s x%d (%s%.2f)\n", i+1, it.Name, it.Quantity, cur, it.Revenue)
		}
	}
	return b.String(), nil
}

// ExportExcel writes the report as an xlsx workbook with summary, payment
// and item sheets.
func (s *ReportService) ExportExcel(ctx context.Context, report *SalesReport, w io.Writer) error {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	cur := settings.Currency

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	f.SetSheetName("Sheet1", summary)
	rows := [][]any{
		{"Period", string(report.Period)},
		{"Orders", report.OrderCount},
		{"Revenue", fmt.Sprintf("%s%.2f", cur, report.Revenue)},
		{"Tax collected", fmt.Sprintf("%s%.2f", cur, report.Tax)},
		{"Average order", fmt.Sprintf("%s%.2f", cur, report.AverageOrder)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return err
		}
	}

	const payments = "Payments"
	if _, err := f.NewSheet(payments); err != nil {
		return err
	}
	header := []any{"Payment Mode", "Revenue"}
	if err := f.SetSheetRow(payments, "A1", &header); err != nil {
		return err
	}
	modes := make([]string, 0, len(report.ByPayment))
	for mode := range report.ByPayment {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	for i, mode := range modes {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{strings.ToUpper(mode), report.ByPayment[mode]}
		if err := f.SetSheetRow(payments, cell, &row); err != nil {
			return err
		}
	}

	const items = "Top Items"
	if _, err := f.NewSheet(items); err != nil {
		return err
	}
	header = []any{"Item", "Quantity", "Revenue"}
	if err := f.SetSheetRow(items, "A1", &header); err != nil {
		return err
	}
	for i, it := range report.TopItems {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{it.Name, it.Quantity, it.Revenue}
		if err := f.SetSheetRow(items, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
