package service

import (
	"context"
	"net/http"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/pkg/apperror"
	"github.com/sangkips/restropos-api/pkg/printer"
)

// PrinterService turns committed orders into printed receipts.
type PrinterService struct {
	device   printer.Printer
	header   entity.ReceiptHeader
	width    int
	orders   *OrderService
	settings *SettingsService
}

// NewPrinterService creates a new printer service
func NewPrinterService(device printer.Printer, header entity.ReceiptHeader, width int, orders *OrderService, settings *SettingsService) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		device:   device,
		header:   header,
		width:    width,
		orders:   orders,
		settings: settings,
	}
}

// BuildReceipt projects an order into its print layout.
func (s *PrinterService) BuildReceipt(ctx context.Context, orderID string) (*entity.Receipt, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ReceiptItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, entity.ReceiptItem{
			Name:      it.Name,
			Quantity:  it.Qty,
			UnitPrice: it.Price,
			Total:     it.Price * float64(it.Qty),
		})
	}

	return &entity.Receipt{
		Header:      s.header,
		InvoiceNo:   order.InvoiceNo,
		Date:        order.Date.Format("02 Jan 2006 15:04"),
		Items:       items,
		Subtotal:    order.Subtotal,
		Tax:         order.Tax,
		Discount:    order.Discount,
		Total:       order.Total,
		PaymentMode: string(order.PaymentMode),
		Currency:    settings.Currency,
	}, nil
}

// PrintReceipt renders and sends an order's receipt to the printer.
func (s *PrinterService) PrintReceipt(ctx context.Context, orderID string) error {
	receipt, err := s.BuildReceipt(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.device.Print(printer.RenderReceipt(receipt, s.width)); err != nil {
		return apperror.NewAppError(http.StatusBadGateway, "Printer is not reachable")
	}
	return nil
}

// PrintTestPage sends a short connectivity test page.
func (s *PrinterService) PrintTestPage() error {
	if err := s.device.Print(printer.RenderTestPage(s.header.StoreName, s.width)); err != nil {
		return apperror.NewAppError(http.StatusBadGateway, "Printer is not reachable")
	}
	return nil
}

// Status reports whether the printer is currently reachable.
func (s *PrinterService) Status() bool {
	return s.device.IsConnected()
}
