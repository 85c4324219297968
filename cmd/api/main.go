package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/application/service"
	"github.com/sangkips/restropos-api/internal/config"
	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/presentation/http/handler"
	"github.com/sangkips/restropos-api/internal/presentation/http/routes"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/printer"
	"github.com/sangkips/restropos-api/pkg/utils"
	"github.com/sangkips/restropos-api/pkg/whatsapp"
)

func main() {
	cfg := config.Load()

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := storage.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := storage.NewPostgres(db)

	// Services
	catalogService := service.NewCatalogService(store)
	settingsService := service.NewSettingsService(store)
	cartService := service.NewCartService(store)
	orderService := service.NewOrderService(store, cartService, settingsService)
	heldBillService := service.NewHeldBillService(store, cartService, settingsService)
	menuService := service.NewMenuService(catalogService)
	reportService := service.NewReportService(orderService, settingsService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := settingsService.EnsureDefaults(ctx); err != nil {
		log.Fatalf("Failed to initialize settings: %v", err)
	}
	if err := catalogService.EnsureDefaults(ctx); err != nil {
		log.Printf("Warning: Failed to seed default menu: %v", err)
	}

	// Receipt printer
	device, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		device = printer.NewNullPrinter()
	}
	defer device.Close()

	header := entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Phone:     cfg.Store.Phone,
	}
	printerService := service.NewPrinterService(device, header, cfg.Printer.Width, orderService, settingsService)

	// WhatsApp delivery and the daily report scheduler
	waClient := whatsapp.NewClient(settingsService)
	scheduler := service.NewReportScheduler(reportService, settingsService, waClient)
	scheduler.Start(ctx)

	sessions := utils.NewSessionManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	h := &routes.Handlers{
		Auth:     handler.NewAuthHandler(settingsService, sessions),
		Item:     handler.NewItemHandler(catalogService),
		Category: handler.NewCategoryHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService, catalogService, settingsService),
		Order:    handler.NewOrderHandler(orderService, printerService),
		HeldBill: handler.NewHeldBillHandler(heldBillService),
		Settings: handler.NewSettingsHandler(settingsService),
		Menu:     handler.NewMenuHandler(menuService),
		Report:   handler.NewReportHandler(reportService, settingsService, waClient),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(h, &routes.Deps{
		Sessions: sessions,
		Cfg:      cfg,
		Store:    store,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, cfg.App.Port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	scheduler.Wait()
}
