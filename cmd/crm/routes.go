package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"log/slog"

	companyget "printer-crm/http-server/company/get"
	companyupdate "printer-crm/http-server/company/update"
	"printer-crm/http-server/generate-report/export"
	ordersget "printer-crm/http-server/orders/get"
	orderssave "printer-crm/http-server/orders/save"
	ordersupdate "printer-crm/http-server/orders/update"
	receiptsget "printer-crm/http-server/receipts/get"
	reportsget "printer-crm/http-server/reports/get"
	"printer-crm/internal/config"
	"printer-crm/internal/middleware/auth"
	"printer-crm/internal/service/company"
	"printer-crm/internal/service/report"
	"printer-crm/internal/storage"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	repo *storage.OrderRepository,
	reports *report.Service,
	comp *company.Service,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Everything sits behind the single admin account.
	api := chi.NewRouter()
	api.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPasswordSHA256))

	api.Post("/orders", orderssave.SaveServiceOrder(log, repo))
	api.Get("/orders", ordersget.GetServiceOrders(log, repo))
	api.Get("/orders/{orderID}", ordersget.GetServiceOrder(log, repo))
	api.Put("/orders/{orderID}", ordersupdate.UpdateServiceOrder(log, repo))

	api.Get("/orders/{orderID}/receipt/intake", receiptsget.GetIntakeReceipt(log, repo, comp))
	api.Get("/orders/{orderID}/receipt/completion", receiptsget.GetCompletionReceipt(log, repo, comp))

	api.Get("/reports/summary", reportsget.GetSummary(log, reports))
	api.Get("/reports/orders", reportsget.GetReportOrders(log, reports))

	api.Get("/export/csv", export.ExportOrdersCSV(log, reports))
	api.Get("/export/excel", export.ExportOrdersExcel(log, reports))

	api.Get("/company", companyget.GetCompanyProfile(log, comp))
	api.Put("/company", companyupdate.UpdateCompanyProfile(log, comp))
	api.Post("/company/logo", companyupdate.UploadCompanyLogo(log, comp))

	router.Mount("/api", api)

	return router
}
