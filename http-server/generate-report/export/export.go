package export

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"
)

type OrderExporter interface {
	ExportCSV(ctx context.Context) ([]byte, error)
	ExportExcel(ctx context.Context) ([]byte, error)
}

// ExportOrdersCSV streams the whole orders table as a timestamped CSV backup.
func ExportOrdersCSV(log *slog.Logger, exporter OrderExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.export.ExportOrdersCSV"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		data, err := exporter.ExportCSV(ctx)
		if err != nil {
			log.Error("failed to export csv", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("crm_backup_%s.csv", time.Now().Format("20060102_150405"))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(data)
	}
}

// ExportOrdersExcel streams the order ledger as an xlsx workbook.
func ExportOrdersExcel(log *slog.Logger, exporter OrderExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.export.ExportOrdersExcel"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		data, err := exporter.ExportExcel(ctx)
		if err != nil {
			log.Error("failed to export excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("service_orders_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(data)
	}
}
