package get

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"log/slog"

	"printer-crm/internal/service/report"
	"printer-crm/internal/storage"
)

type ReportProvider interface {
	Summary(ctx context.Context) (*report.Summary, error)
	OrdersByDateReceived(ctx context.Context) ([]*storage.ServiceOrder, error)
}

func GetSummary(log *slog.Logger, reports ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reports.get.GetSummary"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		summary, err := reports.Summary(ctx)
		if err != nil {
			log.Error("failed to build report summary", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, summary)
	}
}

type ResponseOrders struct {
	Orders []*storage.ServiceOrder `json:"orders"`
	Status string                  `json:"status,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// GetReportOrders returns the order list most-recent-first for the reports
// screen; the plain list endpoint keeps store order.
func GetReportOrders(log *slog.Logger, reports ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reports.get.GetReportOrders"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		orders, err := reports.OrdersByDateReceived(ctx)
		if err != nil {
			log.Error("failed to list report orders", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseOrders{Error: "orders are unavailable right now"})
			return
		}

		render.JSON(w, r, ResponseOrders{
			Orders: orders,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
