package get

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"log/slog"

	"printer-crm/internal/service/company"
	"printer-crm/internal/service/receipt"
	"printer-crm/internal/storage"
)

type OrderProvider interface {
	Get(ctx context.Context, orderID string) (*storage.ServiceOrder, error)
}

type CompanyProvider interface {
	Profile() company.Profile
	Logo() ([]byte, string)
}

// GetIntakeReceipt renders the drop-off receipt PDF for an order.
func GetIntakeReceipt(log *slog.Logger, orders OrderProvider, comp CompanyProvider) http.HandlerFunc {
	return receiptHandler(log, orders, comp, "bon_predare", receipt.Intake)
}

// GetCompletionReceipt renders the pickup receipt PDF for an order.
func GetCompletionReceipt(log *slog.Logger, orders OrderProvider, comp CompanyProvider) http.HandlerFunc {
	return receiptHandler(log, orders, comp, "bon_final", receipt.Completion)
}

func receiptHandler(
	log *slog.Logger,
	orders OrderProvider,
	comp CompanyProvider,
	filePrefix string,
	generate func(*storage.ServiceOrder, company.Profile, []byte, string) ([]byte, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.receipts.get"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		orderID := chi.URLParam(r, "orderID")

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		order, err := orders.Get(ctx, orderID)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get order for receipt",
				slog.String("order_id", orderID),
				slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		logo, logoMIME := comp.Logo()
		data, err := generate(order, comp.Profile(), logo, logoMIME)
		if err != nil {
			log.Error("failed to render receipt",
				slog.String("order_id", orderID),
				slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename="+filePrefix+"_"+orderID+".pdf")
		w.Write(data)
	}
}
