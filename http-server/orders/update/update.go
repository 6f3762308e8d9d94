package update

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"log/slog"

	"printer-crm/internal/storage"
)

type OrderUpdater interface {
	Update(ctx context.Context, orderID string, upd storage.UpdateOrder) error
}

func UpdateServiceOrder(log *slog.Logger, updater OrderUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.update.UpdateServiceOrder"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		orderID := chi.URLParam(r, "orderID")

		var req storage.UpdateOrder
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("error", err.Error()))
			http.Error(w, "Invalid data", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.Update(ctx, orderID, req); err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update service order",
				slog.String("order_id", orderID),
				slog.String("error", err.Error()))
			http.Error(w, "Failed to update order", http.StatusInternalServerError)
			return
		}

		log.Info("service order updated", slog.String("order_id", orderID))

		render.JSON(w, r, map[string]interface{}{
			"status":   strconv.Itoa(http.StatusOK),
			"order_id": orderID,
		})
	}
}
