package get

import (
	"context"
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

type ResponseOrders struct {
	Orders []*storage.ServiceOrder `json:"orders"`
	Status string                  `json:"status,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

type OrderProvider interface {
	Get(ctx context.Context, orderID string) (*storage.ServiceOrder, error)
	List(ctx context.Context) ([]*storage.ServiceOrder, error)
}

func GetServiceOrders(log *slog.Logger, orders OrderProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.get.GetServiceOrders"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := orders.List(ctx)
		if err != nil {
			log.Error("failed to list service orders", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseOrders{Error: "orders are unavailable right now"})
			return
		}

		render.JSON(w, r, ResponseOrders{
			Orders: list,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}

func GetServiceOrder(log *slog.Logger, orders OrderProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.get.GetServiceOrder"

		orderID := chi.URLParam(r, "orderID")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.Get(ctx, orderID)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get service order",
				slog.String("op", op),
				slog.String("order_id", orderID),
				slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, order)
	}
}
