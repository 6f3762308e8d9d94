package save

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"log/slog"

	"printer-crm/internal/storage"
)

type OrderSaver interface {
	Create(ctx context.Context, fields storage.NewOrder) (string, error)
}

type Response struct {
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SaveServiceOrder(log *slog.Logger, saver OrderSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.save.SaveServiceOrder"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req storage.NewOrder
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("error", err.Error()))
			http.Error(w, "Invalid data", http.StatusBadRequest)
			return
		}

		if missing := missingRequired(req); len(missing) > 0 {
			log.Error("missing required fields", slog.String("fields", strings.Join(missing, ", ")))
			http.Error(w, "Missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		orderID, err := saver.Create(ctx, req)
		if err != nil {
			log.Error("failed to create service order", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "failed to create service order"})
			return
		}

		log.Info("service order created", slog.String("order_id", orderID))

		render.JSON(w, r, Response{
			OrderID: orderID,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}

func missingRequired(n storage.NewOrder) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"client_name", n.ClientName},
		{"client_phone", n.ClientPhone},
		{"printer_brand", n.PrinterBrand},
		{"printer_model", n.PrinterModel},
		{"issue_description", n.IssueDescription},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
