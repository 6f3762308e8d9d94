package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"log/slog"

	"printer-crm/internal/storage"
)

type MockOrderUpdater struct {
	mock.Mock
}

func (m *MockOrderUpdater) Update(ctx context.Context, orderID string, upd storage.UpdateOrder) error {
	args := m.Called(ctx, orderID, upd)
	return args.Error(0)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateServiceOrder_Success(t *testing.T) {
	updater := new(MockOrderUpdater)
	updater.On("Update", mock.Anything, "SRV-00001", mock.MatchedBy(func(u storage.UpdateOrder) bool {
		return u.Status != nil && *u.Status == storage.StatusReadyForPickup &&
			u.LaborCost != nil && *u.LaborCost == storage.Money(120) &&
			u.PartsCost != nil && *u.PartsCost == storage.Money(0)
	})).Return(nil)

	handler := UpdateServiceOrder(slog.Default(), updater)

	// parts_cost arrives malformed and coerces to 0.
	body := `{"status": "Ready for Pickup", "labor_cost": 120.0, "parts_cost": "abc"}`
	req := httptest.NewRequest(http.MethodPut, "/api/orders/SRV-00001", strings.NewReader(body))
	req = withURLParam(req, "orderID", "SRV-00001")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "SRV-00001")

	updater.AssertExpectations(t)
}

func TestUpdateServiceOrder_NotFound(t *testing.T) {
	updater := new(MockOrderUpdater)
	updater.On("Update", mock.Anything, "SRV-00042", mock.Anything).
		Return(storage.ErrOrderNotFound)

	handler := UpdateServiceOrder(slog.Default(), updater)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/SRV-00042", strings.NewReader(`{"technician": "Radu"}`))
	req = withURLParam(req, "orderID", "SRV-00042")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateServiceOrder_InvalidJSON(t *testing.T) {
	updater := new(MockOrderUpdater)
	handler := UpdateServiceOrder(slog.Default(), updater)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/SRV-00001", strings.NewReader("{broken"))
	req = withURLParam(req, "orderID", "SRV-00001")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	updater.AssertNotCalled(t, "Update")
}

func TestUpdateServiceOrder_StoreFailure(t *testing.T) {
	updater := new(MockOrderUpdater)
	updater.On("Update", mock.Anything, "SRV-00001", mock.Anything).
		Return(storage.ErrStoreUnavailable)

	handler := UpdateServiceOrder(slog.Default(), updater)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/SRV-00001", strings.NewReader(`{"technician": "Radu"}`))
	req = withURLParam(req, "orderID", "SRV-00001")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
