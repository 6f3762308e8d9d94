package save

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"log/slog"

	"printer-crm/internal/storage"
)

type MockOrderSaver struct {
	mock.Mock
}

func (m *MockOrderSaver) Create(ctx context.Context, fields storage.NewOrder) (string, error) {
	args := m.Called(ctx, fields)
	return args.String(0), args.Error(1)
}

func TestSaveServiceOrder_Success(t *testing.T) {
	saver := new(MockOrderSaver)
	saver.On("Create", mock.Anything, mock.MatchedBy(func(n storage.NewOrder) bool {
		return n.ClientName == "Ana Pop" && n.PrinterBrand == "HP"
	})).Return("SRV-00001", nil)

	handler := SaveServiceOrder(slog.Default(), saver)

	body := `{
		"client_name": "Ana Pop",
		"client_phone": "0722111222",
		"printer_brand": "HP",
		"printer_model": "LaserJet 1020",
		"issue_description": "no power"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)
	assert.Equal(t, "SRV-00001", resp.OrderID)
	assert.Empty(t, resp.Error)

	saver.AssertExpectations(t)
}

func TestSaveServiceOrder_MissingRequiredFields(t *testing.T) {
	saver := new(MockOrderSaver)
	handler := SaveServiceOrder(slog.Default(), saver)

	body := `{"client_name": "Ana Pop", "printer_brand": "HP"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "client_phone")
	assert.Contains(t, rr.Body.String(), "printer_model")
	assert.Contains(t, rr.Body.String(), "issue_description")

	saver.AssertNotCalled(t, "Create")
}

func TestSaveServiceOrder_InvalidJSON(t *testing.T) {
	saver := new(MockOrderSaver)
	handler := SaveServiceOrder(slog.Default(), saver)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	saver.AssertNotCalled(t, "Create")
}

func TestSaveServiceOrder_StoreFailure(t *testing.T) {
	saver := new(MockOrderSaver)
	saver.On("Create", mock.Anything, mock.Anything).
		Return("", errors.New("sheets quota exceeded"))

	handler := SaveServiceOrder(slog.Default(), saver)

	body := `{
		"client_name": "Ana Pop",
		"client_phone": "0722111222",
		"printer_brand": "HP",
		"printer_model": "LaserJet 1020",
		"issue_description": "no power"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, resp.OrderID)
}
