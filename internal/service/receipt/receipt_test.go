package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printer-crm/internal/service/company"
	"printer-crm/internal/storage"
)

func testProfile() company.Profile {
	return company.Profile{
		Name:    "Print Service Pro SRL",
		Address: "Str. Industriei Nr. 45, Cluj-Napoca",
		CUI:     "RO98765432",
		RegCom:  "J12/5678/2024",
		Phone:   "+40 364 123 456",
		Email:   "service@printservicepro.ro",
	}
}

func testOrder() *storage.ServiceOrder {
	return &storage.ServiceOrder{
		OrderID:          "SRV-00007",
		ClientName:       "Ana Pop",
		ClientPhone:      "0722111222",
		PrinterBrand:     "HP",
		PrinterModel:     "LaserJet 1020",
		PrinterSerial:    "CNB1234567",
		IssueDescription: "nu porneste",
		DateReceived:     "2026-08-31",
		Status:           storage.StatusReadyForPickup,
		Technician:       "Radu",
		RepairDetails:    "sursa inlocuita",
		PartsUsed:        "sursa LJ1020",
		DateCompleted:    "2026-09-02",
		LaborCost:        120,
		PartsCost:        85,
		TotalCost:        205,
	}
}

func TestIntakeProducesPDF(t *testing.T) {
	data, err := Intake(testOrder(), testProfile(), nil, "")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestCompletionProducesPDF(t *testing.T) {
	data, err := Completion(testOrder(), testProfile(), nil, "")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestBadLogoFallsBackToPlaceholder(t *testing.T) {
	data, err := Intake(testOrder(), testProfile(), []byte("not an image"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestUnknownLogoMIMEIsIgnored(t *testing.T) {
	data, err := Completion(testOrder(), testProfile(), []byte{0x00}, "image/gif")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
