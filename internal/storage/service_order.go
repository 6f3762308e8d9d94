package storage

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Service order statuses. Unknown values read back from the store are
// normalized to StatusReceived wherever the enum is consulted.
const (
	StatusReceived       = "Received"
	StatusInProgress     = "In Progress"
	StatusReadyForPickup = "Ready for Pickup"
	StatusCompleted      = "Completed"
)

// Columns is the canonical header of the orders table. Store adapters
// persist rows in this order.
var Columns = []string{
	"order_id",
	"client_name",
	"client_phone",
	"client_email",
	"printer_brand",
	"printer_model",
	"printer_serial",
	"issue_description",
	"accessories",
	"notes",
	"date_received",
	"date_pickup_scheduled",
	"date_completed",
	"date_picked_up",
	"status",
	"technician",
	"repair_details",
	"parts_used",
	"labor_cost",
	"parts_cost",
	"total_cost",
}

func NormalizeStatus(s string) string {
	switch s {
	case StatusReceived, StatusInProgress, StatusReadyForPickup, StatusCompleted:
		return s
	}
	return StatusReceived
}

// Money is a non-negative cost value. Spreadsheet cells and client payloads
// carry costs as free text often enough that decoding coerces anything
// non-numeric to 0 instead of failing the whole row.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*m = Money(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = CoerceMoney(s)
		return nil
	}

	*m = 0
	return nil
}

// CoerceMoney parses a stored cost cell, defaulting to 0 on anything that
// does not read as a decimal number.
func CoerceMoney(s string) Money {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return Money(f)
}

func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

type ServiceOrder struct {
	OrderID             string `json:"order_id"`
	ClientName          string `json:"client_name"`
	ClientPhone         string `json:"client_phone"`
	ClientEmail         string `json:"client_email"`
	PrinterBrand        string `json:"printer_brand"`
	PrinterModel        string `json:"printer_model"`
	PrinterSerial       string `json:"printer_serial"`
	IssueDescription    string `json:"issue_description"`
	Accessories         string `json:"accessories"`
	Notes               string `json:"notes"`
	DateReceived        string `json:"date_received"`
	DatePickupScheduled string `json:"date_pickup_scheduled"`
	DateCompleted       string `json:"date_completed"`
	DatePickedUp        string `json:"date_picked_up"`
	Status              string `json:"status"`
	Technician          string `json:"technician"`
	RepairDetails       string `json:"repair_details"`
	PartsUsed           string `json:"parts_used"`
	LaborCost           Money  `json:"labor_cost"`
	PartsCost           Money  `json:"parts_cost"`
	TotalCost           Money  `json:"total_cost"`
}

// NewOrder carries the user-entered fields of a service order at intake.
// Everything else is derived by the repository.
type NewOrder struct {
	ClientName          string `json:"client_name"`
	ClientPhone         string `json:"client_phone"`
	ClientEmail         string `json:"client_email"`
	PrinterBrand        string `json:"printer_brand"`
	PrinterModel        string `json:"printer_model"`
	PrinterSerial       string `json:"printer_serial"`
	IssueDescription    string `json:"issue_description"`
	Accessories         string `json:"accessories"`
	Notes               string `json:"notes"`
	DateReceived        string `json:"date_received"`
	DatePickupScheduled string `json:"date_pickup_scheduled"`
}

// UpdateOrder is a partial update: nil means "leave the field alone".
type UpdateOrder struct {
	Status              *string `json:"status,omitempty"`
	Technician          *string `json:"technician,omitempty"`
	RepairDetails       *string `json:"repair_details,omitempty"`
	PartsUsed           *string `json:"parts_used,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	DatePickupScheduled *string `json:"date_pickup_scheduled,omitempty"`
	LaborCost           *Money  `json:"labor_cost,omitempty"`
	PartsCost           *Money  `json:"parts_cost,omitempty"`
}

// Row serializes the order in Columns order.
func (o *ServiceOrder) Row() []string {
	return []string{
		o.OrderID,
		o.ClientName,
		o.ClientPhone,
		o.ClientEmail,
		o.PrinterBrand,
		o.PrinterModel,
		o.PrinterSerial,
		o.IssueDescription,
		o.Accessories,
		o.Notes,
		o.DateReceived,
		o.DatePickupScheduled,
		o.DateCompleted,
		o.DatePickedUp,
		o.Status,
		o.Technician,
		o.RepairDetails,
		o.PartsUsed,
		o.LaborCost.String(),
		o.PartsCost.String(),
		o.TotalCost.String(),
	}
}

// OrderFromRow maps a stored row onto a ServiceOrder by column name, so the
// store header may carry the columns in any order. Missing cells read as
// empty, costs are coerced to numbers.
func OrderFromRow(columns []string, row []string) *ServiceOrder {
	cell := func(name string) string {
		for i, c := range columns {
			if c == name && i < len(row) {
				return row[i]
			}
		}
		return ""
	}

	return &ServiceOrder{
		OrderID:             cell("order_id"),
		ClientName:          cell("client_name"),
		ClientPhone:         cell("client_phone"),
		ClientEmail:         cell("client_email"),
		PrinterBrand:        cell("printer_brand"),
		PrinterModel:        cell("printer_model"),
		PrinterSerial:       cell("printer_serial"),
		IssueDescription:    cell("issue_description"),
		Accessories:         cell("accessories"),
		Notes:               cell("notes"),
		DateReceived:        cell("date_received"),
		DatePickupScheduled: cell("date_pickup_scheduled"),
		DateCompleted:       cell("date_completed"),
		DatePickedUp:        cell("date_picked_up"),
		Status:              cell("status"),
		Technician:          cell("technician"),
		RepairDetails:       cell("repair_details"),
		PartsUsed:           cell("parts_used"),
		LaborCost:           CoerceMoney(cell("labor_cost")),
		PartsCost:           CoerceMoney(cell("parts_cost")),
		TotalCost:           CoerceMoney(cell("total_cost")),
	}
}
