package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"printer-crm/internal/storage"
)

type OrderLister interface {
	List(ctx context.Context) ([]*storage.ServiceOrder, error)
}

// Service derives everything the reports screen shows from the raw order
// list: summary metrics, the most-recent-first listing and the two export
// formats. Sorting lives here, not in the repository.
type Service struct {
	orders OrderLister
}

func New(orders OrderLister) *Service {
	return &Service{orders: orders}
}

type Summary struct {
	TotalOrders     int     `json:"total_orders"`
	CompletedOrders int     `json:"completed_orders"`
	OpenOrders      int     `json:"open_orders"`
	UniqueClients   int     `json:"unique_clients"`
	TotalRevenue    float64 `json:"total_revenue"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	const op = "service.report.Summary"

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sum := &Summary{TotalOrders: len(orders)}
	clients := make(map[string]struct{})
	for _, o := range orders {
		if storage.NormalizeStatus(o.Status) == storage.StatusCompleted {
			sum.CompletedOrders++
		} else {
			sum.OpenOrders++
		}
		if o.ClientName != "" {
			clients[o.ClientName] = struct{}{}
		}
		sum.TotalRevenue += float64(o.TotalCost)
	}
	sum.UniqueClients = len(clients)

	return sum, nil
}

// OrdersByDateReceived returns the orders most-recent-first. ISO dates
// compare correctly as strings; ties keep store order.
func (s *Service) OrdersByDateReceived(ctx context.Context) ([]*storage.ServiceOrder, error) {
	const op = "service.report.OrdersByDateReceived"

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].DateReceived > orders[j].DateReceived
	})

	return orders, nil
}

// ExportCSV renders the whole table as a CSV backup, header first.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	const op = "service.report.ExportCSV"

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(storage.Columns); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, o := range orders {
		if err := w.Write(o.Row()); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

// ExportExcel renders the order ledger as an xlsx workbook with a styled
// header row.
func (s *Service) ExportExcel(ctx context.Context) ([]byte, error) {
	const op = "service.report.ExportExcel"

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Service Orders"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	for i, name := range storage.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(storage.Columns), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, o := range orders {
		rowNum := rowIdx + 2
		row := o.Row()
		for colIdx, name := range storage.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			switch name {
			case "labor_cost", "parts_cost", "total_cost":
				// Costs as numbers so the sheet can sum them.
				f.SetCellValue(sheet, cell, float64(costByName(o, name)))
			default:
				f.SetCellValue(sheet, cell, row[colIdx])
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func costByName(o *storage.ServiceOrder, name string) storage.Money {
	switch name {
	case "labor_cost":
		return o.LaborCost
	case "parts_cost":
		return o.PartsCost
	default:
		return o.TotalCost
	}
}
