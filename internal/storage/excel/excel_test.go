package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printer-crm/internal/storage"
)

func TestReadMissingWorkbook(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "orders.xlsx"))

	_, err := s.Read(context.Background(), "Orders")
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "orders.xlsx"))
	ctx := context.Background()

	in := &storage.Table{
		Columns: storage.Columns,
		Rows: [][]string{
			(&storage.ServiceOrder{
				OrderID:      "SRV-00001",
				ClientName:   "Ana Pop",
				ClientPhone:  "0722111222",
				PrinterBrand: "HP",
				Status:       storage.StatusReceived,
			}).Row(),
			(&storage.ServiceOrder{
				OrderID:    "SRV-00002",
				ClientName: "Ion Vasile",
				Status:     storage.StatusCompleted,
				LaborCost:  120,
				PartsCost:  35.5,
				TotalCost:  155.5,
			}).Row(),
		},
	}
	require.NoError(t, s.Write(ctx, "Orders", in))

	out, err := s.Read(ctx, "Orders")
	require.NoError(t, err)
	assert.Equal(t, storage.Columns, out.Columns)
	require.Len(t, out.Rows, 2)

	second := storage.OrderFromRow(out.Columns, out.Rows[1])
	assert.Equal(t, "SRV-00002", second.OrderID)
	assert.Equal(t, storage.Money(155.5), second.TotalCost)
}

func TestWriteReplacesPreviousRows(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "orders.xlsx"))
	ctx := context.Background()

	three := &storage.Table{Columns: storage.Columns}
	for i := 1; i <= 3; i++ {
		three.Rows = append(three.Rows, (&storage.ServiceOrder{OrderID: storage.FormatOrderID(i)}).Row())
	}
	require.NoError(t, s.Write(ctx, "Orders", three))

	one := &storage.Table{
		Columns: storage.Columns,
		Rows:    [][]string{(&storage.ServiceOrder{OrderID: "SRV-00009"}).Row()},
	}
	require.NoError(t, s.Write(ctx, "Orders", one))

	out, err := s.Read(ctx, "Orders")
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "SRV-00009", out.Rows[0][0])
}

func TestReadUnknownSheet(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "orders.xlsx"))
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "Orders", &storage.Table{Columns: storage.Columns}))

	_, err := s.Read(ctx, "Archive")
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
}
