package csvfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printer-crm/internal/storage"
)

func TestReadMissingFile(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Read(context.Background(), "Orders")
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	order := &storage.ServiceOrder{
		OrderID:          "SRV-00001",
		ClientName:       "Ana Pop",
		ClientPhone:      "0722111222",
		PrinterBrand:     "HP",
		PrinterModel:     "LaserJet 1020",
		IssueDescription: "no power, makes clicking noise",
		Status:           storage.StatusReceived,
	}
	in := &storage.Table{Columns: storage.Columns, Rows: [][]string{order.Row()}}
	require.NoError(t, s.Write(ctx, "Orders", in))

	out, err := s.Read(ctx, "Orders")
	require.NoError(t, err)
	assert.Equal(t, storage.Columns, out.Columns)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, order, storage.OrderFromRow(out.Columns, out.Rows[0]))
}

func TestWriteReplacesWholeTable(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	first := &storage.Table{Columns: storage.Columns}
	for i := 1; i <= 4; i++ {
		first.Rows = append(first.Rows, (&storage.ServiceOrder{OrderID: storage.FormatOrderID(i)}).Row())
	}
	require.NoError(t, s.Write(ctx, "Orders", first))

	second := &storage.Table{
		Columns: storage.Columns,
		Rows:    [][]string{(&storage.ServiceOrder{OrderID: "SRV-00005"}).Row()},
	}
	require.NoError(t, s.Write(ctx, "Orders", second))

	out, err := s.Read(ctx, "Orders")
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "SRV-00005", out.Rows[0][0])
}

func TestFreeTextSurvivesCommasAndNewlines(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	order := &storage.ServiceOrder{
		OrderID: "SRV-00001",
		Notes:   "client called twice,\nwants a quote first",
	}
	require.NoError(t, s.Write(ctx, "Orders", &storage.Table{
		Columns: storage.Columns,
		Rows:    [][]string{order.Row()},
	}))

	out, err := s.Read(ctx, "Orders")
	require.NoError(t, err)
	got := storage.OrderFromRow(out.Columns, out.Rows[0])
	assert.Equal(t, order.Notes, got.Notes)
}
