package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

var orderIDPattern = regexp.MustCompile(`^SRV-(\d+)$`)

// FormatOrderID renders the numeric counter as a SRV-NNNNN identifier.
func FormatOrderID(n int) string {
	return fmt.Sprintf("SRV-%05d", n)
}

// OrderRepository keeps the full set of service orders in a TableStore.
// Every mutation is a read-modify-write of the whole table; the store offers
// no transactions, so the empty-write guard in writeOrders is the only
// protection against wiping the sheet.
type OrderRepository struct {
	store    TableStore
	table    string
	cacheTTL time.Duration

	mu       sync.Mutex
	nextID   int
	cached   []*ServiceOrder
	cachedAt time.Time
}

func NewOrderRepository(store TableStore, table string, cacheTTL time.Duration) *OrderRepository {
	return &OrderRepository{
		store:    store,
		table:    table,
		cacheTTL: cacheTTL,
		nextID:   1,
	}
}

// Initialize reads the table and derives the next-id counter from the
// largest SRV-NNNNN suffix present. An absent or unreadable store counts as
// empty: the canonical header is written out and the counter starts at 1.
// Initialize never fails because of a read problem; only a failed header
// write is reported, and even then the repository stays usable.
func (r *OrderRepository) Initialize(ctx context.Context) error {
	const op = "storage.repository.Initialize"

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID = 1

	t, err := r.store.Read(ctx, r.table)
	if err != nil || t == nil || len(t.Rows) == 0 {
		if werr := r.store.Write(ctx, r.table, &Table{Columns: Columns}); werr != nil {
			return fmt.Errorf("%s: write header: %w", op, werr)
		}
		return nil
	}

	maxID := 0
	for _, row := range t.Rows {
		order := OrderFromRow(t.Columns, row)
		m := orderIDPattern.FindStringSubmatch(order.OrderID)
		if m == nil {
			// Malformed identifiers are skipped, not an error.
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxID {
			maxID = n
		}
	}
	r.nextID = maxID + 1

	return nil
}

// Create builds a full record from the intake fields, appends it to a fresh
// read of the table and writes the table back. The counter advances only
// after the store confirms the write, so a failed create retries the same id.
func (r *OrderRepository) Create(ctx context.Context, n NewOrder) (string, error) {
	const op = "storage.repository.Create"

	r.mu.Lock()
	defer r.mu.Unlock()

	order := &ServiceOrder{
		OrderID:             FormatOrderID(r.nextID),
		ClientName:          n.ClientName,
		ClientPhone:         n.ClientPhone,
		ClientEmail:         n.ClientEmail,
		PrinterBrand:        n.PrinterBrand,
		PrinterModel:        n.PrinterModel,
		PrinterSerial:       n.PrinterSerial,
		IssueDescription:    n.IssueDescription,
		Accessories:         n.Accessories,
		Notes:               n.Notes,
		DateReceived:        n.DateReceived,
		DatePickupScheduled: n.DatePickupScheduled,
		Status:              StatusReceived,
	}
	if order.DateReceived == "" {
		order.DateReceived = time.Now().Format(dateLayout)
	}

	orders, err := r.readAll(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	orders = append(orders, order)
	if err := r.writeOrders(ctx, orders); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	r.nextID++
	r.cached = nil

	return order.OrderID, nil
}

// Get returns the first record matching the id. Reads may be served from the
// short-lived cache.
func (r *OrderRepository) Get(ctx context.Context, orderID string) (*ServiceOrder, error) {
	const op = "storage.repository.Get"

	orders, err := r.listCached(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, o := range orders {
		if o.OrderID == orderID {
			return o, nil
		}
	}

	return nil, fmt.Errorf("%s: %s: %w", op, orderID, ErrOrderNotFound)
}

// Update reads the table fresh (never from cache, to narrow the race window
// against other writers), applies the partial update to the matching row(s)
// and writes the whole table back.
func (r *OrderRepository) Update(ctx context.Context, orderID string, upd UpdateOrder) error {
	const op = "storage.repository.Update"

	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.readAll(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	matched := false
	today := time.Now().Format(dateLayout)
	for _, o := range orders {
		if o.OrderID != orderID {
			continue
		}
		matched = true
		applyUpdate(o, upd, today)
	}
	if !matched {
		return fmt.Errorf("%s: %s: %w", op, orderID, ErrOrderNotFound)
	}

	if err := r.writeOrders(ctx, orders); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.cached = nil

	return nil
}

// List returns all orders in store order, costs coerced to numbers. Sorting
// for reports happens at the reporting layer.
func (r *OrderRepository) List(ctx context.Context) ([]*ServiceOrder, error) {
	const op = "storage.repository.List"

	orders, err := r.listCached(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Callers sort and slice the result; hand them their own slice.
	out := make([]*ServiceOrder, len(orders))
	copy(out, orders)

	return out, nil
}

func applyUpdate(o *ServiceOrder, upd UpdateOrder, today string) {
	if upd.Status != nil {
		o.Status = NormalizeStatus(*upd.Status)
		// Completion dates are stamped once, on the first transition.
		if o.Status == StatusReadyForPickup && o.DateCompleted == "" {
			o.DateCompleted = today
		}
		if o.Status == StatusCompleted && o.DatePickedUp == "" {
			o.DatePickedUp = today
		}
	}
	if upd.Technician != nil {
		o.Technician = *upd.Technician
	}
	if upd.RepairDetails != nil {
		o.RepairDetails = *upd.RepairDetails
	}
	if upd.PartsUsed != nil {
		o.PartsUsed = *upd.PartsUsed
	}
	if upd.Notes != nil {
		o.Notes = *upd.Notes
	}
	if upd.DatePickupScheduled != nil {
		o.DatePickupScheduled = *upd.DatePickupScheduled
	}
	if upd.LaborCost != nil {
		o.LaborCost = *upd.LaborCost
	}
	if upd.PartsCost != nil {
		o.PartsCost = *upd.PartsCost
	}
	if upd.LaborCost != nil || upd.PartsCost != nil {
		o.TotalCost = o.LaborCost + o.PartsCost
	}
}

// readAll fetches the authoritative table state, bypassing the cache.
// A missing table reads as empty.
func (r *OrderRepository) readAll(ctx context.Context) ([]*ServiceOrder, error) {
	t, err := r.store.Read(ctx, r.table)
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	orders := make([]*ServiceOrder, 0, len(t.Rows))
	for _, row := range t.Rows {
		orders = append(orders, OrderFromRow(t.Columns, row))
	}

	return orders, nil
}

func (r *OrderRepository) writeOrders(ctx context.Context, orders []*ServiceOrder) error {
	if len(orders) == 0 {
		return ErrEmptyWrite
	}

	t := &Table{Columns: Columns, Rows: make([][]string, 0, len(orders))}
	for _, o := range orders {
		t.Rows = append(t.Rows, o.Row())
	}

	if err := r.store.Write(ctx, r.table, t); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}

func (r *OrderRepository) listCached(ctx context.Context) ([]*ServiceOrder, error) {
	r.mu.Lock()
	if r.cached != nil && time.Since(r.cachedAt) < r.cacheTTL {
		orders := r.cached
		r.mu.Unlock()
		return orders, nil
	}
	r.mu.Unlock()

	orders, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cached = orders
	r.cachedAt = time.Now()
	r.mu.Unlock()

	return orders, nil
}
