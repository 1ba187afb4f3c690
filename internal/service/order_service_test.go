package service

import (
	"context"
	"errors"
	"testing"

	"papapizza/internal/dal"
	"papapizza/internal/logger"
	"papapizza/internal/models"

	"github.com/shopspring/decimal"
)

func testMenu(t *testing.T) dal.MenuRepository {
	t.Helper()
	var items []models.MenuItem
	for _, m := range []struct {
		name  string
		price string
	}{
		{"Pepperoni", "21.00"},
		{"Chicken Supreme", "23.50"},
		{"BBQ Meatlovers", "25.50"},
		{"Veg Supreme", "22.50"},
		{"Hawaiian", "19.00"},
		{"Margherita", "18.50"},
	} {
		item, err := models.NewMenuItem(m.name, decimal.RequireFromString(m.price), "")
		if err != nil {
			t.Fatal(err)
		}
		items = append(items, item)
	}
	repo, err := dal.NewMenuRepository(items)
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

type fixture struct {
	orders  OrderService
	reports ReportService
}

func newFixture(t *testing.T, pricing models.Pricing) fixture {
	t.Helper()
	log := logger.Discard()
	reportRepo := dal.NewReportRepository()
	return fixture{
		orders:  NewOrderService(dal.NewOrderRepository(), testMenu(t), reportRepo, pricing, log),
		reports: NewReportService(reportRepo, log),
	}
}

func yes(models.Receipt) (bool, error) { return true, nil }
func no(models.Receipt) (bool, error)  { return false, nil }

func TestEndToEndPickupMargherita(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())

	order, selected, err := f.orders.CreateOrder(ctx, models.Pickup, false)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if !selected {
		t.Fatal("first order should become current")
	}

	if _, err := f.orders.AddItem(ctx, "margherita", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := order.RawCost().StringFixed(2); got != "37.00" {
		t.Errorf("RawCost = %s, want 37.00", got)
	}

	receipt, paid, err := f.orders.ProcessOrder(ctx, yes)
	if err != nil {
		t.Fatalf("ProcessOrder: %v", err)
	}
	if !paid || !order.Paid || order.PaidAt == nil {
		t.Fatalf("order not paid: paid=%v order=%+v", paid, order)
	}
	if got := receipt.Total.StringFixed(2); got != "40.70" {
		t.Errorf("total = %s, want 40.70", got)
	}

	summary, err := f.reports.GenerateDailySalesSummary(ctx)
	if err != nil {
		t.Fatalf("GenerateDailySalesSummary: %v", err)
	}
	if summary.OrderCount != 1 || summary.Entries[0].OrderID != order.ID {
		t.Errorf("summary entries = %+v", summary.Entries)
	}
	if got := summary.TotalSales.StringFixed(2); got != "40.70" {
		t.Errorf("total sales = %s, want 40.70", got)
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())

	first, selected, err := f.orders.CreateOrder(ctx, models.Pickup, false)
	if err != nil || !selected {
		t.Fatalf("first CreateOrder = %v, %v", selected, err)
	}

	second, selected, err := f.orders.CreateOrder(ctx, models.Delivery, false)
	if err != nil {
		t.Fatalf("second CreateOrder: %v", err)
	}
	if selected {
		t.Error("second order must not be selected automatically")
	}

	current, err := f.orders.CurrentOrder(ctx)
	if err != nil || current.ID != first.ID {
		t.Errorf("current = %v, %v; want first order", current, err)
	}
	if first.ID == second.ID {
		t.Error("order ids must be unique")
	}

	if _, _, err := f.orders.CreateOrder(ctx, models.ServiceType(0), false); !errors.Is(err, models.ErrInvalidServiceType) {
		t.Errorf("invalid service type error = %v", err)
	}
}

func TestSwitchOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())
	f.orders.CreateOrder(ctx, models.Pickup, false)
	second, _, _ := f.orders.CreateOrder(ctx, models.Delivery, false)

	tests := []struct {
		name    string
		index   int
		wantErr error
	}{
		{name: "to second", index: 2},
		{name: "already current", index: 2, wantErr: models.ErrAlreadyCurrent},
		{name: "zero", index: 0, wantErr: models.ErrIndexOutOfRange},
		{name: "past end", index: 3, wantErr: models.ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.SwitchOrder(ctx, tt.index)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SwitchOrder(%d) error = %v, want %v", tt.index, err, tt.wantErr)
			}
		})
	}

	current, _ := f.orders.CurrentOrder(ctx)
	if current.ID != second.ID {
		t.Error("current order should be the second order")
	}
}

func TestRemoveCurrentOrderClearsSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())
	f.orders.CreateOrder(ctx, models.Pickup, false)
	f.orders.CreateOrder(ctx, models.Pickup, false)

	if _, err := f.orders.RemoveOrder(ctx, 3); !errors.Is(err, models.ErrIndexOutOfRange) {
		t.Errorf("RemoveOrder(3) error = %v", err)
	}
	if _, err := f.orders.RemoveOrder(ctx, 1); err != nil {
		t.Fatalf("RemoveOrder(1): %v", err)
	}

	if _, err := f.orders.CurrentOrder(ctx); !errors.Is(err, models.ErrNoCurrentOrder) {
		t.Errorf("CurrentOrder error = %v, want ErrNoCurrentOrder", err)
	}
	if _, err := f.orders.AddItem(ctx, "Hawaiian", 1); !errors.Is(err, models.ErrNoCurrentOrder) {
		t.Errorf("AddItem error = %v, want ErrNoCurrentOrder", err)
	}

	views, err := f.orders.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(views) != 1 || views[0].Index != 1 || views[0].Current {
		t.Errorf("views = %+v", views)
	}
}

func TestRemoveOtherOrderKeepsSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())
	first, _, _ := f.orders.CreateOrder(ctx, models.Pickup, false)
	f.orders.CreateOrder(ctx, models.Pickup, false)

	if _, err := f.orders.RemoveOrder(ctx, 2); err != nil {
		t.Fatalf("RemoveOrder: %v", err)
	}
	current, err := f.orders.CurrentOrder(ctx)
	if err != nil || current.ID != first.ID {
		t.Errorf("current = %v, %v", current, err)
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())
	order, _, _ := f.orders.CreateOrder(ctx, models.Pickup, false)

	tests := []struct {
		name     string
		item     string
		quantity int
		wantErr  error
		wantLen  int
	}{
		{name: "single", item: "Pepperoni", quantity: 1, wantLen: 1},
		{name: "case and spaces", item: "  chicken supreme ", quantity: 2, wantLen: 3},
		{name: "cap", item: "Hawaiian", quantity: 10, wantLen: 13},
		{name: "over cap", item: "Hawaiian", quantity: 11, wantErr: models.ErrInvalidQuantity, wantLen: 13},
		{name: "zero", item: "Hawaiian", quantity: 0, wantErr: models.ErrInvalidQuantity, wantLen: 13},
		{name: "unknown", item: "Calzone", quantity: 1, wantErr: models.ErrUnknownMenuItem, wantLen: 13},
		{name: "empty name", item: "", quantity: 1, wantErr: models.ErrUnknownMenuItem, wantLen: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.AddItem(ctx, tt.item, tt.quantity)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddItem error = %v, want %v", err, tt.wantErr)
			}
			if len(order.Items) != tt.wantLen {
				t.Errorf("len(items) = %d, want %d", len(order.Items), tt.wantLen)
			}
		})
	}
}

func TestAddItemOrderDoesNotMatter(t *testing.T) {
	ctx := context.Background()
	names := []string{"Pepperoni", "Margherita", "Veg Supreme", "Hawaiian"}

	var totals []string
	for _, ordering := range [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}} {
		f := newFixture(t, models.DefaultPricing())
		order, _, _ := f.orders.CreateOrder(ctx, models.Pickup, false)
		for _, i := range ordering {
			if _, err := f.orders.AddItem(ctx, names[i], 1); err != nil {
				t.Fatal(err)
			}
		}
		totals = append(totals, order.RawCost().StringFixed(2))
	}

	for _, got := range totals {
		if got != "81.00" {
			t.Errorf("raw cost = %s, want 81.00 for every ordering", got)
		}
	}
}

func TestRemoveItemPartial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())
	order, _, _ := f.orders.CreateOrder(ctx, models.Pickup, false)
	f.orders.AddItem(ctx, "Margherita", 2)
	f.orders.AddItem(ctx, "Pepperoni", 1)

	change, err := f.orders.RemoveItem(ctx, "margherita", 3)
	if !errors.Is(err, models.ErrItemNotInOrder) {
		t.Fatalf("RemoveItem error = %v, want ErrItemNotInOrder", err)
	}
	if change.Count != 2 || change.Missing != 1 {
		t.Errorf("change = %d removed, %d missing; want 2 and 1", change.Count, change.Missing)
	}
	if names := order.ItemNames(); len(names) != 1 || names[0] != "Pepperoni" {
		t.Errorf("items left = %v", names)
	}

	if _, err := f.orders.RemoveItem(ctx, "Pepperoni", 0); !errors.Is(err, models.ErrInvalidQuantity) {
		t.Errorf("zero quantity error = %v", err)
	}
	if _, err := f.orders.RemoveItem(ctx, "Calzone", 1); !errors.Is(err, models.ErrUnknownMenuItem) {
		t.Errorf("unknown item error = %v", err)
	}
	if change, err := f.orders.RemoveItem(ctx, "Pepperoni", 1); err != nil || change.Count != 1 {
		t.Errorf("RemoveItem(Pepperoni) = %+v, %v", change, err)
	}
}

func TestPaidOrderIsLocked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())
	order, _, _ := f.orders.CreateOrder(ctx, models.Delivery, false)
	f.orders.AddItem(ctx, "Pepperoni", 1)

	if _, paid, err := f.orders.ProcessOrder(ctx, yes); err != nil || !paid {
		t.Fatalf("ProcessOrder = %v, %v", paid, err)
	}

	if _, err := f.orders.AddItem(ctx, "Pepperoni", 1); !errors.Is(err, models.ErrOrderLocked) {
		t.Errorf("AddItem on paid order error = %v, want ErrOrderLocked", err)
	}
	if _, err := f.orders.RemoveItem(ctx, "Pepperoni", 1); !errors.Is(err, models.ErrOrderLocked) {
		t.Errorf("RemoveItem on paid order error = %v, want ErrOrderLocked", err)
	}
	if _, _, err := f.orders.ProcessOrder(ctx, yes); !errors.Is(err, models.ErrAlreadyPaid) {
		t.Errorf("second ProcessOrder error = %v, want ErrAlreadyPaid", err)
	}
	if got, err := f.orders.UsableCurrentOrder(ctx); !errors.Is(err, models.ErrOrderLocked) || got != order {
		t.Errorf("UsableCurrentOrder = %v, %v", got, err)
	}

	summary, err := f.reports.GenerateDailySalesSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if summary.OrderCount != 1 {
		t.Errorf("sale recorded %d times, want once", summary.OrderCount)
	}
	// (21.00 + 8.00) * 1.10
	if got := summary.TotalSales.StringFixed(2); got != "31.90" {
		t.Errorf("total sales = %s, want 31.90", got)
	}
}

func TestProcessOrderDeclined(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())
	order, _, _ := f.orders.CreateOrder(ctx, models.Pickup, false)
	f.orders.AddItem(ctx, "BBQ Meatlovers", 4)

	receipt, paid, err := f.orders.ProcessOrder(ctx, no)
	if err != nil || paid {
		t.Fatalf("ProcessOrder = %v, %v", paid, err)
	}
	if order.Paid {
		t.Error("declined order must stay unpaid")
	}
	// 102.00 * 0.90 * 1.10
	if got := receipt.Total.StringFixed(2); got != "100.98" || !receipt.Discounted {
		t.Errorf("receipt total %s discounted %v", got, receipt.Discounted)
	}
	if _, err := f.reports.GenerateDailySalesSummary(ctx); !errors.Is(err, models.ErrNoSales) {
		t.Errorf("summary error = %v, want ErrNoSales", err)
	}

	boom := errors.New("boom")
	if _, _, err := f.orders.ProcessOrder(ctx, func(models.Receipt) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Errorf("confirm error not passed through: %v", err)
	}
}

func TestProcessOrderWithoutCurrent(t *testing.T) {
	f := newFixture(t, models.DefaultPricing())
	if _, _, err := f.orders.ProcessOrder(context.Background(), yes); !errors.Is(err, models.ErrNoCurrentOrder) {
		t.Errorf("ProcessOrder error = %v, want ErrNoCurrentOrder", err)
	}
}

func TestRemovePaidOrderKeepsSale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.DefaultPricing())
	f.orders.CreateOrder(ctx, models.Pickup, false)
	f.orders.AddItem(ctx, "Hawaiian", 1)
	f.orders.ProcessOrder(ctx, yes)

	if _, err := f.orders.RemoveOrder(ctx, 1); err != nil {
		t.Fatalf("RemoveOrder: %v", err)
	}
	if _, err := f.orders.ListOrders(ctx); !errors.Is(err, models.ErrNoOrders) {
		t.Errorf("ListOrders error = %v, want ErrNoOrders", err)
	}

	summary, err := f.reports.GenerateDailySalesSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := summary.TotalSales.StringFixed(2); got != "20.90" {
		t.Errorf("total sales = %s, want 20.90", got)
	}
}

func TestLoyaltyPolicy(t *testing.T) {
	ctx := context.Background()
	pricing := models.DefaultPricing()
	pricing.Policy = models.LoyaltyDiscount
	f := newFixture(t, pricing)

	f.orders.CreateOrder(ctx, models.Pickup, true)
	f.orders.AddItem(ctx, "Pepperoni", 2)

	receipt, _, err := f.orders.ProcessOrder(ctx, yes)
	if err != nil {
		t.Fatal(err)
	}
	// 42.00 * 0.95 * 1.10
	if got := receipt.Total.StringFixed(2); got != "43.89" || !receipt.Discounted {
		t.Errorf("loyalty total %s discounted %v, want 43.89 true", got, receipt.Discounted)
	}
	if receipt.Extras[0] != "a 5% discount" {
		t.Errorf("extras = %v", receipt.Extras)
	}
}
