package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"canteen-backend/internal/menu"
	"canteen-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type mockMenuReader struct {
	items map[uint]models.MenuItem
}

func (m *mockMenuReader) MenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	if item, ok := m.items[id]; ok {
		cp := item
		return &cp, nil
	}
	return nil, nil
}

type mockResolver struct {
	recipes map[uint][]menu.RecipeComponent
}

func (m *mockResolver) Resolve(ctx context.Context, menuItemID uint) ([]menu.RecipeComponent, error) {
	return m.recipes[menuItemID], nil
}

type mockStore struct {
	mu         sync.Mutex
	created    []*models.CustomerOrder
	deductions [][]StockDeduction
	stock      map[uint]decimal.Decimal
	failErr    error
	nextID     uint
}

func (m *mockStore) CreateOrder(ctx context.Context, order *models.CustomerOrder, deductions []StockDeduction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}

	m.nextID++
	order.ID = m.nextID
	m.created = append(m.created, order)
	m.deductions = append(m.deductions, deductions)
	for _, d := range deductions {
		if m.stock != nil {
			m.stock[d.IngredientID] = m.stock[d.IngredientID].Sub(d.Amount)
		}
	}
	return nil
}

func newTestService(store *mockStore) *Service {
	menuReader := &mockMenuReader{items: map[uint]models.MenuItem{
		1: {ID: 1, Name: "Paneer Burger", Price: dec("120.00")},
		2: {ID: 2, Name: "Veg Wrap", Price: dec("80.00")},
		3: {ID: 3, Name: "Bottled Water", Price: dec("20.00")},
	}}
	resolver := &mockResolver{recipes: map[uint][]menu.RecipeComponent{
		// Paneer Burger: 50g paneer, 15g lettuce, 1 tomato, 10g mayo
		1: {
			{IngredientID: 10, QuantityRequired: dec("50")},
			{IngredientID: 11, QuantityRequired: dec("15")},
			{IngredientID: 12, QuantityRequired: dec("1")},
			{IngredientID: 13, QuantityRequired: dec("10")},
		},
		// Veg Wrap shares lettuce with the burger
		2: {
			{IngredientID: 11, QuantityRequired: dec("20")},
			{IngredientID: 14, QuantityRequired: dec("30")},
		},
		// Bottled Water has no recipe (resold as-is)
	}}
	return NewService(menuReader, resolver, store)
}

func deductionAmount(deductions []StockDeduction, ingredientID uint) decimal.Decimal {
	for _, d := range deductions {
		if d.IngredientID == ingredientID {
			return d.Amount
		}
	}
	return decimal.Zero
}

func TestFulfill_TotalMatchesLineAmounts(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	created, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 1, Quantity: "2"},
		{MenuItemID: 2, Quantity: "3"},
	}})
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}

	want := dec("480.00") // 2*120 + 3*80
	if !created.TotalAmount.Equal(want) {
		t.Errorf("expected total %s, got %s", want, created.TotalAmount)
	}

	sum := decimal.Zero
	for _, item := range created.Items {
		sum = sum.Add(item.LineAmount)
	}
	if !created.TotalAmount.Equal(sum) {
		t.Errorf("total %s does not match sum of line amounts %s", created.TotalAmount, sum)
	}
}

func TestFulfill_PaneerBurgerDeductions(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	created, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 1, Quantity: "3"},
	}})
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}

	if len(created.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(created.Items))
	}
	if created.Items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", created.Items[0].Quantity)
	}
	if !created.Items[0].LineAmount.Equal(dec("360.00")) {
		t.Errorf("expected line amount 360.00, got %s", created.Items[0].LineAmount)
	}

	deductions := store.deductions[0]
	cases := []struct {
		ingredientID uint
		want         string
	}{
		{10, "150"}, // paneer 50g x 3
		{11, "45"},  // lettuce 15g x 3
		{12, "3"},   // tomato 1 x 3
		{13, "30"},  // mayo 10g x 3
	}
	for _, tc := range cases {
		got := deductionAmount(deductions, tc.ingredientID)
		if !got.Equal(dec(tc.want)) {
			t.Errorf("ingredient %d: expected deduction %s, got %s", tc.ingredientID, tc.want, got)
		}
	}
}

func TestFulfill_SharedIngredientAccumulates(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 1, Quantity: "2"}, // 2 x 15g lettuce
		{MenuItemID: 2, Quantity: "1"}, // 1 x 20g lettuce
	}})
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}

	got := deductionAmount(store.deductions[0], 11)
	if !got.Equal(dec("50")) {
		t.Errorf("expected cumulative lettuce deduction 50, got %s", got)
	}
}

func TestFulfill_DropsInvalidLinesKeepsValid(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	created, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 99, Quantity: "2"},   // unknown item
		{MenuItemID: 1, Quantity: "abc"},  // non-numeric
		{MenuItemID: 1, Quantity: "0"},    // non-positive
		{MenuItemID: 2, Quantity: "-3"},   // negative
		{MenuItemID: 2, Quantity: " 2 "},  // valid, whitespace tolerated
	}})
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}

	if len(created.Items) != 1 {
		t.Fatalf("expected 1 surviving item, got %d", len(created.Items))
	}
	if created.Items[0].MenuItemID != 2 || created.Items[0].Quantity != 2 {
		t.Errorf("unexpected surviving line: item %d qty %d", created.Items[0].MenuItemID, created.Items[0].Quantity)
	}
	if !created.TotalAmount.Equal(dec("160.00")) {
		t.Errorf("expected total 160.00, got %s", created.TotalAmount)
	}
}

func TestFulfill_RepeatedItemMergesIntoOneLine(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	created, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 1, Quantity: "2"},
		{MenuItemID: 2, Quantity: "1"},
		{MenuItemID: 1, Quantity: "3"},
		{MenuItemID: 1, Quantity: "junk"}, // invalid repeat is still dropped
	}})
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}

	if len(created.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(created.Items))
	}
	var burger *models.OrderItem
	for i := range created.Items {
		if created.Items[i].MenuItemID == 1 {
			if burger != nil {
				t.Fatal("menu item 1 appears on two order items")
			}
			burger = &created.Items[i]
		}
	}
	if burger == nil {
		t.Fatal("merged line for menu item 1 missing")
	}
	if burger.Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", burger.Quantity)
	}
	if !burger.LineAmount.Equal(dec("600.00")) {
		t.Errorf("expected merged line amount 600.00, got %s", burger.LineAmount)
	}
	if !created.TotalAmount.Equal(dec("680.00")) {
		t.Errorf("expected total 680.00, got %s", created.TotalAmount)
	}

	// deductions reflect the merged quantity: 5 burgers x 50g paneer
	got := deductionAmount(store.deductions[0], 10)
	if !got.Equal(dec("250")) {
		t.Errorf("expected paneer deduction 250, got %s", got)
	}
}

func TestFulfill_NoValidItems(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 99, Quantity: "1"},
		{MenuItemID: 1, Quantity: "zero"},
	}})
	if !errors.Is(err, ErrNoValidItems) {
		t.Errorf("expected ErrNoValidItems, got: %v", err)
	}
	if len(store.created) != 0 {
		t.Errorf("expected no writes, got %d orders", len(store.created))
	}
}

func TestFulfill_StoreFailurePersistsNothing(t *testing.T) {
	storeErr := errors.New("write failed")
	store := &mockStore{failErr: storeErr}
	svc := newTestService(store)

	created, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 1, Quantity: "1"},
	}})
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got: %v", err)
	}
	if created != nil {
		t.Error("expected no order on store failure")
	}
	if len(store.created) != 0 {
		t.Errorf("expected no persisted orders, got %d", len(store.created))
	}
}

func TestFulfill_MissingRecipeDeductsNothing(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	created, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 3, Quantity: "4"},
	}})
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if len(store.deductions[0]) != 0 {
		t.Errorf("expected no deductions, got %d", len(store.deductions[0]))
	}
	if !created.TotalAmount.Equal(dec("80.00")) {
		t.Errorf("expected total 80.00, got %s", created.TotalAmount)
	}
}

func TestFulfill_UnitPriceSnapshot(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	created, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
		{MenuItemID: 1, Quantity: "1"},
	}})
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if !created.Items[0].UnitPrice.Equal(dec("120.00")) {
		t.Errorf("expected snapshot unit price 120.00, got %s", created.Items[0].UnitPrice)
	}
	if created.OrderStatus != models.OrderStatusPending {
		t.Errorf("expected PENDING status, got %s", created.OrderStatus)
	}
	if created.OrderNumber == "" {
		t.Error("expected non-empty order number")
	}
}

func TestFulfill_ConcurrentOrdersNeverLoseDeductions(t *testing.T) {
	store := &mockStore{stock: map[uint]decimal.Decimal{
		10: dec("10000"), 11: dec("10000"), 12: dec("10000"), 13: dec("10000"),
	}}
	svc := newTestService(store)

	const orders = 50
	var wg sync.WaitGroup
	for i := 0; i < orders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Fulfill(context.Background(), Request{Lines: []Line{
				{MenuItemID: 1, Quantity: "1"},
			}}); err != nil {
				t.Errorf("fulfill failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// 50 orders x 50g paneer each
	if !store.stock[10].Equal(dec("7500")) {
		t.Errorf("expected paneer stock 7500, got %s", store.stock[10])
	}
	if len(store.created) != orders {
		t.Errorf("expected %d orders, got %d", orders, len(store.created))
	}
}
