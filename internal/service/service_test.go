package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/gestor/internal/engine"
	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/repository"
	"github.com/mmeshcher/gestor/internal/validation"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestEngine() *engine.Engine {
	n := 0
	return engine.NewWithClock(
		func() time.Time { return testNow },
		func() string {
			n++
			return fmt.Sprintf("ID%03d", n)
		},
	)
}

func newTestService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()

	store := repository.NewStore(repository.NewMemoryRepository(), nil)
	return NewService(context.Background(), store, newTestEngine(), nil), store
}

func TestCheckoutAndRefund_ExampleScenario(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	p1, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500, Stock: 10, ManageStock: true})
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, p1.ID, 3)
	require.NoError(t, err)

	sale, res, err := svc.Checkout(ctx, CheckoutRequest{CustomerName: "Ana", PaymentMethod: model.PaymentCash})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, sale.Total)
	assert.Equal(t, engine.ResolvedCreated, res.Kind)
	assert.Empty(t, svc.Cart(ctx).Items, "cart is cleared on success")

	persisted := store.Load(ctx)
	require.Len(t, persisted.Products, 1)
	assert.Equal(t, 7, persisted.Products[0].Stock)
	require.Len(t, persisted.Customers, 1)
	assert.Equal(t, "Ana", persisted.Customers[0].Name)
	assert.Equal(t, 1500.0, persisted.Customers[0].TotalSpent)
	require.Len(t, persisted.Sales, 1)

	refunded, err := svc.Refund(ctx, sale.ID, "cliente desistiu")
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusRefunded, refunded.Status)

	persisted = store.Load(ctx)
	assert.Equal(t, 10, persisted.Products[0].Stock)
	assert.Zero(t, persisted.Customers[0].TotalSpent)
	assert.Equal(t, model.SaleStatusRefunded, persisted.Sales[0].Status)

	before := svc.Snapshot(ctx)
	_, err = svc.Refund(ctx, sale.ID, "again")
	require.ErrorIs(t, err, engine.ErrAlreadyRefunded)
	assert.Equal(t, before, svc.Snapshot(ctx))
}

func TestCheckout_FailureKeepsCartAndState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500, Stock: 2, ManageStock: true})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, p.ID, 2)
	require.NoError(t, err)

	before := svc.Snapshot(ctx)
	_, _, err = svc.Checkout(ctx, CheckoutRequest{CustomerName: " ", PaymentMethod: model.PaymentCash})
	require.ErrorIs(t, err, engine.ErrEmptyCustomerName)

	assert.Len(t, svc.Cart(ctx).Items, 1)
	assert.Equal(t, before, svc.Snapshot(ctx))
}

func TestCheckout_StockEditedWhileInCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500, Stock: 5, ManageStock: true})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, p.ID, 4)
	require.NoError(t, err)

	p.Stock = 2
	_, err = svc.UpdateProduct(ctx, p.ID, p)
	require.NoError(t, err)

	_, _, err = svc.Checkout(ctx, CheckoutRequest{CustomerName: "Ana", PaymentMethod: model.PaymentCash})
	require.ErrorIs(t, err, engine.ErrStockExceeded)
	assert.Equal(t, 2, svc.ListProducts(ctx, "", "")[0].Stock)
}

func TestAddToCart_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	empty, err := svc.CreateProduct(ctx, model.Product{Name: "Pão", Price: 100, Stock: 0, ManageStock: true})
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, empty.ID, 1)
	assert.ErrorIs(t, err, engine.ErrOutOfStock)

	_, err = svc.AddToCart(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RemoveFromCart(ctx, empty.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerTotalsAcrossCheckouts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Corte", Price: 1200})
	require.NoError(t, err)
	bruno, err := svc.CreateCustomer(ctx, "Bruno", "923111222")
	require.NoError(t, err)

	want := map[string]float64{}
	for i, name := range []string{"Ana", "Bruno", "ana", "ANA", "bruno"} {
		_, err := svc.AddToCart(ctx, p.ID, i+1)
		require.NoError(t, err)
		sale, res, err := svc.Checkout(ctx, CheckoutRequest{CustomerName: name, PaymentMethod: model.PaymentCardTerminal})
		require.NoError(t, err)
		want[res.Customer.ID] += sale.Total
	}

	customers := svc.ListCustomers(ctx, "")
	require.Len(t, customers, 2)
	for _, c := range customers {
		assert.Equal(t, want[c.ID], c.TotalSpent, c.Name)
	}
	assert.Equal(t, 1200.0*(2+5), want[bruno.ID])

	history, err := svc.CustomerSales(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestProductEditKeepsHistoricalSale(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, p.ID, 2)
	require.NoError(t, err)
	sale, _, err := svc.Checkout(ctx, CheckoutRequest{CustomerName: "Ana", PaymentMethod: model.PaymentCash})
	require.NoError(t, err)

	p.Price = 800
	p.Name = "Sumo Natural"
	_, err = svc.UpdateProduct(ctx, p.ID, p)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	r, err := svc.Receipt(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "1\u00a0000,00 Kz", r.Total)
	require.Len(t, r.Lines, 1)
	assert.Equal(t, "Sumo", r.Lines[0].Name)
	assert.Equal(t, "Ana", r.CustomerName)
}

func TestCatalogValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(ctx, model.Product{Name: "", Price: 10})
	assert.ErrorIs(t, err, validation.ErrValidation)

	_, err = svc.UpdateProduct(ctx, "missing", model.Product{Name: "X", Price: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateCustomer(ctx, "  ", "")
	assert.ErrorIs(t, err, validation.ErrNameRequired)

	_, err = svc.AddExpense(ctx, model.Expense{Description: "Renda", Amount: -1})
	assert.ErrorIs(t, err, validation.ErrAmountNotPositive)

	assert.ErrorIs(t, svc.DeleteCustomer(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteExpense(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, "missing"), ErrNotFound)
}

func TestCustomerEditAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Corte", Price: 1000})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, p.ID, 1)
	require.NoError(t, err)
	sale, res, err := svc.Checkout(ctx, CheckoutRequest{CustomerName: "Ana", PaymentMethod: model.PaymentCash})
	require.NoError(t, err)

	c, err := svc.UpdateCustomer(ctx, res.Customer.ID, "Ana Maria", "923")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, c.TotalSpent)
	assert.Equal(t, "Ana Maria", c.Name)

	require.NoError(t, svc.DeleteCustomer(ctx, c.ID))
	assert.Equal(t, 1000.0, svc.Finances(ctx).TotalIncome)

	refunded, err := svc.Refund(ctx, sale.ID, "")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultRefundReason, refunded.RefundReason)
	assert.Empty(t, svc.ListCustomers(ctx, ""), "refund does not restore a deleted customer")

	r, err := svc.Receipt(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Consumidor", r.CustomerName)
}

func TestExpensesAndReports(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	e, err := svc.AddExpense(ctx, model.Expense{Description: "Renda", Amount: 300})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultExpenseCategory, e.Category)
	assert.Equal(t, testNow, e.Date)

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500, Stock: 5, ManageStock: true})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, p.ID, 2)
	require.NoError(t, err)
	sale, _, err := svc.Checkout(ctx, CheckoutRequest{CustomerName: "Ana", PaymentMethod: model.PaymentCash})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, p.ID, 1)
	require.NoError(t, err)
	_, _, err = svc.Checkout(ctx, CheckoutRequest{CustomerName: "Bruno", PaymentMethod: model.PaymentCash})
	require.NoError(t, err)
	_, err = svc.Refund(ctx, sale.ID, "erro")
	require.NoError(t, err)

	d := svc.Dashboard(ctx)
	assert.Equal(t, 1500.0, d.TodaySales, "dashboard keeps refunded sales")
	assert.Equal(t, 1, d.LowStockCount)
	assert.Equal(t, 2, d.TotalCustomers)

	f := svc.Finances(ctx)
	assert.Equal(t, 500.0, f.TotalIncome)
	assert.Equal(t, 300.0, f.TotalExpense)
	assert.Equal(t, 200.0, f.Net)

	require.NoError(t, svc.DeleteExpense(ctx, e.ID))
	assert.Empty(t, svc.ListExpenses(ctx))
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Login(ctx, "", "x", false)
	require.ErrorIs(t, err, validation.ErrCredentialsRequired)
	assert.Nil(t, svc.Session(ctx))

	session, err := svc.Login(ctx, "Loja da Ana", "secret", true)
	require.NoError(t, err)
	assert.Equal(t, testNow, session.LastLogin)
	assert.True(t, svc.ValidSession(session.Token))
	assert.False(t, svc.ValidSession("forged"))
	assert.Equal(t, "Loja da Ana", svc.Settings(ctx).Name)

	persisted := store.Load(ctx)
	require.NotNil(t, persisted.Session)
	assert.Equal(t, session.Token, persisted.Session.Token)

	svc.Logout(ctx)
	assert.False(t, svc.ValidSession(session.Token))
	assert.Nil(t, store.Load(ctx).Session)
}

func TestSettingsDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	assert.Equal(t, model.DefaultShopConfig(), svc.Settings(ctx))

	cfg := svc.UpdateSettings(ctx, model.ShopConfig{Name: "Loja", NIF: "5000"})
	assert.Equal(t, "Loja", cfg.Name)
	assert.Equal(t, model.DefaultCurrency, cfg.Currency)
}

func TestBackupExportImport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500, Stock: 10, ManageStock: true})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, p.ID, 3)
	require.NoError(t, err)
	_, _, err = svc.Checkout(ctx, CheckoutRequest{CustomerName: "Ana", PaymentMethod: model.PaymentCash})
	require.NoError(t, err)

	data, err := svc.ExportBackup(ctx)
	require.NoError(t, err)
	want := svc.Snapshot(ctx)

	other, _ := newTestService(t)
	require.NoError(t, other.ImportBackup(ctx, data))

	got := other.Snapshot(ctx)
	assert.Equal(t, want.Products, got.Products)
	assert.Equal(t, want.Customers, got.Customers)
	assert.Equal(t, want.Sales, got.Sales)
	assert.Equal(t, want.Config, got.Config)
}

func TestImportBackup_ParseErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500})
	require.NoError(t, err)
	before := svc.Snapshot(ctx)

	err = svc.ImportBackup(ctx, []byte("{broken"))
	require.ErrorIs(t, err, repository.ErrImportParse)
	assert.Equal(t, before, svc.Snapshot(ctx))
}

func TestClearData(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "Loja", "x", false)
	require.NoError(t, err)

	require.NoError(t, svc.ClearData(ctx))

	assert.Equal(t, model.NewState(), svc.Snapshot(ctx))
	assert.Equal(t, model.NewState(), store.Load(ctx))
}

type brokenStore struct {
	*repository.Store
}

func (brokenStore) Save(context.Context, model.State) error {
	return errors.New("disk full")
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	store := brokenStore{Store: repository.NewStore(repository.NewMemoryRepository(), nil)}
	svc := NewService(ctx, store, newTestEngine(), nil)

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500})
	require.NoError(t, err)

	assert.Len(t, svc.ListProducts(ctx, "", ""), 1)
	assert.Equal(t, p.ID, svc.ListProducts(ctx, "sumo", "")[0].ID)
}

// partialRestoreStore записывает только товары из резервной копии и сообщает об ошибке.
type partialRestoreStore struct {
	*repository.Store
}

func (s partialRestoreStore) Restore(ctx context.Context, b repository.Backup) error {
	if err := s.Store.Restore(ctx, repository.Backup{Products: b.Products}); err != nil {
		return err
	}
	return errors.New("write ga_sales: disk full")
}

func TestImportBackup_RestoreFailureKeepsStoreInSync(t *testing.T) {
	ctx := context.Background()
	inner := repository.NewStore(repository.NewMemoryRepository(), nil)
	svc := NewService(ctx, partialRestoreStore{Store: inner}, newTestEngine(), nil)

	_, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500})
	require.NoError(t, err)
	before := svc.Snapshot(ctx)

	err = svc.ImportBackup(ctx, []byte(`{"products":[{"id":"X","name":"Bolo","price":300}]}`))
	require.Error(t, err)

	assert.Equal(t, before, svc.Snapshot(ctx))
	assert.Equal(t, before.Products, inner.Load(ctx).Products)
}

// cancelAwareSlots отказывает в записи при отменённом контексте, как это делает пул pgx.
type cancelAwareSlots struct {
	*repository.MemoryRepository
}

func (s cancelAwareSlots) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryRepository.Put(ctx, key, value)
}

func TestPersistSurvivesCanceledRequest(t *testing.T) {
	store := repository.NewStore(cancelAwareSlots{MemoryRepository: repository.NewMemoryRepository()}, nil)
	svc := NewService(context.Background(), store, newTestEngine(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := svc.CreateProduct(ctx, model.Product{Name: "Sumo", Price: 500})
	require.NoError(t, err)

	persisted := store.Load(context.Background())
	require.Len(t, persisted.Products, 1)
	assert.Equal(t, p.ID, persisted.Products[0].ID)
}
