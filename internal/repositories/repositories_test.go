package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/dbtest"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

func newClient(first, phone string) *models.Client {
	return &models.Client{
		FirstName:  first,
		SecondName: "Saleh",
		ThirdName:  "Omar",
		LastName:   "Harbi",
		Phone:      phone,
		Branch:     models.ClientBranchAbhur,
	}
}

func TestSequenceNextStartsAt1001AndIncrements(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	first, err := store.Sequences.NextNumber(ctx, models.SequenceClient)
	require.NoError(t, err)
	require.Equal(t, "CL-1001", first)

	second, err := store.Sequences.NextNumber(ctx, models.SequenceClient)
	require.NoError(t, err)
	require.Equal(t, "CL-1002", second)

	other, err := store.Sequences.NextNumber(ctx, models.SequenceInvoice)
	require.NoError(t, err)
	require.Equal(t, "INV-1001", other)
}

func TestSequenceNextIsUniqueUnderConcurrency(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	const n = 20
	values := make(chan int64, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.Sequences.Next(ctx, models.SequenceOrder)
			errs <- err
			values <- v
		}()
	}
	wg.Wait()
	close(values)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := map[int64]bool{}
	for v := range values {
		require.False(t, seen[v], "duplicate sequence value %d", v)
		seen[v] = true
	}
	require.Len(t, seen, n)
}

func TestClientSoftDeleteHidesClient(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	client := newClient("Ali", "0500000001")
	require.NoError(t, store.Clients.Create(ctx, client))
	require.NotEmpty(t, client.ID)

	require.NoError(t, store.Clients.Delete(ctx, client.ID))

	_, err := store.Clients.FindByID(ctx, client.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Clients.FindByPhone(ctx, "0500000001")
	require.ErrorIs(t, err, ErrNotFound)

	clients, total, err := store.Clients.List(ctx, ClientFilter{Page: Page{Limit: 10}})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, clients)

	require.ErrorIs(t, store.Clients.Delete(ctx, client.ID), ErrNotFound)
}

func TestClientFindByPhoneMatchesSecondPhone(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	client := newClient("Ali", "0500000001")
	client.SecondPhone = "0500000002"
	require.NoError(t, store.Clients.Create(ctx, client))

	found, err := store.Clients.FindByPhone(ctx, "0500000002")
	require.NoError(t, err)
	require.Equal(t, client.ID, found.ID)

	_, err = store.Clients.FindOtherByPhone(ctx, "0500000002", client.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClientListSearchAndBranch(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	a := newClient("Ali", "0500000001")
	b := newClient("Khalid", "0500000002")
	b.Branch = models.ClientBranchMadinah
	require.NoError(t, store.Clients.Create(ctx, a))
	require.NoError(t, store.Clients.Create(ctx, b))

	clients, total, err := store.Clients.List(ctx, ClientFilter{Search: "khal", Page: Page{Limit: 10}})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, b.ID, clients[0].ID)

	clients, total, err = store.Clients.List(ctx, ClientFilter{Search: "ali saleh omar", Page: Page{Limit: 10}})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, a.ID, clients[0].ID)

	clients, total, err = store.Clients.List(ctx, ClientFilter{Branch: models.ClientBranchMadinah, Page: Page{Limit: 10}})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, b.ID, clients[0].ID)
}

func createOrderWithGuarantee(t *testing.T, store *Store, clientID string, end time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber: "ORD-" + uuid.New().String()[:8],
		ClientID:    clientID,
		CarDetails:  models.CarDetails{CarModel: "Camry", CarPlateNumber: "ABC1234", CarSize: models.CarSizeMedium},
		Services: []models.OrderService{{
			ServiceLine: models.ServiceLine{
				ServiceType: models.ServiceTypeProtection,
				Price:       decimal.NewFromInt(100),
				Protection:  &models.ProtectionDetails{ProtectionFinish: "glossy", ProtectionCoverage: "full"},
			},
			Guarantee: &models.Guarantee{
				StartDate: end.AddDate(-1, 0, 0),
				EndDate:   end,
				Status:    models.GuaranteeInactive,
			},
		}},
	}
	require.NoError(t, store.Orders.Create(context.Background(), order))
	return order
}

func TestOrderCreateRecordsInitialStatus(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	client := newClient("Ali", "0500000001")
	require.NoError(t, store.Clients.Create(ctx, client))

	order := createOrderWithGuarantee(t, store, client.ID, time.Now().UTC().AddDate(1, 0, 0))

	found, err := store.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusNew, found.Status)
	require.Len(t, found.StatusHistory, 1)
	require.Equal(t, string(models.OrderStatusNew), found.StatusHistory[0].Status)
	require.Len(t, found.Services, 1)
	require.NotNil(t, found.Services[0].Guarantee)
	require.NotNil(t, found.Services[0].Protection)
	require.Equal(t, "glossy", found.Services[0].Protection.ProtectionFinish)
	require.Nil(t, found.Services[0].Polish)

	found.Status = models.OrderStatusInProgress
	found.StatusChangedBy = "user-1"
	require.NoError(t, store.Orders.Save(ctx, found))

	again, err := store.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, again.StatusHistory, 2)
	require.Equal(t, string(models.OrderStatusInProgress), again.StatusHistory[1].Status)
	require.Equal(t, "user-1", again.StatusHistory[1].ChangedBy)
}

func TestFindGuaranteeRequiresMatchingPath(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	client := newClient("Ali", "0500000001")
	require.NoError(t, store.Clients.Create(ctx, client))
	order := createOrderWithGuarantee(t, store, client.ID, time.Now().UTC().AddDate(1, 0, 0))
	other := createOrderWithGuarantee(t, store, client.ID, time.Now().UTC().AddDate(2, 0, 0))

	service := order.Services[0]
	g, err := store.Orders.FindGuarantee(ctx, order.ID, service.ID, service.Guarantee.ID)
	require.NoError(t, err)
	require.Equal(t, service.Guarantee.ID, g.ID)

	_, err = store.Orders.FindGuarantee(ctx, other.ID, service.ID, service.Guarantee.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderStatsCountsUnexpiredGuarantees(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()
	now := time.Now().UTC()

	client := newClient("Ali", "0500000001")
	require.NoError(t, store.Clients.Create(ctx, client))
	createOrderWithGuarantee(t, store, client.ID, now.AddDate(1, 0, 0))
	createOrderWithGuarantee(t, store, client.ID, now.AddDate(-1, 0, 0))

	stats, err := store.Clients.OrderStats(ctx, []string{client.ID}, now)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats[client.ID].TotalOrders)
	require.Equal(t, int64(1), stats[client.ID].ActiveGuarantees)
}

func TestExpireGuarantees(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()
	now := time.Now().UTC()

	client := newClient("Ali", "0500000001")
	require.NoError(t, store.Clients.Create(ctx, client))
	expired := createOrderWithGuarantee(t, store, client.ID, now.AddDate(0, 0, -1))
	live := createOrderWithGuarantee(t, store, client.ID, now.AddDate(0, 1, 0))

	for _, o := range []*models.Order{expired, live} {
		g := o.Services[0].Guarantee
		g.Status = models.GuaranteeActive
		require.NoError(t, store.Orders.SaveGuarantee(ctx, g))
	}

	n, err := store.Orders.ExpireGuarantees(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	found, err := store.Orders.FindByID(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, models.GuaranteeActive, found.Services[0].Guarantee.Status)
}

func TestBranchAddExpenseRespectsBudget(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	branch := &models.Branch{Name: "Abhur", Budget: decimal.NewFromInt(1000)}
	require.NoError(t, store.Branches.Create(ctx, branch))

	ok, err := store.Branches.AddExpense(ctx, branch.ID, decimal.NewFromInt(600))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Branches.AddExpense(ctx, branch.ID, decimal.NewFromInt(500))
	require.NoError(t, err)
	require.False(t, ok)

	found, err := store.Branches.FindByID(ctx, branch.ID)
	require.NoError(t, err)
	require.True(t, found.TotalExpenses.Equal(decimal.NewFromInt(600)), found.TotalExpenses.String())
}

func TestInvoiceDeleteRestoreAndSummary(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	client := newClient("Ali", "0500000001")
	require.NoError(t, store.Clients.Create(ctx, client))
	order := createOrderWithGuarantee(t, store, client.ID, time.Now().UTC().AddDate(1, 0, 0))

	invoice := &models.Invoice{
		InvoiceNumber: "INV-1001",
		InvoiceDate:   time.Now().UTC(),
		ClientID:      client.ID,
		OrderID:       order.ID,
		Subtotal:      decimal.NewFromInt(100),
		TaxRate:       decimal.NewFromInt(15),
		TaxAmount:     decimal.NewFromInt(15),
		TotalAmount:   decimal.NewFromInt(115),
		Discount:      decimal.Zero,
		FinalAmount:   decimal.NewFromInt(115),
		Status:        models.InvoiceStatusOpen,
	}
	require.NoError(t, store.Invoices.Create(ctx, invoice))

	summary, err := store.Invoices.ClientSummary(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), summary.Count)
	require.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(115)))

	require.NoError(t, store.Invoices.Delete(ctx, invoice.ID))
	_, err = store.Invoices.FindByID(ctx, invoice.ID)
	require.ErrorIs(t, err, ErrNotFound)

	summary, err = store.Invoices.ClientSummary(ctx, client.ID)
	require.NoError(t, err)
	require.Zero(t, summary.Count)
	require.True(t, summary.TotalAmount.IsZero())

	require.NoError(t, store.Invoices.Restore(ctx, invoice.ID))
	found, err := store.Invoices.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, found.Order.ID)

	require.ErrorIs(t, store.Invoices.Restore(ctx, invoice.ID), ErrNotFound)
}

func TestWithTransactionRollsBack(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	err := store.WithTransaction(ctx, func(tx *Store) error {
		if err := tx.Clients.Create(ctx, newClient("Ali", "0500000001")); err != nil {
			return err
		}
		return ErrCreateFailed
	})
	require.ErrorIs(t, err, ErrCreateFailed)

	_, err = store.Clients.FindByPhone(ctx, "0500000001")
	require.ErrorIs(t, err, ErrNotFound)
}
