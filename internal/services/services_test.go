package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/auth"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/dbtest"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

var (
	testNow   = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	testAdmin = Actor{UserID: "00000000-0000-0000-0000-000000000001", Role: models.RoleAdmin}
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	return New(testDependencies(t))
}

// testDependencies returns sqlite backed dependencies whose clock can be moved by the caller
func testDependencies(t *testing.T) *Dependencies {
	t.Helper()
	return &Dependencies{
		Store:      repositories.NewStore(dbtest.Open(t)),
		Translator: i18n.New("en"),
		Tokens: auth.NewTokenManager(config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
			Issuer:    "test",
		}),
		Settings: Settings{
			TaxRate:                   decimal.NewFromInt(15),
			EnforceOrderTransitions:   true,
			EnforceInvoiceTransitions: true,
		},
		Now: func() time.Time { return testNow },
	}
}

func testCar() CarInput {
	return CarInput{
		CarModel:        "Camry",
		CarManufacturer: "Toyota",
		CarColor:        "White",
		CarPlateNumber:  "ABC1234",
		CarSize:         models.CarSizeMedium,
	}
}

func protectionLine(price int64, guarantee *GuaranteeInput) ServiceLineInput {
	return ServiceLineInput{
		ServiceType:  models.ServiceTypeProtection,
		ServicePrice: decimal.NewFromInt(price),
		Protection: &models.ProtectionDetails{
			ProtectionFinish:   "glossy",
			ProtectionCoverage: "full",
		},
		Guarantee: guarantee,
	}
}

func oneYearGuarantee() *GuaranteeInput {
	return &GuaranteeInput{
		TypeGuarantee: "3 years",
		StartDate:     testNow,
		EndDate:       testNow.AddDate(1, 0, 0),
	}
}

func clientInput(phone string) CreateClientInput {
	return CreateClientInput{
		FirstName:  "Ahmad",
		SecondName: "Saleh",
		ThirdName:  "Omar",
		LastName:   "Harbi",
		Phone:      phone,
		Branch:     models.ClientBranchAbhur,
	}
}

func registerClient(t *testing.T, svc *Services, phone string) *models.Client {
	t.Helper()
	res, err := svc.Clients.CreateClient(context.Background(), testAdmin, clientInput(phone), false, "en")
	require.NoError(t, err)
	require.False(t, res.RequiresConfirmation)
	return res.Client
}

func TestCreateClientWithoutCarCreatesNoOrder(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	res, err := svc.Clients.CreateClient(ctx, testAdmin, clientInput("0512345678"), false, "en")
	require.NoError(t, err)
	require.False(t, res.IsExistingClient)
	require.Equal(t, "CL-1001", res.Client.ClientNumber)
	require.Nil(t, res.Order)
	require.Nil(t, res.Invoice)

	details, err := svc.Clients.GetClientWithOrders(ctx, res.Client.ID)
	require.NoError(t, err)
	require.Empty(t, details.Orders)
	require.Zero(t, details.OrderStats.TotalOrders)
}

func TestCreateClientKnownPhoneRequiresConfirmation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	existing := registerClient(t, svc, "0512345678")

	input := clientInput("0512345678")
	input.CarInput = testCar()
	input.Services = []ServiceLineInput{protectionLine(100, nil)}

	res, err := svc.Clients.CreateClient(ctx, testAdmin, input, false, "en")
	require.NoError(t, err)
	require.True(t, res.RequiresConfirmation)
	require.True(t, res.IsExistingClient)
	require.Equal(t, existing.ID, res.Client.ID)
	require.Nil(t, res.Order)

	page, err := svc.Clients.ListClients(ctx, ClientQuery{PageQuery: PageQuery{Limit: 10}})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Pagination.TotalClients)

	orders, err := svc.Orders.FindByClient(ctx, existing.ID)
	require.NoError(t, err)
	require.Empty(t, orders)

	// confirming reuses the client and creates the order
	res, err = svc.Clients.CreateClient(ctx, testAdmin, input, true, "en")
	require.NoError(t, err)
	require.False(t, res.RequiresConfirmation)
	require.True(t, res.IsExistingClient)
	require.Equal(t, existing.ID, res.Client.ID)
	require.NotNil(t, res.Order)
	require.NotNil(t, res.Invoice)
}

func TestCreateClientWithServicesComputesInvoiceTotals(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	input := clientInput("0512345678")
	input.CarInput = testCar()
	input.Services = []ServiceLineInput{protectionLine(100, nil), protectionLine(50, nil)}

	res, err := svc.Clients.CreateClient(ctx, testAdmin, input, false, "en")
	require.NoError(t, err)
	require.Equal(t, "ORD-1001", res.Order.OrderNumber)
	require.Len(t, res.Order.Services, 2)
	require.Equal(t, "INV-1001", res.Invoice.InvoiceNumber)

	invoice, err := svc.Invoices.FindByID(ctx, res.Invoice.ID)
	require.NoError(t, err)
	require.Equal(t, "150.00", invoice.Subtotal.StringFixed(2))
	require.Equal(t, "22.50", invoice.TaxAmount.StringFixed(2))
	require.Equal(t, "172.50", invoice.TotalAmount.StringFixed(2))
	require.Equal(t, "0.00", invoice.Discount.StringFixed(2))
	require.Equal(t, "172.50", invoice.FinalAmount.StringFixed(2))
	require.Equal(t, models.InvoiceStatusOpen, invoice.Status)

	order, err := svc.Orders.FindOne(ctx, res.Order.ID)
	require.NoError(t, err)
	require.NotNil(t, order.Invoice)
	require.Equal(t, res.Invoice.ID, order.Invoice.ID)

	carTypes, err := svc.CarTypes.FindAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, carTypes, 1)
	require.Equal(t, "Camry", carTypes[0].Name)
}

func TestCreateOrderRejectsInvertedGuaranteeDates(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	bad := &GuaranteeInput{StartDate: testNow.AddDate(0, 1, 0), EndDate: testNow}
	_, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, bad)},
	})
	require.Error(t, err)
	require.Equal(t, KindBadRequest, KindOf(err))

	orders, err := svc.Orders.FindByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrderRejectsMismatchedVariant(t *testing.T) {
	svc := newTestServices(t)
	client := registerClient(t, svc, "0512345678")

	line := protectionLine(100, nil)
	line.Polish = &models.PolishDetails{PolishType: "external"}
	_, err := svc.Orders.CreateOrderForExistingClient(context.Background(), testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{line},
	})
	require.Equal(t, KindBadRequest, KindOf(err))
}

func TestManualGuaranteeStatusOnlyTouchesThatGuarantee(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{
			protectionLine(100, oneYearGuarantee()),
			protectionLine(200, oneYearGuarantee()),
		},
	})
	require.NoError(t, err)

	target := created.Order.Services[0]
	view, err := svc.Orders.ManuallyUpdateGuaranteeStatus(ctx, created.Order.ID, target.ID, target.Guarantee.ID, models.GuaranteeActive)
	require.NoError(t, err)
	require.Equal(t, created.Order.ID, view.ID)
	require.Len(t, view.Services, 2)
	for _, s := range view.Services {
		require.NotNil(t, s.Guarantee)
		if s.ID == target.ID {
			require.True(t, s.Guarantee.Accepted)
			require.Equal(t, models.GuaranteeActive, s.Guarantee.Status)
		} else {
			require.False(t, s.Guarantee.Accepted)
			require.Equal(t, models.GuaranteeInactive, s.Guarantee.Status)
		}
	}

	active, err := svc.Orders.FindActiveGuarantees(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestManualGuaranteeStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, oneYearGuarantee())},
	})
	require.NoError(t, err)

	line := created.Order.Services[0]
	_, err = svc.Orders.ManuallyUpdateGuaranteeStatus(ctx, created.Order.ID, line.ID, line.Guarantee.ID, "expired")
	require.Equal(t, KindBadRequest, KindOf(err))

	// a guarantee is only reachable through its own order and service line
	_, err = svc.Orders.ManuallyUpdateGuaranteeStatus(ctx, created.Order.ID, "00000000-0000-0000-0000-00000000beef", line.Guarantee.ID, models.GuaranteeActive)
	require.True(t, IsNotFound(err))
}

func TestAddServicesToOrderCreatesSiblingOrder(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	original, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, nil)},
		Notes:    "front bumper",
	})
	require.NoError(t, err)

	_, err = svc.Orders.AddServicesToOrder(ctx, testAdmin, original.Order.ID, nil)
	require.Equal(t, KindBadRequest, KindOf(err))
	_, err = svc.Orders.AddServicesToOrder(ctx, testAdmin, "00000000-0000-0000-0000-00000000abcd", []ServiceLineInput{protectionLine(10, nil)})
	require.True(t, IsNotFound(err))

	added, err := svc.Orders.AddServicesToOrder(ctx, testAdmin, original.Order.ID, []ServiceLineInput{
		protectionLine(200, oneYearGuarantee()),
		protectionLine(100, nil),
	})
	require.NoError(t, err)
	require.NotEqual(t, original.Order.ID, added.Order.ID)
	require.Equal(t, "ORD-1002", added.Order.OrderNumber)
	require.Equal(t, client.ID, added.Order.ClientID)
	require.Equal(t, "ABC1234", added.Order.CarPlateNumber)
	require.Equal(t, models.CarSizeMedium, added.Order.CarSize)
	require.Len(t, added.Order.Services, 2)

	require.NotNil(t, added.Invoice)
	require.NotEqual(t, original.Invoice.ID, added.Invoice.ID)
	require.Equal(t, "INV-1002", added.Invoice.InvoiceNumber)
	require.Equal(t, "300.00", added.Invoice.Subtotal.StringFixed(2))
	require.Equal(t, "345.00", added.Invoice.TotalAmount.StringFixed(2))

	untouched, err := svc.Orders.FindOne(ctx, original.Order.ID)
	require.NoError(t, err)
	require.Len(t, untouched.Services, 1)
	require.Equal(t, "100.00", untouched.Services[0].Price.StringFixed(2))
	require.NotNil(t, untouched.Invoice)
	require.Equal(t, original.Invoice.ID, untouched.Invoice.ID)
	require.Equal(t, "115.00", untouched.Invoice.TotalAmount.StringFixed(2))

	orders, err := svc.Orders.FindByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
}

func TestGuaranteeApprovalRoundTrip(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{
			protectionLine(100, oneYearGuarantee()),
			protectionLine(200, oneYearGuarantee()),
		},
	})
	require.NoError(t, err)
	orderID := created.Order.ID
	target := created.Order.Services[1]

	pending, err := svc.Orders.FindUnacceptedGuaranteesAwaitingApproval(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	view, err := svc.Orders.SendApproveGuaranteeRequest(ctx, orderID, target.ID, target.Guarantee.ID)
	require.NoError(t, err)
	for _, s := range view.Services {
		require.Equal(t, s.ID == target.ID, s.Guarantee.SendApproveForAdmin)
		require.False(t, s.Guarantee.Accepted)
		require.Equal(t, models.GuaranteeInactive, s.Guarantee.Status)
	}

	pending, err = svc.Orders.FindUnacceptedGuaranteesAwaitingApproval(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, orderID, pending[0].ID)

	view, err = svc.Orders.UpdateGuaranteeAcceptance(ctx, orderID, target.ID, target.Guarantee.ID, true)
	require.NoError(t, err)
	for _, s := range view.Services {
		if s.ID == target.ID {
			require.True(t, s.Guarantee.Accepted)
			require.Equal(t, models.GuaranteeActive, s.Guarantee.Status)
		} else {
			require.False(t, s.Guarantee.Accepted)
			require.Equal(t, models.GuaranteeInactive, s.Guarantee.Status)
		}
	}

	pending, err = svc.Orders.FindUnacceptedGuaranteesAwaitingApproval(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestRejectedGuaranteeStaysInactive(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, oneYearGuarantee())},
	})
	require.NoError(t, err)
	line := created.Order.Services[0]

	_, err = svc.Orders.SendApproveGuaranteeRequest(ctx, created.Order.ID, line.ID, line.Guarantee.ID)
	require.NoError(t, err)

	view, err := svc.Orders.UpdateGuaranteeAcceptance(ctx, created.Order.ID, line.ID, line.Guarantee.ID, false)
	require.NoError(t, err)
	require.Len(t, view.Services, 1)
	require.False(t, view.Services[0].Guarantee.Accepted)
	require.Equal(t, models.GuaranteeInactive, view.Services[0].Guarantee.Status)

	// rejected requests stay in the admin queue until accepted
	pending, err := svc.Orders.FindUnacceptedGuaranteesAwaitingApproval(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestExpireGuaranteesDeactivatesEndedGuarantees(t *testing.T) {
	deps := testDependencies(t)
	svc := New(deps)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	ended := &GuaranteeInput{
		TypeGuarantee: "1 month",
		StartDate:     testNow.AddDate(0, -2, 0),
		EndDate:       testNow.AddDate(0, -1, 0),
	}
	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{
			protectionLine(100, ended),
			protectionLine(200, oneYearGuarantee()),
		},
	})
	require.NoError(t, err)
	for _, line := range created.Order.Services {
		_, err = svc.Orders.UpdateGuaranteeAcceptance(ctx, created.Order.ID, line.ID, line.Guarantee.ID, true)
		require.NoError(t, err)
	}

	n, err := svc.Orders.ExpireGuarantees(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	view, err := svc.Orders.FindOne(ctx, created.Order.ID)
	require.NoError(t, err)
	for _, s := range view.Services {
		require.True(t, s.Guarantee.Accepted)
		if s.Guarantee.EndDate.Before(testNow) {
			require.Equal(t, models.GuaranteeInactive, s.Guarantee.Status)
		} else {
			require.Equal(t, models.GuaranteeActive, s.Guarantee.Status)
		}
	}

	n, err = svc.Orders.ExpireGuarantees(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	// two years on the remaining guarantee has ended as well
	deps.Now = func() time.Time { return testNow.AddDate(2, 0, 0) }
	n, err = svc.Orders.ExpireGuarantees(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestActiveGuaranteesUseBusinessDay(t *testing.T) {
	deps := testDependencies(t)
	svc := New(deps)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	// 20:00 UTC is 23:00 in UTC+3, the last hour of that local day
	endsTonight := &GuaranteeInput{
		TypeGuarantee: "short",
		StartDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC),
	}
	_, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, endsTonight)},
	})
	require.NoError(t, err)

	// 22:00 UTC on the 10th is already the 11th in UTC+3
	deps.Now = func() time.Time { return time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC) }

	active, err := svc.Orders.FindActiveGuarantees(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	deps.Settings.Location = time.FixedZone("UTC+3", 3*60*60)
	active, err = svc.Orders.FindActiveGuarantees(ctx)
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestOrderStatusTransitions(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, nil)},
	})
	require.NoError(t, err)

	_, err = svc.Orders.ChangeStatus(ctx, testAdmin, created.Order.ID, models.OrderStatusDelivered)
	require.Equal(t, KindBadRequest, KindOf(err))

	order, err := svc.Orders.ChangeStatus(ctx, testAdmin, created.Order.ID, "in_progress")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusInProgress, order.Status)

	history, err := svc.Orders.GetStatusHistory(ctx, created.Order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, string(models.OrderStatusInProgress), history[1].Status)
	require.Equal(t, testAdmin.UserID, history[1].ChangedBy)
}

func TestInvoiceSoftDeleteAndRestore(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, nil)},
	})
	require.NoError(t, err)
	id := created.Invoice.ID

	require.NoError(t, svc.Invoices.SoftDelete(ctx, id))

	_, err = svc.Invoices.FindByID(ctx, id)
	require.True(t, IsNotFound(err))
	list, err := svc.Invoices.FindByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	restored, err := svc.Invoices.Restore(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, restored.ID)
	require.False(t, restored.IsDeleted())
}

func TestInvoiceStatusFollowsTransitions(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, nil)},
	})
	require.NoError(t, err)

	_, err = svc.Invoices.UpdateInvoiceStatus(ctx, created.Invoice.ID, models.InvoiceStatusApproved)
	require.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.Invoices.UpdateInvoiceStatus(ctx, created.Invoice.ID, models.InvoiceStatusPending)
	require.NoError(t, err)
	invoice, err := svc.Invoices.UpdateInvoiceStatus(ctx, created.Invoice.ID, models.InvoiceStatusApproved)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusApproved, invoice.Status)
}

func TestConvertOfferToOrder(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	employee, err := svc.Users.CreateUser(ctx, CreateUserInput{
		FullName:   "Fahad Ali",
		EmployeeID: "EMP-1",
		Password:   "secret123",
	})
	require.NoError(t, err)

	offer, err := svc.Offers.Create(ctx, testAdmin, CreateOfferInput{
		ClientID: client.ID,
		CarInput: CarInput{CarModel: "Accord", CarColor: "Black"},
		Services: []ServiceLineInput{protectionLine(100, nil), protectionLine(50, nil)},
	})
	require.NoError(t, err)

	total, err := svc.Offers.TotalPrice(ctx, offer.ID)
	require.NoError(t, err)
	require.Equal(t, "150.00", total.StringFixed(2))

	converted, err := svc.Offers.ConvertOfferToOrder(ctx, testAdmin, offer.ID, ConvertOfferInput{
		CarInput:    CarInput{CarModel: "Accord", CarSize: "LARGE"},
		EmployeeIDs: []string{employee.ID},
	})
	require.NoError(t, err)
	require.Len(t, converted.Order.Services, 2)
	require.Equal(t, models.CarSizeLarge, converted.Order.CarSize)
	require.Equal(t, "Black", converted.Order.CarColor)
	require.NotNil(t, converted.Invoice)
	require.Equal(t, "150.00", converted.Invoice.Subtotal.StringFixed(2))
	require.Equal(t, converted.Order.ID, converted.WorkOrder.OrderID)
	require.Equal(t, client.ID, converted.WorkOrder.ClientID)
	require.Equal(t, models.WorkOrderStatusAssigned, converted.WorkOrder.Status)

	reloaded, err := svc.Offers.FindOne(ctx, offer.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.OrderID)
	require.Equal(t, converted.Order.ID, *reloaded.OrderID)

	workOrder, err := svc.WorkOrders.FindOne(ctx, converted.WorkOrder.ID)
	require.NoError(t, err)
	require.Len(t, workOrder.AssignedEmployees, 1)
	require.Equal(t, "EMP-1", workOrder.AssignedEmployees[0].EmployeeID)

	_, err = svc.Offers.ConvertOfferToOrder(ctx, testAdmin, offer.ID, ConvertOfferInput{CarInput: CarInput{CarModel: "Accord"}})
	require.Equal(t, KindConflict, KindOf(err))
}

func TestConvertOfferRejectsBadInput(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Offers.ConvertOfferToOrder(ctx, testAdmin, "missing", ConvertOfferInput{})
	require.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.Offers.ConvertOfferToOrder(ctx, testAdmin, "missing", ConvertOfferInput{CarInput: CarInput{CarModel: "Accord", CarSize: "huge"}})
	require.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.Offers.ConvertOfferToOrder(ctx, testAdmin, "missing", ConvertOfferInput{CarInput: CarInput{CarModel: "Accord"}})
	require.True(t, IsNotFound(err))
}

func TestWorkOrderLifecycle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, nil)},
	})
	require.NoError(t, err)

	workOrder, err := svc.WorkOrders.Create(ctx, testAdmin, CreateWorkOrderInput{OrderID: created.Order.ID})
	require.NoError(t, err)
	require.Equal(t, models.WorkOrderStatusNew, workOrder.Status)

	_, err = svc.WorkOrders.AssignEmployees(ctx, testAdmin, workOrder.ID, AssignEmployeesInput{})
	require.Equal(t, KindBadRequest, KindOf(err))
	_, err = svc.WorkOrders.AssignEmployees(ctx, testAdmin, workOrder.ID, AssignEmployeesInput{EmployeeIDs: []string{"00000000-0000-0000-0000-00000000dead"}})
	require.True(t, IsNotFound(err))

	_, err = svc.WorkOrders.ChangeStatus(ctx, testAdmin, workOrder.ID, models.WorkOrderStatusCompleted)
	require.Equal(t, KindBadRequest, KindOf(err))

	cancelled, err := svc.WorkOrders.ChangeStatus(ctx, testAdmin, workOrder.ID, models.WorkOrderStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, models.WorkOrderStatusCancelled, cancelled.Status)
	require.Len(t, cancelled.StatusHistory, 2)
}

func TestAssignEmployeesRecordsEveryAssignment(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	first, err := svc.Users.CreateUser(ctx, CreateUserInput{FullName: "Fahad Ali", EmployeeID: "EMP-1", Password: "secret123"})
	require.NoError(t, err)
	second, err := svc.Users.CreateUser(ctx, CreateUserInput{FullName: "Majed Saad", EmployeeID: "EMP-2", Password: "secret123"})
	require.NoError(t, err)

	created, err := svc.Orders.CreateOrderForExistingClient(ctx, testAdmin, client.ID, CreateOrderInput{
		CarInput: testCar(),
		Services: []ServiceLineInput{protectionLine(100, nil)},
	})
	require.NoError(t, err)
	workOrder, err := svc.WorkOrders.Create(ctx, testAdmin, CreateWorkOrderInput{OrderID: created.Order.ID})
	require.NoError(t, err)
	require.Len(t, workOrder.StatusHistory, 1)

	assigned, err := svc.WorkOrders.AssignEmployees(ctx, testAdmin, workOrder.ID, AssignEmployeesInput{EmployeeIDs: []string{first.ID}})
	require.NoError(t, err)
	require.Equal(t, models.WorkOrderStatusAssigned, assigned.Status)
	require.Len(t, assigned.AssignedEmployees, 1)
	require.Equal(t, "EMP-1", assigned.AssignedEmployees[0].EmployeeID)
	require.Len(t, assigned.StatusHistory, 2)
	require.Equal(t, testAdmin.UserID, assigned.StatusHistory[1].ChangedBy)

	// reassigning an assigned work order still records an entry
	reassigned, err := svc.WorkOrders.AssignEmployees(ctx, testAdmin, workOrder.ID, AssignEmployeesInput{EmployeeIDs: []string{second.ID, first.ID}})
	require.NoError(t, err)
	require.Len(t, reassigned.AssignedEmployees, 2)
	require.Equal(t, "EMP-2", reassigned.AssignedEmployees[0].EmployeeID)
	require.Len(t, reassigned.StatusHistory, 3)
	require.Equal(t, string(models.WorkOrderStatusAssigned), reassigned.StatusHistory[2].Status)

	started, err := svc.WorkOrders.ChangeStatus(ctx, testAdmin, workOrder.ID, models.WorkOrderStatusInProgress)
	require.NoError(t, err)
	require.Len(t, started.StatusHistory, 4)

	// work in progress can be handed to someone else
	handed, err := svc.WorkOrders.AssignEmployees(ctx, testAdmin, workOrder.ID, AssignEmployeesInput{EmployeeIDs: []string{second.ID}})
	require.NoError(t, err)
	require.Equal(t, models.WorkOrderStatusAssigned, handed.Status)
	require.Len(t, handed.AssignedEmployees, 1)
	require.Len(t, handed.StatusHistory, 5)

	mine, err := svc.WorkOrders.FindByAssignedEmployee(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = svc.WorkOrders.ChangeStatus(ctx, testAdmin, workOrder.ID, models.WorkOrderStatusCancelled)
	require.NoError(t, err)
	_, err = svc.WorkOrders.AssignEmployees(ctx, testAdmin, workOrder.ID, AssignEmployeesInput{EmployeeIDs: []string{first.ID}})
	require.Equal(t, KindBadRequest, KindOf(err))
}

func TestCheckExistsClassifiesMatches(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	first := registerClient(t, svc, "0511111111")

	other := clientInput("0522222222")
	other.FirstName = "Khalid"
	second, err := svc.Clients.CreateClient(ctx, testAdmin, other, false, "en")
	require.NoError(t, err)

	res, err := svc.Clients.CheckExists(ctx, ClientIdentity{Phone: "0599999999"}, "en")
	require.NoError(t, err)
	require.False(t, res.Exists)
	require.Equal(t, MatchNone, res.Match)

	res, err = svc.Clients.CheckExists(ctx, ClientIdentity{
		Phone: "0511111111", FirstName: "Ahmad", SecondName: "Saleh", ThirdName: "Omar", LastName: "Harbi",
	}, "en")
	require.NoError(t, err)
	require.Equal(t, MatchBothSameClient, res.Match)
	require.Equal(t, []string{first.ID}, res.ClientIDs)

	res, err = svc.Clients.CheckExists(ctx, ClientIdentity{
		SecondPhone: "0522222222", FirstName: "Ahmad", SecondName: "Saleh", ThirdName: "Omar", LastName: "Harbi",
	}, "en")
	require.NoError(t, err)
	require.Equal(t, MatchBothDifferentUser, res.Match)
	require.Equal(t, []string{second.Client.ID, first.ID}, res.ClientIDs)
}

func TestUpdateClientRejectsTakenPhone(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	registerClient(t, svc, "0511111111")
	second := registerClient(t, svc, "0522222222")

	phone := "0511111111"
	_, err := svc.Clients.UpdateClient(ctx, second.ID, UpdateClientInput{Phone: &phone})
	require.Equal(t, KindConflict, KindOf(err))

	name := "Sami"
	updated, err := svc.Clients.UpdateClient(ctx, second.ID, UpdateClientInput{FirstName: &name})
	require.NoError(t, err)
	require.Equal(t, "Sami", updated.FirstName)
}

func TestListClientsDefaultsAndValidatesPaging(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	registerClient(t, svc, "0512345678")

	page, err := svc.Clients.ListClients(ctx, ClientQuery{})
	require.NoError(t, err)
	require.Len(t, page.Clients, 1)
	require.Equal(t, 10, page.Pagination.Limit)
	require.Equal(t, 0, page.Pagination.Offset)

	_, err = svc.Clients.ListClients(ctx, ClientQuery{PageQuery: PageQuery{Limit: 101}})
	require.Equal(t, KindBadRequest, KindOf(err))
	_, err = svc.Clients.ListClients(ctx, ClientQuery{PageQuery: PageQuery{Limit: -1}})
	require.Equal(t, KindBadRequest, KindOf(err))
	_, err = svc.Clients.ListClients(ctx, ClientQuery{PageQuery: PageQuery{Limit: 10, Offset: -1}})
	require.Equal(t, KindBadRequest, KindOf(err))
}

func TestDeletedClientDisappears(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	client := registerClient(t, svc, "0512345678")

	require.NoError(t, svc.Clients.DeleteClient(ctx, client.ID))
	_, err := svc.Clients.GetClient(ctx, client.ID)
	require.True(t, IsNotFound(err))

	found, err := svc.Clients.SearchClients(ctx, "Ahmad", 10)
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestBranchExpensesRespectBudget(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	branch, err := svc.Branches.Create(ctx, BranchInput{Name: "Abhur", Budget: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = svc.Branches.Create(ctx, BranchInput{Name: "abhur"})
	require.Equal(t, KindConflict, KindOf(err))

	_, err = svc.Branches.AddExpense(ctx, branch.ID, decimal.Zero)
	require.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.Branches.AddExpense(ctx, branch.ID, decimal.NewFromInt(60))
	require.NoError(t, err)
	_, err = svc.Branches.AddExpense(ctx, branch.ID, decimal.NewFromInt(50))
	require.Equal(t, KindBadRequest, KindOf(err))

	report, err := svc.Branches.GetFinancialReport(ctx, branch.ID)
	require.NoError(t, err)
	require.Equal(t, "40.00", report.RemainingBudget.StringFixed(2))
	require.Equal(t, "60.00", report.UtilizationRate.StringFixed(2))

	require.NoError(t, svc.Branches.Remove(ctx, branch.ID))
	_, err = svc.Branches.FindOne(ctx, branch.ID)
	require.True(t, IsNotFound(err))
}

func TestVoucherApprovalAndStatistics(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	branch, err := svc.Branches.Create(ctx, BranchInput{Name: "Madinah"})
	require.NoError(t, err)

	receipt, err := svc.Vouchers.Create(ctx, testAdmin, VoucherInput{
		Type: models.VoucherTypeReceipt, Amount: decimal.NewFromInt(500), BranchID: branch.ID, Description: "Order payment",
	})
	require.NoError(t, err)
	require.Equal(t, "VOU-1001", receipt.VoucherNumber)
	require.Equal(t, models.VoucherStatusDraft, receipt.Status)
	require.Equal(t, testAdmin.UserID, receipt.CreatedBy)

	payment, err := svc.Vouchers.Create(ctx, testAdmin, VoucherInput{
		Type: models.VoucherTypePayment, Amount: decimal.NewFromInt(200), BranchID: branch.ID, Description: "Film stock",
	})
	require.NoError(t, err)
	rejected, err := svc.Vouchers.Create(ctx, testAdmin, VoucherInput{
		Type: models.VoucherTypePayment, Amount: decimal.NewFromInt(999), BranchID: branch.ID, Description: "Duplicate",
	})
	require.NoError(t, err)

	_, err = svc.Vouchers.Approve(ctx, receipt.ID)
	require.NoError(t, err)
	_, err = svc.Vouchers.Reject(ctx, receipt.ID)
	require.Equal(t, KindBadRequest, KindOf(err))
	_, err = svc.Vouchers.Reject(ctx, rejected.ID)
	require.NoError(t, err)

	stats, err := svc.Vouchers.GetStatistics(ctx, branch.ID)
	require.NoError(t, err)
	require.Equal(t, "500.00", stats.TotalReceipts.StringFixed(2))
	require.Equal(t, "200.00", stats.TotalPayments.StringFixed(2))
	require.Equal(t, "300.00", stats.NetCashFlow.StringFixed(2))
	require.EqualValues(t, 1, stats.ApprovedCount)
	require.EqualValues(t, 1, stats.DraftCount)
	require.EqualValues(t, 1, stats.RejectedCount)

	amount := decimal.NewFromInt(250)
	updated, err := svc.Vouchers.Update(ctx, payment.ID, UpdateVoucherInput{Amount: &amount})
	require.NoError(t, err)
	require.Equal(t, "250.00", updated.Amount.StringFixed(2))
}

func TestTaskDatesAndCompletion(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	branch, err := svc.Branches.Create(ctx, BranchInput{Name: "Other"})
	require.NoError(t, err)

	before := testNow.AddDate(0, 0, -1)
	_, err = svc.Tasks.Create(ctx, TaskInput{Title: "Inventory", BranchID: branch.ID, StartDate: testNow, EndDate: &before})
	require.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.Tasks.Create(ctx, TaskInput{Title: "Inventory", BranchID: "00000000-0000-0000-0000-00000000beef", StartDate: testNow})
	require.True(t, IsNotFound(err))

	task, err := svc.Tasks.Create(ctx, TaskInput{Title: "Inventory", BranchID: branch.ID, StartDate: testNow})
	require.NoError(t, err)
	require.Equal(t, models.TaskPriorityMedium, task.Priority)

	done, err := svc.Tasks.UpdateStatus(ctx, task.ID, models.TaskStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, done.CompletionDate)

	page, err := svc.Tasks.FindForBranch(ctx, branch.ID, TaskQuery{Status: models.TaskStatusCompleted})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Pagination.Total)
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Users.CreateUser(ctx, CreateUserInput{
		FullName:   "Nora Admin",
		EmployeeID: "ADM-1",
		Password:   "secret123",
		Role:       models.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotEqual(t, "secret123", user.PasswordHash)

	_, err = svc.Users.CreateUser(ctx, CreateUserInput{FullName: "Copy", EmployeeID: "ADM-1", Password: "secret123"})
	require.Equal(t, KindConflict, KindOf(err))

	_, err = svc.Auth.Login(ctx, LoginInput{EmployeeID: "ADM-1", Password: "wrong-pass"})
	require.Equal(t, KindUnauthorized, KindOf(err))

	session, err := svc.Auth.Login(ctx, LoginInput{EmployeeID: "ADM-1", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)

	actor, err := svc.Auth.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, actor.UserID)
	require.True(t, actor.IsAdmin())

	_, err = svc.Auth.Authenticate(ctx, "not-a-token")
	require.Equal(t, KindUnauthorized, KindOf(err))

	inactive := models.UserStatusInactive
	_, err = svc.Users.UpdateUser(ctx, user.ID, UpdateUserInput{Status: &inactive})
	require.NoError(t, err)
	_, err = svc.Auth.Login(ctx, LoginInput{EmployeeID: "ADM-1", Password: "secret123"})
	require.Equal(t, KindUnauthorized, KindOf(err))
}

func TestChangePasswordChecksCurrentPassword(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Users.CreateUser(ctx, CreateUserInput{FullName: "Omar", EmployeeID: "EMP-9", Password: "secret123"})
	require.NoError(t, err)

	err = svc.Users.ChangePassword(ctx, user.ID, ChangePasswordInput{CurrentPassword: "nope", NewPassword: "another1"})
	require.Equal(t, KindBadRequest, KindOf(err))

	require.NoError(t, svc.Users.ChangePassword(ctx, user.ID, ChangePasswordInput{CurrentPassword: "secret123", NewPassword: "another1"}))
	_, err = svc.Auth.Login(ctx, LoginInput{EmployeeID: "EMP-9", Password: "another1"})
	require.NoError(t, err)
}

func TestEmployeeReportAccess(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	author := Actor{UserID: "00000000-0000-0000-0000-0000000000a1", Role: models.RoleEmployee}
	stranger := Actor{UserID: "00000000-0000-0000-0000-0000000000b2", Role: models.RoleEmployee}

	_, err := svc.Reports.Create(ctx, testAdmin, ReportInput{Title: "t", Content: "c"})
	require.Equal(t, KindForbidden, KindOf(err))

	report, err := svc.Reports.Create(ctx, author, ReportInput{Title: "Broken lift", Content: "Bay 2 lift is down"})
	require.NoError(t, err)

	_, err = svc.Reports.FindOne(ctx, stranger, report.ID)
	require.Equal(t, KindForbidden, KindOf(err))
	_, err = svc.Reports.FindOne(ctx, testAdmin, report.ID)
	require.NoError(t, err)

	reviewed, err := svc.Reports.UpdateStatus(ctx, report.ID, models.ReportStatusReviewed)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusReviewed, reviewed.Status)

	require.Equal(t, KindForbidden, KindOf(svc.Reports.Remove(ctx, stranger, report.ID)))
	require.NoError(t, svc.Reports.Remove(ctx, author, report.ID))
}
