package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(decimal.RequireFromString("99.99"), decimal.NewFromInt(15), decimal.NewFromInt(10))

	require.Equal(t, "99.99", totals.Subtotal.StringFixed(2))
	require.Equal(t, "15.00", totals.TaxAmount.StringFixed(2))
	require.Equal(t, "114.99", totals.TotalAmount.StringFixed(2))
	require.Equal(t, "104.99", totals.FinalAmount.StringFixed(2))
}

func TestOrderTransitions(t *testing.T) {
	require.True(t, allowed(orderTransitions, models.OrderStatusNew, models.OrderStatusInProgress))
	require.True(t, allowed(orderTransitions, models.OrderStatusNew, models.OrderStatusNew))
	require.False(t, allowed(orderTransitions, models.OrderStatusNew, models.OrderStatusDelivered))
	require.False(t, allowed(orderTransitions, models.OrderStatusCancelled, models.OrderStatusInProgress))
	require.True(t, allowed(orderTransitions, models.OrderStatusDelivered, models.OrderStatusMaintenance))
}

func TestActorCanAccess(t *testing.T) {
	admin := Actor{UserID: "a", Role: models.RoleAdmin}
	employee := Actor{UserID: "e", Role: models.RoleEmployee}

	require.True(t, admin.CanAccess("someone"))
	require.True(t, employee.CanAccess("e"))
	require.False(t, employee.CanAccess("someone"))
	require.False(t, Actor{}.CanAccess(""))
}

func TestServiceLineCheck(t *testing.T) {
	require.NoError(t, protectionLine(100, nil).check(0))

	polish := ServiceLineInput{
		ServiceType: models.ServiceTypePolish,
		Polish:      &models.PolishDetails{PolishType: "external"},
		Guarantee:   oneYearGuarantee(),
	}
	require.Equal(t, KindBadRequest, KindOf(polish.check(0)))

	missing := ServiceLineInput{ServiceType: models.ServiceTypeInsulation}
	require.Equal(t, KindBadRequest, KindOf(missing.check(0)))

	unknown := ServiceLineInput{ServiceType: "wrap"}
	require.Equal(t, KindBadRequest, KindOf(unknown.check(0)))

	negative := protectionLine(-1, nil)
	require.Equal(t, KindBadRequest, KindOf(negative.check(0)))
}

func TestPaginate(t *testing.T) {
	p := paginate(25, 10, 10)
	require.Equal(t, 2, p.CurrentPage)
	require.Equal(t, 3, p.TotalPages)
	require.NotNil(t, p.NextPage)
	require.Equal(t, 3, *p.NextPage)

	last := paginate(25, 10, 20)
	require.Nil(t, last.NextPage)
}
