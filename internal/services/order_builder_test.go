package services

import (
	"context"
	"math"
	"testing"

	"fwc_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func newBuilder() (OrderBuilder, *memCustomers) {
	catalog := &fakeCatalog{entries: map[string]map[uint]models.CatalogEntry{
		"sparklers": {
			7: {ID: 7, Category: "sparklers", ProductName: "Sparklers 15cm", Price: 80, Per: "pkt", Status: "on"},
			8: {ID: 8, Category: "sparklers", ProductName: "Sparklers 30cm", Price: 120, Per: "pkt", Status: "off"},
		},
	}}
	customers := &memCustomers{customers: map[uint]models.Customer{}}
	return NewOrderBuilder(catalog, NewPartyService(customers)), customers
}

func validRequest() BuildRequest {
	return BuildRequest{
		RefID:        "FWC-1001",
		CustomerName: "Arun Kumar",
		Address:      "12 Main Bazaar Street",
		MobileNumber: "9876543210",
		District:     "Virudhunagar",
		State:        "Tamil Nadu",
		Items: []LineItemRequest{
			{ID: 7, ProductType: "sparklers", Price: 80, Quantity: 5},
		},
		NetRate: 400,
		Total:   400,
	}
}

func TestBuildEnrichesCatalogItems(t *testing.T) {
	builder, _ := newBuilder()

	draft, err := builder.Build(context.Background(), models.KindQuotation, validRequest())
	require.NoError(t, err)
	require.Equal(t, "FWC-1001", draft.RefID)
	require.Len(t, draft.Items, 1)
	require.Equal(t, "Sparklers 15cm", draft.Items[0].ProductName)
	require.Equal(t, "pkt", draft.Items[0].Per)
	require.Equal(t, 400.0, draft.ComputedTotal)
	require.Equal(t, string(models.TypeUser), draft.Party.CustomerType)
}

func TestBuildRejectsBadRefID(t *testing.T) {
	builder, _ := newBuilder()
	for _, refID := range []string{"", "FWC 1001", "FWC/1001", "../../etc"} {
		req := validRequest()
		req.RefID = refID
		_, err := builder.Build(context.Background(), models.KindQuotation, req)
		require.ErrorIs(t, err, models.ErrValidation, "ref id %q", refID)
	}
}

func TestBuildRejectsEmptyItems(t *testing.T) {
	builder, _ := newBuilder()
	req := validRequest()
	req.Items = nil
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestBuildRejectsBadMonetaryFields(t *testing.T) {
	builder, _ := newBuilder()

	req := validRequest()
	req.Total = 0
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)

	req = validRequest()
	req.NetRate = math.NaN()
	_, err = builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)

	req = validRequest()
	req.YouSave = math.Inf(1)
	_, err = builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)

	req = validRequest()
	req.AdditionalDiscount = -5
	_, err = builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestBuildRejectsUnknownProduct(t *testing.T) {
	builder, _ := newBuilder()
	req := validRequest()
	req.Items = []LineItemRequest{{ID: 999, ProductType: "sparklers", Price: 80, Quantity: 1}}
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestBuildRejectsUnavailableProduct(t *testing.T) {
	builder, _ := newBuilder()
	req := validRequest()
	req.Items = []LineItemRequest{{ID: 8, ProductType: "sparklers", Price: 120, Quantity: 1}}
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestBuildRejectsBadItemFields(t *testing.T) {
	builder, _ := newBuilder()

	req := validRequest()
	req.Items = []LineItemRequest{{ID: 7, ProductType: "sparklers", Price: 80, Quantity: 0}}
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)

	req = validRequest()
	req.Items = []LineItemRequest{{ID: 7, ProductType: "sparklers", Price: -1, Quantity: 1}}
	_, err = builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)

	req = validRequest()
	req.Items = []LineItemRequest{{ID: 7, Price: 80, Quantity: 1}}
	_, err = builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestBuildAcceptsCustomItemsWithoutCatalog(t *testing.T) {
	builder, _ := newBuilder()
	req := validRequest()
	req.Items = []LineItemRequest{
		{ProductType: models.ProductTypeCustom, ProductName: "Gift Box Deluxe", Price: 500, Quantity: 1, Per: "box"},
	}

	draft, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.NoError(t, err)
	require.Equal(t, "Gift Box Deluxe", draft.Items[0].ProductName)
	require.Equal(t, "box", draft.Items[0].Per)
}

func TestBuildRejectsCustomItemWithoutName(t *testing.T) {
	builder, _ := newBuilder()
	req := validRequest()
	req.Items = []LineItemRequest{{ProductType: models.ProductTypeCustom, Price: 500, Quantity: 1}}
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestBuildResolvesPartyFromCustomerID(t *testing.T) {
	builder, customers := newBuilder()
	agent := models.Customer{CustomerName: "Selvam Agencies", CustomerType: string(models.TypeAgent)}
	require.NoError(t, customers.Create(&agent))
	customer := models.Customer{
		CustomerName: "Priya R",
		Address:      "45 South Street",
		MobileNumber: "9123456789",
		District:     "Madurai",
		State:        "Tamil Nadu",
		CustomerType: string(models.TypeCustomerAgent),
		AgentID:      &agent.ID,
	}
	require.NoError(t, customers.Create(&customer))

	req := validRequest()
	req.CustomerID = &customer.ID
	req.CustomerName = ""
	req.Address = ""

	draft, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.NoError(t, err)
	require.Equal(t, "Priya R", draft.Party.CustomerName)
	require.Equal(t, string(models.TypeCustomerAgent), draft.Party.CustomerType)
	require.Equal(t, "Selvam Agencies", draft.Party.AgentName)
	require.Equal(t, &customer.ID, draft.Party.CustomerID)
}

func TestBuildUnknownCustomer(t *testing.T) {
	builder, _ := newBuilder()
	missing := uint(404)
	req := validRequest()
	req.CustomerID = &missing
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestBuildRejectsIncompleteDirectParty(t *testing.T) {
	builder, _ := newBuilder()
	req := validRequest()
	req.District = ""
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestBuildRejectsDirectPartyWithNonUserType(t *testing.T) {
	builder, _ := newBuilder()
	req := validRequest()
	req.CustomerType = string(models.TypeCustomer)
	_, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestBuildComputedTotalSumsDiscountedLines(t *testing.T) {
	builder, _ := newBuilder()
	req := validRequest()
	req.Items = []LineItemRequest{
		{ProductType: models.ProductTypeCustom, ProductName: "A", Price: 100, Discount: 10, Quantity: 2},
		{ProductType: models.ProductTypeCustom, ProductName: "B", Price: 50, Quantity: 3},
	}

	draft, err := builder.Build(context.Background(), models.KindQuotation, req)
	require.NoError(t, err)
	// 2 * 90 + 3 * 50
	require.Equal(t, 330.0, draft.ComputedTotal)
}
