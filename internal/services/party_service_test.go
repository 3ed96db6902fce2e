package services

import (
	"context"
	"testing"

	"fwc_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestResolveSnapshotsCustomer(t *testing.T) {
	customers := &memCustomers{customers: map[uint]models.Customer{}}
	svc := NewPartyService(customers)

	customer := models.Customer{
		CustomerName: "Priya R",
		Address:      "45 South Street",
		MobileNumber: "9123456789",
		Email:        "priya@example.com",
		District:     "Madurai",
		State:        "Tamil Nadu",
		CustomerType: string(models.TypeCustomer),
	}
	require.NoError(t, customers.Create(&customer))

	snapshot, err := svc.Resolve(context.Background(), customer.ID, "")
	require.NoError(t, err)
	require.Equal(t, "Priya R", snapshot.CustomerName)
	require.Equal(t, "priya@example.com", snapshot.Email)
	require.Equal(t, string(models.TypeCustomer), snapshot.CustomerType)
	require.Empty(t, snapshot.AgentName)
}

func TestResolveOverridesCustomerType(t *testing.T) {
	customers := &memCustomers{customers: map[uint]models.Customer{}}
	svc := NewPartyService(customers)
	customer := models.Customer{CustomerName: "Priya R", CustomerType: string(models.TypeCustomer)}
	require.NoError(t, customers.Create(&customer))

	snapshot, err := svc.Resolve(context.Background(), customer.ID, string(models.TypeUser))
	require.NoError(t, err)
	require.Equal(t, string(models.TypeUser), snapshot.CustomerType)
}

func TestResolveUnknownCustomer(t *testing.T) {
	svc := NewPartyService(&memCustomers{customers: map[uint]models.Customer{}})
	_, err := svc.Resolve(context.Background(), 404, "")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolveToleratesDanglingAgent(t *testing.T) {
	customers := &memCustomers{customers: map[uint]models.Customer{}}
	svc := NewPartyService(customers)
	missingAgent := uint(99)
	customer := models.Customer{
		CustomerName: "Priya R",
		CustomerType: string(models.TypeCustomerAgent),
		AgentID:      &missingAgent,
	}
	require.NoError(t, customers.Create(&customer))

	snapshot, err := svc.Resolve(context.Background(), customer.ID, "")
	require.NoError(t, err)
	require.Empty(t, snapshot.AgentName)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := NewPartyService(&memCustomers{customers: map[uint]models.Customer{}})

	err := svc.CreateCustomer(context.Background(), &models.Customer{})
	require.ErrorIs(t, err, models.ErrValidation)

	err = svc.CreateCustomer(context.Background(), &models.Customer{
		CustomerName: "Priya R",
		CustomerType: string(models.TypeCustomerAgent),
	})
	require.ErrorIs(t, err, models.ErrValidation)

	customer := &models.Customer{CustomerName: "Priya R"}
	require.NoError(t, svc.CreateCustomer(context.Background(), customer))
	require.Equal(t, string(models.TypeCustomer), customer.CustomerType)
}

func TestUpdateCustomerKeepsIdentity(t *testing.T) {
	customers := &memCustomers{customers: map[uint]models.Customer{}}
	svc := NewPartyService(customers)
	customer := models.Customer{CustomerName: "Priya R"}
	require.NoError(t, customers.Create(&customer))

	err := svc.UpdateCustomer(context.Background(), customer.ID, &models.Customer{
		ID:           999,
		CustomerName: "Priya Ramesh",
	})
	require.NoError(t, err)

	updated, err := svc.GetCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Equal(t, "Priya Ramesh", updated.CustomerName)
}

func TestDeleteCustomerNotFound(t *testing.T) {
	svc := NewPartyService(&memCustomers{customers: map[uint]models.Customer{}})
	err := svc.DeleteCustomer(context.Background(), 404)
	require.ErrorIs(t, err, models.ErrNotFound)
}
