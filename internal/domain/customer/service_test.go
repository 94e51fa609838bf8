package customer_test

import (
	"context"
	"customer-service/internal/domain/customer"
	"customer-service/internal/event"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, evt event.CustomerUpdatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishCustomerDeleted(ctx context.Context, evt event.CustomerDeletedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func setupTest() (*customer.MockCustomerRepository, *MockEventPublisher, customer.CustomerService) {
	mockRepo := new(customer.MockCustomerRepository)
	mockPub := new(MockEventPublisher)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := customer.NewCustomerService(mockRepo, mockPub, logger)
	return mockRepo, mockPub, service
}

func strPtr(s string) *string { return &s }

func storedCustomer() *customer.Customer {
	active := true
	return &customer.Customer{
		ID:        1,
		FirstName: "Jash",
		LastName:  "Doshi",
		Userid:    strPtr("jd1"),
		Active:    &active,
		Addresses: []*customer.Address{
			{ID: 10, CustomerID: 1, Street: "1 Main", City: "NYC", State: "NY", PostalCode: "10001"},
			{ID: 11, CustomerID: 1, Street: "2 Main", City: "NYC", State: "NY", PostalCode: "10002"},
		},
	}
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success resets caller supplied ids", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		input := &customer.Customer{
			ID:        99,
			FirstName: "Jash",
			LastName:  "Doshi",
			Userid:    strPtr("jd1"),
			Addresses: []*customer.Address{{ID: 5, Street: "1 Main"}},
		}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.ID == 0 && c.Addresses[0].ID == 0
		})).Run(func(args mock.Arguments) {
			c := args.Get(1).(*customer.Customer)
			c.ApplyDefaults()
			c.ID = 1
		}).Return(nil).Once()
		mockPub.On("PublishCustomerCreated", ctx, mock.MatchedBy(func(evt event.CustomerCreatedEvent) bool {
			return evt.Payload.CustomerID == 1 && evt.Payload.Active && evt.Payload.AddressCount == 1
		})).Return(nil).Once()

		created, err := service.CreateCustomer(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.True(t, created.IsActive())
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("Duplicate userid", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		dupErr := apperrors.NewDuplicateKeyError("customers_userid_key")
		mockRepo.On("Create", ctx, mock.Anything).Return(dupErr).Once()

		created, err := service.CreateCustomer(ctx, &customer.Customer{FirstName: "A", LastName: "B", Userid: strPtr("jd1")})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		mockPub.AssertNotCalled(t, "PublishCustomerCreated", mock.Anything, mock.Anything)
	})

	t.Run("Publish failure does not fail creation", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockPub.On("PublishCustomerCreated", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		created, err := service.CreateCustomer(ctx, customer.NewCustomer("A", "B"))

		assert.NoError(t, err)
		assert.NotNil(t, created)
	})

	t.Run("Nil customer", func(t *testing.T) {
		_, _, service := setupTest()
		_, err := service.CreateCustomer(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestCustomerService_GetCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Once()

		cust, err := service.GetCustomer(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Jash", cust.FirstName)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(2)).Return(nil, apperrors.ErrNotFound).Once()

		cust, err := service.GetCustomer(ctx, 2)
		assert.Nil(t, cust)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Repository failure", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(3)).Return(nil, apperrors.ErrDatabase).Once()

		_, err := service.GetCustomer(ctx, 3)
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
	})
}

func TestCustomerService_ListCustomers(t *testing.T) {
	ctx := context.Background()
	result := []*customer.Customer{storedCustomer()}

	tests := []struct {
		name   string
		filter customer.ListFilter
		method string
		arg    string
	}{
		{"first name wins", customer.ListFilter{FirstName: "Jash", LastName: "Doshi", Userid: "jd1"}, "FindByFirstName", "Jash"},
		{"last name before userid", customer.ListFilter{LastName: "Doshi", Userid: "jd1"}, "FindByLastName", "Doshi"},
		{"userid", customer.ListFilter{Userid: "jd1"}, "FindByUserid", "jd1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, _, service := setupTest()
			mockRepo.On(tt.method, ctx, tt.arg).Return(result, nil).Once()

			customers, err := service.ListCustomers(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, customers, 1)
			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("no filter lists all", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("All", ctx).Return([]*customer.Customer{}, nil).Once()

		customers, err := service.ListCustomers(ctx, customer.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, customers)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("All", ctx).Return(nil, apperrors.ErrDatabase).Once()

		_, err := service.ListCustomers(ctx, customer.ListFilter{})
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success publishes update", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		cust := storedCustomer()
		mockRepo.On("Update", ctx, cust).Return(nil).Once()
		mockPub.On("PublishCustomerUpdated", ctx, mock.Anything).Return(nil).Once()

		updated, err := service.UpdateCustomer(ctx, cust)
		require.NoError(t, err)
		assert.Same(t, cust, updated)
		mockPub.AssertExpectations(t)
	})

	t.Run("Duplicate userid", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("Update", ctx, mock.Anything).Return(apperrors.NewDuplicateKeyError("customers_userid_key")).Once()

		_, err := service.UpdateCustomer(ctx, storedCustomer())
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		mockPub.AssertNotCalled(t, "PublishCustomerUpdated", mock.Anything, mock.Anything)
	})

	t.Run("Missing id", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("Update", ctx, mock.Anything).Return(apperrors.ErrMissingID).Once()

		_, err := service.UpdateCustomer(ctx, customer.NewCustomer("A", "B"))
		assert.ErrorIs(t, err, apperrors.ErrMissingID)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes existing customer", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		cust := storedCustomer()
		mockRepo.On("Find", ctx, int64(1)).Return(cust, nil).Once()
		mockRepo.On("Delete", ctx, cust).Return(nil).Once()
		mockPub.On("PublishCustomerDeleted", ctx, mock.MatchedBy(func(evt event.CustomerDeletedEvent) bool {
			return evt.CustomerID == 1
		})).Return(nil).Once()

		assert.NoError(t, service.DeleteCustomer(ctx, 1))
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("Absent customer is a no-op", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("Find", ctx, int64(7)).Return(nil, nil).Once()

		assert.NoError(t, service.DeleteCustomer(ctx, 7))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mockPub.AssertNotCalled(t, "PublishCustomerDeleted", mock.Anything, mock.Anything)
	})

	t.Run("Customer removed between lookup and delete is a no-op", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		cust := storedCustomer()
		cust.ID = 5
		mockRepo.On("Find", ctx, int64(5)).Return(cust, nil).Once()
		mockRepo.On("Delete", ctx, cust).Return(fmt.Errorf("%w: customer 5", apperrors.ErrNotFound)).Once()

		assert.NoError(t, service.DeleteCustomer(ctx, 5))
		mockRepo.AssertExpectations(t)
		mockPub.AssertNotCalled(t, "PublishCustomerDeleted", mock.Anything, mock.Anything)
	})

	t.Run("Delete failure", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		cust := storedCustomer()
		mockRepo.On("Find", ctx, int64(1)).Return(cust, nil).Once()
		mockRepo.On("Delete", ctx, cust).Return(apperrors.ErrDatabase).Once()

		assert.ErrorIs(t, service.DeleteCustomer(ctx, 1), apperrors.ErrDatabase)
	})

	t.Run("Lookup failure", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("Find", ctx, int64(8)).Return(nil, apperrors.ErrDatabase).Once()

		assert.ErrorIs(t, service.DeleteCustomer(ctx, 8), apperrors.ErrDatabase)
	})
}

func TestCustomerService_ActiveStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Deactivate", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return !c.IsActive()
		})).Return(nil).Once()
		mockPub.On("PublishCustomerUpdated", ctx, mock.Anything).Return(nil).Once()

		cust, err := service.DeactivateCustomer(ctx, 1)
		require.NoError(t, err)
		assert.False(t, cust.IsActive())
	})

	t.Run("Activate", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		inactive := storedCustomer()
		inactive.Deactivate()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(inactive, nil).Once()
		mockRepo.On("Update", ctx, inactive).Return(nil).Once()
		mockPub.On("PublishCustomerUpdated", ctx, mock.Anything).Return(nil).Once()

		cust, err := service.ActivateCustomer(ctx, 1)
		require.NoError(t, err)
		assert.True(t, cust.IsActive())
	})

	t.Run("Activate unknown customer", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

		_, err := service.ActivateCustomer(ctx, 404)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_Addresses(t *testing.T) {
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Once()

		addrs, err := service.ListAddresses(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, addrs, 2)
	})

	t.Run("Add", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return len(c.Addresses) == 3
		})).Run(func(args mock.Arguments) {
			c := args.Get(1).(*customer.Customer)
			c.Addresses[2].ID = 12
		}).Return(nil).Once()
		mockPub.On("PublishCustomerUpdated", ctx, mock.Anything).Return(nil).Once()

		addr, err := service.AddAddress(ctx, 1, &customer.Address{ID: 77, Street: "3 Main"})
		require.NoError(t, err)
		assert.Equal(t, int64(12), addr.ID)
		assert.Equal(t, int64(1), addr.CustomerID)
	})

	t.Run("Add to unknown customer", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(9)).Return(nil, apperrors.ErrNotFound).Once()

		_, err := service.AddAddress(ctx, 9, &customer.Address{Street: "3 Main"})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Get", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Twice()

		addr, err := service.GetAddress(ctx, 1, 11)
		require.NoError(t, err)
		assert.Equal(t, "2 Main", addr.Street)

		_, err = service.GetAddress(ctx, 1, 99)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Once()
		mockRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		mockPub.On("PublishCustomerUpdated", ctx, mock.Anything).Return(nil).Once()

		addr, err := service.UpdateAddress(ctx, 1, 10, &customer.Address{Street: "XXXX", City: "C", State: "S", PostalCode: "P"})
		require.NoError(t, err)
		assert.Equal(t, int64(10), addr.ID)
		assert.Equal(t, "XXXX", addr.Street)
		assert.Equal(t, int64(1), addr.CustomerID)
	})

	t.Run("Update unknown address", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Once()

		_, err := service.UpdateAddress(ctx, 1, 99, &customer.Address{Street: "XXXX"})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Remove", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return len(c.Addresses) == 1 && c.Addresses[0].ID == 11
		})).Return(nil).Once()
		mockPub.On("PublishCustomerUpdated", ctx, mock.Anything).Return(nil).Once()

		assert.NoError(t, service.RemoveAddress(ctx, 1, 10))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Remove unknown address", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindOrFail", ctx, int64(1)).Return(storedCustomer(), nil).Once()

		assert.ErrorIs(t, service.RemoveAddress(ctx, 1, 99), apperrors.ErrNotFound)
	})
}
