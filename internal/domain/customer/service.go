package customer

import (
	"context"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const (
	customerNotFound = "Customer not found by repository"
	addressNotFound  = "Address not found on customer"
)

// ListFilter selects customers by exact match. When several fields are set the first
// non-empty one in the order FirstName, LastName, Userid wins.
type ListFilter struct {
	FirstName string
	LastName  string
	Userid    string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, cust *Customer) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
	ActivateCustomer(ctx context.Context, customerID int64) (*Customer, error)
	DeactivateCustomer(ctx context.Context, customerID int64) (*Customer, error)

	ListAddresses(ctx context.Context, customerID int64) ([]*Address, error)
	AddAddress(ctx context.Context, customerID int64, addr *Address) (*Address, error)
	GetAddress(ctx context.Context, customerID, addressID int64) (*Address, error)
	UpdateAddress(ctx context.Context, customerID, addressID int64, changes *Address) (*Address, error)
	RemoveAddress(ctx context.Context, customerID, addressID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will only be logged")
		eventPublisher = event.NewLogEventPublisher(logger)
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:   cust.ID,
		FirstName:    cust.FirstName,
		LastName:     cust.LastName,
		Userid:       cust.Userid,
		Active:       cust.IsActive(),
		AddressCount: len(cust.Addresses),
	}
}

func (s *customerService) publishUpdated(ctx context.Context, cust *Customer) {
	evt := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(cust),
	}
	if err := s.pub.PublishCustomerUpdated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish customer update event", slog.Int64("customerID", cust.ID), slog.Any("error", err))
	}
}

func (s *customerService) recordWriteFailure(ctx context.Context, logCtx *slog.Logger, msg string, err error) {
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		monitoring.RecordDuplicateUserid()
		logCtx.WarnContext(ctx, msg+": userid already taken", slog.Any("error", err))
		return
	}
	logCtx.ErrorContext(ctx, msg, slog.Any("error", err))
}

func (s *customerService) CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := s.logger.With(slog.String("first_name", cust.FirstName), slog.String("last_name", cust.LastName))
	logCtx.InfoContext(ctx, "Attempting to create new customer")

	cust.ResetIDs()

	logCtx.DebugContext(ctx, "Calling repository Create")
	if err := s.repo.Create(ctx, cust); err != nil {
		s.recordWriteFailure(ctx, logCtx, "Repository failed to create customer", err)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	logCtx = logCtx.With(slog.Int64("customerID", cust.ID))
	monitoring.RecordCustomerCreated()

	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(cust),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		logCtx.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully created new customer")
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.DebugContext(ctx, "Calling repository FindOrFail")

	cust, err := s.repo.FindOrFail(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, err
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context, filter ListFilter) ([]*Customer, error) {
	var (
		customers []*Customer
		err       error
	)

	switch {
	case filter.FirstName != "":
		s.logger.InfoContext(ctx, "Listing customers by first name", slog.String("first_name", filter.FirstName))
		customers, err = s.repo.FindByFirstName(ctx, filter.FirstName)
	case filter.LastName != "":
		s.logger.InfoContext(ctx, "Listing customers by last name", slog.String("last_name", filter.LastName))
		customers, err = s.repo.FindByLastName(ctx, filter.LastName)
	case filter.Userid != "":
		s.logger.InfoContext(ctx, "Listing customers by userid", slog.String("userid", filter.Userid))
		customers, err = s.repo.FindByUserid(ctx, filter.Userid)
	default:
		s.logger.InfoContext(ctx, "Listing all customers")
		customers, err = s.repo.All(ctx)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully listed customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := s.logger.With(slog.Int64("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	if err := s.repo.Update(ctx, cust); err != nil {
		s.recordWriteFailure(ctx, logCtx, "Repository failed to update customer", err)
		return nil, fmt.Errorf("failed to update customer %d: %w", cust.ID, err)
	}

	s.publishUpdated(ctx, cust)
	logCtx.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	cust, err := s.repo.Find(ctx, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error finding customer for delete", slog.Any("error", err))
		return fmt.Errorf("cannot look up customer %d to delete: %w", customerID, err)
	}
	if cust == nil {
		logCtx.InfoContext(ctx, "Customer does not exist, nothing to delete")
		return nil
	}

	if err := s.repo.Delete(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.InfoContext(ctx, "Customer removed concurrently, nothing to delete")
			return nil
		}
		logCtx.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}
	monitoring.RecordCustomerDeleted()

	deletedEvent := event.CustomerDeletedEvent{Timestamp: time.Now(), CustomerID: customerID}
	if pubErr := s.pub.PublishCustomerDeleted(ctx, deletedEvent); pubErr != nil {
		logCtx.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully deleted customer", slog.Int("addresses", len(cust.Addresses)))
	return nil
}

func (s *customerService) ActivateCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	return s.setActive(ctx, customerID, true)
}

func (s *customerService) DeactivateCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	return s.setActive(ctx, customerID, false)
}

func (s *customerService) setActive(ctx context.Context, customerID int64, active bool) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID), slog.Bool("active", active))
	logCtx.InfoContext(ctx, "Attempting to change active status")

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if active {
		cust.Activate()
	} else {
		cust.Deactivate()
	}

	if err := s.repo.Update(ctx, cust); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save active status", slog.Any("error", err))
		return nil, fmt.Errorf("failed to change active status of customer %d: %w", customerID, err)
	}

	s.publishUpdated(ctx, cust)
	logCtx.InfoContext(ctx, "Successfully changed active status")
	return cust, nil
}

func (s *customerService) ListAddresses(ctx context.Context, customerID int64) ([]*Address, error) {
	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return cust.Addresses, nil
}

func (s *customerService) AddAddress(ctx context.Context, customerID int64, addr *Address) (*Address, error) {
	if addr == nil {
		return nil, fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to add address")

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	addr.ID = 0
	cust.AddAddress(addr)

	if err := s.repo.Update(ctx, cust); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save new address", slog.Any("error", err))
		return nil, fmt.Errorf("failed to add address to customer %d: %w", customerID, err)
	}

	s.publishUpdated(ctx, cust)
	logCtx.InfoContext(ctx, "Successfully added address", slog.Int64("addressID", addr.ID))
	return addr, nil
}

func (s *customerService) GetAddress(ctx context.Context, customerID, addressID int64) (*Address, error) {
	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	addr := cust.FindAddress(addressID)
	if addr == nil {
		s.logger.WarnContext(ctx, addressNotFound, slog.Int64("customerID", customerID), slog.Int64("addressID", addressID))
		return nil, fmt.Errorf("%w: address %d for customer %d", apperrors.ErrNotFound, addressID, customerID)
	}
	return addr, nil
}

func (s *customerService) UpdateAddress(ctx context.Context, customerID, addressID int64, changes *Address) (*Address, error) {
	if changes == nil {
		return nil, fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := s.logger.With(slog.Int64("customerID", customerID), slog.Int64("addressID", addressID))
	logCtx.InfoContext(ctx, "Attempting to update address")

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	addr := cust.FindAddress(addressID)
	if addr == nil {
		logCtx.WarnContext(ctx, addressNotFound)
		return nil, fmt.Errorf("%w: address %d for customer %d", apperrors.ErrNotFound, addressID, customerID)
	}
	addr.Street = changes.Street
	addr.City = changes.City
	addr.State = changes.State
	addr.PostalCode = changes.PostalCode

	if err := s.repo.Update(ctx, cust); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save address", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update address %d: %w", addressID, err)
	}

	s.publishUpdated(ctx, cust)
	logCtx.InfoContext(ctx, "Successfully updated address")
	return addr, nil
}

func (s *customerService) RemoveAddress(ctx context.Context, customerID, addressID int64) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID), slog.Int64("addressID", addressID))
	logCtx.InfoContext(ctx, "Attempting to remove address")

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	if !cust.RemoveAddress(addressID) {
		logCtx.WarnContext(ctx, addressNotFound)
		return fmt.Errorf("%w: address %d for customer %d", apperrors.ErrNotFound, addressID, customerID)
	}

	if err := s.repo.Update(ctx, cust); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to remove address", slog.Any("error", err))
		return fmt.Errorf("failed to remove address %d: %w", addressID, err)
	}

	s.publishUpdated(ctx, cust)
	logCtx.InfoContext(ctx, "Successfully removed address")
	return nil
}
