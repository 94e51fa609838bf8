package customer

import (
	"context"
)

// CustomerRepository is the persistence gateway for the Customer aggregate.
// Every mutation runs as one unit of work: either the customer row and all of its
// address rows are written, or nothing is.
type CustomerRepository interface {
	// Create inserts the aggregate, discarding any caller-supplied ids.
	// A userid collision yields apperrors.ErrAlreadyExists.
	Create(ctx context.Context, customer *Customer) error

	// Update persists in-memory changes including added and removed addresses.
	// A customer without an id yields apperrors.ErrMissingID.
	Update(ctx context.Context, customer *Customer) error

	// Delete removes the customer and every address it owns.
	Delete(ctx context.Context, customer *Customer) error

	// Find returns nil without an error when no customer has the id.
	Find(ctx context.Context, customerID int64) (*Customer, error)

	FindOrFail(ctx context.Context, customerID int64) (*Customer, error)

	All(ctx context.Context) ([]*Customer, error)

	FindByFirstName(ctx context.Context, firstName string) ([]*Customer, error)

	FindByLastName(ctx context.Context, lastName string) ([]*Customer, error)

	FindByUserid(ctx context.Context, userid string) ([]*Customer, error)

	Count(ctx context.Context) (customers int64, addresses int64, err error)
}
