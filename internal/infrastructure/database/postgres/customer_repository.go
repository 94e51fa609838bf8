package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	customerColumns = `id, first_name, last_name, userid, password, active`

	insertCustomerSQL = `
        INSERT INTO customers (first_name, last_name, userid, password, active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	updateCustomerSQL = `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            userid = $3,
            password = $4,
            active = $5
        WHERE id = $6`

	deleteCustomerSQL = `DELETE FROM customers WHERE id = $1`

	insertAddressSQL = `
        INSERT INTO addresses (customer_id, street, city, state, postal_code)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	updateAddressSQL = `
        UPDATE addresses
        SET street = $1,
            city = $2,
            state = $3,
            postal_code = $4
        WHERE id = $5 AND customer_id = $6`

	deleteOrphanAddressesSQL = `DELETE FROM addresses WHERE customer_id = $1 AND NOT (id = ANY($2))`

	deleteCustomerAddressesSQL = `DELETE FROM addresses WHERE customer_id = $1`

	selectAddressesSQL = `
        SELECT id, customer_id, street, city, state, postal_code
        FROM addresses
        WHERE customer_id = ANY($1)
        ORDER BY id ASC`

	countSQL = `SELECT (SELECT COUNT(*) FROM customers), (SELECT COUNT(*) FROM addresses)`
)

var (
	selectCustomerByIDSQL         = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	selectAllCustomersSQL         = `SELECT ` + customerColumns + ` FROM customers ORDER BY id ASC`
	selectCustomersByFirstNameSQL = `SELECT ` + customerColumns + ` FROM customers WHERE first_name = $1 ORDER BY id ASC`
	selectCustomersByLastNameSQL  = `SELECT ` + customerColumns + ` FROM customers WHERE last_name = $1 ORDER BY id ASC`
	selectCustomersByUseridSQL    = `SELECT ` + customerColumns + ` FROM customers WHERE userid = $1 ORDER BY id ASC`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	r.logger.DebugContext(ctx, "Beginning transaction")
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *CustomerRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	r.logger.DebugContext(ctx, "Committing transaction")
	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *CustomerRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	r.logger.DebugContext(ctx, "Rolling back transaction")
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to rollback transaction: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

// withTx runs fn as a single unit of work. Any error from fn rolls the transaction back.
func (r *CustomerRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := r.RollbackTx(ctx, tx); rbErr != nil {
			r.logger.ErrorContext(ctx, "Rollback after failed unit of work also failed", slog.Any("error", rbErr))
		}
		return err
	}

	return r.CommitTx(ctx, tx)
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Create"))
	logCtx.InfoContext(ctx, "Attempting to insert new customer", slog.Int("addresses", len(cust.Addresses)))

	cust.ResetIDs()
	cust.ApplyDefaults()

	startTime := time.Now()
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertCustomerSQL,
			cust.FirstName,
			cust.LastName,
			cust.Userid,
			cust.Password,
			*cust.Active,
		).Scan(&cust.ID); err != nil {
			return translateDBError(err, logCtx)
		}

		for _, addr := range cust.Addresses {
			addr.CustomerID = cust.ID
			if err := r.insertAddress(ctx, tx, addr); err != nil {
				return err
			}
		}
		return nil
	})
	monitoring.RecordDBQuery("CreateCustomer", queryStatus(err), time.Since(startTime))

	if err != nil {
		cust.ResetIDs()
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Failed to insert customer due to unique constraint violation", slog.Any("error", err))
			return err
		}
		logCtx.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	logCtx.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

// Update writes the customer row and reconciles its address rows: rows missing from the
// collection are deleted, known rows are updated and new ones are inserted.
func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.ID == 0 {
		return fmt.Errorf("%w: cannot update a customer that was never created", apperrors.ErrMissingID)
	}
	logCtx := r.logger.With(slog.String("operation", "Update"), slog.Int64("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	cust.ApplyDefaults()

	keep := make([]int64, 0, len(cust.Addresses))
	for _, addr := range cust.Addresses {
		if addr.ID != 0 {
			keep = append(keep, addr.ID)
		}
	}

	var inserted []*customer.Address
	startTime := time.Now()
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, updateCustomerSQL,
			cust.FirstName,
			cust.LastName,
			cust.Userid,
			cust.Password,
			*cust.Active,
			cust.ID,
		)
		if err != nil {
			return translateDBError(err, logCtx)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, cust.ID)
		}

		if _, err := tx.Exec(ctx, deleteOrphanAddressesSQL, cust.ID, keep); err != nil {
			return translateDBError(err, logCtx)
		}

		for _, addr := range cust.Addresses {
			addr.CustomerID = cust.ID
			if addr.ID != 0 {
				if err := r.updateAddress(ctx, tx, addr); err != nil {
					return err
				}
				continue
			}
			if err := r.insertAddress(ctx, tx, addr); err != nil {
				return err
			}
			inserted = append(inserted, addr)
		}
		return nil
	})
	monitoring.RecordDBQuery("UpdateCustomer", queryStatus(err), time.Since(startTime))

	if err != nil {
		for _, addr := range inserted {
			addr.ID = 0
		}
		switch {
		case errors.Is(err, apperrors.ErrAlreadyExists):
			logCtx.WarnContext(ctx, "Failed to update customer due to unique constraint violation", slog.Any("error", err))
			return err
		case errors.Is(err, apperrors.ErrNotFound):
			logCtx.WarnContext(ctx, "Update affected zero rows, customer likely not found")
			return err
		}
		logCtx.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer: %w", err)
	}

	logCtx.InfoContext(ctx, "Customer updated successfully", slog.Int("addresses", len(cust.Addresses)))
	return nil
}

// Delete removes the addresses before the customer row they reference.
func (r *CustomerRepository) Delete(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.ID == 0 {
		return fmt.Errorf("%w: cannot delete a customer that was never created", apperrors.ErrMissingID)
	}
	logCtx := r.logger.With(slog.String("operation", "Delete"), slog.Int64("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	startTime := time.Now()
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteCustomerAddressesSQL, cust.ID); err != nil {
			return translateDBError(err, logCtx)
		}
		cmdTag, err := tx.Exec(ctx, deleteCustomerSQL, cust.ID)
		if err != nil {
			return translateDBError(err, logCtx)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, cust.ID)
		}
		return nil
	})
	monitoring.RecordDBQuery("DeleteCustomer", queryStatus(err), time.Since(startTime))

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
			return err
		}
		logCtx.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	logCtx.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func (r *CustomerRepository) Find(ctx context.Context, customerID int64) (*customer.Customer, error) {
	customers, err := r.findCustomers(ctx, "FindCustomer", selectCustomerByIDSQL, customerID)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		r.logger.DebugContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
		return nil, nil
	}
	return customers[0], nil
}

func (r *CustomerRepository) FindOrFail(ctx context.Context, customerID int64) (*customer.Customer, error) {
	cust, err := r.Find(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		r.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
		return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
	}
	return cust, nil
}

func (r *CustomerRepository) All(ctx context.Context) ([]*customer.Customer, error) {
	return r.findCustomers(ctx, "AllCustomers", selectAllCustomersSQL)
}

func (r *CustomerRepository) FindByFirstName(ctx context.Context, firstName string) ([]*customer.Customer, error) {
	return r.findCustomers(ctx, "FindByFirstName", selectCustomersByFirstNameSQL, firstName)
}

func (r *CustomerRepository) FindByLastName(ctx context.Context, lastName string) ([]*customer.Customer, error) {
	return r.findCustomers(ctx, "FindByLastName", selectCustomersByLastNameSQL, lastName)
}

func (r *CustomerRepository) FindByUserid(ctx context.Context, userid string) ([]*customer.Customer, error) {
	return r.findCustomers(ctx, "FindByUserid", selectCustomersByUseridSQL, userid)
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, int64, error) {
	var customers, addresses int64

	startTime := time.Now()
	err := r.db.QueryRow(ctx, countSQL).Scan(&customers, &addresses)
	monitoring.RecordDBQuery("CountCustomers", queryStatus(err), time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return 0, 0, fmt.Errorf("%w: failed to count customers: %w", apperrors.ErrDatabase, err)
	}
	return customers, addresses, nil
}

// findCustomers runs a customer query and attaches each match's addresses in id order.
func (r *CustomerRepository) findCustomers(ctx context.Context, queryName, query string, args ...any) ([]*customer.Customer, error) {
	logCtx := r.logger.With(slog.String("operation", queryName))

	startTime := time.Now()
	customers, err := r.scanCustomers(ctx, r.db, query, args...)
	if err == nil && len(customers) > 0 {
		err = r.attachAddresses(ctx, r.db, customers)
	}
	monitoring.RecordDBQuery(queryName, queryStatus(err), time.Since(startTime))

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to load customers", slog.Any("error", err))
		return nil, err
	}

	logCtx.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) scanCustomers(ctx context.Context, q querier, query string, args ...any) ([]*customer.Customer, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust := customer.NewCustomer("", "")
		var active bool
		if err := rows.Scan(
			&cust.ID,
			&cust.FirstName,
			&cust.LastName,
			&cust.Userid,
			&cust.Password,
			&active,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		cust.Active = &active
		customers = append(customers, cust)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}
	return customers, nil
}

func (r *CustomerRepository) attachAddresses(ctx context.Context, q querier, customers []*customer.Customer) error {
	byID := make(map[int64]*customer.Customer, len(customers))
	ids := make([]int64, 0, len(customers))
	for _, cust := range customers {
		byID[cust.ID] = cust
		ids = append(ids, cust.ID)
	}

	rows, err := q.Query(ctx, selectAddressesSQL, ids)
	if err != nil {
		return fmt.Errorf("%w: failed to query addresses: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	for rows.Next() {
		var addr customer.Address
		if err := rows.Scan(
			&addr.ID,
			&addr.CustomerID,
			&addr.Street,
			&addr.City,
			&addr.State,
			&addr.PostalCode,
		); err != nil {
			return fmt.Errorf("%w: failed to scan address row: %w", apperrors.ErrDatabase, err)
		}
		if owner, ok := byID[addr.CustomerID]; ok {
			owner.Addresses = append(owner.Addresses, &addr)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: error iterating address rows: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *CustomerRepository) insertAddress(ctx context.Context, q querier, addr *customer.Address) error {
	if err := q.QueryRow(ctx, insertAddressSQL,
		addr.CustomerID,
		addr.Street,
		addr.City,
		addr.State,
		addr.PostalCode,
	).Scan(&addr.ID); err != nil {
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *CustomerRepository) updateAddress(ctx context.Context, q querier, addr *customer.Address) error {
	cmdTag, err := q.Exec(ctx, updateAddressSQL,
		addr.Street,
		addr.City,
		addr.State,
		addr.PostalCode,
		addr.ID,
		addr.CustomerID,
	)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: address %d for customer %d", apperrors.ErrNotFound, addr.ID, addr.CustomerID)
	}
	return nil
}
