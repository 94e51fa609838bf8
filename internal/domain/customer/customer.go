package customer

// Customer is the aggregate root. It owns its Addresses: they are created, updated and
// deleted only through the Customer that holds them.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Userid    *string
	Password  *string
	// Active is nil until a value is supplied or the default is applied on create.
	Active    *bool
	Addresses []*Address
}

type Address struct {
	ID         int64
	CustomerID int64
	Street     string
	City       string
	State      string
	PostalCode string
}

func NewCustomer(firstName, lastName string) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		Addresses: make([]*Address, 0),
	}
}

// ApplyDefaults fills structural defaults that the store expects on insert.
func (c *Customer) ApplyDefaults() {
	if c.Active == nil {
		active := true
		c.Active = &active
	}
	if c.Addresses == nil {
		c.Addresses = make([]*Address, 0)
	}
}

func (c *Customer) IsActive() bool {
	return c.Active == nil || *c.Active
}

func (c *Customer) Activate() {
	c.setActive(true)
}

func (c *Customer) Deactivate() {
	c.setActive(false)
}

func (c *Customer) setActive(active bool) {
	c.Active = &active
}

func (c *Customer) AddAddress(addr *Address) {
	addr.CustomerID = c.ID
	c.Addresses = append(c.Addresses, addr)
}

func (c *Customer) FindAddress(addressID int64) *Address {
	for _, addr := range c.Addresses {
		if addr.ID == addressID {
			return addr
		}
	}
	return nil
}

// RemoveAddress drops the address from the collection, keeping the order of the rest.
func (c *Customer) RemoveAddress(addressID int64) bool {
	for i, addr := range c.Addresses {
		if addr.ID == addressID {
			c.Addresses = append(c.Addresses[:i], c.Addresses[i+1:]...)
			return true
		}
	}
	return false
}

// ResetIDs clears every system-assigned id so the aggregate can be inserted as new.
func (c *Customer) ResetIDs() {
	c.ID = 0
	for _, addr := range c.Addresses {
		addr.ID = 0
		addr.CustomerID = 0
	}
}
