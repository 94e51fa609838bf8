package dto

import (
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"strings"
)

const (
	customerEntity = "Customer"
	addressEntity  = "Address"
)

// CustomerRequest documents the accepted customer payload. Bodies are decoded generically
// and checked by DeserializeCustomer.
type CustomerRequest struct {
	FirstName string           `json:"first_name" example:"Jash"`
	LastName  string           `json:"last_name" example:"Doshi"`
	Userid    *string          `json:"userid,omitempty" example:"jd1"`
	Password  *string          `json:"password,omitempty" example:"p"`
	Active    *bool            `json:"active,omitempty" example:"true"`
	Addresses []AddressRequest `json:"addresses,omitempty"`
}

type AddressRequest struct {
	Street     string `json:"street" example:"1 Main St"`
	City       string `json:"city" example:"New York"`
	State      string `json:"state" example:"NY"`
	PostalCode string `json:"postal_code" example:"10001"`
}

type CustomerResponse struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Userid    *string           `json:"userid"`
	Password  *string           `json:"password"`
	Active    *bool             `json:"active"`
	Addresses []AddressResponse `json:"addresses"`
}

type AddressResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// NewCustomerResponse serializes the customer and its addresses in collection order.
// The customer is not modified.
func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	addresses := make([]AddressResponse, len(cust.Addresses))
	for i, addr := range cust.Addresses {
		addresses[i] = NewAddressResponse(addr)
	}

	return CustomerResponse{
		ID:        cust.ID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		Userid:    copyString(cust.Userid),
		Password:  copyString(cust.Password),
		Active:    copyBool(cust.Active),
		Addresses: addresses,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = NewCustomerResponse(cust)
	}
	return resp
}

func NewAddressResponse(addr *customer.Address) AddressResponse {
	if addr == nil {
		return AddressResponse{}
	}
	return AddressResponse{
		ID:         addr.ID,
		CustomerID: addr.CustomerID,
		Street:     addr.Street,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
	}
}

func NewAddressListResponse(addrs []*customer.Address) []AddressResponse {
	resp := make([]AddressResponse, len(addrs))
	for i, addr := range addrs {
		resp[i] = NewAddressResponse(addr)
	}
	return resp
}

// DeserializeCustomer populates target from a decoded JSON value.
//
// first_name and last_name are required. userid, password and active are copied only
// when present, so values already on target survive. Each entry of addresses is
// deserialized and appended in input order. On any error target is left untouched.
func DeserializeCustomer(raw any, target *customer.Customer) error {
	data, ok := raw.(map[string]any)
	if !ok {
		return badData(customerEntity)
	}

	firstName, err := requiredName(data, "first_name")
	if err != nil {
		return err
	}
	lastName, err := requiredName(data, "last_name")
	if err != nil {
		return err
	}

	userid, useridSet, err := optionalString(data, "userid")
	if err != nil {
		return err
	}
	password, passwordSet, err := optionalString(data, "password")
	if err != nil {
		return err
	}

	var active *bool
	if v, present := data["active"]; present {
		b, ok := v.(bool)
		if !ok {
			return invalidType("active", "boolean", v)
		}
		active = &b
	}

	var addresses []*customer.Address
	if v, present := data["addresses"]; present && v != nil {
		list, ok := v.([]any)
		if !ok {
			return invalidType("addresses", "list", v)
		}
		addresses = make([]*customer.Address, 0, len(list))
		for _, item := range list {
			addr := &customer.Address{}
			if err := DeserializeAddress(item, addr); err != nil {
				return err
			}
			addresses = append(addresses, addr)
		}
	}

	target.FirstName = firstName
	target.LastName = lastName
	if useridSet {
		target.Userid = userid
	}
	if passwordSet {
		target.Password = password
	}
	if active != nil {
		target.Active = active
	}
	for _, addr := range addresses {
		target.AddAddress(addr)
	}
	return nil
}

// DeserializeAddress populates target from a decoded JSON value. Ids in the payload are
// ignored; they are owned by the store and the owning customer.
func DeserializeAddress(raw any, target *customer.Address) error {
	data, ok := raw.(map[string]any)
	if !ok {
		return badData(addressEntity)
	}

	street, err := requiredString(addressEntity, data, "street")
	if err != nil {
		return err
	}
	city, err := requiredString(addressEntity, data, "city")
	if err != nil {
		return err
	}
	state, err := requiredString(addressEntity, data, "state")
	if err != nil {
		return err
	}
	postalCode, err := requiredString(addressEntity, data, "postal_code")
	if err != nil {
		return err
	}

	target.Street = street
	target.City = city
	target.State = state
	target.PostalCode = postalCode
	return nil
}

func requiredString(entity string, data map[string]any, field string) (string, error) {
	v, present := data[field]
	if !present {
		return "", apperrors.NewValidationError(field, fmt.Sprintf("Invalid %s: missing %s", entity, field))
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidType(field, "string", v)
	}
	return s, nil
}

// requiredName is requiredString for customer names, which may not be blank.
func requiredName(data map[string]any, field string) (string, error) {
	s, err := requiredString(customerEntity, data, field)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", apperrors.NewValidationError(field, fmt.Sprintf("Invalid %s: %s must not be blank", customerEntity, field))
	}
	return s, nil
}

// optionalString reports whether the key was present; null clears the value.
func optionalString(data map[string]any, field string) (*string, bool, error) {
	v, present := data[field]
	if !present {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, false, invalidType(field, "string", v)
	}
	return &s, true, nil
}

func badData(entity string) error {
	return apperrors.NewValidationError("", fmt.Sprintf("Invalid %s: body of request contained bad or no data", entity))
}

func invalidType(field, want string, got any) error {
	return apperrors.NewValidationError(field, fmt.Sprintf("Invalid type for %s [%s]: %s", want, field, jsonTypeName(got)))
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
