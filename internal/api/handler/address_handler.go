package handler

import (
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// AddressHandler serves the addresses nested under a customer. Every operation goes
// through the owning customer.
type AddressHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewAddressHandler(s customer.CustomerService, l *slog.Logger) *AddressHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AddressHandler{
		service: s,
		logger:  l.With("component", "AddressHandler"),
	}
}

func (h *AddressHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	level := slog.LevelError
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidArgument) || errors.Is(err, apperrors.ErrValidation) {
		level = slog.LevelWarn
	}
	h.logger.Log(r.Context(), level, msg, slog.Any("error", err))
	respondError(w, err)
}

// ListAddresses handles GET /customers/{customerID}/addresses
// @Summary List a customer's addresses
// @Tags Addresses
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.AddressResponse "Addresses in insertion order"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses [get]
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.fail(w, r, "Failed to get customer ID from URL", err)
		return
	}

	addrs, err := h.service.ListAddresses(r.Context(), customerID)
	if err != nil {
		h.fail(w, r, "Service failed to list addresses", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAddressListResponse(addrs))
}

// CreateAddress handles POST /customers/{customerID}/addresses
// @Summary Add an address to a customer
// @Tags Addresses
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.AddressRequest true "Address payload"
// @Success 201 {object} dto.AddressResponse "Address created"
// @Header 201 {string} Location "/customers/{customerID}/addresses/{addressID}"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 415 {object} dto.ErrorResponse "Content-Type is not application/json"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses [post]
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.fail(w, r, "Failed to get customer ID from URL", err)
		return
	}

	addr, err := decodeAddress(r)
	if err != nil {
		h.fail(w, r, "Address payload rejected", err)
		return
	}

	created, err := h.service.AddAddress(r.Context(), customerID, addr)
	if err != nil {
		h.fail(w, r, "Service failed to add address", err)
		return
	}

	h.logger.InfoContext(r.Context(), "Address created successfully", slog.Int64("customerID", customerID), slog.Int64("addressID", created.ID))
	w.Header().Set("Location", addressLocation(customerID, created.ID))
	respondJSON(w, http.StatusCreated, dto.NewAddressResponse(created))
}

// GetAddress handles GET /customers/{customerID}/addresses/{addressID}
// @Summary Retrieve one address of a customer
// @Tags Addresses
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param addressID path int true "Address ID" Minimum(1)
// @Success 200 {object} dto.AddressResponse "Address details"
// @Failure 404 {object} dto.ErrorResponse "Customer or address not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses/{addressID} [get]
func (h *AddressHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	customerID, addressID, err := getAddressPath(r)
	if err != nil {
		h.fail(w, r, "Failed to get IDs from URL", err)
		return
	}

	addr, err := h.service.GetAddress(r.Context(), customerID, addressID)
	if err != nil {
		h.fail(w, r, "Service failed to get address", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAddressResponse(addr))
}

// UpdateAddress handles PUT /customers/{customerID}/addresses/{addressID}
// @Summary Update one address of a customer
// @Tags Addresses
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param addressID path int true "Address ID" Minimum(1)
// @Param request body dto.AddressRequest true "Address payload"
// @Success 200 {object} dto.AddressResponse "Address updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Customer or address not found"
// @Failure 415 {object} dto.ErrorResponse "Content-Type is not application/json"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses/{addressID} [put]
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, addressID, err := getAddressPath(r)
	if err != nil {
		h.fail(w, r, "Failed to get IDs from URL", err)
		return
	}

	changes, err := decodeAddress(r)
	if err != nil {
		h.fail(w, r, "Address payload rejected", err)
		return
	}

	updated, err := h.service.UpdateAddress(r.Context(), customerID, addressID, changes)
	if err != nil {
		h.fail(w, r, "Service failed to update address", err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAddressResponse(updated))
}

// DeleteAddress handles DELETE /customers/{customerID}/addresses/{addressID}
// @Summary Remove one address from a customer
// @Tags Addresses
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param addressID path int true "Address ID" Minimum(1)
// @Success 204 "Address removed"
// @Failure 404 {object} dto.ErrorResponse "Customer or address not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses/{addressID} [delete]
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	customerID, addressID, err := getAddressPath(r)
	if err != nil {
		h.fail(w, r, "Failed to get IDs from URL", err)
		return
	}

	if err := h.service.RemoveAddress(r.Context(), customerID, addressID); err != nil {
		h.fail(w, r, "Service failed to remove address", err)
		return
	}

	respondNoContent(w)
}

func getAddressPath(r *http.Request) (int64, int64, error) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		return 0, 0, err
	}
	addressID, err := getAddressIDFromURL(r)
	if err != nil {
		return 0, 0, err
	}
	return customerID, addressID, nil
}

func decodeAddress(r *http.Request) (*customer.Address, error) {
	raw, err := decodeJSON(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	addr := &customer.Address{}
	if err := dto.DeserializeAddress(raw, addr); err != nil {
		return nil, err
	}
	return addr, nil
}
