package handler

import (
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	errCodeValidation      = "VALIDATION_ERROR"
	errCodeInvalidArgument = "INVALID_ARGUMENT"
	errCodeNotFound        = "NOT_FOUND"
	errCodeInternal        = "INTERNAL_ERROR"
)

// decodeJSON reads the body as a generic JSON value so the deserializers can report
// missing and mistyped fields themselves. An empty body decodes to nil.
func decodeJSON(r *http.Request) (any, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("malformed JSON body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("malformed JSON body: unexpected data after the JSON value")
	}
	return v, nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func respondError(w http.ResponseWriter, err error) {
	status, code, message, field := http.StatusInternalServerError, errCodeInternal, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &validationError):
		status, code, message, field = http.StatusBadRequest, errCodeValidation, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, code, message = http.StatusBadRequest, "DUPLICATE_KEY", "userid is already taken."
		if errors.As(err, &appErr) {
			code = appErr.Code
		}
	case errors.Is(err, apperrors.ErrNotFound):
		status, code, message = http.StatusNotFound, errCodeNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, code, message = http.StatusBadRequest, errCodeInvalidArgument, err.Error()
	case errors.As(err, &appErr):
		slog.Default().Error("Application error", "error", err)
		code = appErr.Code
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

// getIDFromURL rejects anything but decimal digits. Digit strings that cannot name a
// stored row (0, or beyond int64) come back as 0 so the lookup reports them absent.
func getIDFromURL(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, param)
	}
	id, err := strconv.ParseUint(idStr, 10, 63)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: invalid %s format in URL path: %s", apperrors.ErrInvalidArgument, param, idStr)
	}
	return int64(id), nil
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	return getIDFromURL(r, "customerID")
}

func getAddressIDFromURL(r *http.Request) (int64, error) {
	return getIDFromURL(r, "addressID")
}

func customerLocation(customerID int64) string {
	return fmt.Sprintf("/customers/%d", customerID)
}

func addressLocation(customerID, addressID int64) string {
	return fmt.Sprintf("/customers/%d/addresses/%d", customerID, addressID)
}
