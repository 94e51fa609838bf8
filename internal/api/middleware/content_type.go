package middleware

import (
	"customer-service/internal/api/handler/dto"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

const jsonContentType = "application/json"

// RequireJSON rejects requests whose Content-Type is missing or is not application/json
// with 415. Unlike chi's AllowContentType it also rejects requests without a body.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Content-Type")
		mediaType, _, err := mime.ParseMediaType(header)
		if header == "" || err != nil || !strings.EqualFold(mediaType, jsonContentType) {
			writeUnsupportedMediaType(w, header)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnsupportedMediaType(w http.ResponseWriter, got string) {
	body := dto.ErrorResponse{Error: dto.ErrorDetail{Code: "UNSUPPORTED_MEDIA_TYPE"}}
	if got == "" {
		body.Error.Message = fmt.Sprintf("Content-Type must be %s", jsonContentType)
	} else {
		body.Error.Message = fmt.Sprintf("Content-Type must be %s, got %s", jsonContentType, got)
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(http.StatusUnsupportedMediaType)
	_ = json.NewEncoder(w).Encode(body)
}
