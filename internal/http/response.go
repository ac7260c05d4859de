package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"studylog-backend-go/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

var validate = validator.New()

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteServiceError maps a services.ServiceError to its HTTP status; anything
// else becomes a generic 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	if serr, ok := err.(services.ServiceError); ok {
		WriteError(w, serr.Status, serr.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// DecodeValid decodes the request body into dst and runs its validate tags.
func DecodeValid(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return services.ErrBadRequest("Invalid payload")
	}
	if err := validate.Struct(dst); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return services.ErrBadRequest(fmt.Sprintf("%s is missing or invalid", fieldErrs[0].Field()))
		}
		return services.ErrBadRequest("Invalid payload")
	}
	return nil
}
