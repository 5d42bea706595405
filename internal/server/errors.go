package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/KaramelBytes/pareto-cli/internal/analysis"
	"github.com/KaramelBytes/pareto-cli/internal/source"
)

// Error codes returned in the "error" field.
const (
	codeInvalidRequest    = "InvalidRequest"
	codePayloadTooLarge   = "PayloadTooLarge"
	codeEmptyInput        = "EmptyInput"
	codeSourceUnavailable = "SourceUnavailable"
	codeNotFound          = "NotFound"
	codeInternal          = "Internal"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: code, Message: msg})
}

// statusFor maps an analysis or fetch error to its HTTP status and code.
func statusFor(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, analysis.ErrEmptyInput):
		return http.StatusUnprocessableEntity, codeEmptyInput
	case errors.Is(err, source.ErrSourceUnavailable):
		return http.StatusBadGateway, codeSourceUnavailable
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, codePayloadTooLarge
	case errors.As(err, &verrs), errors.Is(err, errBadRequest):
		return http.StatusBadRequest, codeInvalidRequest
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

var errBadRequest = errors.New("bad request")
