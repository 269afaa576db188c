package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lox/skyra/internal/advisor"
	"github.com/lox/skyra/internal/climate"
	"github.com/lox/skyra/internal/models"
	"github.com/lox/skyra/internal/power"
)

// Error kinds reported in the "error" field of failure responses.
const (
	kindBadRequest        = "bad_request"
	kindInvalidCoordinate = "invalid_coordinate"
	kindMalformedDate     = "malformed_date"
	kindRetrieval         = "retrieval_failed"
	kindNoData            = "no_data"
	kindAdvisorDisabled   = "advisor_disabled"
	kindAdvisorFailed     = "advisor_failed"
	kindInternal          = "internal"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: message})
}

// classify maps a pipeline error to its HTTP status and error kind.
func classify(err error) (int, string) {
	var invalid *models.InvalidCoordinateError
	var malformed *power.MalformedDateError
	var retrieval *power.RetrievalError
	var noData *climate.NoDataError
	var validation validator.ValidationErrors

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, kindInvalidCoordinate
	case errors.As(err, &validation), errors.Is(err, power.ErrInvalidYears):
		return http.StatusBadRequest, kindBadRequest
	case errors.As(err, &malformed):
		return http.StatusBadGateway, kindMalformedDate
	case errors.As(err, &retrieval):
		return http.StatusBadGateway, kindRetrieval
	case errors.As(err, &noData):
		return http.StatusNotFound, kindNoData
	case errors.Is(err, advisor.ErrDisabled):
		return http.StatusServiceUnavailable, kindAdvisorDisabled
	default:
		return http.StatusInternalServerError, kindInternal
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	if status >= 500 {
		log.Printf("api: %s: %v", kind, err)
	}
	writeError(w, status, kind, err.Error())
}
