package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"toolrental-charges/internal/domain"
	"toolrental-charges/internal/logger"
	"toolrental-charges/internal/service"
)

// AgreementHandler exposes the charge engine over HTTP
type AgreementHandler struct {
	svc service.AgreementService
}

func NewAgreementHandler(svc service.AgreementService) *AgreementHandler {
	return &AgreementHandler{svc: svc}
}

// ListTools handles GET /api/v1/tools
func (h *AgreementHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.ListCatalog(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}
	writeJSON(w, http.StatusOK, MapListingsToResponse(listings))
}

// CreateAgreement handles POST /api/v1/agreements
func (h *AgreementHandler) CreateAgreement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AgreementRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
		return
	}

	rental, err := req.ToRentalRequest()
	if err != nil {
		writeError(w, err)
		return
	}

	agreement, err := h.svc.Calculate(ctx, rental.ToolCode, rental.RentalDays, rental.DiscountPercent, rental.CheckoutDate)
	if err != nil {
		writeError(w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(agreement.String() + "\n")); err != nil {
			logger.ErrorContext(ctx, "Failed to write response", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, MapAgreementToResponse(agreement))
}

// writeError maps engine errors to status codes: bad input is 400, anything else 500
func writeError(w http.ResponseWriter, err error) {
	if invalid := domain.IsInvalidArgumentError(err); invalid != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: invalid.Message, Field: invalid.Field})
		return
	}
	if errors.Is(err, domain.ErrInvalidArgument) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: domain.ErrComputationFailure.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// NewRouter builds the HTTP router with request ID, logging and recovery middleware
func NewRouter(svc service.AgreementService) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, accessLogMiddleware, recoverMiddleware)
	RegisterRoutes(router, svc)
	return router
}

// RegisterRoutes registers the agreement endpoints
func RegisterRoutes(router *mux.Router, svc service.AgreementService) {
	handler := NewAgreementHandler(svc)
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/tools", handler.ListTools).Methods(http.MethodGet)
	api.HandleFunc("/agreements", handler.CreateAgreement).Methods(http.MethodPost)
}
