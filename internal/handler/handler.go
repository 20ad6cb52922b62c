// Package handler exposes the ledger over HTTP. Handlers hand back plain
// numeric values; currency and date formatting is the client's job.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/sirupsen/logrus"

	"github.com/bankist/bankist-service/internal/ledger"
	"github.com/bankist/bankist-service/internal/middleware"
	"github.com/bankist/bankist-service/internal/service"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validate
	log      *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, validate: validator.New(), log: log}
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, acc, err := h.svc.Login(req.Username, req.PIN)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: acc.Username, Owner: acc.Owner})
}

// Logout ends the current session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.Username(r.Context())
	if !ok {
		h.writeError(w, service.ErrNoSession)
		return
	}
	h.svc.Logout(username)
	w.WriteHeader(http.StatusNoContent)
}

// Movements returns the session account's movement history; ?sorted=true
// orders it ascending by amount.
func (h *Handler) Movements(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.Username(r.Context())
	if !ok {
		h.writeError(w, service.ErrNoSession)
		return
	}
	sorted := r.URL.Query().Get("sorted") == "true"

	movements, err := h.svc.Statement(username, sorted)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, movementsResponse{Movements: movements, Sorted: sorted})
}

// Balance returns the session account's current balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.Username(r.Context())
	if !ok {
		h.writeError(w, service.ErrNoSession)
		return
	}

	balance, err := h.svc.Balance(username)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

// Summary returns income, expense and interest totals
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.Username(r.Context())
	if !ok {
		h.writeError(w, service.ErrNoSession)
		return
	}

	summary, err := h.svc.Summary(username)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// Transfer moves funds from the session account to another account
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.Username(r.Context())
	if !ok {
		h.writeError(w, service.ErrNoSession)
		return
	}
	var req transferRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.Transfer(username, req.To, req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequestLoan schedules an eligible loan to post after the configured delay
func (h *Handler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.Username(r.Context())
	if !ok {
		h.writeError(w, service.ErrNoSession)
		return
	}
	var req loanRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.RequestLoan(username, req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	// The movement posts later; 202 signals the deferred effect.
	w.WriteHeader(http.StatusAccepted)
}

// CloseAccount removes the session account from the roster
func (h *Handler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.Username(r.Context())
	if !ok {
		h.writeError(w, service.ErrNoSession)
		return
	}
	var req closeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.CloseAccount(username, req.Username, req.PIN); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrBadCredentials), errors.Is(err, service.ErrNoSession):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ledger.ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, ledger.ErrLoanIneligible):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ledger.ErrBadAmount), errors.Is(err, ledger.ErrSameAccount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Errorf("Unhandled error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
