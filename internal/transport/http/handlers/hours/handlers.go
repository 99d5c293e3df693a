package hourshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/auth"
	"paydesk/internal/domain/ledger"
	"paydesk/internal/domain/submissions"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
)

type Handler struct {
	Service *submissions.Service
	Ledger  ledger.Store
}

func NewHandler(service *submissions.Service, store ledger.Store) *Handler {
	return &Handler{Service: service, Ledger: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/hours", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleOwner, auth.RoleManager))
		r.Post("/", h.handleSubmit)
		r.Get("/{year}", h.handleYear)
		r.Get("/{year}/employees/{employeeID}", h.handleEmployeeYear)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload submissions.Submission
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	if payload.EmployeeID == "" {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "employee_id is required")
		return
	}
	if payload.Year < 2000 || payload.Month < 1 || payload.Month > 12 {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "year and month are required")
		return
	}

	result, err := h.Service.Submit(r.Context(), payload)
	if errors.Is(err, submissions.ErrAlreadyExists) {
		api.Fail(w, r, http.StatusConflict, "already_exists", err.Error())
		return
	}
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "submit_failed", "failed to save month")
		return
	}
	api.Created(w, r, result)
}

func (h *Handler) handleYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_path", "year must be numeric")
		return
	}

	yearLedger, err := h.Ledger.Load(r.Context(), year)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "load_failed", "failed to load year ledger")
		return
	}
	api.Success(w, r, yearLedger)
}

func (h *Handler) handleEmployeeYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_path", "year must be numeric")
		return
	}

	record, found, err := h.Ledger.LoadEmployee(r.Context(), year, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "load_failed", "failed to load employee year")
		return
	}
	if !found {
		api.Fail(w, r, http.StatusNotFound, "not_found", "no ledger record for this employee and year")
		return
	}
	api.Success(w, r, record)
}
