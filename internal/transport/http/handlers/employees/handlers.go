package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/auth"
	"paydesk/internal/domain/employees"
	"paydesk/internal/domain/ledger"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
)

type Handler struct {
	Store *employees.Store
}

func NewHandler(store *employees.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleOwner, auth.RoleManager))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "list_failed", "failed to list employees")
		return
	}
	if list == nil {
		list = []employees.Employee{}
	}
	api.Success(w, r, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, r, http.StatusNotFound, "not_found", "employee not found")
		return
	}
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "get_failed", "failed to load employee")
		return
	}
	api.Success(w, r, employee)
}

type createRequest struct {
	Name        string `json:"name"`
	IDNumber    string `json:"idNumber"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	if payload.Name == "" {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "name is required")
		return
	}
	if payload.DateOfBirth != "" {
		if _, err := time.Parse(ledger.DateLayout, payload.DateOfBirth); err != nil {
			api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "dateOfBirth must be YYYY-MM-DD")
			return
		}
	}

	id, err := h.Store.Create(r.Context(), employees.Employee{
		Name:        payload.Name,
		IDNumber:    payload.IDNumber,
		DateOfBirth: payload.DateOfBirth,
	})
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "create_failed", "failed to create employee")
		return
	}
	api.Created(w, r, map[string]string{"id": id})
}
