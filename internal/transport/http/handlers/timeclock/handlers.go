package timeclockhandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/auth"
	"paydesk/internal/domain/timeclock"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
)

type Handler struct {
	Service *timeclock.Service
}

func NewHandler(service *timeclock.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/clock", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/in", h.handleClockIn)
		r.Post("/out", h.handleClockOut)
		r.Post("/days", h.handleSaveDays)
		r.Get("/{year}/{month}", h.handleMonth)
	})
}

type punchRequest struct {
	EmployeeID string `json:"employeeId"`
	Task       string `json:"task"`
}

// employeeFor resolves which employee the punch applies to. Employees may
// only punch their own card; managers and owners may name any employee.
func employeeFor(r *http.Request, requested string) (string, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return "", false
	}
	if user.Role == auth.RoleOwner || user.Role == auth.RoleManager {
		if requested != "" {
			return requested, true
		}
	}
	if user.EmployeeID == "" {
		return "", false
	}
	if requested != "" && requested != user.EmployeeID {
		return "", false
	}
	return user.EmployeeID, true
}

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	var payload punchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	employeeID, ok := employeeFor(r, payload.EmployeeID)
	if !ok {
		api.Fail(w, r, http.StatusForbidden, "forbidden", "cannot punch for this employee")
		return
	}

	entry, err := h.Service.ClockIn(r.Context(), employeeID, time.Now())
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "clock_failed", "failed to record clock in")
		return
	}
	api.Success(w, r, entry)
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	var payload punchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	employeeID, ok := employeeFor(r, payload.EmployeeID)
	if !ok {
		api.Fail(w, r, http.StatusForbidden, "forbidden", "cannot punch for this employee")
		return
	}

	entry, err := h.Service.ClockOut(r.Context(), employeeID, payload.Task, time.Now())
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "clock_failed", "failed to record clock out")
		return
	}
	api.Success(w, r, entry)
}

type saveDaysRequest struct {
	EmployeeID string           `json:"employeeId"`
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	Entries    []map[string]any `json:"work_day_entries"`
}

func (h *Handler) handleSaveDays(w http.ResponseWriter, r *http.Request) {
	var payload saveDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	if payload.Year < 2000 || payload.Month < 1 || payload.Month > 12 {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "year and month are required")
		return
	}
	employeeID, ok := employeeFor(r, payload.EmployeeID)
	if !ok {
		api.Fail(w, r, http.StatusForbidden, "forbidden", "cannot save for this employee")
		return
	}

	record, err := h.Service.SaveDays(r.Context(), employeeID, payload.Year, payload.Month, payload.Entries)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "save_failed", "failed to save day entries")
		return
	}
	api.Success(w, r, record)
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_path", "year must be numeric")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		api.Fail(w, r, http.StatusBadRequest, "invalid_path", "month must be 1-12")
		return
	}
	employeeID, ok := employeeFor(r, r.URL.Query().Get("employeeId"))
	if !ok {
		api.Fail(w, r, http.StatusForbidden, "forbidden", "cannot view this employee")
		return
	}

	record, err := h.Service.Month(r.Context(), employeeID, year, month)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "load_failed", "failed to load month")
		return
	}
	api.Success(w, r, record)
}
