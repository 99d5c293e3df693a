package reportshandler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/auth"
	"paydesk/internal/domain/ledger"
	"paydesk/internal/domain/reports"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
)

type Handler struct {
	Ledger ledger.Store
}

func NewHandler(store ledger.Store) *Handler {
	return &Handler{Ledger: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleOwner, auth.RoleManager))
		r.Get("/{form}/{year}/{month}", h.handleForm)
		r.Get("/{form}/{year}/{month}/export", h.handleExport)
	})
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request) (reports.Aggregate, bool) {
	variant, ok := reports.ParseVariant(chi.URLParam(r, "form"))
	if !ok {
		api.Fail(w, r, http.StatusNotFound, "unknown_form", "unknown report form")
		return reports.Aggregate{}, false
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_path", "year must be numeric")
		return reports.Aggregate{}, false
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		api.Fail(w, r, http.StatusBadRequest, "invalid_path", "month must be 1-12")
		return reports.Aggregate{}, false
	}

	yearLedger, err := h.Ledger.Load(r.Context(), year)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "load_failed", "failed to load year ledger")
		return reports.Aggregate{}, false
	}

	return reports.Build(yearLedger, year, month, variant, time.Now()), true
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	agg, ok := h.build(w, r)
	if !ok {
		return
	}
	api.Success(w, r, agg)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	agg, ok := h.build(w, r)
	if !ok {
		return
	}

	name := fmt.Sprintf("form-%s-%d-%02d", agg.Variant, agg.Year, agg.Month)
	switch r.URL.Query().Get("format") {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
		if err := reports.WriteCSV(w, agg); err != nil {
			api.Fail(w, r, http.StatusInternalServerError, "export_failed", "failed to write csv")
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".pdf"))
		if err := reports.WritePDF(w, agg); err != nil {
			api.Fail(w, r, http.StatusInternalServerError, "export_failed", "failed to write pdf")
		}
	default:
		api.Fail(w, r, http.StatusBadRequest, "invalid_format", "format must be csv or pdf")
	}
}
