package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	shiftService "github.com/chronohr/attendance-backend-go/internal/service/shift"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler struct {
	service  *shiftService.Service
	resolver *shiftService.Resolver
}

func NewShiftHandler(service *shiftService.Service, resolver *shiftService.Resolver) ShiftHandler {
	return ShiftHandler{service: service, resolver: resolver}
}

// List lists the active shift templates.
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.service.ShiftRepository.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// Assign creates a shift assignment for an employee.
func (h *ShiftHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.service.AssignShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned", shift.NewAssignmentResponse(created))
}

// Resolve answers which shift governs an employee on a date.
func (h *ShiftHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "date query parameter must be in YYYY-MM-DD format", nil)
		return
	}

	resolved, err := h.resolver.Resolve(r.Context(), chi.URLParam(r, "employeeID"), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if resolved == nil {
		response.Success(w, nil)
		return
	}

	response.Success(w, resolved)
}
