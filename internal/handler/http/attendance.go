package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	attendanceService "github.com/chronohr/attendance-backend-go/internal/service/attendance"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler struct {
	service *attendanceService.Service
}

func NewAttendanceHandler(service *attendanceService.Service) AttendanceHandler {
	return AttendanceHandler{service: service}
}

// IngestPunches accepts one device sync cycle of raw punches.
func (h *AttendanceHandler) IngestPunches(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := middleware.DeviceIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing device credentials")
		return
	}

	var req attendance.IngestPunchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	accepted, err := h.service.IngestPunches(r.Context(), deviceID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punches accepted", map[string]int{"accepted": accepted})
}

// Reconcile rebuilds the record of one employee-day from its stored punches.
func (h *AttendanceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req attendance.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	record, err := h.service.Reconcile(r.Context(), req.EmployeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewRecordResponse(record))
}

// GetByID fetches one attendance record.
func (h *AttendanceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewRecordResponse(record))
}

// List lists attendance records with filters and pagination.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RecordFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("date_from"); v != "" {
		filter.DateFrom = &v
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		filter.DateTo = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := attendance.Status(v)
		filter.Status = &status
	}

	records, total, err := h.service.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.NewRecordResponse(record))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, responses, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}
