package http

import (
	"encoding/json"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	correctionService "github.com/chronohr/attendance-backend-go/internal/service/correction"
	"github.com/go-chi/chi/v5"
)

type CorrectionHandler struct {
	service *correctionService.Service
}

func NewCorrectionHandler(service *correctionService.Service) CorrectionHandler {
	return CorrectionHandler{service: service}
}

// Create files a correction against an attendance record.
func (h *CorrectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req correction.CreateCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.service.Request(r.Context(), actorID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction submitted", correction.NewCorrectionResponse(created))
}

// Approve applies a pending correction to its attendance record.
func (h *CorrectionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	approved, err := h.service.Approve(r.Context(), chi.URLParam(r, "id"), actorID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction approved", correction.NewCorrectionResponse(approved))
}

// Reject declines a pending correction.
func (h *CorrectionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req correction.RejectCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rejected, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"), actorID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction rejected", correction.NewCorrectionResponse(rejected))
}

// GetByID fetches one correction.
func (h *CorrectionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCorrection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, correction.NewCorrectionResponse(c))
}

// ListByAttendance lists the correction history of one record.
func (h *CorrectionHandler) ListByAttendance(w http.ResponseWriter, r *http.Request) {
	corrections, err := h.service.ListByAttendance(r.Context(), chi.URLParam(r, "attendanceID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]correction.CorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		responses = append(responses, correction.NewCorrectionResponse(c))
	}

	response.Success(w, responses)
}

// ListPending lists corrections awaiting a decision.
func (h *CorrectionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	corrections, err := h.service.ListPending(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]correction.CorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		responses = append(responses, correction.NewCorrectionResponse(c))
	}

	response.Success(w, responses)
}
