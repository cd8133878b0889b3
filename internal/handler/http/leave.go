package http

import (
	"encoding/json"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	leaveService "github.com/chronohr/attendance-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler struct {
	service *leaveService.Service
}

func NewLeaveHandler(service *leaveService.Service) LeaveHandler {
	return LeaveHandler{service: service}
}

// CreateRequest files a leave application.
func (h *LeaveHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.service.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave.NewRequestResponse(created))
}

// Approve approves a pending leave request and deducts the balance.
func (h *LeaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	approved, err := h.service.Approve(r.Context(), chi.URLParam(r, "id"), actorID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", leave.NewRequestResponse(approved))
}

// Reject declines a pending leave request.
func (h *LeaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rejected, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"), actorID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", leave.NewRequestResponse(rejected))
}

// Cancel cancels a pending or approved request before it starts.
func (h *LeaveHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cancelled, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"), actorID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", leave.NewRequestResponse(cancelled))
}

// Withdraw is the employee-initiated cancellation.
func (h *LeaveHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	withdrawn, err := h.service.Withdraw(r.Context(), chi.URLParam(r, "id"), actorID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request withdrawn", leave.NewRequestResponse(withdrawn))
}

// GetRequest fetches one leave request.
func (h *LeaveHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := h.service.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewRequestResponse(request))
}

// ListRequests lists an employee's leave requests.
func (h *LeaveHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	var statuses []leave.RequestStatus
	if v := r.URL.Query().Get("status"); v != "" {
		statuses = append(statuses, leave.RequestStatus(v))
	}

	requests, err := h.service.ListRequests(r.Context(), chi.URLParam(r, "employeeID"), statuses)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.NewRequestResponse(request))
	}

	response.Success(w, responses)
}

// ListBalances lists an employee's leave ledger for a year.
func (h *LeaveHandler) ListBalances(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", currentYear())

	balances, err := h.service.ListBalances(r.Context(), chi.URLParam(r, "employeeID"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, balance := range balances {
		responses = append(responses, leave.NewBalanceResponse(balance))
	}

	response.Success(w, responses)
}
