package http

import (
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/summary"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	summaryService "github.com/chronohr/attendance-backend-go/internal/service/summary"
	"github.com/go-chi/chi/v5"
)

type SummaryHandler struct {
	service *summaryService.Service
}

func NewSummaryHandler(service *summaryService.Service) SummaryHandler {
	return SummaryHandler{service: service}
}

// Generate builds and stores the summary for one employee-month.
func (h *SummaryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonth(r)
	if !ok {
		response.BadRequest(w, "year and month query parameters are required", nil)
		return
	}

	generated, err := h.service.Generate(r.Context(), chi.URLParam(r, "employeeID"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summary generated", summary.NewSummaryResponse(generated))
}

// GenerateAll regenerates summaries for every active employee.
func (h *SummaryHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonth(r)
	if !ok {
		response.BadRequest(w, "year and month query parameters are required", nil)
		return
	}

	count, err := h.service.GenerateAll(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summaries generated", map[string]int{"employees": count})
}

// GetByEmployeeMonth fetches a stored summary.
func (h *SummaryHandler) GetByEmployeeMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonth(r)
	if !ok {
		response.BadRequest(w, "year and month query parameters are required", nil)
		return
	}

	stored, err := h.service.GetSummary(r.Context(), chi.URLParam(r, "employeeID"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary.NewSummaryResponse(stored))
}

func yearMonth(r *http.Request) (int, int, bool) {
	year := queryInt(r, "year", 0)
	month := queryInt(r, "month", 0)
	if year < 2000 || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
