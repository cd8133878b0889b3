package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	holidayService "github.com/chronohr/attendance-backend-go/internal/service/holiday"
)

type HolidayHandler struct {
	service *holidayService.Service
}

func NewHolidayHandler(service *holidayService.Service) HolidayHandler {
	return HolidayHandler{service: service}
}

// Create adds a holiday to the calendar.
func (h *HolidayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", holiday.NewHolidayResponse(created))
}

// List lists the calendar entries overlapping a year, defaulting to the
// current one.
func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", currentYear())
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := h.service.ListCalendar(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, entry := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(entry))
	}

	response.Success(w, responses)
}
