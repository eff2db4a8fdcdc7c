package bus_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"smartfare/internal/bus"
	"smartfare/internal/logger"
	"smartfare/internal/utils"
)

type Handler struct {
	BusService *bus.BusService
	Logger     *logger.Logger
}

func (h *Handler) GetAllLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.BusService.GetAllLocations()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetAllLocations: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, locations)
}

func (h *Handler) SearchLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.WriteError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	locations, err := h.BusService.SearchLocations(query)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("SearchLocations: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, locations)
}

// SearchBuses rejects missing ids, equal from/to and a missing or malformed
// date before the store is ever touched.
func (h *Handler) SearchBuses(w http.ResponseWriter, r *http.Request) {
	fromID, err1 := strconv.ParseInt(r.URL.Query().Get("fromLocationId"), 10, 64)
	toID, err2 := strconv.ParseInt(r.URL.Query().Get("toLocationId"), 10, 64)
	travelDate := r.URL.Query().Get("travelDate")

	if err1 != nil || err2 != nil || travelDate == "" {
		utils.WriteError(w, http.StatusBadRequest, "fromLocationId, toLocationId and travelDate are required")
		return
	}
	if _, err := time.Parse("2006-01-02", travelDate); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "travelDate must be formatted as yyyy-mm-dd")
		return
	}

	schedules, err := h.BusService.GetAvailableBuses(fromID, toID, travelDate)
	if err != nil {
		if errors.Is(err, bus.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("SearchBuses: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.Logger.Info("API", fmt.Sprintf("SearchBuses: %d -> %d on %s, %d results", fromID, toID, travelDate, len(schedules)))
	utils.WriteJSON(w, http.StatusOK, schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "scheduleId"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "scheduleId must be an integer")
		return
	}

	schedule, err := h.BusService.GetScheduleByID(id)
	if err != nil {
		if errors.Is(err, bus.ErrScheduleNotFound) {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GetSchedule: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, schedule)
}
