package health

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/uptrace/bun"

	"smartfare/internal/logger"
	"smartfare/internal/models"
	"smartfare/internal/utils"
)

type Handler struct {
	Bun    *bun.DB
	Logger *logger.Logger
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":      "UP",
		"timestamp":   time.Now().UnixMilli(),
		"application": "Smart Fare Booking Service",
	}

	counts, err := h.counts(r)
	if err != nil {
		h.Logger.Error("HEALTH", fmt.Sprintf("Database check failed: %v", err))
		health["status"] = "DOWN"
		health["error"] = "database unavailable"
		utils.WriteJSON(w, http.StatusServiceUnavailable, health)
		return
	}
	counts["status"] = "CONNECTED"
	health["database"] = counts

	health["system"] = map[string]interface{}{
		"goVersion":  runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"cpus":       runtime.NumCPU(),
	}

	utils.WriteJSON(w, http.StatusOK, health)
}

func (h *Handler) DatabaseHealth(w http.ResponseWriter, r *http.Request) {
	counts, err := h.counts(r)
	if err != nil {
		h.Logger.Error("HEALTH", fmt.Sprintf("Database check failed: %v", err))
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "ERROR",
			"error":  "database unavailable",
		})
		return
	}

	counts["status"] = "HEALTHY"
	if counts["locations"] == 0 || counts["buses"] == 0 || counts["routes"] == 0 || counts["schedules"] == 0 {
		counts["status"] = "EMPTY"
		counts["message"] = "Database is empty - data initialization may be needed"
	}

	utils.WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) counts(r *http.Request) (map[string]interface{}, error) {
	ctx := r.Context()

	counts := map[string]interface{}{}
	tables := map[string]interface{}{
		"locations":  (*models.Location)(nil),
		"buses":      (*models.Bus)(nil),
		"routes":     (*models.Route)(nil),
		"schedules":  (*models.Schedule)(nil),
		"passengers": (*models.Passenger)(nil),
		"bookings":   (*models.Booking)(nil),
	}
	for name, model := range tables {
		count, err := h.Bun.NewSelect().Model(model).Count(ctx)
		if err != nil {
			return nil, err
		}
		counts[name] = count
	}
	return counts, nil
}
