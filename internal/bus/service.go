package bus

import (
	"fmt"

	"smartfare/internal/logger"
	"smartfare/internal/models"
)

type DBLayer interface {
	FindAvailableBuses(fromLocationID, toLocationID int64, travelDate string) ([]models.Schedule, error)
	GetScheduleByID(id int64) (*models.Schedule, error)
	GetAllLocations() ([]models.Location, error)
	SearchLocations(query string) ([]models.Location, error)
}

type BusService struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewBusService(db DBLayer, log *logger.Logger) *BusService {
	return &BusService{DB: db, Logger: log}
}

func (s *BusService) GetAllLocations() ([]models.Location, error) {
	return s.DB.GetAllLocations()
}

func (s *BusService) SearchLocations(query string) ([]models.Location, error) {
	return s.DB.SearchLocations(query)
}

// GetAvailableBuses validates the search parameters before touching the
// store, then returns the open schedules for the directed (from, to) pair
// on the travel date. A store fault degrades to an empty result: "no buses
// found" is a valid answer and the search path must not surface internal
// errors to the caller.
func (s *BusService) GetAvailableBuses(fromLocationID, toLocationID int64, travelDate string) ([]models.Schedule, error) {
	if fromLocationID <= 0 || toLocationID <= 0 || travelDate == "" {
		return nil, fmt.Errorf("%w: fromLocationId, toLocationId and travelDate are required", ErrValidation)
	}
	if fromLocationID == toLocationID {
		return nil, fmt.Errorf("%w: from and to locations cannot be the same", ErrValidation)
	}

	schedules, err := s.DB.FindAvailableBuses(fromLocationID, toLocationID, travelDate)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("BUS", fmt.Sprintf("Search failed for %d -> %d on %s: %v", fromLocationID, toLocationID, travelDate, err))
		}
		return []models.Schedule{}, nil
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	return schedules, nil
}

func (s *BusService) GetScheduleByID(id int64) (*models.Schedule, error) {
	return s.DB.GetScheduleByID(id)
}
