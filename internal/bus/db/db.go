package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"smartfare/internal/bus"
	"smartfare/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// FindAvailableBuses returns open schedules for the exact directed route
// and date, ordered by departure time. Schedules with no seats left or not
// in SCHEDULED state are filtered out here so the search result is directly
// bookable.
func (d *DB) FindAvailableBuses(fromLocationID, toLocationID int64, travelDate string) ([]models.Schedule, error) {
	schedules := []models.Schedule{}
	err := d.Bun.NewSelect().
		Model(&schedules).
		Relation("Bus").
		Relation("Bus.BusType").
		Relation("Route").
		Relation("Route.FromLocation").
		Relation("Route.ToLocation").
		Where("route.from_location_id = ?", fromLocationID).
		Where("route.to_location_id = ?", toLocationID).
		Where("schedule.schedule_date = ?", travelDate).
		Where("schedule.available_seats > 0").
		Where("schedule.status = ?", models.ScheduleStatusScheduled).
		Order("schedule.departure_time ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (d *DB) GetScheduleByID(id int64) (*models.Schedule, error) {
	var schedule models.Schedule
	err := d.Bun.NewSelect().
		Model(&schedule).
		Relation("Bus").
		Relation("Bus.BusType").
		Relation("Route").
		Relation("Route.FromLocation").
		Relation("Route.ToLocation").
		Where("schedule.id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", bus.ErrScheduleNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (d *DB) GetAllLocations() ([]models.Location, error) {
	locations := []models.Location{}
	err := d.Bun.NewSelect().
		Model(&locations).
		Order("name ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// SearchLocations matches the query as a case-insensitive substring of the
// location name or city.
func (d *DB) SearchLocations(query string) ([]models.Location, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	locations := []models.Location{}
	err := d.Bun.NewSelect().
		Model(&locations).
		Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", pattern, pattern).
		Order("name ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return locations, nil
}
