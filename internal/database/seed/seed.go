package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"smartfare/internal/logger"
	"smartfare/internal/models"
)

type scheduleEntry struct {
	busIdx    int
	routeIdx  int
	departure string
	arrival   string
	fare      float64
	seats     int
}

// One day of departures across all twelve route directions. Repeated for
// today and the next seven days.
var dailySchedules = []scheduleEntry{
	// Koyambedu → Tambaram
	{0, 0, "06:00", "06:45", 45.00, 35},
	{1, 0, "08:30", "09:15", 35.00, 45},
	{2, 0, "14:00", "14:45", 40.00, 40},
	{3, 0, "20:00", "20:45", 50.00, 30},
	// Tambaram → Koyambedu
	{0, 1, "07:00", "07:45", 45.00, 38},
	{1, 1, "10:00", "10:45", 35.00, 48},
	{2, 1, "16:00", "16:45", 40.00, 42},
	{3, 1, "21:30", "22:15", 50.00, 32},
	// Koyambedu → Velachery
	{0, 2, "07:00", "07:35", 35.00, 36},
	{2, 2, "15:30", "16:05", 30.00, 40},
	{3, 2, "19:00", "19:35", 40.00, 28},
	// Velachery → Koyambedu
	{0, 3, "08:00", "08:35", 35.00, 37},
	{1, 3, "13:00", "13:35", 25.00, 46},
	{2, 3, "18:00", "18:35", 30.00, 41},
	// Koyambedu → Broadway
	{0, 4, "06:30", "06:55", 25.00, 38},
	{1, 4, "09:00", "09:25", 20.00, 47},
	{2, 4, "12:30", "12:55", 22.00, 43},
	{3, 4, "17:00", "17:25", 28.00, 31},
	// Broadway → Koyambedu
	{0, 5, "07:30", "07:55", 25.00, 39},
	{1, 5, "11:00", "11:25", 20.00, 49},
	{2, 5, "14:30", "14:55", 22.00, 44},
	{3, 5, "19:30", "19:55", 28.00, 33},
	// Broadway → Tambaram
	{1, 6, "08:00", "08:50", 40.00, 46},
	{2, 6, "13:30", "14:20", 38.00, 42},
	{3, 6, "18:30", "19:20", 45.00, 32},
	// Tambaram → Broadway
	{0, 7, "06:30", "07:20", 40.00, 37},
	{1, 7, "12:00", "12:50", 38.00, 48},
	{2, 7, "17:30", "18:20", 45.00, 43},
	// Broadway → Velachery
	{0, 8, "09:00", "09:40", 32.00, 36},
	{2, 8, "14:00", "14:40", 30.00, 41},
	{3, 8, "20:00", "20:40", 35.00, 29},
	// Velachery → Broadway
	{0, 9, "07:30", "08:10", 32.00, 38},
	{1, 9, "11:30", "12:10", 28.00, 47},
	{2, 9, "16:30", "17:10", 30.00, 42},
	// Tambaram → Velachery
	{1, 10, "08:30", "09:00", 28.00, 45},
	{2, 10, "13:00", "13:30", 25.00, 43},
	{3, 10, "18:00", "18:30", 30.00, 31},
	// Velachery → Tambaram
	{0, 11, "09:30", "10:00", 28.00, 39},
	{1, 11, "14:30", "15:00", 25.00, 49},
	{2, 11, "19:30", "20:00", 30.00, 44},
}

// Run populates the sample Chennai network: locations, bus types, buses,
// directed routes and eight days of schedules. Skips everything when
// locations already exist.
func Run(ctx context.Context, db *bun.DB, log *logger.Logger) error {
	count, err := db.NewSelect().Model((*models.Location)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		log.Info("SEED", fmt.Sprintf("Database already contains %d locations, skipping initialization", count))
		return nil
	}

	log.Info("SEED", "Creating fresh database with sample data")

	locations := []models.Location{
		{Name: "Koyambedu Bus Terminal", City: "Chennai", State: "Tamil Nadu", Latitude: 13.0732, Longitude: 80.1986},
		{Name: "Tambaram Bus Stand", City: "Chennai", State: "Tamil Nadu", Latitude: 12.9249, Longitude: 80.1000},
		{Name: "Velachery Bus Depot", City: "Chennai", State: "Tamil Nadu", Latitude: 12.9759, Longitude: 80.2207},
		{Name: "Broadway Bus Terminal", City: "Chennai", State: "Tamil Nadu", Latitude: 13.0878, Longitude: 80.2785},
	}
	if _, err := db.NewInsert().Model(&locations).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed locations: %w", err)
	}

	busTypes := []models.BusType{
		{TypeName: "AC Deluxe", Description: "Air conditioned deluxe bus with comfortable seating"},
		{TypeName: "Ordinary", Description: "Regular city bus service"},
		{TypeName: "AC Express", Description: "Air conditioned express bus service"},
		{TypeName: "Volvo AC", Description: "Premium Volvo bus with luxury amenities"},
	}
	if _, err := db.NewInsert().Model(&busTypes).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed bus types: %w", err)
	}

	buses := []models.Bus{
		{BusNumber: "TN09N2345", BusTypeID: busTypes[0].ID, TotalSeats: 40, OperatorName: "MTC Chennai", Status: models.BusStatusActive},
		{BusNumber: "TN09P4567", BusTypeID: busTypes[1].ID, TotalSeats: 50, OperatorName: "TNSTC", Status: models.BusStatusActive},
		{BusNumber: "TN09Q7890", BusTypeID: busTypes[2].ID, TotalSeats: 45, OperatorName: "Parveen Travels", Status: models.BusStatusActive},
		{BusNumber: "TN09R1234", BusTypeID: busTypes[3].ID, TotalSeats: 35, OperatorName: "KPN Travels", Status: models.BusStatusActive},
	}
	if _, err := db.NewInsert().Model(&buses).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed buses: %w", err)
	}

	routePairs := []struct {
		from, to int
		distance float64
		duration int
		fare     float64
	}{
		{0, 1, 25.5, 45, 35.00},
		{1, 0, 25.5, 45, 35.00},
		{0, 2, 18.2, 35, 25.00},
		{2, 0, 18.2, 35, 25.00},
		{0, 3, 12.5, 25, 20.00},
		{3, 0, 12.5, 25, 20.00},
		{3, 1, 30.8, 50, 40.00},
		{1, 3, 30.8, 50, 40.00},
		{3, 2, 22.5, 40, 30.00},
		{2, 3, 22.5, 40, 30.00},
		{1, 2, 15.8, 30, 25.00},
		{2, 1, 15.8, 30, 25.00},
	}
	routes := make([]models.Route, len(routePairs))
	for i, rp := range routePairs {
		routes[i] = models.Route{
			FromLocationID:  locations[rp.from].ID,
			ToLocationID:    locations[rp.to].ID,
			DistanceKM:      rp.distance,
			DurationMinutes: rp.duration,
			BaseFare:        rp.fare,
		}
	}
	if _, err := db.NewInsert().Model(&routes).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed routes: %w", err)
	}

	today := time.Now()
	var schedules []models.Schedule
	for day := 0; day <= 7; day++ {
		date := today.AddDate(0, 0, day).Format("2006-01-02")
		for _, entry := range dailySchedules {
			schedules = append(schedules, models.Schedule{
				BusID:          buses[entry.busIdx].ID,
				RouteID:        routes[entry.routeIdx].ID,
				DepartureTime:  entry.departure,
				ArrivalTime:    entry.arrival,
				Fare:           entry.fare,
				AvailableSeats: entry.seats,
				ScheduleDate:   date,
				Status:         models.ScheduleStatusScheduled,
			})
		}
	}
	if _, err := db.NewInsert().Model(&schedules).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed schedules: %w", err)
	}

	log.Info("SEED", fmt.Sprintf("Created %d locations, %d buses, %d routes, %d schedules",
		len(locations), len(buses), len(routes), len(schedules)))
	return nil
}
