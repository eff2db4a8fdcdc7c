package schema

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"smartfare/internal/models"
)

// Create builds all tables and the indexes that back the booking invariants.
// It is idempotent and safe to run on every startup; the same code prepares
// the in-memory test databases.
func Create(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Location)(nil),
		(*models.BusType)(nil),
		(*models.Bus)(nil),
		(*models.Route)(nil),
		(*models.Schedule)(nil),
		(*models.Passenger)(nil),
		(*models.Booking)(nil),
	}

	for _, table := range tables {
		if _, err := db.NewCreateTable().Model(table).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", table, err)
		}
	}

	// One CONFIRMED booking per (schedule, seat). Cancelled bookings free the
	// seat, so the index is partial on booking_status.
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_schedule_seat
			ON bookings (schedule_id, seat_number)
			WHERE booking_status = 'CONFIRMED'`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_route_date
			ON bus_schedules (route_id, schedule_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_passenger
			ON bookings (passenger_id)`,
	}

	for _, ddl := range indexes {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
