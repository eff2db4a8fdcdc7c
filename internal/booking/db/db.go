package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"smartfare/internal/booking"
	"smartfare/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetScheduleByID loads a schedule with its bus and route, which the
// booking engine needs for fare capture and the QR payload.
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
		return nil, fmt.Errorf("%w: id %d", booking.ErrScheduleNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ReserveSeat runs the reservation as one transaction: passenger upsert,
// seat-conflict check, booking insert and the conditional seat decrement.
// If any step fails the whole transaction rolls back, so a failed
// reservation never leaves a passenger, booking or decrement behind.
//
// The partial unique index on (schedule_id, seat_number) and the conditional
// decrement are what actually decide concurrent races; the explicit checks
// exist to produce descriptive errors.
func (d *DB) ReserveSeat(passenger models.Passenger, b models.Booking) (*models.Booking, error) {
	ctx := context.Background()

	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Upsert by phone: a repeat booking refreshes the stored name.
		_, err := tx.NewInsert().
			Model(&passenger).
			On("CONFLICT (phone) DO UPDATE").
			Set("name = EXCLUDED.name").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert passenger: %w", err)
		}

		var stored models.Passenger
		err = tx.NewSelect().
			Model(&stored).
			Where("phone = ?", passenger.Phone).
			Limit(1).
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to load passenger: %w", err)
		}
		b.PassengerID = stored.ID

		taken, err := tx.NewSelect().
			Model((*models.Booking)(nil)).
			Where("schedule_id = ?", b.ScheduleID).
			Where("seat_number = ?", b.SeatNumber).
			Where("booking_status = ?", models.BookingStatusConfirmed).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check seat: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: seat %s on schedule %d", booking.ErrSeatAlreadyBooked, b.SeatNumber, b.ScheduleID)
		}

		res, err := tx.NewUpdate().
			Model((*models.Schedule)(nil)).
			Set("available_seats = available_seats - 1").
			Where("id = ?", b.ScheduleID).
			Where("available_seats > 0").
			Where("status = ?", models.ScheduleStatusScheduled).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to decrement seats: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: schedule %d", booking.ErrNoSeatsAvailable, b.ScheduleID)
		}

		if _, err := tx.NewInsert().Model(&b).Exec(ctx); err != nil {
			if isUniqueViolation(err, "idx_bookings_schedule_seat") {
				return fmt.Errorf("%w: seat %s on schedule %d", booking.ErrSeatAlreadyBooked, b.SeatNumber, b.ScheduleID)
			}
			if isUniqueViolation(err, "booking_reference") {
				return fmt.Errorf("%w: %s", booking.ErrReferenceCollision, b.BookingReference)
			}
			return fmt.Errorf("failed to insert booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return d.GetBookingByReference(b.BookingReference)
}

func (d *DB) GetBookingByReference(reference string) (*models.Booking, error) {
	var b models.Booking
	err := bookingRelations(d.Bun.NewSelect().Model(&b)).
		Where("booking.booking_reference = ?", reference).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, reference)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBookingsByPhone returns the passenger's bookings, newest first.
func (d *DB) GetBookingsByPhone(phone string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := bookingRelations(d.Bun.NewSelect().Model(&bookings)).
		Where("passenger.phone = ?", phone).
		Order("booking.booking_date DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (d *DB) UpdatePaymentStatus(reference, transactionID string) (*models.Booking, error) {
	res, err := d.Bun.NewUpdate().
		Model((*models.Booking)(nil)).
		Set("payment_status = ?", models.PaymentStatusCompleted).
		Set("payment_transaction_id = ?", transactionID).
		Where("booking_reference = ?", reference).
		Exec(context.Background())
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, reference)
	}
	return d.GetBookingByReference(reference)
}

func (d *DB) CountBookings() (int, error) {
	return d.Bun.NewSelect().Model((*models.Booking)(nil)).Count(context.Background())
}

func bookingRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("Passenger").
		Relation("Schedule").
		Relation("Schedule.Bus").
		Relation("Schedule.Bus.BusType").
		Relation("Schedule.Route").
		Relation("Schedule.Route.FromLocation").
		Relation("Schedule.Route.ToLocation")
}

// isUniqueViolation matches both the sqlite ("UNIQUE constraint failed")
// and postgres ("duplicate key value violates unique constraint") message
// shapes against the offending identifier.
func isUniqueViolation(err error, identifier string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate key") {
		return false
	}
	return strings.Contains(msg, strings.ToLower(identifier))
}
