package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"smartfare/internal/booking"
	"smartfare/internal/booking/db"
	"smartfare/internal/database/schema"
	"smartfare/internal/models"
	"smartfare/internal/utils"
)

// setupTestDB opens a fresh named in-memory database per test. Shared cache
// plus a single connection makes concurrent transactions serialize against
// the same database, which is what the race tests rely on.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, schema.Create(context.Background(), bunDB))

	t.Cleanup(func() { bunDB.Close() })

	return &db.DB{Bun: bunDB}
}

// seedSchedule inserts one bookable trip and returns its schedule id.
func seedSchedule(t *testing.T, d *db.DB, availableSeats int) int64 {
	t.Helper()
	ctx := context.Background()

	from := models.Location{Name: "Koyambedu", City: "Chennai", State: "Tamil Nadu"}
	to := models.Location{Name: "Tambaram", City: "Chennai", State: "Tamil Nadu"}
	_, err := d.Bun.NewInsert().Model(&from).Exec(ctx)
	require.NoError(t, err)
	_, err = d.Bun.NewInsert().Model(&to).Exec(ctx)
	require.NoError(t, err)

	busType := models.BusType{TypeName: "AC Seater", Description: "Air conditioned seater"}
	_, err = d.Bun.NewInsert().Model(&busType).Exec(ctx)
	require.NoError(t, err)

	bus := models.Bus{
		BusNumber:    "TN09N2345",
		BusTypeID:    busType.ID,
		TotalSeats:   40,
		OperatorName: "MTC Chennai",
		Status:       models.BusStatusActive,
	}
	_, err = d.Bun.NewInsert().Model(&bus).Exec(ctx)
	require.NoError(t, err)

	route := models.Route{
		FromLocationID:  from.ID,
		ToLocationID:    to.ID,
		DistanceKM:      27,
		DurationMinutes: 55,
		BaseFare:        35,
	}
	_, err = d.Bun.NewInsert().Model(&route).Exec(ctx)
	require.NoError(t, err)

	schedule := models.Schedule{
		BusID:          bus.ID,
		RouteID:        route.ID,
		DepartureTime:  "06:30",
		ArrivalTime:    "07:25",
		Fare:           35,
		AvailableSeats: availableSeats,
		ScheduleDate:   "2026-09-10",
		Status:         models.ScheduleStatusScheduled,
	}
	_, err = d.Bun.NewInsert().Model(&schedule).Exec(ctx)
	require.NoError(t, err)

	return schedule.ID
}

func newBooking(scheduleID int64, seat string) models.Booking {
	reference := utils.GenerateBookingReference()
	return models.Booking{
		BookingReference: reference,
		ScheduleID:       scheduleID,
		SeatNumber:       seat,
		FareAmount:       35,
		PaymentStatus:    models.PaymentStatusPending,
		PaymentMethod:    "UPI",
		BookingStatus:    models.BookingStatusConfirmed,
		QRCodeData:       "BOOKING:" + reference,
		BookingDate:      time.Now(),
	}
}

func availableSeats(t *testing.T, d *db.DB, scheduleID int64) int {
	t.Helper()
	var schedule models.Schedule
	err := d.Bun.NewSelect().
		Model(&schedule).
		Where("schedule.id = ?", scheduleID).
		Scan(context.Background())
	require.NoError(t, err)
	return schedule.AvailableSeats
}

func TestReserveSeat(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 40)

	passenger := models.Passenger{Name: "Asha", Phone: "9876543210"}
	created, err := d.ReserveSeat(passenger, newBooking(scheduleID, "A1"))
	require.NoError(t, err)

	assert.Equal(t, "A1", created.SeatNumber)
	assert.Equal(t, models.BookingStatusConfirmed, created.BookingStatus)
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)
	require.NotNil(t, created.Passenger)
	assert.Equal(t, "9876543210", created.Passenger.Phone)
	require.NotNil(t, created.Schedule)
	require.NotNil(t, created.Schedule.Bus)
	assert.Equal(t, "TN09N2345", created.Schedule.Bus.BusNumber)

	assert.Equal(t, 39, availableSeats(t, d, scheduleID))
}

func TestReserveSeatRepeatPassenger(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 40)

	first, err := d.ReserveSeat(models.Passenger{Name: "Asha", Phone: "9876543210"}, newBooking(scheduleID, "A1"))
	require.NoError(t, err)

	// Same phone with a new name books another seat: the passenger record is
	// reused and the name refreshed.
	second, err := d.ReserveSeat(models.Passenger{Name: "Asha K", Phone: "9876543210"}, newBooking(scheduleID, "A2"))
	require.NoError(t, err)

	assert.Equal(t, first.Passenger.ID, second.Passenger.ID)
	assert.Equal(t, "Asha K", second.Passenger.Name)

	count, err := d.Bun.NewSelect().Model((*models.Passenger)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReserveSeatAlreadyBooked(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 40)

	_, err := d.ReserveSeat(models.Passenger{Name: "Asha", Phone: "9876543210"}, newBooking(scheduleID, "A1"))
	require.NoError(t, err)

	_, err = d.ReserveSeat(models.Passenger{Name: "Ravi", Phone: "9000000001"}, newBooking(scheduleID, "A1"))
	assert.ErrorIs(t, err, booking.ErrSeatAlreadyBooked)

	// The failed attempt rolled back completely: one decrement, one booking.
	assert.Equal(t, 39, availableSeats(t, d, scheduleID))
	count, err := d.CountBookings()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReserveLastSeat(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 1)

	_, err := d.ReserveSeat(models.Passenger{Name: "Asha", Phone: "9876543210"}, newBooking(scheduleID, "A1"))
	require.NoError(t, err)
	assert.Equal(t, 0, availableSeats(t, d, scheduleID))

	_, err = d.ReserveSeat(models.Passenger{Name: "Ravi", Phone: "9000000001"}, newBooking(scheduleID, "A2"))
	assert.ErrorIs(t, err, booking.ErrNoSeatsAvailable)
	assert.Equal(t, 0, availableSeats(t, d, scheduleID))
}

func TestReserveSeatReferenceCollision(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 40)

	b1 := newBooking(scheduleID, "A1")
	_, err := d.ReserveSeat(models.Passenger{Name: "Asha", Phone: "9876543210"}, b1)
	require.NoError(t, err)

	b2 := newBooking(scheduleID, "A2")
	b2.BookingReference = b1.BookingReference
	_, err = d.ReserveSeat(models.Passenger{Name: "Ravi", Phone: "9000000001"}, b2)
	assert.ErrorIs(t, err, booking.ErrReferenceCollision)

	// The collision rolled back the decrement too.
	assert.Equal(t, 39, availableSeats(t, d, scheduleID))
}

func TestConcurrentSameSeat(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 40)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			passenger := models.Passenger{
				Name:  fmt.Sprintf("Passenger %d", i),
				Phone: fmt.Sprintf("90000000%02d", i),
			}
			_, errs[i] = d.ReserveSeat(passenger, newBooking(scheduleID, "A1"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, booking.ErrSeatAlreadyBooked)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 39, availableSeats(t, d, scheduleID))

	count, err := d.CountBookings()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConcurrentLastSeat(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 1)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			passenger := models.Passenger{
				Name:  fmt.Sprintf("Passenger %d", i),
				Phone: fmt.Sprintf("90000000%02d", i),
			}
			_, errs[i] = d.ReserveSeat(passenger, newBooking(scheduleID, fmt.Sprintf("A%d", i+1)))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, booking.ErrNoSeatsAvailable)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 0, availableSeats(t, d, scheduleID))
}

func TestGetScheduleByID(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 40)

	schedule, err := d.GetScheduleByID(scheduleID)
	require.NoError(t, err)
	require.NotNil(t, schedule.Bus)
	assert.Equal(t, "TN09N2345", schedule.Bus.BusNumber)
	require.NotNil(t, schedule.Route)
	require.NotNil(t, schedule.Route.FromLocation)
	assert.Equal(t, "Koyambedu", schedule.Route.FromLocation.Name)

	_, err = d.GetScheduleByID(99999)
	assert.ErrorIs(t, err, booking.ErrScheduleNotFound)
}

func TestGetBookingByReferenceNotFound(t *testing.T) {
	d := setupTestDB(t)
	seedSchedule(t, d, 40)

	_, err := d.GetBookingByReference("SF0000000000000XXXXXXXXXX")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestGetBookingsByPhone(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 40)

	older := newBooking(scheduleID, "A1")
	older.BookingDate = time.Now().Add(-time.Hour)
	_, err := d.ReserveSeat(models.Passenger{Name: "Asha", Phone: "9876543210"}, older)
	require.NoError(t, err)

	newer := newBooking(scheduleID, "A2")
	newer.BookingDate = time.Now()
	_, err = d.ReserveSeat(models.Passenger{Name: "Asha", Phone: "9876543210"}, newer)
	require.NoError(t, err)

	_, err = d.ReserveSeat(models.Passenger{Name: "Ravi", Phone: "9000000001"}, newBooking(scheduleID, "B1"))
	require.NoError(t, err)

	bookings, err := d.GetBookingsByPhone("9876543210")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "A2", bookings[0].SeatNumber)
	assert.Equal(t, "A1", bookings[1].SeatNumber)

	// Unknown phone is an empty result, not an error.
	none, err := d.GetBookingsByPhone("9111111111")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdatePaymentStatus(t *testing.T) {
	d := setupTestDB(t)
	scheduleID := seedSchedule(t, d, 40)

	b := newBooking(scheduleID, "A1")
	created, err := d.ReserveSeat(models.Passenger{Name: "Asha", Phone: "9876543210"}, b)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)

	updated, err := d.UpdatePaymentStatus(b.BookingReference, "TXN-12345")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.PaymentStatus)
	assert.Equal(t, "TXN-12345", updated.PaymentTransactionID)

	_, err = d.UpdatePaymentStatus("SF-missing", "TXN-12345")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}
