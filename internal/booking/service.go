package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"smartfare/internal/logger"
	"smartfare/internal/models"
	"smartfare/internal/qr"
	"smartfare/internal/utils"
)

const maxReferenceAttempts = 3

type DBLayer interface {
	GetScheduleByID(id int64) (*models.Schedule, error)
	ReserveSeat(passenger models.Passenger, booking models.Booking) (*models.Booking, error)
	GetBookingByReference(reference string) (*models.Booking, error)
	GetBookingsByPhone(phone string) ([]models.Booking, error)
	UpdatePaymentStatus(reference, transactionID string) (*models.Booking, error)
}

type SeatLocker interface {
	LockSeat(scheduleID int64, seatNumber, token string) (bool, error)
	UnlockSeat(scheduleID int64, seatNumber, token string) error
}

type EventPublisher interface {
	PublishBookingCreated(booking models.Booking) error
	PublishPaymentCompleted(booking models.Booking) error
}

type BookingService struct {
	DB     DBLayer
	Locker SeatLocker
	Events EventPublisher
	Logger *logger.Logger
}

func NewBookingService(db DBLayer, locker SeatLocker, events EventPublisher, log *logger.Logger) *BookingService {
	return &BookingService{DB: db, Locker: locker, Events: events, Logger: log}
}

// Reserve books one seat on a schedule. The check-and-act sequence runs
// inside the store's reservation transaction; the Redis seat lock in front
// of it only shortcuts the obvious losers of a same-seat race. Any failure
// leaves no partial state behind.
func (s *BookingService) Reserve(passengerName, passengerPhone string, scheduleID int64, seatNumber string) (*models.Booking, error) {
	passengerName = strings.TrimSpace(passengerName)
	passengerPhone = strings.TrimSpace(passengerPhone)
	seatNumber = strings.TrimSpace(seatNumber)

	if passengerName == "" {
		return nil, fmt.Errorf("%w: passenger name is required", ErrValidation)
	}
	if passengerPhone == "" {
		return nil, fmt.Errorf("%w: passenger phone is required", ErrValidation)
	}
	if seatNumber == "" {
		return nil, fmt.Errorf("%w: seat number is required", ErrValidation)
	}

	schedule, err := s.DB.GetScheduleByID(scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status != models.ScheduleStatusScheduled || schedule.AvailableSeats <= 0 {
		return nil, fmt.Errorf("%w: schedule %d", ErrNoSeatsAvailable, scheduleID)
	}

	token := utils.GenerateLockToken()
	if s.Locker != nil {
		locked, err := s.Locker.LockSeat(scheduleID, seatNumber, token)
		if err != nil {
			return nil, fmt.Errorf("seat lock error: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: seat %s on schedule %d", ErrSeatAlreadyBooked, seatNumber, scheduleID)
		}
		defer func() {
			if err := s.Locker.UnlockSeat(scheduleID, seatNumber, token); err != nil {
				s.logError("BOOKING", fmt.Sprintf("Failed to unlock seat %s on schedule %d: %v", seatNumber, scheduleID, err))
			}
		}()
	}

	passenger := models.Passenger{Name: passengerName, Phone: passengerPhone}

	var created *models.Booking
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference := utils.GenerateBookingReference()
		b := models.Booking{
			BookingReference: reference,
			ScheduleID:       scheduleID,
			SeatNumber:       seatNumber,
			FareAmount:       schedule.Fare,
			PaymentStatus:    models.PaymentStatusPending,
			PaymentMethod:    "UPI",
			BookingStatus:    models.BookingStatusConfirmed,
			QRCodeData: qr.BuildPayload(reference, passengerName, schedule.Bus.BusNumber,
				seatNumber, schedule.ScheduleDate, schedule.Fare),
			BookingDate: time.Now(),
		}

		created, err = s.DB.ReserveSeat(passenger, b)
		if errors.Is(err, ErrReferenceCollision) {
			s.logWarn("BOOKING", fmt.Sprintf("Reference collision on %s, retrying", reference))
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	if created == nil {
		return nil, fmt.Errorf("%w: gave up after %d attempts", ErrReferenceCollision, maxReferenceAttempts)
	}

	if s.Events != nil {
		if err := s.Events.PublishBookingCreated(*created); err != nil {
			s.logError("KAFKA", fmt.Sprintf("Failed to publish booking created for %s: %v", created.BookingReference, err))
		}
	}

	return created, nil
}

func (s *BookingService) GetBookingByReference(reference string) (*models.Booking, error) {
	return s.DB.GetBookingByReference(reference)
}

// GetBookingsByPhone returns every booking for the passenger, newest first.
// An unknown phone yields an empty slice, not an error.
func (s *BookingService) GetBookingsByPhone(phone string) ([]models.Booking, error) {
	return s.DB.GetBookingsByPhone(phone)
}

// UpdatePaymentStatus marks a booking's payment COMPLETED and records the
// caller-supplied transaction id. The transaction id is not verified against
// any gateway; settlement happens outside this system.
func (s *BookingService) UpdatePaymentStatus(reference, transactionID string) (*models.Booking, error) {
	updated, err := s.DB.UpdatePaymentStatus(reference, transactionID)
	if err != nil {
		return nil, err
	}

	if s.Events != nil {
		if err := s.Events.PublishPaymentCompleted(*updated); err != nil {
			s.logError("KAFKA", fmt.Sprintf("Failed to publish payment completed for %s: %v", reference, err))
		}
	}

	return updated, nil
}

func (s *BookingService) logError(category, message string) {
	if s.Logger != nil {
		s.Logger.Error(category, message)
	}
}

func (s *BookingService) logWarn(category, message string) {
	if s.Logger != nil {
		s.Logger.Warn(category, message)
	}
}
