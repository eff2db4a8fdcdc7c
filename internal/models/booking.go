package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// Booking is created exactly once per successful reservation and never
// deleted, only transitioned between statuses. FareAmount is captured at
// booking time and stays decoupled from later schedule fare changes.
type Booking struct {
	bun.BaseModel `bun:"table:bookings,alias:booking"`

	ID                   int64         `bun:"id,pk,autoincrement" json:"id"`
	BookingReference     string        `bun:"booking_reference,notnull,unique" json:"bookingReference"`
	PassengerID          int64         `bun:"passenger_id,notnull" json:"-"`
	Passenger            *Passenger    `bun:"rel:belongs-to,join:passenger_id=id" json:"passenger,omitempty"`
	ScheduleID           int64         `bun:"schedule_id,notnull" json:"-"`
	Schedule             *Schedule     `bun:"rel:belongs-to,join:schedule_id=id" json:"schedule,omitempty"`
	SeatNumber           string        `bun:"seat_number,notnull" json:"seatNumber"`
	FareAmount           float64       `bun:"fare_amount,notnull" json:"fareAmount"`
	PaymentStatus        PaymentStatus `bun:"payment_status,notnull,default:'PENDING'" json:"paymentStatus"`
	PaymentMethod        string        `bun:"payment_method" json:"paymentMethod"`
	PaymentTransactionID string        `bun:"payment_transaction_id" json:"paymentTransactionId,omitempty"`
	QRCodeData           string        `bun:"qr_code_data" json:"qrCodeData"`
	BookingStatus        BookingStatus `bun:"booking_status,notnull,default:'CONFIRMED'" json:"bookingStatus"`
	BookingDate          time.Time     `bun:"booking_date,nullzero,notnull,default:current_timestamp" json:"bookingDate"`
}
