package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "SCHEDULED"
	ScheduleStatusRunning   ScheduleStatus = "RUNNING"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
	ScheduleStatusCancelled ScheduleStatus = "CANCELLED"
)

// Schedule is one bus trip instance on a concrete date. AvailableSeats is
// only ever decremented inside the reservation transaction; the invariant
// 0 <= AvailableSeats <= Bus.TotalSeats is enforced there.
//
// ScheduleDate is stored as "2006-01-02" and the departure/arrival times as
// zero-padded "15:04" so that date equality and departure ordering work the
// same on every dialect.
type Schedule struct {
	bun.BaseModel `bun:"table:bus_schedules,alias:schedule"`

	ID             int64          `bun:"id,pk,autoincrement" json:"id"`
	BusID          int64          `bun:"bus_id,notnull" json:"-"`
	Bus            *Bus           `bun:"rel:belongs-to,join:bus_id=id" json:"bus,omitempty"`
	RouteID        int64          `bun:"route_id,notnull" json:"-"`
	Route          *Route         `bun:"rel:belongs-to,join:route_id=id" json:"route,omitempty"`
	DepartureTime  string         `bun:"departure_time,notnull" json:"departureTime"`
	ArrivalTime    string         `bun:"arrival_time,notnull" json:"arrivalTime"`
	Fare           float64        `bun:"fare,notnull" json:"fare"`
	AvailableSeats int            `bun:"available_seats,notnull" json:"availableSeats"`
	ScheduleDate   string         `bun:"schedule_date,notnull" json:"scheduleDate"`
	Status         ScheduleStatus `bun:"status,notnull,default:'SCHEDULED'" json:"status"`
	CreatedAt      time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
