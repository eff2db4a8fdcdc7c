package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Passenger is keyed by phone number across bookings. The display name is
// refreshed on repeat bookings (last write wins, no history).
type Passenger struct {
	bun.BaseModel `bun:"table:passengers,alias:passenger"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Phone     string    `bun:"phone,notnull,unique" json:"phone"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
