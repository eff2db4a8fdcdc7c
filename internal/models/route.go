package models

import (
	"github.com/uptrace/bun"
)

// Route is a single directed origin→destination pair. The reverse direction
// is its own record; there is no implicit reverse lookup.
type Route struct {
	bun.BaseModel `bun:"table:routes,alias:route"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	FromLocationID  int64     `bun:"from_location_id,notnull" json:"-"`
	FromLocation    *Location `bun:"rel:belongs-to,join:from_location_id=id" json:"fromLocation,omitempty"`
	ToLocationID    int64     `bun:"to_location_id,notnull" json:"-"`
	ToLocation      *Location `bun:"rel:belongs-to,join:to_location_id=id" json:"toLocation,omitempty"`
	DistanceKM      float64   `bun:"distance_km,notnull" json:"distanceKm"`
	DurationMinutes int       `bun:"duration_minutes,notnull" json:"durationMinutes"`
	BaseFare        float64   `bun:"base_fare,notnull" json:"baseFare"`
}
