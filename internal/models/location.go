package models

import (
	"github.com/uptrace/bun"
)

type Location struct {
	bun.BaseModel `bun:"table:locations,alias:location"`

	ID        int64   `bun:"id,pk,autoincrement" json:"id"`
	Name      string  `bun:"name,notnull" json:"name"`
	City      string  `bun:"city,notnull" json:"city"`
	State     string  `bun:"state,notnull" json:"state"`
	Latitude  float64 `bun:"latitude" json:"latitude,omitempty"`
	Longitude float64 `bun:"longitude" json:"longitude,omitempty"`
}
