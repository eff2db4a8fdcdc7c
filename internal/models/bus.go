package models

import (
	"github.com/uptrace/bun"
)

type BusStatus string

const (
	BusStatusActive      BusStatus = "ACTIVE"
	BusStatusInactive    BusStatus = "INACTIVE"
	BusStatusMaintenance BusStatus = "MAINTENANCE"
)

type BusType struct {
	bun.BaseModel `bun:"table:bus_types,alias:bus_type"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	TypeName    string `bun:"type_name,notnull" json:"typeName"`
	Description string `bun:"description" json:"description"`
}

type Bus struct {
	bun.BaseModel `bun:"table:buses,alias:bus"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	BusNumber    string    `bun:"bus_number,notnull,unique" json:"busNumber"`
	BusTypeID    int64     `bun:"bus_type_id,notnull" json:"-"`
	BusType      *BusType  `bun:"rel:belongs-to,join:bus_type_id=id" json:"busType,omitempty"`
	TotalSeats   int       `bun:"total_seats,notnull" json:"totalSeats"`
	OperatorName string    `bun:"operator_name" json:"operatorName"`
	Status       BusStatus `bun:"status,notnull,default:'ACTIVE'" json:"status"`
}
