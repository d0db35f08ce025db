package models

import "time"

// Bus is a registered vehicle. BusID is the lookup key but is not unique.
type Bus struct {
	ID         string    `json:"id"`
	BusID      string    `json:"busId"`
	Depo       string    `json:"depo"`
	NoOfSeats  int       `json:"noOfSeats"`
	DriverName string    `json:"drivername"`
	OwnerName  string    `json:"ownername"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BusForm is the intake payload posted to /submit-registration.
type BusForm struct {
	BusID      string `form:"busId" binding:"required"`
	Depo       string `form:"depo"`
	NoOfSeats  int    `form:"noOfSeats" binding:"min=0"`
	DriverName string `form:"drivername"`
	OwnerName  string `form:"ownername"`
}

func (f BusForm) ToBus() Bus {
	return Bus{
		BusID:      f.BusID,
		Depo:       f.Depo,
		NoOfSeats:  f.NoOfSeats,
		DriverName: f.DriverName,
		OwnerName:  f.OwnerName,
	}
}
