package models

import "time"

// Trip is one scheduled run. Date is free text; no format is enforced.
type Trip struct {
	ID        string    `json:"id"`
	TripNo    int       `json:"tripno"`
	Date      string    `json:"date"`
	BusNo     int       `json:"busno"`
	To        string    `json:"to"`
	Fro       string    `json:"fro"`
	NoOfSeats int       `json:"noofseats"`
	CreatedAt time.Time `json:"createdAt"`
}

// TripForm binds a /submit-trip post. tripno must be posted but 0 is a valid
// trip number, so presence is checked by the handler rather than a tag.
type TripForm struct {
	TripNo    int    `form:"tripno" binding:"min=0"`
	Date      string `form:"date"`
	BusNo     int    `form:"busno" binding:"min=0"`
	To        string `form:"to"`
	Fro       string `form:"fro"`
	NoOfSeats int    `form:"noofseats" binding:"min=0"`
}

func (f TripForm) ToTrip() Trip {
	return Trip{
		TripNo:    f.TripNo,
		Date:      f.Date,
		BusNo:     f.BusNo,
		To:        f.To,
		Fro:       f.Fro,
		NoOfSeats: f.NoOfSeats,
	}
}

// TripLookupForm carries the route endpoints posted to /get-trip-details.
type TripLookupForm struct {
	To  string `form:"to"`
	Fro string `form:"fro"`
}
