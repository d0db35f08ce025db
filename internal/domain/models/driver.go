package models

import "time"

type Driver struct {
	ID         string    `json:"id"`
	DriverName string    `json:"drivername"`
	LicenseNo  int64     `json:"licenseno"`
	Phone      int64     `json:"phone"`
	Age        int       `json:"Age"`
	Experience int       `json:"experience"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DriverForm is the intake payload posted to /submit. The capitalized Age
// key is what existing forms send.
type DriverForm struct {
	DriverName string `form:"drivername" binding:"required"`
	LicenseNo  int64  `form:"licenseno" binding:"min=0"`
	Phone      int64  `form:"phone" binding:"min=0"`
	Age        int    `form:"Age" binding:"min=0"`
	Experience int    `form:"experience" binding:"min=0"`
}

func (f DriverForm) ToDriver() Driver {
	return Driver{
		DriverName: f.DriverName,
		LicenseNo:  f.LicenseNo,
		Phone:      f.Phone,
		Age:        f.Age,
		Experience: f.Experience,
	}
}
