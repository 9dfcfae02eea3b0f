package models

import (
	"dropzone/src/types"
	"time"
)

type Booking struct {
	ID       uint            `gorm:"primarykey"`
	Name     string          `gorm:"size:100;not null"`
	Phone    string          `gorm:"size:20;not null"`
	Email    string          `gorm:"size:254;not null"`
	Date     types.Date      `gorm:"type:date;not null"`
	Time     types.ClockTime `gorm:"type:time;not null"`
	Comments string          `gorm:"type:text"`
	Service  string          `gorm:"size:255;not null"`

	CreatedAt time.Time `gorm:"index;autoCreateTime:false"`
}
