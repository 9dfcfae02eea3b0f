package utils

import (
	"context"
	"dropzone/src/db"
	"dropzone/src/models"
	"dropzone/src/models/scopes"
	"dropzone/src/types"
	"log"
	"time"
)

func ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := db.GetDb().
		WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(scopes.NewestFirst).
		Find(&bookings).
		Error
	return bookings, err
}

func GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := db.GetDb().
		WithContext(ctx).
		Scopes(scopes.WithID(id)).
		First(&booking).
		Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateNewBooking stores a booking request. Bookings are never updated.
func CreateNewBooking(ctx context.Context, payload *Payload) (*models.Booking, error) {
	var body types.CreateBookingRequestBody
	if err := payload.Bind(&body); err != nil {
		return nil, err
	}
	date, err := types.ParseDate(body.Date)
	if err != nil {
		fields := FieldErrors{}
		fields.Add("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		return nil, fields.Err()
	}
	clock, err := types.ParseClockTime(body.Time)
	if err != nil {
		fields := FieldErrors{}
		fields.Add("time", "Time has wrong format. Use one of these formats instead: hh:mm[:ss[.uuuuuu]].")
		return nil, fields.Err()
	}
	booking := models.Booking{
		Name:      body.Name,
		Phone:     body.Phone,
		Email:     body.Email,
		Date:      date,
		Time:      clock,
		Comments:  body.Comments,
		Service:   body.Service,
		CreatedAt: time.Now(),
	}
	if err := db.GetDb().WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, err
	}
	log.Printf("booking %d created for %q on %s", booking.ID, booking.Service, booking.Date.String())
	return &booking, nil
}
