package main

import (
	"dropzone/src/serializers"
	"dropzone/src/types"
	"dropzone/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

const bookingResource = "Booking"

// bookingHandlers exposes bookings as create and read only. throttle guards
// submissions.
func bookingHandlers(g *gin.RouterGroup, throttle gin.HandlerFunc) *gin.RouterGroup {
	g.
		GET("/bookings/", func(ctx *gin.Context) {
			bookings, err := utils.ListBookings(ctx)
			if err != nil {
				respondError(ctx, bookingResource, err)
				return
			}
			ctx.JSON(http.StatusOK, serializers.Bookings(bookings))
		}).
		POST("/bookings/", throttle, func(ctx *gin.Context) {
			payload, err := readPayload(ctx)
			if err != nil {
				respondError(ctx, bookingResource, err)
				return
			}
			booking, err := utils.CreateNewBooking(ctx, payload)
			if err != nil {
				respondError(ctx, bookingResource, err)
				return
			}
			ctx.JSON(http.StatusCreated, serializers.Booking(booking))
		}).
		GET("/bookings/:id/", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": bookingResource + " not found"})
				return
			}
			booking, err := utils.GetBooking(ctx, params.ID)
			if err != nil {
				respondError(ctx, bookingResource, err)
				return
			}
			ctx.JSON(http.StatusOK, serializers.Booking(booking))
		})
	return g
}
