package handlers

import (
	"log"
	"time"

	"restaurant-order-api/config"
	"restaurant-order-api/models"
	"restaurant-order-api/statemachine"

	"github.com/gin-gonic/gin"
)

type BookingRequest struct {
	UserID       *uint     `json:"user_id"`
	CustomerName string    `json:"customer_name" binding:"required"`
	Phone        string    `json:"phone" binding:"required"`
	BookingTime  time.Time `json:"booking_time" binding:"required"`
	Guests       int       `json:"guests" binding:"required,min=1"`
	Note         string    `json:"note"`
}

// CreateBooking registers a table reservation in pending state
func CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	booking := models.Booking{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		BookingTime:  req.BookingTime,
		Guests:       req.Guests,
		Note:         req.Note,
		Status:       models.BookingPending,
	}
	if req.UserID != nil {
		var user models.User
		if err := config.DB.First(&user, *req.UserID).Error; err == nil {
			booking.UserID = &user.ID
		} else {
			log.Printf("booking: dropping unknown user reference %d", *req.UserID)
		}
	}

	if err := config.DB.Create(&booking).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, booking, "created")
}

// ListBookings returns all bookings, newest first
func ListBookings(c *gin.Context) {
	var bookings []models.Booking
	query := config.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("booking_time desc").Find(&bookings)
	respondOK(c, bookings, "ok")
}

// UpdateBookingStatus moves a booking through its status state machine
func UpdateBookingStatus(c *gin.Context) {
	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	next := models.BookingStatus(req.Status)
	if !statemachine.ValidBookingStatus(next) {
		respondFieldErrors(c, map[string][]string{"status": {"must be one of: pending, confirmed, completed, cancelled"}})
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, c.Param("id")).Error; err != nil {
		respondNotFound(c, "booking_not_found")
		return
	}
	if err := statemachine.CanTransitionBooking(booking.Status, next); err != nil {
		respondFieldErrors(c, map[string][]string{"status": {err.Error()}})
		return
	}

	if err := config.DB.Model(&booking).Update("status", next).Error; err != nil {
		respondInternal(c)
		return
	}
	booking.Status = next
	respondOK(c, booking, "updated")
}
