package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kennel-backend/models"
	"kennel-backend/services"
	"kennel-backend/utils"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

type bookingPayload struct {
	CustomerName          string  `json:"customer_name"`
	CustomerEmail         string  `json:"customer_email"`
	CustomerPhone         string  `json:"customer_phone"`
	PuppyID               *uint   `json:"puppy_id"`
	PuppyGenderPreference *string `json:"puppy_gender_preference"`
	Message               string  `json:"message"`
}

type bookingUpdatePayload struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// CreateBooking handles POST /api/bookings (public). The booking is
// durable before notifications go out; sending happens off the request
// path and can fail without affecting the response.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload bookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Request body is required")
		return
	}

	payload.CustomerName = strings.TrimSpace(payload.CustomerName)
	payload.CustomerEmail = strings.TrimSpace(payload.CustomerEmail)
	payload.CustomerPhone = strings.TrimSpace(payload.CustomerPhone)
	payload.Message = strings.TrimSpace(payload.Message)

	switch {
	case payload.CustomerName == "":
		utils.JSONError(c, http.StatusBadRequest, "customer_name is required")
		return
	case payload.CustomerEmail == "":
		utils.JSONError(c, http.StatusBadRequest, "customer_email is required")
		return
	case payload.CustomerPhone == "":
		utils.JSONError(c, http.StatusBadRequest, "customer_phone is required")
		return
	case payload.Message == "":
		utils.JSONError(c, http.StatusBadRequest, "message is required")
		return
	}

	if !utils.ValidateEmail(payload.CustomerEmail) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid email format")
		return
	}
	if !utils.ValidatePhone(payload.CustomerPhone) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if payload.PuppyGenderPreference != nil && !utils.ValidateGenderPreference(*payload.PuppyGenderPreference) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid puppy gender preference")
		return
	}

	booking := models.Booking{
		CustomerName:          payload.CustomerName,
		CustomerEmail:         payload.CustomerEmail,
		CustomerPhone:         payload.CustomerPhone,
		PuppyID:               payload.PuppyID,
		PuppyGenderPreference: payload.PuppyGenderPreference,
		Message:               payload.Message,
	}
	if err := bc.bookings.Create(&booking); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	go bc.bookings.Notify(&booking)

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking inquiry submitted successfully",
		"booking_id": booking.ID,
	})
}

// GetBookings handles GET /api/bookings/admin?status=.
func (bc *BookingController) GetBookings(c *gin.Context) {
	bookings, err := bc.bookings.List(c.Query("status"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookings[i].ToDict(true))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}

// GetBooking handles GET /api/bookings/admin/:id.
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.bookings.Get(id)
	if err != nil {
		fetchError(c, err, "Booking not found")
		return
	}
	c.JSON(http.StatusOK, booking.ToDict(true))
}

// UpdateBooking handles PUT /api/bookings/admin/:id. Status and notes
// are independently optional; an invalid status is ignored unless strict
// mode is enabled. No transition table: any valid status is accepted
// from any prior state.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.bookings.Get(id)
	if err != nil {
		fetchError(c, err, "Booking not found")
		return
	}

	var payload bookingUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if payload.Status != nil {
		if utils.ValidateBookingStatus(*payload.Status) {
			booking.Status = *payload.Status
		} else if utils.StrictEnumUpdates() {
			utils.JSONError(c, http.StatusBadRequest, "Invalid status")
			return
		}
	}
	if payload.AdminNotes != nil {
		booking.AdminNotes = *payload.AdminNotes
	}

	if err := bc.bookings.Save(booking); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated successfully",
		"booking": booking.ToDict(false),
	})
}

// DeleteBooking handles DELETE /api/bookings/admin/:id. Hard delete;
// prefer status=Cancelled to keep the history.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := bc.bookings.Delete(id); err != nil {
		if services.IsNotFound(err) {
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// TestEmail handles POST /api/bookings/admin/test-email: sends a short
// message to the admin inbox so SMTP settings can be checked from the
// admin panel.
func (bc *BookingController) TestEmail(c *gin.Context) {
	if err := bc.bookings.SendTestEmail(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to send test email: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test email sent successfully"})
}

// GetStats handles GET /api/bookings/admin/stats.
func (bc *BookingController) GetStats(c *gin.Context) {
	stats, err := bc.bookings.Stats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}
