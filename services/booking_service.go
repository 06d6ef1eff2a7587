package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"kennel-backend/models"
	"kennel-backend/utils"
)

type BookingService struct {
	DB    *gorm.DB
	Email *EmailService
}

func NewBookingService(db *gorm.DB, email *EmailService) *BookingService {
	return &BookingService{DB: db, Email: email}
}

// BookingStats is the admin triage summary.
type BookingStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// Create persists a new inquiry. Status is forced to New regardless of
// input; the caller has already validated the customer fields.
func (s *BookingService) Create(booking *models.Booking) error {
	booking.Status = "New"
	return s.DB.Create(booking).Error
}

// Notify dispatches the admin alert and the customer acknowledgment.
// Both are best effort and independent: a failed send is logged and
// never reaches the submission response.
func (s *BookingService) Notify(booking *models.Booking) {
	var puppy *models.Puppy
	if booking.PuppyID != nil {
		var p models.Puppy
		if err := s.DB.First(&p, *booking.PuppyID).Error; err == nil {
			puppy = &p
		}
	}

	if err := s.Email.SendBookingNotification(booking, puppy); err != nil {
		log.Printf("warning: admin notification for booking %d failed: %v", booking.ID, err)
	}
	if err := s.Email.SendBookingConfirmation(booking); err != nil {
		log.Printf("warning: customer confirmation for booking %d failed: %v", booking.ID, err)
	}
}

// SendTestEmail mails the admin inbox to verify SMTP configuration.
func (s *BookingService) SendTestEmail() error {
	return s.Email.SendTestEmail(utils.EnvOrDefault("ADMIN_EMAIL", "admin@k9kennel.com"))
}

// List returns bookings newest first, optionally filtered by status.
func (s *BookingService) List(status string) ([]models.Booking, error) {
	query := s.DB.Preload("Puppy")
	if utils.ValidateBookingStatus(status) {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	err := query.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) Get(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Puppy").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) Save(booking *models.Booking) error {
	return s.DB.Save(booking).Error
}

// Delete is a hard delete. Setting status to Cancelled is the
// recommended way to retire an inquiry, but deletion stays available.
func (s *BookingService) Delete(id uint) error {
	result := s.DB.Delete(&models.Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats counts the totals the admin dashboard shows.
func (s *BookingService) Stats() (*BookingStats, error) {
	stats := &BookingStats{}
	model := s.DB.Model(&models.Booking{})

	if err := model.Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	counts := []struct {
		status string
		dest   *int64
	}{
		{"New", &stats.New},
		{"In Progress", &stats.InProgress},
		{"Completed", &stats.Completed},
	}
	for _, c := range counts {
		if err := s.DB.Model(&models.Booking{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// IsNotFound reports whether err is the record-not-found case.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
