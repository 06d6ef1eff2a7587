package models

import (
	"time"
)

// Booking is a customer inquiry. The puppy reference is weak: deleting
// the puppy nulls puppy_id, the inquiry itself stays.
type Booking struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`

	PuppyID               *uint   `gorm:"index" json:"puppy_id"`
	Puppy                 *Puppy  `gorm:"foreignKey:PuppyID;constraint:OnDelete:SET NULL" json:"-"`
	PuppyGenderPreference *string `gorm:"size:20" json:"puppy_gender_preference"` // Male, Female, No Preference

	Message string `gorm:"type:text;not null" json:"message"`

	Status     string `gorm:"size:20;not null" json:"status"` // New, Contacted, In Progress, Completed, Cancelled
	AdminNotes string `gorm:"type:text" json:"admin_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) ToDict(includePuppy bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":                      b.ID,
		"customer_name":           b.CustomerName,
		"customer_email":          b.CustomerEmail,
		"customer_phone":          b.CustomerPhone,
		"puppy_id":                b.PuppyID,
		"puppy_gender_preference": b.PuppyGenderPreference,
		"message":                 b.Message,
		"status":                  b.Status,
		"admin_notes":             b.AdminNotes,
		"created_at":              b.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":              b.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if includePuppy && b.Puppy != nil {
		data["puppy"] = b.Puppy.ToDict(false, false)
	}
	return data
}
