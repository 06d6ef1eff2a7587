package models

import (
	"time"

	"gorm.io/datatypes"

	"kennel-backend/utils"
)

// Dog is a breeding parent (stud or dam). Its gallery images are owned
// children and go away with the dog; puppies keep a weak reference to it.
type Dog struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"size:100;not null" json:"name"`
	Gender             string          `gorm:"size:10;not null" json:"gender"` // Male, Female
	Role               string          `gorm:"size:20;not null" json:"role"`   // Stud, Dam, Both
	DateOfBirth        *datatypes.Date `json:"date_of_birth"`
	RegistrationNumber string          `gorm:"size:50" json:"registration_number"`
	PedigreeInfo       string          `gorm:"type:text" json:"pedigree_info"`
	Description        string          `gorm:"type:text" json:"description"`
	HealthClearances   string          `gorm:"type:text" json:"health_clearances"`
	Achievements       string          `gorm:"type:text" json:"achievements"`
	PrimaryImage       *string         `gorm:"size:255" json:"primary_image"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Images []DogImage `gorm:"foreignKey:DogID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

type DogImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DogID        uint      `gorm:"index;not null" json:"dog_id"`
	ImagePath    string    `gorm:"size:255;not null" json:"image_path"`
	Caption      string    `gorm:"type:text" json:"caption"`
	DisplayOrder int       `json:"display_order"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (d *Dog) ToDict(includeImages bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":                  d.ID,
		"name":                d.Name,
		"gender":              d.Gender,
		"role":                d.Role,
		"date_of_birth":       formatDate(d.DateOfBirth),
		"registration_number": d.RegistrationNumber,
		"pedigree_info":       d.PedigreeInfo,
		"description":         d.Description,
		"health_clearances":   d.HealthClearances,
		"achievements":        d.Achievements,
		"primary_image":       imageURL(d.PrimaryImage),
		"is_active":           d.IsActive,
		"created_at":          d.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":          d.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if includeImages {
		images := make([]map[string]interface{}, 0, len(d.Images))
		for _, img := range d.Images {
			images = append(images, img.ToDict())
		}
		data["images"] = images
	}
	return data
}

func (i *DogImage) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":            i.ID,
		"dog_id":        i.DogID,
		"image_path":    utils.FileURL(i.ImagePath),
		"caption":       i.Caption,
		"display_order": i.DisplayOrder,
		"uploaded_at":   i.UploadedAt.UTC().Format(time.RFC3339),
	}
}

// formatDate renders a nullable date column as YYYY-MM-DD.
func formatDate(d *datatypes.Date) interface{} {
	if d == nil {
		return nil
	}
	return time.Time(*d).Format("2006-01-02")
}

// imageURL expands a stored storage-relative path into a retrieval URL.
// Paths stay relative in the database; expansion happens only here.
func imageURL(path *string) interface{} {
	if path == nil || *path == "" {
		return nil
	}
	return utils.FileURL(*path)
}
