package models

import (
	"time"

	"gorm.io/datatypes"

	"kennel-backend/utils"
)

// Puppy is a catalog entry for a litter member. Sold puppies stay listed
// because the sale history has catalog value, so public listings do not
// filter on status. Sire and dam are weak references: deleting a parent
// dog nulls them instead of cascading.
type Puppy struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            *string        `gorm:"size:100" json:"name"`
	Gender          string         `gorm:"size:10;not null" json:"gender"`
	DateOfBirth     datatypes.Date `gorm:"not null" json:"date_of_birth"`
	Color           string         `gorm:"size:50" json:"color"`
	WeightKg        *float64       `json:"weight_kg"`
	MicrochipNumber *string        `gorm:"uniqueIndex;size:50" json:"microchip_number"`

	SireID *uint `gorm:"index" json:"sire_id"`
	DamID  *uint `gorm:"index" json:"dam_id"`
	Sire   *Dog  `gorm:"foreignKey:SireID;constraint:OnDelete:SET NULL" json:"-"`
	Dam    *Dog  `gorm:"foreignKey:DamID;constraint:OnDelete:SET NULL" json:"-"`

	Price  *float64 `json:"price"`
	Status string   `gorm:"size:20;not null" json:"status"` // Available, Reserved, Sold

	Description       string `gorm:"type:text" json:"description"`
	PersonalityTraits string `gorm:"type:text" json:"personality_traits"`
	HealthNotes       string `gorm:"type:text" json:"health_notes"`

	PrimaryImage *string `gorm:"size:255" json:"primary_image"`
	IsFeatured   bool    `json:"is_featured"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SoldAt    *time.Time `json:"sold_at"` // set only on the transition to Sold

	Images []PuppyImage `gorm:"foreignKey:PuppyID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

type PuppyImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PuppyID      uint      `gorm:"index;not null" json:"puppy_id"`
	ImagePath    string    `gorm:"size:255;not null" json:"image_path"`
	Caption      string    `gorm:"type:text" json:"caption"`
	DisplayOrder int       `json:"display_order"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (p *Puppy) ToDict(includeImages, includeParents bool) map[string]interface{} {
	var soldAt interface{}
	if p.SoldAt != nil {
		soldAt = p.SoldAt.UTC().Format(time.RFC3339)
	}
	data := map[string]interface{}{
		"id":                 p.ID,
		"name":               p.Name,
		"gender":             p.Gender,
		"date_of_birth":      time.Time(p.DateOfBirth).Format("2006-01-02"),
		"color":              p.Color,
		"weight_kg":          p.WeightKg,
		"microchip_number":   p.MicrochipNumber,
		"sire_id":            p.SireID,
		"dam_id":             p.DamID,
		"price":              p.Price,
		"status":             p.Status,
		"description":        p.Description,
		"personality_traits": p.PersonalityTraits,
		"health_notes":       p.HealthNotes,
		"primary_image":      imageURL(p.PrimaryImage),
		"is_featured":        p.IsFeatured,
		"created_at":         p.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":         p.UpdatedAt.UTC().Format(time.RFC3339),
		"sold_at":            soldAt,
	}
	if includeImages {
		images := make([]map[string]interface{}, 0, len(p.Images))
		for _, img := range p.Images {
			images = append(images, img.ToDict())
		}
		data["images"] = images
	}
	if includeParents {
		var sire, dam interface{}
		if p.Sire != nil {
			sire = p.Sire.ToDict(false)
		}
		if p.Dam != nil {
			dam = p.Dam.ToDict(false)
		}
		data["sire"] = sire
		data["dam"] = dam
	}
	return data
}

func (i *PuppyImage) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":            i.ID,
		"puppy_id":      i.PuppyID,
		"image_path":    utils.FileURL(i.ImagePath),
		"caption":       i.Caption,
		"display_order": i.DisplayOrder,
		"uploaded_at":   i.UploadedAt.UTC().Format(time.RFC3339),
	}
}
