package services

import (
	"gorm.io/gorm"

	"kennel-backend/models"
	"kennel-backend/utils"
)

type GalleryService struct {
	DB *gorm.DB
}

func NewGalleryService(db *gorm.DB) *GalleryService {
	return &GalleryService{DB: db}
}

// List orders by explicit display_order, then newest upload first.
// Public listings only see active items.
func (s *GalleryService) List(category, mediaType string, publicOnly bool) ([]models.Gallery, error) {
	query := s.DB.Model(&models.Gallery{})
	if publicOnly {
		query = query.Where("is_active = ?", true)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if utils.ValidateMediaType(mediaType) {
		query = query.Where("media_type = ?", mediaType)
	}

	var items []models.Gallery
	err := query.Order("display_order").Order("uploaded_at DESC").Find(&items).Error
	return items, err
}

// Categories returns the distinct categories of active items.
func (s *GalleryService) Categories() ([]string, error) {
	var categories []string
	err := s.DB.Model(&models.Gallery{}).
		Where("is_active = ?", true).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (s *GalleryService) Get(id uint) (*models.Gallery, error) {
	var item models.Gallery
	if err := s.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GalleryService) Create(item *models.Gallery) error {
	return s.DB.Create(item).Error
}

func (s *GalleryService) Save(item *models.Gallery) error {
	return s.DB.Save(item).Error
}

func (s *GalleryService) Delete(item *models.Gallery) error {
	return s.DB.Delete(item).Error
}
