package services

import (
	"strings"

	"gorm.io/gorm"

	"kennel-backend/models"
	"kennel-backend/utils"
)

type PuppyService struct {
	DB *gorm.DB
}

func NewPuppyService(db *gorm.DB) *PuppyService {
	return &PuppyService{DB: db}
}

// List returns puppies newest first. Public listings deliberately show
// every status: sold puppies stay in the catalog as breeding history.
// "status=all" is accepted as an explicit no-filter.
func (s *PuppyService) List(status, gender, featured string) ([]models.Puppy, error) {
	query := s.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order")
		}).
		Preload("Sire").
		Preload("Dam")

	// "all" and unknown values mean no status filter.
	if utils.ValidatePuppyStatus(status) {
		query = query.Where("status = ?", status)
	}
	if utils.ValidateGender(gender) {
		query = query.Where("gender = ?", gender)
	}
	if strings.EqualFold(featured, "true") {
		query = query.Where("is_featured = ?", true)
	}

	var puppies []models.Puppy
	err := query.Order("created_at DESC").Find(&puppies).Error
	return puppies, err
}

func (s *PuppyService) Get(id uint) (*models.Puppy, error) {
	var puppy models.Puppy
	err := s.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order")
		}).
		Preload("Sire").
		Preload("Dam").
		First(&puppy, id).Error
	if err != nil {
		return nil, err
	}
	return &puppy, nil
}

func (s *PuppyService) Create(puppy *models.Puppy) error {
	return s.DB.Create(puppy).Error
}

func (s *PuppyService) Save(puppy *models.Puppy) error {
	return s.DB.Save(puppy).Error
}

// Delete removes the row; owned image rows cascade and bookings that
// referenced this puppy read puppy_id = null afterward.
func (s *PuppyService) Delete(puppy *models.Puppy) error {
	return s.DB.Delete(puppy).Error
}

func (s *PuppyService) CountImages(puppyID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.PuppyImage{}).Where("puppy_id = ?", puppyID).Count(&count).Error
	return count, err
}

func (s *PuppyService) AddImage(img *models.PuppyImage) error {
	return s.DB.Create(img).Error
}

func (s *PuppyService) GetImage(id uint) (*models.PuppyImage, error) {
	var img models.PuppyImage
	if err := s.DB.First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *PuppyService) DeleteImage(img *models.PuppyImage) error {
	return s.DB.Delete(img).Error
}
