package services

import (
	"gorm.io/gorm"

	"kennel-backend/models"
	"kennel-backend/utils"
)

type DogService struct {
	DB *gorm.DB
}

func NewDogService(db *gorm.DB) *DogService {
	return &DogService{DB: db}
}

// List returns dogs ordered by name. Public listings only see active
// dogs; admin listings see everything. Filters are plain equality and
// invalid filter values are dropped rather than erroring.
func (s *DogService) List(role, gender string, publicOnly bool) ([]models.Dog, error) {
	query := s.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order")
	})
	if publicOnly {
		query = query.Where("is_active = ?", true)
	}
	if utils.ValidateDogRole(role) {
		query = query.Where("role = ?", role)
	}
	if utils.ValidateGender(gender) {
		query = query.Where("gender = ?", gender)
	}

	var dogs []models.Dog
	err := query.Order("name").Find(&dogs).Error
	return dogs, err
}

func (s *DogService) Get(id uint) (*models.Dog, error) {
	var dog models.Dog
	err := s.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order")
	}).First(&dog, id).Error
	if err != nil {
		return nil, err
	}
	return &dog, nil
}

func (s *DogService) Create(dog *models.Dog) error {
	return s.DB.Create(dog).Error
}

func (s *DogService) Save(dog *models.Dog) error {
	return s.DB.Save(dog).Error
}

// Delete removes the row; owned image rows go with it via the cascade
// constraint and puppies referencing the dog as sire/dam are nulled by
// the data layer. Stored files are the caller's responsibility.
func (s *DogService) Delete(dog *models.Dog) error {
	return s.DB.Delete(dog).Error
}

func (s *DogService) CountImages(dogID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.DogImage{}).Where("dog_id = ?", dogID).Count(&count).Error
	return count, err
}

func (s *DogService) AddImage(img *models.DogImage) error {
	return s.DB.Create(img).Error
}

func (s *DogService) GetImage(id uint) (*models.DogImage, error) {
	var img models.DogImage
	if err := s.DB.First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *DogService) DeleteImage(img *models.DogImage) error {
	return s.DB.Delete(img).Error
}
