package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"kennel-backend/models"
	"kennel-backend/services"
	"kennel-backend/utils"
)

type DogController struct {
	dogs  *services.DogService
	files *services.FileService
}

func NewDogController(dogs *services.DogService, files *services.FileService) *DogController {
	return &DogController{dogs: dogs, files: files}
}

// dogForm covers both create and partial update: every field is a
// pointer so an absent key is distinguishable from a zero value, for
// JSON and multipart submissions alike.
type dogForm struct {
	Name               *string `form:"name" json:"name"`
	Gender             *string `form:"gender" json:"gender"`
	Role               *string `form:"role" json:"role"`
	DateOfBirth        *string `form:"date_of_birth" json:"date_of_birth"`
	RegistrationNumber *string `form:"registration_number" json:"registration_number"`
	PedigreeInfo       *string `form:"pedigree_info" json:"pedigree_info"`
	Description        *string `form:"description" json:"description"`
	HealthClearances   *string `form:"health_clearances" json:"health_clearances"`
	Achievements       *string `form:"achievements" json:"achievements"`
	IsActive           *bool   `form:"is_active" json:"is_active"`
}

// GetDogs handles GET /api/dogs (public, active only).
func (dc *DogController) GetDogs(c *gin.Context) {
	dc.listDogs(c, true)
}

// GetAllDogsAdmin handles GET /api/dogs/admin (everything, any status).
func (dc *DogController) GetAllDogsAdmin(c *gin.Context) {
	dc.listDogs(c, false)
}

func (dc *DogController) listDogs(c *gin.Context, publicOnly bool) {
	dogs, err := dc.dogs.List(c.Query("role"), c.Query("gender"), publicOnly)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(dogs))
	for i := range dogs {
		out = append(out, dogs[i].ToDict(true))
	}
	c.JSON(http.StatusOK, gin.H{"dogs": out, "count": len(out)})
}

// GetDog handles GET /api/dogs/:id (public). An inactive dog is reported
// as not found so its existence does not leak.
func (dc *DogController) GetDog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dog, err := dc.dogs.Get(id)
	if err != nil {
		fetchError(c, err, "Dog not found")
		return
	}
	if !dog.IsActive {
		utils.JSONError(c, http.StatusNotFound, "Dog not found")
		return
	}
	c.JSON(http.StatusOK, dog.ToDict(true))
}

// CreateDog handles POST /api/dogs/admin (admin, JSON or multipart).
func (dc *DogController) CreateDog(c *gin.Context) {
	var form dogForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if form.Name == nil || *form.Name == "" || form.Gender == nil || form.Role == nil {
		utils.JSONError(c, http.StatusBadRequest, "Name, gender, and role are required")
		return
	}
	if !utils.ValidateGender(*form.Gender) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid gender")
		return
	}
	if !utils.ValidateDogRole(*form.Role) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	var dob *datatypes.Date
	if form.DateOfBirth != nil && *form.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *form.DateOfBirth)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date format (YYYY-MM-DD)")
			return
		}
		d := datatypes.Date(parsed)
		dob = &d
	}

	// The file is stored before the row commit; a failed insert rolls
	// the stored file back so storage holds no orphans from this path.
	var primaryImage *string
	if fh := formFile(c, "primary_image", "image"); fh != nil {
		path, err := dc.files.Save(fh, "dogs")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		primaryImage = &path
	}

	dog := models.Dog{
		Name:         *form.Name,
		Gender:       *form.Gender,
		Role:         *form.Role,
		DateOfBirth:  dob,
		PrimaryImage: primaryImage,
		IsActive:     true,
	}
	if form.RegistrationNumber != nil {
		dog.RegistrationNumber = *form.RegistrationNumber
	}
	if form.PedigreeInfo != nil {
		dog.PedigreeInfo = *form.PedigreeInfo
	}
	if form.Description != nil {
		dog.Description = *form.Description
	}
	if form.HealthClearances != nil {
		dog.HealthClearances = *form.HealthClearances
	}
	if form.Achievements != nil {
		dog.Achievements = *form.Achievements
	}
	if form.IsActive != nil {
		dog.IsActive = *form.IsActive
	}

	if err := dc.dogs.Create(&dog); err != nil {
		if primaryImage != nil {
			dc.files.Delete(*primaryImage)
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Dog created successfully",
		"dog":     dog.ToDict(false),
	})
}

// UpdateDog handles PUT /api/dogs/admin/:id. Absent fields stay
// untouched; invalid enum values are ignored unless strict mode is on.
func (dc *DogController) UpdateDog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dog, err := dc.dogs.Get(id)
	if err != nil {
		fetchError(c, err, "Dog not found")
		return
	}

	var form dogForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	strict := utils.StrictEnumUpdates()

	if form.Name != nil && *form.Name != "" {
		dog.Name = *form.Name
	}
	if form.Gender != nil {
		if utils.ValidateGender(*form.Gender) {
			dog.Gender = *form.Gender
		} else if strict {
			utils.JSONError(c, http.StatusBadRequest, "Invalid gender")
			return
		}
	}
	if form.Role != nil {
		if utils.ValidateDogRole(*form.Role) {
			dog.Role = *form.Role
		} else if strict {
			utils.JSONError(c, http.StatusBadRequest, "Invalid role")
			return
		}
	}
	if form.DateOfBirth != nil {
		if parsed, err := time.Parse("2006-01-02", *form.DateOfBirth); err == nil {
			d := datatypes.Date(parsed)
			dog.DateOfBirth = &d
		} else if strict {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date format (YYYY-MM-DD)")
			return
		}
	}
	if form.RegistrationNumber != nil {
		dog.RegistrationNumber = *form.RegistrationNumber
	}
	if form.PedigreeInfo != nil {
		dog.PedigreeInfo = *form.PedigreeInfo
	}
	if form.Description != nil {
		dog.Description = *form.Description
	}
	if form.HealthClearances != nil {
		dog.HealthClearances = *form.HealthClearances
	}
	if form.Achievements != nil {
		dog.Achievements = *form.Achievements
	}
	if form.IsActive != nil {
		dog.IsActive = *form.IsActive
	}

	// A replacement image is stored first; the old file goes away only
	// after the row commit so a failed save never leaves the row
	// pointing at a deleted file.
	var newImage, oldImage string
	if fh := formFile(c, "primary_image", "image"); fh != nil {
		path, err := dc.files.Save(fh, "dogs")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		if dog.PrimaryImage != nil {
			oldImage = *dog.PrimaryImage
		}
		newImage = path
		dog.PrimaryImage = &path
	}

	if err := dc.dogs.Save(dog); err != nil {
		if newImage != "" {
			dc.files.Delete(newImage)
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if oldImage != "" && oldImage != newImage {
		dc.files.Delete(oldImage)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dog updated successfully",
		"dog":     dog.ToDict(false),
	})
}

// DeleteDog handles DELETE /api/dogs/admin/:id. Every owned file is
// removed from storage best-effort before the row goes; image rows are
// cascade-deleted by the data layer.
func (dc *DogController) DeleteDog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dog, err := dc.dogs.Get(id)
	if err != nil {
		fetchError(c, err, "Dog not found")
		return
	}

	if dog.PrimaryImage != nil {
		dc.files.Delete(*dog.PrimaryImage)
	}
	for _, img := range dog.Images {
		dc.files.Delete(img.ImagePath)
	}

	if err := dc.dogs.Delete(dog); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dog deleted successfully"})
}

// AddImages handles POST /api/dogs/admin/:id/images (multipart,
// multi-file). New images append after the existing display order.
func (dc *DogController) AddImages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dog, err := dc.dogs.Get(id)
	if err != nil {
		fetchError(c, err, "Dog not found")
		return
	}

	files := formFiles(c, "images")
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No images provided")
		return
	}

	count, err := dc.dogs.CountImages(dog.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	caption := c.PostForm("caption")
	added := make([]map[string]interface{}, 0, len(files))
	for i, fh := range files {
		path, err := dc.files.Save(fh, "dogs")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		img := models.DogImage{
			DogID:        dog.ID,
			ImagePath:    path,
			Caption:      caption,
			DisplayOrder: int(count) + i,
		}
		if err := dc.dogs.AddImage(&img); err != nil {
			dc.files.Delete(path)
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
			return
		}
		added = append(added, img.ToDict())
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Images added successfully",
		"images":  added,
	})
}

// DeleteImage handles DELETE /api/dogs/admin/images/:id. The stored file
// is attempted first; the row is only removed afterwards.
func (dc *DogController) DeleteImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	img, err := dc.dogs.GetImage(id)
	if err != nil {
		fetchError(c, err, "Image not found")
		return
	}

	dc.files.Delete(img.ImagePath)
	if err := dc.dogs.DeleteImage(img); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
