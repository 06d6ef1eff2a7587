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

type PuppyController struct {
	puppies *services.PuppyService
	files   *services.FileService
}

func NewPuppyController(puppies *services.PuppyService, files *services.FileService) *PuppyController {
	return &PuppyController{puppies: puppies, files: files}
}

type puppyForm struct {
	Name              *string  `form:"name" json:"name"`
	Gender            *string  `form:"gender" json:"gender"`
	DateOfBirth       *string  `form:"date_of_birth" json:"date_of_birth"`
	Color             *string  `form:"color" json:"color"`
	WeightKg          *float64 `form:"weight_kg" json:"weight_kg"`
	MicrochipNumber   *string  `form:"microchip_number" json:"microchip_number"`
	SireID            *uint    `form:"sire_id" json:"sire_id"`
	DamID             *uint    `form:"dam_id" json:"dam_id"`
	Price             *float64 `form:"price" json:"price"`
	Status            *string  `form:"status" json:"status"`
	Description       *string  `form:"description" json:"description"`
	PersonalityTraits *string  `form:"personality_traits" json:"personality_traits"`
	HealthNotes       *string  `form:"health_notes" json:"health_notes"`
	IsFeatured        *bool    `form:"is_featured" json:"is_featured"`
}

// GetPuppies handles GET /api/puppies (public). Every status is listed
// by default; use status/gender/featured query params to narrow.
func (pc *PuppyController) GetPuppies(c *gin.Context) {
	puppies, err := pc.puppies.List(c.Query("status"), c.Query("gender"), c.Query("featured"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(puppies))
	for i := range puppies {
		out = append(out, puppies[i].ToDict(true, true))
	}
	c.JSON(http.StatusOK, gin.H{"puppies": out, "count": len(out)})
}

// GetPuppy handles GET /api/puppies/:id (public).
func (pc *PuppyController) GetPuppy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	puppy, err := pc.puppies.Get(id)
	if err != nil {
		fetchError(c, err, "Puppy not found")
		return
	}
	c.JSON(http.StatusOK, puppy.ToDict(true, true))
}

// GetAllPuppiesAdmin handles GET /api/puppies/admin.
func (pc *PuppyController) GetAllPuppiesAdmin(c *gin.Context) {
	pc.GetPuppies(c)
}

// CreatePuppy handles POST /api/puppies/admin (admin, JSON or multipart).
func (pc *PuppyController) CreatePuppy(c *gin.Context) {
	var form puppyForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if form.Gender == nil || form.DateOfBirth == nil || *form.DateOfBirth == "" {
		utils.JSONError(c, http.StatusBadRequest, "Gender and date of birth are required")
		return
	}
	if !utils.ValidateGender(*form.Gender) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid gender")
		return
	}
	parsed, err := time.Parse("2006-01-02", *form.DateOfBirth)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date format (YYYY-MM-DD)")
		return
	}

	status := "Available"
	if form.Status != nil {
		if !utils.ValidatePuppyStatus(*form.Status) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		status = *form.Status
	}

	var primaryImage *string
	if fh := formFile(c, "primary_image", "image"); fh != nil {
		path, err := pc.files.Save(fh, "puppies")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		primaryImage = &path
	}

	puppy := models.Puppy{
		Name:            form.Name,
		Gender:          *form.Gender,
		DateOfBirth:     datatypes.Date(parsed),
		WeightKg:        form.WeightKg,
		MicrochipNumber: form.MicrochipNumber,
		SireID:          form.SireID,
		DamID:           form.DamID,
		Price:           form.Price,
		Status:          status,
		PrimaryImage:    primaryImage,
	}
	if form.Color != nil {
		puppy.Color = *form.Color
	}
	if form.Description != nil {
		puppy.Description = *form.Description
	}
	if form.PersonalityTraits != nil {
		puppy.PersonalityTraits = *form.PersonalityTraits
	}
	if form.HealthNotes != nil {
		puppy.HealthNotes = *form.HealthNotes
	}
	if form.IsFeatured != nil {
		puppy.IsFeatured = *form.IsFeatured
	}
	if status == "Sold" {
		now := time.Now().UTC()
		puppy.SoldAt = &now
	}

	if err := pc.puppies.Create(&puppy); err != nil {
		if primaryImage != nil {
			pc.files.Delete(*primaryImage)
		}
		if services.IsDuplicateError(err) {
			utils.JSONError(c, http.StatusConflict, "Microchip number already registered")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Puppy created successfully",
		"puppy":   puppy.ToDict(false, false),
	})
}

// UpdatePuppy handles PUT /api/puppies/admin/:id. Moving the status to
// Sold stamps sold_at exactly once, on the transition.
func (pc *PuppyController) UpdatePuppy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	puppy, err := pc.puppies.Get(id)
	if err != nil {
		fetchError(c, err, "Puppy not found")
		return
	}

	var form puppyForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	strict := utils.StrictEnumUpdates()

	if form.Name != nil {
		puppy.Name = form.Name
	}
	if form.Gender != nil {
		if utils.ValidateGender(*form.Gender) {
			puppy.Gender = *form.Gender
		} else if strict {
			utils.JSONError(c, http.StatusBadRequest, "Invalid gender")
			return
		}
	}
	if form.DateOfBirth != nil {
		if parsed, err := time.Parse("2006-01-02", *form.DateOfBirth); err == nil {
			puppy.DateOfBirth = datatypes.Date(parsed)
		} else if strict {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date format (YYYY-MM-DD)")
			return
		}
	}
	if form.Status != nil {
		if utils.ValidatePuppyStatus(*form.Status) {
			if *form.Status == "Sold" && puppy.Status != "Sold" {
				now := time.Now().UTC()
				puppy.SoldAt = &now
			}
			puppy.Status = *form.Status
		} else if strict {
			utils.JSONError(c, http.StatusBadRequest, "Invalid status")
			return
		}
	}
	if form.Color != nil {
		puppy.Color = *form.Color
	}
	if form.WeightKg != nil {
		puppy.WeightKg = form.WeightKg
	}
	if form.MicrochipNumber != nil {
		puppy.MicrochipNumber = form.MicrochipNumber
	}
	if form.SireID != nil {
		puppy.SireID = form.SireID
	}
	if form.DamID != nil {
		puppy.DamID = form.DamID
	}
	if form.Price != nil {
		puppy.Price = form.Price
	}
	if form.Description != nil {
		puppy.Description = *form.Description
	}
	if form.PersonalityTraits != nil {
		puppy.PersonalityTraits = *form.PersonalityTraits
	}
	if form.HealthNotes != nil {
		puppy.HealthNotes = *form.HealthNotes
	}
	if form.IsFeatured != nil {
		puppy.IsFeatured = *form.IsFeatured
	}

	// Replacement stored first; the old file is removed only after the
	// row commit succeeds.
	var newImage, oldImage string
	if fh := formFile(c, "primary_image", "image"); fh != nil {
		path, err := pc.files.Save(fh, "puppies")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		if puppy.PrimaryImage != nil {
			oldImage = *puppy.PrimaryImage
		}
		newImage = path
		puppy.PrimaryImage = &path
	}

	if err := pc.puppies.Save(puppy); err != nil {
		if newImage != "" {
			pc.files.Delete(newImage)
		}
		if services.IsDuplicateError(err) {
			utils.JSONError(c, http.StatusConflict, "Microchip number already registered")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if oldImage != "" && oldImage != newImage {
		pc.files.Delete(oldImage)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Puppy updated successfully",
		"puppy":   puppy.ToDict(false, false),
	})
}

// DeletePuppy handles DELETE /api/puppies/admin/:id.
func (pc *PuppyController) DeletePuppy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	puppy, err := pc.puppies.Get(id)
	if err != nil {
		fetchError(c, err, "Puppy not found")
		return
	}

	if puppy.PrimaryImage != nil {
		pc.files.Delete(*puppy.PrimaryImage)
	}
	for _, img := range puppy.Images {
		pc.files.Delete(img.ImagePath)
	}

	if err := pc.puppies.Delete(puppy); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Puppy deleted successfully"})
}

// AddImages handles POST /api/puppies/admin/:id/images.
func (pc *PuppyController) AddImages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	puppy, err := pc.puppies.Get(id)
	if err != nil {
		fetchError(c, err, "Puppy not found")
		return
	}

	files := formFiles(c, "images")
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No images provided")
		return
	}

	count, err := pc.puppies.CountImages(puppy.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	caption := c.PostForm("caption")
	added := make([]map[string]interface{}, 0, len(files))
	for i, fh := range files {
		path, err := pc.files.Save(fh, "puppies")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		img := models.PuppyImage{
			PuppyID:      puppy.ID,
			ImagePath:    path,
			Caption:      caption,
			DisplayOrder: int(count) + i,
		}
		if err := pc.puppies.AddImage(&img); err != nil {
			pc.files.Delete(path)
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

// DeleteImage handles DELETE /api/puppies/admin/images/:id.
func (pc *PuppyController) DeleteImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	img, err := pc.puppies.GetImage(id)
	if err != nil {
		fetchError(c, err, "Image not found")
		return
	}

	pc.files.Delete(img.ImagePath)
	if err := pc.puppies.DeleteImage(img); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
