package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kennel-backend/models"
	"kennel-backend/services"
	"kennel-backend/utils"
)

type GalleryController struct {
	gallery *services.GalleryService
	files   *services.FileService
}

func NewGalleryController(gallery *services.GalleryService, files *services.FileService) *GalleryController {
	return &GalleryController{gallery: gallery, files: files}
}

type galleryForm struct {
	Title        *string `form:"title" json:"title"`
	Description  *string `form:"description" json:"description"`
	Category     *string `form:"category" json:"category"`
	DisplayOrder *int    `form:"display_order" json:"display_order"`
	IsActive     *bool   `form:"is_active" json:"is_active"`
}

// GetGalleryItems handles GET /api/gallery (public, active only).
func (gc *GalleryController) GetGalleryItems(c *gin.Context) {
	gc.listItems(c, true)
}

// GetAllGalleryAdmin handles GET /api/gallery/admin.
func (gc *GalleryController) GetAllGalleryAdmin(c *gin.Context) {
	gc.listItems(c, false)
}

func (gc *GalleryController) listItems(c *gin.Context, publicOnly bool) {
	items, err := gc.gallery.List(c.Query("category"), c.Query("media_type"), publicOnly)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "count": len(out)})
}

// GetCategories handles GET /api/gallery/categories (public).
func (gc *GalleryController) GetCategories(c *gin.Context) {
	categories, err := gc.gallery.Categories()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// mediaTypeFor maps the file classification to the stored enum.
func mediaTypeFor(filename string) (string, error) {
	kind, err := services.MediaKind(filename)
	if err != nil {
		return "", err
	}
	if kind == "video" {
		return "Video", nil
	}
	return "Image", nil
}

// CreateGalleryItem handles POST /api/gallery/admin (multipart; the file
// is mandatory, it is the item). Media type comes from the extension.
func (gc *GalleryController) CreateGalleryItem(c *gin.Context) {
	var form galleryForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	fh := formFile(c, "file", "media")
	if fh == nil {
		utils.JSONError(c, http.StatusBadRequest, "Media file is required")
		return
	}

	mediaType, err := mediaTypeFor(fh.Filename)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	path, err := gc.files.Save(fh, "gallery")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	item := models.Gallery{
		MediaType: mediaType,
		FilePath:  path,
		Category:  "General",
		IsActive:  true,
	}
	if form.Title != nil {
		item.Title = *form.Title
	}
	if form.Description != nil {
		item.Description = *form.Description
	}
	if form.Category != nil && *form.Category != "" {
		item.Category = *form.Category
	}
	if form.DisplayOrder != nil {
		item.DisplayOrder = *form.DisplayOrder
	}
	if form.IsActive != nil {
		item.IsActive = *form.IsActive
	}

	if err := gc.gallery.Create(&item); err != nil {
		gc.files.Delete(path)
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Gallery item created successfully",
		"item":    item.ToDict(),
	})
}

// BulkUpload handles POST /api/gallery/admin/bulk-upload: one gallery
// item per uploaded file, sharing category and active flag.
func (gc *GalleryController) BulkUpload(c *gin.Context) {
	files := formFiles(c, "files")
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No files provided")
		return
	}

	category := strings.TrimSpace(c.PostForm("category"))
	if category == "" {
		category = "General"
	}

	created := make([]map[string]interface{}, 0, len(files))
	skipped := make([]string, 0)
	for _, fh := range files {
		mediaType, err := mediaTypeFor(fh.Filename)
		if err != nil {
			skipped = append(skipped, fh.Filename)
			continue
		}
		path, err := gc.files.Save(fh, "gallery")
		if err != nil {
			skipped = append(skipped, fh.Filename)
			continue
		}
		item := models.Gallery{
			Title:     fh.Filename,
			MediaType: mediaType,
			FilePath:  path,
			Category:  category,
			IsActive:  true,
		}
		if err := gc.gallery.Create(&item); err != nil {
			gc.files.Delete(path)
			skipped = append(skipped, fh.Filename)
			continue
		}
		created = append(created, item.ToDict())
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bulk upload processed",
		"items":   created,
		"skipped": skipped,
	})
}

// UpdateGalleryItem handles PUT /api/gallery/admin/:id. A new file
// replaces the stored one and re-derives the media type.
func (gc *GalleryController) UpdateGalleryItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := gc.gallery.Get(id)
	if err != nil {
		fetchError(c, err, "Gallery item not found")
		return
	}

	var form galleryForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if form.Title != nil {
		item.Title = *form.Title
	}
	if form.Description != nil {
		item.Description = *form.Description
	}
	if form.Category != nil && *form.Category != "" {
		item.Category = *form.Category
	}
	if form.DisplayOrder != nil {
		item.DisplayOrder = *form.DisplayOrder
	}
	if form.IsActive != nil {
		item.IsActive = *form.IsActive
	}

	// The old file is only removed once the row commit succeeds.
	var newFile, oldFile string
	if fh := formFile(c, "file", "media"); fh != nil {
		mediaType, err := mediaTypeFor(fh.Filename)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		path, err := gc.files.Save(fh, "gallery")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		oldFile = item.FilePath
		newFile = path
		item.FilePath = path
		item.MediaType = mediaType
	}

	if err := gc.gallery.Save(item); err != nil {
		if newFile != "" {
			gc.files.Delete(newFile)
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if oldFile != "" && oldFile != newFile {
		gc.files.Delete(oldFile)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gallery item updated successfully",
		"item":    item.ToDict(),
	})
}

// DeleteGalleryItem handles DELETE /api/gallery/admin/:id.
func (gc *GalleryController) DeleteGalleryItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := gc.gallery.Get(id)
	if err != nil {
		fetchError(c, err, "Gallery item not found")
		return
	}

	gc.files.Delete(item.FilePath)
	if err := gc.gallery.Delete(item); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gallery item deleted successfully"})
}
