package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kennel-backend/services"
	"kennel-backend/utils"
)

// parseID reads a numeric path parameter; on failure it writes the 404
// itself and returns ok=false.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

// fetchError maps a failed row lookup to a response: 404 for a missing
// row, 500 for a store failure.
func fetchError(c *gin.Context, err error, message string) {
	if services.IsNotFound(err) {
		utils.JSONError(c, http.StatusNotFound, message)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, err.Error())
}

// formFile returns the first uploaded file found under any of the given
// field names, or nil when the request carries no file (including plain
// JSON requests).
func formFile(c *gin.Context, names ...string) *multipart.FileHeader {
	for _, name := range names {
		if fh, err := c.FormFile(name); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}

// formFiles returns every file uploaded under the given field name.
func formFiles(c *gin.Context, name string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[name]
}
