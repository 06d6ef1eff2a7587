package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kennel-backend/config"
	"kennel-backend/controllers"
	"kennel-backend/models"
	"kennel-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer builds the full router over an in-memory database with
// the default admin seeded, the same wiring main uses.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, config.Migrate(db))
	config.SeedDatabase(db)

	uploadDir := t.TempDir()
	fileService := services.NewFileService(uploadDir)
	require.NoError(t, fileService.EnsureDirs("dogs", "puppies", "gallery"))

	ac := controllers.NewAuthController(services.NewAuthService(db))
	dc := controllers.NewDogController(services.NewDogService(db), fileService)
	pc := controllers.NewPuppyController(services.NewPuppyService(db), fileService)
	gc := controllers.NewGalleryController(services.NewGalleryService(db), fileService)
	bc := controllers.NewBookingController(services.NewBookingService(db, services.NewEmailService()))

	return SetupRouter(db, uploadDir, ac, dc, pc, gc, bc), db, uploadDir
}

func doMultipart(r *gin.Engine, method, path, token string, fields map[string]string, fileField, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if fileField != "" {
		fw, _ := mw.CreateFormFile(fileField, filename)
		fw.Write(content)
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthAndIndex(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "endpoints")
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/nonsense", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, w.Body.String())
}

func TestLoginAndVerify(t *testing.T) {
	r, _, _ := newTestServer(t)
	token := loginToken(t, r)

	w := doJSON(r, http.MethodGet, "/api/auth/verify", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/dogs/admin", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/dogs/admin", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginToken(t, r)
	w = doJSON(r, http.MethodGet, "/api/dogs/admin", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDisabledAdminIsRejectedOnNextRequest(t *testing.T) {
	r, db, _ := newTestServer(t)
	token := loginToken(t, r)

	require.NoError(t, db.Model(&models.Admin{}).Where("username = ?", "admin").
		Update("is_active", false).Error)

	w := doJSON(r, http.MethodGet, "/api/dogs/admin", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDogLifecycleOverHTTP(t *testing.T) {
	r, db, _ := newTestServer(t)
	token := loginToken(t, r)

	// Invalid gender never reaches the database.
	w := doJSON(r, http.MethodPost, "/api/dogs/admin", token, gin.H{
		"name": "Bruno", "gender": "Other", "role": "Stud",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var count int64
	db.Model(&models.Dog{}).Count(&count)
	assert.EqualValues(t, 0, count)

	w = doJSON(r, http.MethodPost, "/api/dogs/admin", token, gin.H{
		"name": "Bruno", "gender": "Male", "role": "Stud",
		"date_of_birth": "2022-06-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Dog struct {
			ID uint `json:"id"`
		} `json:"dog"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.Dog.ID)

	// Public detail works while active.
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/dogs/%d", created.Dog.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deactivating hides it from the public surface but not from admin.
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/dogs/admin/%d", created.Dog.ID), token, gin.H{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/dogs/%d", created.Dog.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/dogs", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)

	w = doJSON(r, http.MethodGet, "/api/dogs/admin", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestPuppySoldTransitionStampsSoldAt(t *testing.T) {
	r, db, _ := newTestServer(t)
	token := loginToken(t, r)

	w := doJSON(r, http.MethodPost, "/api/puppies/admin", token, gin.H{
		"gender":        "Female",
		"date_of_birth": "2025-05-01",
		"price":         2500.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Puppy struct {
			ID uint `json:"id"`
		} `json:"puppy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/puppies/admin/%d", created.Puppy.ID), token, gin.H{
		"status": "Sold",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var puppy models.Puppy
	require.NoError(t, db.First(&puppy, created.Puppy.ID).Error)
	assert.Equal(t, "Sold", puppy.Status)
	require.NotNil(t, puppy.SoldAt)
	firstSoldAt := *puppy.SoldAt

	// A second update leaves the original sale timestamp alone.
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/puppies/admin/%d", created.Puppy.ID), token, gin.H{
		"status": "Sold",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&puppy, created.Puppy.ID).Error)
	require.NotNil(t, puppy.SoldAt)
	assert.Equal(t, firstSoldAt.Unix(), puppy.SoldAt.Unix())
}

func TestBookingSubmissionOverHTTP(t *testing.T) {
	r, db, _ := newTestServer(t)

	// Missing fields are rejected before anything is stored.
	w := doJSON(r, http.MethodPost, "/api/bookings", "", gin.H{
		"customer_name": "Jordan Smith",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/bookings", "", gin.H{
		"customer_name":  "Jordan Smith",
		"customer_email": "not-an-email",
		"customer_phone": "+15551234567",
		"message":        "Interested",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/bookings", "", gin.H{
		"customer_name":  "Jordan Smith",
		"customer_email": "jordan@example.com",
		"customer_phone": "+15551234567",
		"message":        "Interested in a female puppy",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, db.First(&booking).Error)
	assert.Equal(t, "New", booking.Status)

	// Admin listing requires a token.
	w = doJSON(r, http.MethodGet, "/api/bookings/admin", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginToken(t, r)
	w = doJSON(r, http.MethodGet, "/api/bookings/admin", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = doJSON(r, http.MethodGet, "/api/bookings/admin/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestGalleryCategoriesPublic(t *testing.T) {
	r, db, _ := newTestServer(t)

	require.NoError(t, db.Create(&models.Gallery{
		Title: "Spring litter", MediaType: "Image", FilePath: "gallery/a.jpg",
		Category: "Puppies", IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.Gallery{
		Title: "Hidden", MediaType: "Image", FilePath: "gallery/b.jpg",
		Category: "Archive", IsActive: false,
	}).Error)

	w := doJSON(r, http.MethodGet, "/api/gallery/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Puppies")
	assert.NotContains(t, w.Body.String(), "Archive")

	w = doJSON(r, http.MethodGet, "/api/gallery", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestBookingNotesOnlyUpdateKeepsStatus(t *testing.T) {
	r, db, _ := newTestServer(t)
	token := loginToken(t, r)

	booking := models.Booking{
		CustomerName:  "Jordan Smith",
		CustomerEmail: "jordan@example.com",
		CustomerPhone: "+15551234567",
		Message:       "Interested in a puppy",
		Status:        "Contacted",
	}
	require.NoError(t, db.Create(&booking).Error)

	// Sending only admin_notes must leave the status untouched.
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/bookings/admin/%d", booking.ID), token, gin.H{
		"admin_notes": "called",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, "Contacted", reloaded.Status)
	assert.Equal(t, "called", reloaded.AdminNotes)

	// And a status-only update leaves the notes alone.
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/bookings/admin/%d", booking.ID), token, gin.H{
		"status": "Completed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, "Completed", reloaded.Status)
	assert.Equal(t, "called", reloaded.AdminNotes)
}

func TestStoreFailureMapsTo500(t *testing.T) {
	r, db, _ := newTestServer(t)

	// Missing rows are 404.
	w := doJSON(r, http.MethodGet, "/api/dogs/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A broken store is a 500, not a 404.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = doJSON(r, http.MethodGet, "/api/dogs/1", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doJSON(r, http.MethodGet, "/api/puppies/1", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBookingTestEmailEndpoint(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_USERNAME", "")
	r, _, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/bookings/admin/test-email", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginToken(t, r)
	w = doJSON(r, http.MethodPost, "/api/bookings/admin/test-email", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Test email sent successfully")
}

func TestPuppyImageReplacementOrdering(t *testing.T) {
	r, db, uploadDir := newTestServer(t)
	token := loginToken(t, r)
	puppiesDir := filepath.Join(uploadDir, "puppies")

	// A second puppy holds the microchip the update below collides with.
	w := doJSON(r, http.MethodPost, "/api/puppies/admin", token, gin.H{
		"gender":           "Male",
		"date_of_birth":    "2025-05-01",
		"microchip_number": "985000000000001",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doMultipart(r, http.MethodPost, "/api/puppies/admin", token, map[string]string{
		"gender":        "Female",
		"date_of_birth": "2025-05-01",
	}, "primary_image", "portrait.jpg", []byte("original-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Puppy struct {
			ID uint `json:"id"`
		} `json:"puppy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	var before models.Puppy
	require.NoError(t, db.First(&before, created.Puppy.ID).Error)
	require.NotNil(t, before.PrimaryImage)
	oldFile := filepath.Join(uploadDir, filepath.FromSlash(*before.PrimaryImage))
	require.FileExists(t, oldFile)
	require.Equal(t, 1, countFiles(t, puppiesDir))

	// The duplicate microchip makes the row save fail after the new file
	// is stored: the old file must survive, the new one must be cleaned
	// up, and the row must keep pointing at the old file.
	w = doMultipart(r, http.MethodPut, fmt.Sprintf("/api/puppies/admin/%d", created.Puppy.ID), token,
		map[string]string{"microchip_number": "985000000000001"},
		"primary_image", "replacement.jpg", []byte("replacement-bytes"))
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var after models.Puppy
	require.NoError(t, db.First(&after, created.Puppy.ID).Error)
	require.NotNil(t, after.PrimaryImage)
	assert.Equal(t, *before.PrimaryImage, *after.PrimaryImage)
	assert.FileExists(t, oldFile)
	assert.Equal(t, 1, countFiles(t, puppiesDir))

	// A clean replacement swaps the stored file and removes the old one.
	w = doMultipart(r, http.MethodPut, fmt.Sprintf("/api/puppies/admin/%d", created.Puppy.ID), token,
		nil, "primary_image", "replacement.jpg", []byte("replacement-bytes"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&after, created.Puppy.ID).Error)
	require.NotNil(t, after.PrimaryImage)
	assert.NotEqual(t, *before.PrimaryImage, *after.PrimaryImage)
	assert.NoFileExists(t, oldFile)
	assert.Equal(t, 1, countFiles(t, puppiesDir))
}
