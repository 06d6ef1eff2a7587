package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kennel-backend/models"
)

func makeGalleryItem(t *testing.T, db *gorm.DB, title string, order int, uploadedAt time.Time, active bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.Gallery{
		Title:        title,
		MediaType:    "Image",
		FilePath:     "gallery/" + title + ".jpg",
		Category:     "General",
		DisplayOrder: order,
		IsActive:     active,
		UploadedAt:   uploadedAt,
	}).Error)
}

func TestGalleryListOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewGalleryService(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Inserted out of order on purpose: ordering must come from the
	// columns, not insertion sequence.
	makeGalleryItem(t, db, "third", 1, base.Add(2*time.Hour), true)
	makeGalleryItem(t, db, "first", 0, base.Add(time.Hour), true)
	makeGalleryItem(t, db, "second", 0, base, true) // same order as "first", older upload
	makeGalleryItem(t, db, "fourth", 2, base, true)

	items, err := svc.List("", "", false)
	require.NoError(t, err)
	require.Len(t, items, 4)

	// display_order ascending; within an order, newest upload first.
	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.Title)
	}
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, got)
}

func TestGalleryListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewGalleryService(db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	makeGalleryItem(t, db, "visible", 0, now, true)
	makeGalleryItem(t, db, "hidden", 1, now, false)
	require.NoError(t, db.Create(&models.Gallery{
		Title: "clip", MediaType: "Video", FilePath: "gallery/clip.mp4",
		Category: "Events", IsActive: true, UploadedAt: now,
	}).Error)

	public, err := svc.List("", "", true)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	all, err := svc.List("", "", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	videos, err := svc.List("", "Video", false)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "clip", videos[0].Title)

	events, err := svc.List("Events", "", false)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// An unknown media type value is dropped, not an error.
	loose, err := svc.List("", "Audio", false)
	require.NoError(t, err)
	assert.Len(t, loose, 3)
}

func TestGalleryCategoriesDistinctActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewGalleryService(db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, title := range []string{"a", "b"} {
		makeGalleryItem(t, db, title, 0, now, true)
	}
	require.NoError(t, db.Create(&models.Gallery{
		Title: "archived", MediaType: "Image", FilePath: "gallery/x.jpg",
		Category: "Archive", IsActive: false, UploadedAt: now,
	}).Error)

	categories, err := svc.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"General"}, categories)
}
