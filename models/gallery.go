package models

import (
	"time"

	"kennel-backend/utils"
)

// Gallery is a standalone media item (photo or video). It owns exactly
// one stored file and nothing else.
type Gallery struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	MediaType    string    `gorm:"size:20;not null" json:"media_type"` // Image, Video
	FilePath     string    `gorm:"size:255;not null" json:"file_path"`
	Category     string    `gorm:"size:50" json:"category"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (g *Gallery) TableName() string { return "gallery" }

func (g *Gallery) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":            g.ID,
		"title":         g.Title,
		"description":   g.Description,
		"media_type":    g.MediaType,
		"file_path":     utils.FileURL(g.FilePath),
		"category":      g.Category,
		"display_order": g.DisplayOrder,
		"is_active":     g.IsActive,
		"uploaded_at":   g.UploadedAt.UTC().Format(time.RFC3339),
	}
}
