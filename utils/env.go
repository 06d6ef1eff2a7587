package utils

import (
	"os"
	"strings"
)

// EnvOrDefault returns the env value for key, or def when unset/blank.
func EnvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// FileURL expands a storage-relative path into an absolute retrieval URL.
// Already-absolute values pass through untouched so records can later be
// migrated to external object storage without rewriting rows.
func FileURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(EnvOrDefault("BASE_URL", "http://localhost:8080"), "/")
	return base + "/uploads/" + strings.TrimLeft(path, "/")
}

// StrictEnumUpdates reports whether partial updates reject invalid
// enumerated values (400) instead of silently ignoring them.
func StrictEnumUpdates() bool {
	return strings.EqualFold(EnvOrDefault("STRICT_ENUM_UPDATES", "false"), "true")
}
