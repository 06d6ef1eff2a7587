package utils

import (
	"regexp"
	"time"
)

var (
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phoneStrip = regexp.MustCompile(`[\s\-()]`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone accepts common formats like "+91-98765 43210" by
// stripping separators before matching.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phoneStrip.ReplaceAllString(phone, ""))
}

// ValidateDate checks YYYY-MM-DD.
func ValidateDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func ValidateGender(gender string) bool {
	return gender == "Male" || gender == "Female"
}

func ValidateDogRole(role string) bool {
	return role == "Stud" || role == "Dam" || role == "Both"
}

func ValidatePuppyStatus(status string) bool {
	switch status {
	case "Available", "Reserved", "Sold":
		return true
	}
	return false
}

// ValidateBookingStatus accepts any value in the enumerated set; no
// transition table is enforced, so Completed back to New is allowed.
func ValidateBookingStatus(status string) bool {
	switch status {
	case "New", "Contacted", "In Progress", "Completed", "Cancelled":
		return true
	}
	return false
}

func ValidateGenderPreference(pref string) bool {
	switch pref {
	case "Male", "Female", "No Preference":
		return true
	}
	return false
}

func ValidateMediaType(mediaType string) bool {
	return mediaType == "Image" || mediaType == "Video"
}
