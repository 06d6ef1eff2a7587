package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"kennel-backend/models"
	"kennel-backend/utils"
)

// EmailService sends booking notifications over SMTP. When SMTP env is
// not configured it logs a mock line instead of failing, so development
// setups and tests never depend on a mail server.
type EmailService struct{}

func NewEmailService() *EmailService {
	return &EmailService{}
}

func (s *EmailService) send(recipient, subject, plainBody, htmlBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := utils.EnvOrDefault("SMTP_FROM_NAME", "K9 Kennel")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%q", recipient, subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	boundary := "----=_KENNEL_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, []string{recipient}, []byte(sb.String())); err != nil {
		log.Printf("Failed to send email to %s: %v", recipient, err)
		return err
	}
	return nil
}

// SendBookingNotification alerts the kennel admin about a new inquiry.
func (s *EmailService) SendBookingNotification(booking *models.Booking, puppy *models.Puppy) error {
	recipient := utils.EnvOrDefault("ADMIN_EMAIL", "admin@k9kennel.com")

	puppyLine := "No specific puppy"
	if puppy != nil {
		name := "Unnamed"
		if puppy.Name != nil && *puppy.Name != "" {
			name = *puppy.Name
		}
		puppyLine = fmt.Sprintf("%s (%s, %s)", name, puppy.Gender, puppy.Color)
	}

	plainBody := fmt.Sprintf(
		"New booking inquiry #%d\n\n"+
			"Customer: %s\nEmail: %s\nPhone: %s\nInterested puppy: %s\n\nMessage:\n%s\n",
		booking.ID, booking.CustomerName, booking.CustomerEmail,
		booking.CustomerPhone, puppyLine, booking.Message,
	)
	htmlBody := fmt.Sprintf(
		`<html><body><h2>New Booking Inquiry #%d</h2>`+
			`<p><strong>Customer:</strong> %s<br><strong>Email:</strong> %s<br>`+
			`<strong>Phone:</strong> %s<br><strong>Interested puppy:</strong> %s</p>`+
			`<p>%s</p></body></html>`,
		booking.ID, htmlEscape(booking.CustomerName), htmlEscape(booking.CustomerEmail),
		htmlEscape(booking.CustomerPhone), htmlEscape(puppyLine), htmlEscape(booking.Message),
	)

	return s.send(recipient, fmt.Sprintf("New Booking Inquiry #%d", booking.ID), plainBody, htmlBody)
}

// SendBookingConfirmation acknowledges the inquiry to the customer.
func (s *EmailService) SendBookingConfirmation(booking *models.Booking) error {
	plainBody := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for your inquiry. We have received your message and will "+
			"get back to you shortly.\n\nYour reference number is %d.\n\nBest regards,\nK9 Kennel\n",
		booking.CustomerName, booking.ID,
	)
	htmlBody := fmt.Sprintf(
		`<html><body><h2>Thank you for your inquiry</h2>`+
			`<p>Dear %s,</p><p>We have received your message and will get back to you shortly.</p>`+
			`<p>Your reference number is <strong>%d</strong>.</p><p>Best regards,<br>K9 Kennel</p></body></html>`,
		htmlEscape(booking.CustomerName), booking.ID,
	)

	return s.send(booking.CustomerEmail, "We received your inquiry", plainBody, htmlBody)
}

// SendTestEmail sends a minimal message so an operator can check the
// SMTP settings without creating a booking.
func (s *EmailService) SendTestEmail(recipient string) error {
	plainBody := "This is a test email from the kennel backend. Email settings are working.\n"
	htmlBody := `<html><body><p>This is a test email from the kennel backend. ` +
		`Email settings are working.</p></body></html>`
	return s.send(recipient, "Test Email - K9 Kennel", plainBody, htmlBody)
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
