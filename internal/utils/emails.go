package utils

import (
	"log"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/config"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an email using the SMTP configuration from the
// environment. Returns without sending when SMTP_USERNAME is unset.
func SendEmail(to string, subject string, body string) error {
	smtpHost := config.GetEnv("SMTP_HOST", "smtp.gmail.com")
	smtpPort := config.GetEnvAsInt("SMTP_PORT", 587)
	smtpUsername := config.GetEnv("SMTP_USERNAME", "")
	smtpPassword := config.GetEnv("SMTP_PASSWORD", "")

	if smtpUsername == "" {
		return nil
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", smtpUsername)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUsername, smtpPassword)

	if err := dialer.DialAndSend(mailer); err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	return nil
}
