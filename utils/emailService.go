package utils

import (
	"fmt"
	"learnhub/config"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP account. When no
// sender is configured the email is skipped silently so local setups work
// without SMTP credentials.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	if from == "" {
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LearnHub <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// SendEnrollmentEmail sends the enrollment confirmation to a student.
func SendEnrollmentEmail(email, userName, courseName string) error {
	subject := "Enrollment Confirmation - " + courseName
	body := fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; color: #333;">
		<h2>Hi %s,</h2>
		<p>You have been enrolled in <strong>%s</strong>.</p>
		<p>Head over to your dashboard to start learning.</p>
		<p>— The LearnHub Team</p>
	</body>
	</html>`, userName, courseName)

	return SendEmail([]string{email}, subject, body)
}
