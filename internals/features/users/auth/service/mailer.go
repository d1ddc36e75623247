package service

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/RonaldMark17/agridata-backend/internals/configs"
)

// Mailer delivers security codes. Delivery is an external collaborator: a
// slow or failing mail server must never take a transaction down with it,
// so callers send after commit and treat errors as log-only.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

var mailer Mailer

// SetMailer swaps the delivery backend (tests use a capture stub).
func SetMailer(m Mailer) {
	mailer = m
}

func getMailer() Mailer {
	if mailer != nil {
		return mailer
	}
	if configs.MailUsername == "" {
		return logMailer{}
	}
	return smtpMailer{}
}

type smtpMailer struct{}

func (smtpMailer) Send(to, subject, htmlBody string) error {
	addr := configs.MailHost + ":" + configs.MailPort
	auth := smtp.PlainAuth("", configs.MailUsername, configs.MailPassword, configs.MailHost)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		configs.MailSender, to, subject, htmlBody,
	)
	return smtp.SendMail(addr, auth, configs.MailSender, []string{to}, []byte(msg))
}

// logMailer keeps local development working without SMTP credentials.
type logMailer struct{}

func (logMailer) Send(to, subject, htmlBody string) error {
	log.Printf("[INFO] (mail disabled) to=%s subject=%q", to, subject)
	return nil
}

func otpEmailBody(code string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
		<h2 style="color: #10b981;">AgriData Login Verification</h2>
		<p>Your One-Time Password (OTP) is:</p>
		<h1 style="font-size: 32px; letter-spacing: 5px; background: #f0fdf4; padding: 10px; display: inline-block; border-radius: 8px;">%s</h1>
		<p>This code expires in 5 minutes.</p>
		<p style="font-size: 12px; color: #888;">If you did not attempt this login, please contact support immediately.</p>
	</div>`, code)
}
