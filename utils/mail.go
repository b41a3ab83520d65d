package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"os"
	"path/filepath"
)

type EmailData struct {
	Name      string
	Message   string
	ActionURL string
	LogoURL   string
}

const logoURL = "https://www.luxvision.shop/images/logo.png"

func sendEmail(emailTo string, emailSubject string, data EmailData, templateName string) error {
	tmpl, err := template.ParseFiles(filepath.Join("templates", templateName))
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerificationEmail mails the account activation link to a new user.
func SendVerificationEmail(emailTo, name, activationToken string) error {
	data := EmailData{
		Name:      name,
		Message:   "Thank you for signing up! Click the button below to verify your account.",
		ActionURL: os.Getenv("FRONTEND_URL") + "/auth/verify-email?token=" + url.QueryEscape(activationToken),
		LogoURL:   logoURL,
	}
	return sendEmail(emailTo, "Account Verification", data, "verify_email.html")
}

// SendPasswordResetEmail mails a password reset link.
func SendPasswordResetEmail(emailTo, name, resetToken string) error {
	data := EmailData{
		Name:      name,
		Message:   "You requested a password reset. Click the button below to reset your password.",
		ActionURL: os.Getenv("FRONTEND_URL") + "/auth/reset-password?token=" + url.QueryEscape(resetToken),
		LogoURL:   logoURL,
	}
	return sendEmail(emailTo, "LuxVision Account Password Reset", data, "reset_password.html")
}
