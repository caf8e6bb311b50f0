package utils

import (
	"fmt"
	"lms/config"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Generic Send Email. Goes through SendGrid when an API key is configured,
// plain SMTP otherwise.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridAPIKey != "" {
		return sendWithSendGrid(to, subject, htmlBody)
	}
	return sendWithSMTP(to, subject, htmlBody)
}

func sendWithSendGrid(to []string, subject string, htmlBody string) error {
	from := sgmail.NewEmail("LMS", config.AppConfig.EmailSender)

	p := sgmail.NewPersonalization()
	p.Subject = subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", htmlBody))

	resp, err := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey).Send(m)
	if err != nil {
		log.Printf("Error sending email via SendGrid: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid send failed with status %d", resp.StatusCode)
	}
	return nil
}

func sendWithSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #2D5BFF; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.content h2 { color: #1A1A2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2D5BFF; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNSPACE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Learnspace. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Learnspace"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Learnspace</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. You can now browse the catalog, enroll in courses and build your weekly study plan.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. OTP (email verification / password reset)
func SendOTPEmail(email, name, code, purpose string) {
	subject := "Your Learnspace verification code"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your one-time code for %s is:</p>
		<div class="info-box"><strong style="font-size: 22px; letter-spacing: 4px;">%s</strong></div>
		<p>The code expires in 10 minutes. If you did not request it, you can safely ignore this email.</p>
	`, name, purpose, code)

	go SendEmail([]string{email}, subject, getEmailTemplate("Verification Code", body))
}

// 3. Enrollment confirmation
func SendEnrollmentEmail(email, name, courseTitle string) {
	subject := "Enrollment Confirmed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Generate your weekly plan from the scheduler to get lessons placed into your time slots.
		</div>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Successful", body))
}

// 4. Upcoming session reminder
func SendSessionReminderEmail(email, name, itemTitle, courseTitle string, start time.Time) {
	subject := "Upcoming session: " + itemTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A reminder that <strong>%s</strong> (%s) starts at <strong>%s</strong>.</p>
		<p>Open your scheduler to join or review the material.</p>
	`, name, itemTitle, courseTitle, start.Format("Mon, 02 Jan 2006 15:04"))

	go SendEmail([]string{email}, subject, getEmailTemplate("Session Reminder", body))
}
