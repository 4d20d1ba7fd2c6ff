package utils

import (
	"fmt"
	"log"

	"learnhub/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendEmail delivers a single HTML mail through SendGrid. Failures are
// logged, never propagated; mail is best-effort.
func sendEmail(toEmail, toName, subject, htmlBody string) {
	if config.AppConfig.SendgridKey == "" {
		log.Printf("[EMAIL] SendGrid not configured, skipping mail to %s (%s)", toEmail, subject)
		return
	}

	from := sgmail.NewEmail("LearnHub", config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", emailTemplate(subject, htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending %q to %s: %v", subject, toEmail, err)
		return
	}
	if resp.StatusCode >= 300 {
		log.Printf("[EMAIL] SendGrid rejected %q to %s: %d %s", subject, toEmail, resp.StatusCode, resp.Body)
		return
	}
	log.Printf("[EMAIL] Sent %q to %s", subject, toEmail)
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A2238; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2238; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnHub. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to LearnHub! Browse the catalog, pick a course and start learning.</p>
	`, name)
	sendEmail(email, name, "Welcome to LearnHub", body)
}

// SendEnrollmentEmail confirms access to a course, free or purchased
func SendEnrollmentEmail(email, name, courseTitle, reference string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You now have access to <strong>%s</strong>.</p>
		<p>Your receipt reference: <code>%s</code></p>
	`, name, courseTitle, reference)
	sendEmail(email, name, "Course access confirmed", body)
}

// SendCourseCompletedEmail congratulates a learner on finishing a course
func SendCourseCompletedEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You completed every lesson of <strong>%s</strong>.</p>
	`, name, courseTitle)
	sendEmail(email, name, "Course completed!", body)
}
