package utils

import (
	"classroom/config"
	"fmt"
	"net/smtp"
)

// sendHTMLMail sends an HTML email through the configured SMTP account.
// Mail is best-effort everywhere in the app; callers run this in a goroutine.
func sendHTMLMail(to, subjectLine, body string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	if from == "" || password == "" {
		return fmt.Errorf("email sender is not configured")
	}

	subject := "Subject: " + subjectLine + "\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
}

// SendWelcomeEmail sends a greeting after successful registration
func SendWelcomeEmail(email, userName string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Welcome to Classroom!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your account has been created. You can now log in, join classes with an invite code, or create your own class as an instructor.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Classroom Team</p>
				</div>
			</body>
		</html>
	`, userName)

	return sendHTMLMail(email, "Welcome to Classroom", body)
}

// SendEnrollmentApprovedEmail notifies a student that the instructor approved
// their join request.
func SendEnrollmentApprovedEmail(email, userName, className string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Enrollment Approved</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your request to join the class below has been approved:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">You now have access to the class assignments, materials, announcements and discussions.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Classroom Team</p>
				</div>
			</body>
		</html>
	`, userName, className)

	return sendHTMLMail(email, "Class Enrollment Approved", body)
}
