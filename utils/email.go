package utils

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// sendEmail delivers a plain-text message over SMTP with STARTTLS.
// An unconfigured SMTP host is treated as a logged no-op so local
// environments work without mail credentials.
func sendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")
	fromEmail := os.Getenv("SMTP_FROM_EMAIL")

	if host == "" || username == "" || password == "" {
		log.Println("⚠️ SMTP not configured. Email not sent to:", to)
		return nil
	}
	if fromEmail == "" {
		fromEmail = username
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         host,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", username, password, host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err = w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		log.Printf("⚠️ QUIT command error (non-critical): %v", err)
	}
	return nil
}

// SendResetLink emails a password reset link pointing at the frontend.
func SendResetLink(to, token string) error {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)
	body := fmt.Sprintf(
		"We received a request to reset your MInT Events password.\n\n"+
			"Reset it here: %s\n\n"+
			"The link expires in 15 minutes. If you did not request this, ignore this email.",
		link,
	)

	return sendEmail(to, "Reset your MInT Events password", body)
}

// SendTempPasswordEmail notifies a user that an admin issued them a
// temporary password which must be changed on first login.
func SendTempPasswordEmail(to, tempPassword string) error {
	body := fmt.Sprintf(
		"An administrator reset your MInT Events account password.\n\n"+
			"Temporary password: %s\n\n"+
			"You will be asked to change it the next time you sign in.",
		tempPassword,
	)
	return sendEmail(to, "Your MInT Events password was reset", body)
}
