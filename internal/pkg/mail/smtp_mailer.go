package mail

import (
	"fmt"
	"net/smtp"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/internal/pkg/env"
)

// SendFunc delivers one HTML email.
type SendFunc func(to, subject, body string) error

var (
	mu     sync.RWMutex
	sender SendFunc = sendSMTP
)

// SetSender swaps the delivery function and returns a func restoring the
// previous one.
func SetSender(f SendFunc) func() {
	mu.Lock()
	prev := sender
	sender = f
	mu.Unlock()
	return func() {
		mu.Lock()
		sender = prev
		mu.Unlock()
	}
}

// SendMail sends an HTML email through the configured sender.
func SendMail(to string, subject string, body string) error {
	mu.RLock()
	f := sender
	mu.RUnlock()
	return f(to, subject, body)
}

func sendSMTP(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "587")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	from := env.GetEnv("SMTP_SENDER", "")

	if host == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}
	if from == "" {
		from = "no-reply@localhost"
		log.Warnf("[Mail] SMTP_SENDER not set, using default sender: %s", from)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", from, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, from, []string{to}, msg)
	if err != nil {
		log.Errorf("[Mail] SMTP send error: %v", err)
	} else {
		log.Infof("[Mail] Email sent to %s via %s", to, addr)
	}
	return err
}
