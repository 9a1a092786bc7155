package alerts

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/config"
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// Channel alert delivery channel
type Channel interface {
	// Name returns the channel name
	Name() string

	// Send delivers one alert event
	Send(ctx context.Context, event models.AlertEvent) error

	// Close releases channel resources
	Close() error
}

// ConsoleChannel logs alerts to the process log
type ConsoleChannel struct{}

// NewConsoleChannel creates a console channel
func NewConsoleChannel() *ConsoleChannel {
	return &ConsoleChannel{}
}

// Name returns the channel name
func (c *ConsoleChannel) Name() string { return "console" }

// Send logs the alert
func (c *ConsoleChannel) Send(ctx context.Context, event models.AlertEvent) error {
	log.Printf("[ALERT - %s] %s", event.Priority, event.Message)
	return nil
}

// Close is a no-op for the console channel
func (c *ConsoleChannel) Close() error { return nil }

// EmailChannel delivers alerts via SMTP
type EmailChannel struct {
	config *config.EmailConfig
}

// NewEmailChannel creates an email channel
func NewEmailChannel(cfg *config.EmailConfig) *EmailChannel {
	return &EmailChannel{config: cfg}
}

// Name returns the channel name
func (c *EmailChannel) Name() string { return "email" }

// Send sends the alert as a plain-text email
func (c *EmailChannel) Send(ctx context.Context, event models.AlertEvent) error {
	addr := fmt.Sprintf("%s:%d", c.config.SMTPServer, c.config.SMTPPort)
	auth := smtp.PlainAuth("", c.config.SenderEmail, c.config.Password, c.config.SMTPServer)

	subject := fmt.Sprintf("[%s] System Alert: %s", event.Priority, event.Kind)
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		c.config.SenderEmail, c.config.ReceiverEmail, subject, event.Message)

	return smtp.SendMail(addr, auth, c.config.SenderEmail,
		[]string{c.config.ReceiverEmail}, []byte(body))
}

// Close is a no-op for the email channel
func (c *EmailChannel) Close() error { return nil }
