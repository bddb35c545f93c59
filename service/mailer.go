package service

import (
	"context"
	"errors"
	"log"
	"time"

	mail "github.com/go-mail/mail/v2"
	"github.com/sameersharma62616/edyucationn/models"
	"github.com/sameersharma62616/edyucationn/utils"
)

// MailStore is the slice of the store the mailer needs.
type MailStore interface {
	GetMailSettings(ctx context.Context) (*models.MailSettings, error)
	InsertMailLog(ctx context.Context, entry *models.MailLog) error
}

// Mailer sends notification emails using the admin-managed SMTP settings
// stored in the database. Every send is logged to mail_logs.
type Mailer struct {
	DB     MailStore
	EncKey []byte // 32 bytes for decrypting the SMTP password; nil = stored in plaintext
}

var ErrMailNotConfigured = errors.New("mail settings not configured")

// Send delivers a plain-text email. Returns ErrMailNotConfigured when no
// SMTP settings exist yet.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	settings, err := m.DB.GetMailSettings(ctx)
	if err != nil {
		return err
	}
	if settings == nil || settings.Host == "" || settings.Username == "" || settings.From == "" {
		return ErrMailNotConfigured
	}
	password := settings.Password
	if len(m.EncKey) == 32 && password != "" {
		dec, err := utils.Decrypt(password, m.EncKey)
		if err != nil {
			return err
		}
		password = dec
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", settings.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := mail.NewDialer(settings.Host, settings.Port, settings.Username, password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	if err := d.DialAndSend(msg); err != nil {
		return err
	}
	entry := &models.MailLog{
		ToEmail: to,
		Subject: subject,
		SentAt:  time.Now(),
	}
	if err := m.DB.InsertMailLog(ctx, entry); err != nil {
		log.Printf("mailer: failed to insert mail log: %v", err)
	}
	return nil
}
