package mailingservices

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/terangamart/terangamart/config"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

// Init configures the client; with no Mailgun credentials the notifier
// stays a no-op.
func (m *Mailgun) Init(conf *config.Config) {
	if conf.MgDomain == "" || conf.MailgunApiKey == "" {
		return
	}
	m.Client = mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey)
	m.From = conf.MgEmailFrom
}

// SendContactAlert emails a listing owner about a new contact message.
func (m *Mailgun) SendContactAlert(to, listingTitle, senderName, message string) error {
	if m.Client == nil || to == "" {
		return nil
	}

	subject := fmt.Sprintf("New message about your listing %q", listingTitle)
	body := fmt.Sprintf("%s sent you a message about %q:\n\n%s\n", senderName, listingTitle, message)
	mail := m.Client.NewMessage(m.From, subject, body, to)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _, err := m.Client.Send(ctx, mail)
	return err
}
