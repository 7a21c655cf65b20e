package utils

import (
	"context"
	"errors"
	"fmt"

	"furniture_back_end/internal/config"
	"furniture_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

var ErrMailDisabled = errors.New("mail disabled")

// Mailer sends shop notifications over SMTP.
type Mailer struct {
	client *mail.Client
	from   string
	to     string
}

// NewMailer returns nil, nil when SMTP is not configured.
func NewMailer(cfg config.SMTPConfig) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	if cfg.ShopAddress == "" {
		return nil, errors.New("SMTP_SHOP_ADDRESS is required when SMTP_HOST is set")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From, to: cfg.ShopAddress}, nil
}

// SendOrderNotification mails the shop the printable order page.
func (m *Mailer) SendOrderNotification(ctx context.Context, o *models.Order) error {
	if m == nil {
		return ErrMailDisabled
	}
	body, err := RenderOrderHTML(o, "")
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(m.to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("新訂單 %s（%s）", o.Number, FormatMoney(o.Total)))
	msg.SetBodyString(mail.TypeTextHTML, body)

	return m.client.DialAndSendWithContext(ctx, msg)
}
