package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// Client sends order documents over SMTP.
type Client struct {
	dialer *gomail.Dialer
	from   string
}

func NewClient(host string, port int, username, password string) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

// Send delivers a plain-text message with an optional PDF attachment.
func (c *Client) Send(to, subject, body, attachmentName string, attachment []byte) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.from, "Phoenix Crackers")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if len(attachment) > 0 {
		m.Attach(attachmentName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(attachment)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		)
	}

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
