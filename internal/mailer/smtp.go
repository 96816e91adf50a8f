// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"
)

var otpTemplate = template.Must(template.New("otp").Parse(
	`<p>Your verification code is <b>{{.Code}}</b>. It is valid for 10 minutes.</p>`))

// SMTPMailer delivers OTP mail through an SMTP server using STARTTLS.
type SMTPMailer struct {
	host     string
	port     string
	from     string
	password string
}

// NewSMTPMailer creates a mailer authenticating as from/password.
func NewSMTPMailer(host, port, from, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, password: password}
}

// SendOTP mails the verification code to the given address. No retry; a
// transport failure is the caller's problem.
func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string) error {
	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, map[string]string{"Code": code}); err != nil {
		return fmt.Errorf("render otp mail: %w", err)
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", m.from),
		fmt.Sprintf("To: %s", to),
		"Subject: Verify your email",
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	if err := m.send(ctx, to, []byte(msg)); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(m.host, m.port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	// Bound the whole SMTP conversation, not just the dial.
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
