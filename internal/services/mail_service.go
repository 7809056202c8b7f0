package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"
)

type IMailService interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
	SendMarketingEmail(ctx context.Context, to, name string) error
}

// Branding is shared by every mail transport.
type Branding struct {
	AppName    string
	AppBaseURL string
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host       string
	Port       int // 587 for STARTTLS, 465 for SMTPS
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // true for SMTPS 465
	RequireTLS bool // fail if STARTTLS is not offered

	Branding
}

// EmailMessage is a rendered email ready for any transport.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

type EmailData struct {
	Title     string
	Greeting  string
	Intro     string
	ButtonURL string
	ButtonTxt string
	Footnote  string
	AppName   string
	Year      int
}

// mailComposer renders the three message kinds. Transports only send.
type mailComposer struct {
	brand   Branding
	htmlTpl *template.Template
	textTpl *texttemplate.Template
}

func newMailComposer(brand Branding) *mailComposer {
	return &mailComposer{
		brand:   brand,
		htmlTpl: template.Must(template.New("html").Parse(htmlEmailTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("text").Parse(textEmailTemplate)),
	}
}

func (m *mailComposer) link(path string, token string) string {
	base := strings.TrimRight(m.brand.AppBaseURL, "/")
	if token == "" {
		return base + path
	}
	return fmt.Sprintf("%s%s?token=%s", base, path, url.QueryEscape(token))
}

func (m *mailComposer) verification(to, name, token string) (EmailMessage, error) {
	return m.render(to, "Verify your email", EmailData{
		Title:     "Verify your email",
		Greeting:  greeting(name),
		Intro:     "Thanks for signing up. Confirm your email address to start scanning menus and getting dish picks made for your palate.",
		ButtonURL: m.link("/auth/verify", token),
		ButtonTxt: "Verify email",
		Footnote:  "This link expires in 24 hours. If you did not create an account, ignore this email.",
	})
}

func (m *mailComposer) passwordReset(to, token string) (EmailMessage, error) {
	return m.render(to, "Reset your password", EmailData{
		Title:     "Reset your password",
		Intro:     "We received a request to reset your password. Use the button below to choose a new one.",
		ButtonURL: m.link("/auth/reset-password", token),
		ButtonTxt: "Reset password",
		Footnote:  "This link expires in 1 hour. If you did not ask for a reset, you can safely ignore this email.",
	})
}

func (m *mailComposer) marketing(to, name string) (EmailMessage, error) {
	return m.render(to, "Your next great meal is one scan away", EmailData{
		Title:     "Find your next favorite dish",
		Greeting:  greeting(name),
		Intro:     "Heading out to eat this week? Snap the menu and we will point you to the dishes that fit your taste. Rate what you ordered afterwards and your picks get sharper every time.",
		ButtonURL: m.link("/", ""),
		ButtonTxt: "Scan a menu",
	})
}

func (m *mailComposer) render(to, subject string, data EmailData) (EmailMessage, error) {
	data.AppName = m.brand.AppName
	data.Year = time.Now().Year()

	var hb, tb bytes.Buffer
	if err := m.htmlTpl.Execute(&hb, data); err != nil {
		return EmailMessage{}, err
	}
	if err := m.textTpl.Execute(&tb, data); err != nil {
		return EmailMessage{}, err
	}

	return EmailMessage{
		To:       to,
		Subject:  subject,
		HTMLBody: hb.String(),
		TextBody: tb.String(),
	}, nil
}

func greeting(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return "Hi there,"
	}
	return fmt.Sprintf("Hi %s,", name)
}

const htmlEmailTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#fdf6ee;font-family:-apple-system,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;color:#3b2f2a;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="padding:32px 12px;">
    <tr><td align="center">
      <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="max-width:560px;background:#ffffff;border-radius:14px;overflow:hidden;">
        <tr><td style="padding:24px 28px;background:#e85d3f;color:#ffffff;font-size:20px;font-weight:700;">{{.AppName}}</td></tr>
        <tr><td style="padding:32px 28px;">
          <h1 style="margin:0 0 16px;font-size:24px;">{{.Title}}</h1>
          {{if .Greeting}}<p style="margin:0 0 12px;line-height:1.6;">{{.Greeting}}</p>{{end}}
          <p style="margin:0 0 24px;line-height:1.6;">{{.Intro}}</p>
          {{if .ButtonURL}}
          <a href="{{.ButtonURL}}" style="display:inline-block;padding:14px 28px;background:#e85d3f;color:#ffffff;text-decoration:none;border-radius:10px;font-weight:600;">{{.ButtonTxt}}</a>
          <p style="margin:24px 0 0;font-size:13px;color:#8a7a72;">If the button does not work, paste this link into your browser:<br><a href="{{.ButtonURL}}" style="color:#e85d3f;word-break:break-all;">{{.ButtonURL}}</a></p>
          {{end}}
          {{if .Footnote}}<p style="margin:24px 0 0;font-size:13px;color:#8a7a72;">{{.Footnote}}</p>{{end}}
        </td></tr>
        <tr><td style="padding:18px 28px;font-size:12px;color:#8a7a72;text-align:center;border-top:1px solid #f1e6dc;">&copy; {{.Year}} {{.AppName}}</td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

const textEmailTemplate = `{{.Title}}

{{if .Greeting}}{{.Greeting}}

{{end}}{{.Intro}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}{{if .Footnote}}
{{.Footnote}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

type smtpMailService struct {
	cfg      SMTPConfig
	composer *mailComposer
}

func NewSMTPMailService(cfg SMTPConfig) IMailService {
	return &smtpMailService{
		cfg:      cfg,
		composer: newMailComposer(cfg.Branding),
	}
}

func (s *smtpMailService) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	msg, err := s.composer.verification(to, name, token)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *smtpMailService) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	msg, err := s.composer.passwordReset(to, token)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *smtpMailService) SendMarketingEmail(ctx context.Context, to, name string) error {
	msg, err := s.composer.marketing(to, name)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *smtpMailService) buildMIME(msg EmailMessage) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var b bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&b, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", msg.To)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", msg.TextBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", msg.HTMLBody)

	write("--%s--\r\n", boundary)
	return b.Bytes()
}

func (s *smtpMailService) send(ctx context.Context, msg EmailMessage) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	var (
		conn net.Conn
		err  error
	)
	if s.cfg.UseSSL {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(msg.To); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(s.buildMIME(msg)); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}
