package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/types"
	"github.com/inoxmetalart/backend/internal/utils"
)

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func EmailConfigFromEnv(log *logger.Logger) EmailConfig {
	return EmailConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:     utils.GetEnvAsInt("SMTP_PORT", 587, log),
		User:     strings.TrimSpace(os.Getenv("SMTP_USER")),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
		To:       strings.TrimSpace(os.Getenv("APPLICATIONS_EMAIL")),
	}
}

// EmailService mails incoming leads to the sales inbox, with the uploaded
// files attached.
type EmailService struct {
	log *logger.Logger
	cfg EmailConfig
}

func NewEmailService(log *logger.Logger, cfg EmailConfig) (*EmailService, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("missing SMTP_HOST")
	}
	if cfg.To == "" {
		return nil, fmt.Errorf("missing APPLICATIONS_EMAIL")
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("missing SMTP_FROM")
	}
	return &EmailService{
		log: log.With("service", "EmailService"),
		cfg: cfg,
	}, nil
}

func (e *EmailService) SendApplication(application *types.Application) error {
	subject := fmt.Sprintf("Новая заявка: %s", application.CompanyName)
	body := formatApplicationEmail(application)
	msg, err := e.buildMessage(subject, body, application.FilePaths)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	var auth smtp.Auth
	if e.cfg.User != "" {
		auth = smtp.PlainAuth("", e.cfg.User, e.cfg.Password, e.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, e.cfg.From, []string{e.cfg.To}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// buildMessage assembles a multipart/mixed message with an HTML part and one
// attachment per stored file. Missing files are skipped rather than failing
// the whole message.
func (e *EmailService) buildMessage(subject, htmlBody string, paths []string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", e.cfg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	for _, path := range paths {
		data, err := os.ReadFile(filepath.FromSlash(path))
		if err != nil {
			e.log.Warn("Skipping unreadable attachment", "path", path, "error", err)
			continue
		}
		name := filepath.Base(path)
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/octet-stream"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", name)},
		})
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(data)
		for len(encoded) > 0 {
			n := 76
			if n > len(encoded) {
				n = len(encoded)
			}
			if _, err := part.Write([]byte(encoded[:n] + "\r\n")); err != nil {
				return nil, err
			}
			encoded = encoded[n:]
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatApplicationEmail(a *types.Application) string {
	var b strings.Builder
	b.WriteString("<h2>Новая заявка с сайта</h2>")
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "<p><b>%s:</b> %s</p>", label, value)
		}
	}
	row("Компания", a.CompanyName)
	row("Контактное лицо", a.ContactPerson)
	row("Email", a.Email)
	row("Телефон", a.Phone)
	row("Страна", a.Country)
	row("Город", a.City)
	row("Тип продукции", a.ProductType)
	row("Количество", a.Quantity)
	row("Применение", a.Application)
	row("Желаемые сроки", a.Deadline)
	row("Дополнительная информация", a.AdditionalInfo)
	return b.String()
}
