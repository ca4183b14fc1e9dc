package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/types"
	"github.com/inoxmetalart/backend/internal/utils"
)

type TelegramConfig struct {
	BotToken   string
	ChatID     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

func TelegramConfigFromEnv(log *logger.Logger) TelegramConfig {
	timeoutSec := utils.GetEnvAsInt("TELEGRAM_TIMEOUT_SECONDS", 30, log)
	maxRetries := utils.GetEnvAsInt("TELEGRAM_MAX_RETRIES", 3, log)
	return TelegramConfig{
		BotToken:   strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		ChatID:     strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		BaseURL:    strings.TrimSpace(os.Getenv("TELEGRAM_BASE_URL")),
		Timeout:    time.Duration(timeoutSec) * time.Second,
		MaxRetries: maxRetries,
	}
}

// TelegramService relays lead notifications to a chat through the Bot API:
// one sendMessage call for the lead itself, then one sendDocument call per
// attached file.
type TelegramService struct {
	log        *logger.Logger
	cfg        TelegramConfig
	httpClient *http.Client
}

func NewTelegramService(log *logger.Logger, cfg TelegramConfig) (*TelegramService, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("missing TELEGRAM_BOT_TOKEN")
	}
	if cfg.ChatID == "" {
		return nil, fmt.Errorf("missing TELEGRAM_CHAT_ID")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &TelegramService{
		log:        log.With("service", "TelegramService"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (t *TelegramService) SendApplication(ctx context.Context, application *types.Application) error {
	if err := t.SendMessage(ctx, FormatApplicationMessage(application)); err != nil {
		return err
	}
	for _, path := range application.FilePaths {
		if _, err := os.Stat(filepath.FromSlash(path)); err != nil {
			continue
		}
		if err := t.SendDocument(ctx, path); err != nil {
			t.log.Warn("Failed to forward attached file", "path", path, "error", err)
		}
	}
	return nil
}

func (t *TelegramService) SendTest(ctx context.Context) error {
	text := fmt.Sprintf("<b>🧪 ТЕСТОВОЕ СООБЩЕНИЕ</b>\n\nБот настроен и работает!\nВремя: %s",
		time.Now().Format("2006-01-02 15:04:05"))
	return t.SendMessage(ctx, text)
}

func (t *TelegramService) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.cfg.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}
	return t.call(ctx, "sendMessage", func() (io.Reader, string, error) {
		return bytes.NewReader(payload), "application/json", nil
	})
}

func (t *TelegramService) SendDocument(ctx context.Context, path string) error {
	return t.call(ctx, "sendDocument", func() (io.Reader, string, error) {
		file, err := os.Open(filepath.FromSlash(path))
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		if err := writer.WriteField("chat_id", t.cfg.ChatID); err != nil {
			return nil, "", err
		}
		part, err := writer.CreateFormFile("document", filepath.Base(path))
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", err
		}
		if err := writer.Close(); err != nil {
			return nil, "", err
		}
		return bytes.NewReader(body.Bytes()), writer.FormDataContentType(), nil
	})
}

// call posts to a Bot API method with bounded retries on 429 and 5xx. The
// body builder runs per attempt so each retry gets a fresh reader.
func (t *TelegramService) call(ctx context.Context, method string, body func() (io.Reader, string, error)) error {
	url := fmt.Sprintf("%s/bot%s/%s", t.cfg.BaseURL, t.cfg.BotToken, method)

	var lastErr error
	backoff := time.Second
	for attempt := 0; attempt < t.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		reader, contentType, err := body()
		if err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := t.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		lastErr = fmt.Errorf("telegram %s: status %d: %s", method, resp.StatusCode, strings.TrimSpace(string(respBody)))
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
			return lastErr
		}
	}
	return lastErr
}

// FormatApplicationMessage renders the lead as the HTML message posted to
// the chat.
func FormatApplicationMessage(a *types.Application) string {
	var b strings.Builder
	b.WriteString("<b>🎯 НОВАЯ ЗАЯВКА С САЙТА</b>\n\n")
	fmt.Fprintf(&b, "<b>🏢 Компания:</b> %s\n", a.CompanyName)
	fmt.Fprintf(&b, "<b>👤 Контактное лицо:</b> %s\n", a.ContactPerson)
	fmt.Fprintf(&b, "<b>📧 Email:</b> %s\n", a.Email)
	fmt.Fprintf(&b, "<b>📞 Телефон:</b> %s\n", a.Phone)
	fmt.Fprintf(&b, "<b>🌍 Страна:</b> %s\n", a.Country)
	fmt.Fprintf(&b, "<b>🏙️ Город:</b> %s\n\n", a.City)
	fmt.Fprintf(&b, "<b>📦 Тип продукции:</b> %s\n", a.ProductType)
	fmt.Fprintf(&b, "<b>📊 Количество:</b> %s\n", a.Quantity)
	fmt.Fprintf(&b, "<b>🎯 Применение:</b> %s\n", a.Application)
	if a.Deadline != "" {
		fmt.Fprintf(&b, "<b>⏰ Желаемые сроки:</b> %s\n", a.Deadline)
	}
	if a.AdditionalInfo != "" {
		fmt.Fprintf(&b, "\n<b>📝 Дополнительная информация:</b>\n%s\n", a.AdditionalInfo)
	}
	return b.String()
}
