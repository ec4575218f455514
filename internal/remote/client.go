// Package remote предоставляет HTTP-клиент удаленного REST API NoteHub
// и типизированные методы доступа к его ресурсам.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"notehub/pkg/logger"
)

// DefaultBaseURL адрес удаленного API по умолчанию.
const DefaultBaseURL = "https://notehub-api.goit.study"

// Константы для сообщений об ошибках.
const (
	ErrBuildRequest   = "failed to build remote request"
	ErrEncodeBody     = "failed to encode request body"
	ErrDecodeResponse = "failed to decode remote response"
	ErrSendRequest    = "remote request failed"

	LogRemoteStatus = "remote responded with error status"
)

const maxErrorBody = 4 << 10

// Config содержит параметры подключения к удаленному API.
type Config struct {
	BaseURL string        `env:"BASE_URL" env-default:"https://notehub-api.goit.study"`
	Timeout time.Duration `env:"TIMEOUT" env-default:"10s"`
}

// Client выполняет запросы к удаленному API с фиксированным базовым адресом.
// Учетные данные передаются либо через cookie jar (клиентский режим),
// либо заголовком Cookie из контекста (серверный режим, см. WithCookieHeader).
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client, например для тестов.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithJar включает хранение cookie между запросами.
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.http.Jar = jar
	}
}

// NewClient создает клиент удаленного API.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}

	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url %q: %w", raw, err)
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL возвращает базовый адрес API.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Response содержит декодированное тело ответа и выданные сервером cookie.
type Response[T any] struct {
	Data       T
	Cookies    []*http.Cookie
	StatusCode int
}

// StatusError ответ удаленного API со статусом вне диапазона 2xx.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote status %d: %s", e.StatusCode, e.Message)
}

// StatusCode возвращает HTTP-статус из цепочки ошибок или 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsUnauthorized сообщает, что удаленный API отклонил учетные данные.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

type cookieHeaderKey struct{}

// WithCookieHeader сохраняет исходный заголовок Cookie для пересылки удаленному API.
func WithCookieHeader(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, cookieHeaderKey{}, header)
}

// CookieHeader возвращает сохраненный заголовок Cookie.
func CookieHeader(ctx context.Context) string {
	if v, ok := ctx.Value(cookieHeaderKey{}).(string); ok {
		return v
	}
	return ""
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*Response[T], error) {
	log := logger.Log(ctx).With(
		zap.String("remote_method", method),
		zap.String("remote_path", path),
	)

	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrEncodeBody, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if header := CookieHeader(ctx); header != "" {
		req.Header.Set("Cookie", header)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, ErrSendRequest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrSendRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := newStatusError(resp)
		log.Warn(ctx, LogRemoteStatus,
			zap.Int("status", resp.StatusCode),
			zap.String("message", statusErr.Message))
		return nil, statusErr
	}

	out := &Response[T]{
		Cookies:    resp.Cookies(),
		StatusCode: resp.StatusCode,
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDecodeResponse, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out.Data); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDecodeResponse, err)
	}

	return out, nil
}

func newStatusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return se
	}

	var body errorBody
	if json.Unmarshal(data, &body) == nil {
		switch {
		case body.Error != "":
			se.Message = body.Error
		case body.Message != "":
			se.Message = body.Message
		}
	}

	return se
}
