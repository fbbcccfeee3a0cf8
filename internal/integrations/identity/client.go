package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Client клиент провайдера идентификации
// Токен пересылается провайдеру как есть, тот возвращает пользователя
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Authenticate получает пользователя по токену
func (c *Client) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	url := c.baseURL + "/internal/auth/me"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Authenticate: identity provider unavailable: %v", err)
		return domain.Principal{}, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.Principal{}, fmt.Errorf("%w: rejected by identity provider", ErrUnauthorized)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Warn("Authenticate: unexpected status %d from identity provider", resp.StatusCode)
		return domain.Principal{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var me Me
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return domain.Principal{}, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if me.ID <= 0 {
		return domain.Principal{}, fmt.Errorf("%w: user id is missing", ErrInvalidResponse)
	}

	return me.ToPrincipal(), nil
}
