package crm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/shaiso/Syncline/internal/domain"
)

// Дефолтные таймауты HTTP-запросов к CRM.
const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 5 * time.Second
)

// Client — HTTP-клиент внешнего CRM-сервиса.
//
// Отправляет customers в POST {base-url}/customers (Content-Type
// application/json). Тело ответа не читается и не парсится:
// доставка fire-and-forget, успех — любой 2xx.
//
// Клиент безопасен для конкурентного использования (http.Client
// с пулом соединений), items одного run могут отправляться параллельно.
type Client struct {
	baseURL string
	http    *http.Client
}

// Config — конфигурация Client.
type Config struct {
	// BaseURL — базовый URL CRM API, например "http://crm:8080/api".
	BaseURL string

	// ConnectTimeout — таймаут установки соединения (default: 5s).
	ConnectTimeout time.Duration

	// ReadTimeout — таймаут запроса целиком, включая чтение ответа
	// (default: 5s).
	ReadTimeout time.Duration
}

// New создаёт новый Client.
func New(cfg Config) *Client {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   readTimeout,
			Transport: transport,
		},
	}
}

// SyncCustomer отправляет payload одного customer в CRM.
//
// Классификация ошибок:
//   - не-2xx ответ -> *RemoteRejectedError с кодом статуса
//   - сетевая ошибка / таймаут -> *TransportError
func (c *Client) SyncCustomer(ctx context.Context, payload *domain.CrmPayload) error {
	err := requests.
		URL(c.baseURL + "/customers").
		Client(c.http).
		BodyJSON(payload).
		AddValidator(checkSuccess).
		Fetch(ctx)
	if err == nil {
		return nil
	}

	var rejected *RemoteRejectedError
	if errors.As(err, &rejected) {
		return rejected
	}
	return &TransportError{Cause: err}
}

// checkSuccess заменяет дефолтный валидатор requests:
// не-2xx должен стать RemoteRejectedError с точным кодом,
// а не обезличенной ошибкой валидации.
func checkSuccess(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	return &RemoteRejectedError{Status: res.StatusCode}
}
