package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

// requestTimeout ограничивает один вызов платёжного провайдера.
const requestTimeout = 10 * time.Second

// createSessionRequest — тело POST /payments/pay.
type createSessionRequest struct {
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	ReferenceID string `json:"referenceId"`
}

// createSessionResponse — ответ провайдера на создание сессии.
type createSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// sessionResultRequest — тело POST /payments/sessions/{id}/result.
type sessionResultRequest struct {
	Success bool `json:"success"`
}

// sessionResultResponse — подтверждение провайдером исхода сессии.
type sessionResultResponse struct {
	Acknowledged bool `json:"acknowledged"`
}

// HTTPGateway — клиент внешнего платёжного провайдера поверх его JSON API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	logger  *log.Entry
}

// NewHTTPGateway конструирует клиента провайдера. baseURL задаёт корень API
// без завершающего слэша, например http://payments:8090.
func NewHTTPGateway(baseURL string, logger *log.Entry) *HTTPGateway {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// CreateSession запрашивает у провайдера платёжную сессию на сумму заказа.
// Пустой идентификатор сессии в ответе читается как отказ провайдера.
func (g *HTTPGateway) CreateSession(amountMinor int64, currency, referenceID string) (string, error) {
	if amountMinor < 0 {
		return "", domain.ErrAmountNegative
	}
	if currency == "" {
		return "", domain.ErrCurrencyRequired
	}

	payload := createSessionRequest{
		AmountMinor: amountMinor,
		Currency:    currency,
		ReferenceID: referenceID,
	}

	var resp createSessionResponse
	if err := g.postJSON(g.baseURL+"/payments/pay", payload, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentSessionFailed, err)
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("%w: provider returned empty session id", domain.ErrPaymentSessionFailed)
	}

	g.logger.WithFields(log.Fields{
		"session_id":   resp.SessionID,
		"reference_id": referenceID,
	}).Debug("payment session created")

	return resp.SessionID, nil
}

// MarkSessionResult сообщает провайдеру исход сессии и возвращает,
// подтвердил ли он её.
func (g *HTTPGateway) MarkSessionResult(sessionID string, success bool) (bool, error) {
	if sessionID == "" {
		return false, fmt.Errorf("%w: session id is empty", domain.ErrPaymentSessionFailed)
	}

	var resp sessionResultResponse
	url := g.baseURL + "/payments/sessions/" + sessionID + "/result"
	if err := g.postJSON(url, sessionResultRequest{Success: success}, &resp); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrPaymentSessionFailed, err)
	}

	return resp.Acknowledged, nil
}

func (g *HTTPGateway) postJSON(url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpResp, err := g.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post %s: %w", url, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Тело читаем, но не включаем целиком: провайдер может вернуть страницу ошибки.
		io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
		return fmt.Errorf("provider responded %d", httpResp.StatusCode)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ domain.PaymentGateway = (*HTTPGateway)(nil)
