package verifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

const apiKeyHeader = "x-goog-api-key"

// Client клиент генеративной модели, которая проверяет подтверждения оплаты
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        Logger
	recorder   Recorder
	now        func() time.Time
}

// NewClient создает новый экземпляр клиента проверки оплаты
func NewClient(baseURL, apiKey, model string, timeout time.Duration, log Logger, recorder Recorder) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:      log,
		recorder: recorder,
		now:      time.Now,
	}
}

// HTTPClient для подмены транспорта в тестах
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Analyze отправляет документ модели и разбирает заключение.
// Ошибки транспорта оборачивают domain.ErrUpstreamFailure, ошибки разбора domain.ErrParseFailure
func (c *Client) Analyze(ctx context.Context, doc Document, expected decimal.Decimal, reference string) (*domain.VerificationResult, error) {
	if len(doc.Data) == 0 {
		return nil, ErrEmptyDocument
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: buildPrompt(expected, reference)},
				{InlineData: &inlineData{
					MimeType: doc.MimeType,
					Data:     base64.StdEncoding.EncodeToString(doc.Data),
				}},
			},
		}},
		GenerationConfig: generationConfig{Temperature: 0},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error содержит адрес запроса, в Verification.Error попадает только причина
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: rate limited by model provider", ErrInvalidResponse)
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrParseFailure, err)
	}
	if len(generated.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}

	var text strings.Builder
	for _, p := range generated.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, fmt.Errorf("%w: empty candidate", ErrInvalidResponse)
	}

	return ParseVerdict(text.String())
}

// Verify проверка с graceful degradation: никогда не возвращает ошибку.
// Любой сбой даёт Verification{Success: false, Summary: manual_review}
func (c *Client) Verify(ctx context.Context, doc Document, expected decimal.Decimal, reference string) *domain.Verification {
	c.log.Info("Verifying payment proof: mime=%s, size=%d, expected=R%s", doc.MimeType, len(doc.Data), expected.StringFixed(2))

	result, err := c.Analyze(ctx, doc, expected, reference)
	if err != nil {
		c.log.Error("Payment verification unavailable, manual review required: %v", err)
		verification := domain.FailedVerification(err, c.now())
		c.record(verification)
		return verification
	}

	verification := domain.NewVerification(result, c.now())
	c.log.Info("Payment proof verified: summary=%s, confidence=%d, amountMatches=%t",
		verification.Summary, result.Confidence, result.AmountMatches)
	c.record(verification)

	return verification
}

func (c *Client) record(v *domain.Verification) {
	if c.recorder != nil {
		c.recorder.RecordVerification(string(v.Summary))
	}
}
