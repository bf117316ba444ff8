package apiclient

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
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	Retries   int
	Logger    *zap.Logger
}

// Client talks to the salon REST API. The caller's bearer token travels in
// the request context (see session.WithToken).
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retries int
	backoff time.Duration
	log     *zap.Logger
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		retries: opts.Retries,
		backoff: 200 * time.Millisecond,
		log:     logger.OrNop(opts.Logger),
	}
}

// getJSON retries transport failures and 5xx answers; GETs are idempotent.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.log.Debug("retrying salon api request",
				zap.String("path", path), zap.Int("attempt", attempt), zap.Error(err))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		err = c.do(ctx, http.MethodGet, path, nil, out)
		if !retryable(err) {
			return err
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := session.TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := unwrap(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// unwrap accepts both bare payloads and the {"data": ...} envelope.
func unwrap(raw []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
			return json.Unmarshal(envelope.Data, out)
		}
	}
	return json.Unmarshal(raw, out)
}

func decodeError(status int, raw []byte) error {
	apiErr := &httperr.APIError{Status: status}

	var body struct {
		Message   string `json:"message"`
		Error     string `json:"error"`
		ErrorCode string `json:"error_code"`
		Code      string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
		apiErr.Code = body.ErrorCode
		if apiErr.Code == "" {
			apiErr.Code = body.Code
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if ae, ok := httperr.AsAPIError(err); ok {
		return ae.Status >= 500
	}
	var transportErr *url.Error
	return errors.As(err, &transportErr)
}
