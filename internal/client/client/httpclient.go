package client

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

	"github.com/cenkalti/backoff/v5"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/redact"
	"github.com/google/uuid"
)

const (
	registerPath    = "/auth/register"
	loginPath       = "/auth/login"
	findByEmailPath = "/user/findByEmail/"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20

	defaultTimeout       = 30 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
)

// HTTPClient talks to the account API over JSON/HTTP.
type HTTPClient struct {
	baseURL       string
	httpClient    *http.Client
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration
	logger        logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout bounds every single request attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithRetry sets the total number of attempts and the pause between them
// for idempotent calls. attempts < 1 is treated as 1.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *HTTPClient) {
		c.retryAttempts = attempts
		c.retryDelay = delay
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{},
		timeout:       defaultTimeout,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
		logger:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retryAttempts < 1 {
		c.retryAttempts = 1
	}
	return c
}

// Register creates an account. It is never retried: a lost response
// does not tell whether the account was created.
func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, registerPath, req, &resp, msgRegisterFailed); err != nil {
		return nil, err
	}
	if err := checkAuthResponse(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a user record and a token.
func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	resp, err := retry(ctx, c, func() (*AuthResponse, error) {
		var resp AuthResponse
		if err := c.do(ctx, http.MethodPost, loginPath, req, &resp, msgLoginFailed); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkAuthResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// FindUserByEmail fetches the server's record for email.
func (c *HTTPClient) FindUserByEmail(ctx context.Context, email string) (*UserResponse, error) {
	path := findByEmailPath + url.PathEscape(email)
	return retry(ctx, c, func() (*UserResponse, error) {
		var resp UserResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &resp, msgUserNotFound); err != nil {
			return nil, err
		}
		if resp.ID == "" {
			return nil, fmt.Errorf("%w: user without id", ErrMalformedResponse)
		}
		return &resp, nil
	})
}

// retry repeats op while it fails with ErrUnavailable. Any other error
// stops immediately.
func retry[T any](ctx context.Context, c *HTTPClient, op func() (T, error)) (T, error) {
	res, err := backoff.Retry(ctx, func() (T, error) {
		res, err := op()
		if err != nil && !errors.Is(err, ErrUnavailable) {
			return res, backoff.Permanent(err)
		}
		return res, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryDelay)),
		backoff.WithMaxTries(uint(c.retryAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn(ctx, "retrying api call", "error", err, "next_in", next)
		}),
	)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
	}
	return res, err
}

// do performs one request attempt bounded by c.timeout. A non-2xx status is
// turned into *APIError carrying the body's message or fallback.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("request_id", requestID, "method", method, "path", redactPath(path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "api request failed", "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading api response failed", "error", err)
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var er errorResponse
		if json.Unmarshal(data, &er) == nil && strings.TrimSpace(er.Message) != "" {
			msg = er.Message
		}
		log.Info(ctx, "api rejected request", "status", resp.StatusCode)
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Warn(ctx, "api response is not valid json", "status", resp.StatusCode)
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	log.Debug(ctx, "api request done", "status", resp.StatusCode)
	return nil
}

func checkAuthResponse(resp *AuthResponse) error {
	if resp.Token == "" || resp.User.ID == "" {
		return fmt.Errorf("%w: missing token or user", ErrMalformedResponse)
	}
	return nil
}

// redactPath masks the email segment of lookup paths.
func redactPath(path string) string {
	if rest, ok := strings.CutPrefix(path, findByEmailPath); ok {
		if email, err := url.PathUnescape(rest); err == nil {
			return findByEmailPath + redact.Email(email)
		}
		return findByEmailPath + "***"
	}
	return path
}
