// Package sts calls the external STS vending API to obtain meter
// tokens, rotating through a pool of billing user ids until one
// succeeds.
package sts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	vendingTokenPath = "/api/Power/GetVendingToken"

	// The API vends for several meter families; this service only ever
	// vends electric.
	meterTypeElectric = "1"

	DefaultTimeout       = 30 * time.Second
	maxResponseBodyBytes = 1 << 20
)

// VendKind selects how AmountOrQuantity is interpreted by the STS API.
type VendKind int

const (
	VendByAmount VendKind = iota
	VendByUnit
)

// String returns the wire value the STS API expects.
func (k VendKind) String() string {
	if k == VendByUnit {
		return "1"
	}
	return "0"
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues vending tokens against a fixed endpoint with a fixed,
// ordered credential pool. The pool order is stable so the first entry
// absorbs load first and operational monitoring stays predictable.
type Client struct {
	baseURL    string
	userIDs    []string
	password   string
	httpClient HTTPDoer
	logger     *logrus.Logger
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets the per-attempt HTTP timeout. Ignored when a custom
// HTTP client is also supplied.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if hc, ok := c.httpClient.(*http.Client); ok {
			hc.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithLogger sets the logger used for per-attempt warnings.
func WithLogger(logger *logrus.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient validates the deployment-time contract: a base URL, a
// shared password, and a non-empty user id pool.
func NewClient(baseURL string, userIDs []string, password string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("sts: base URL is required")
	}
	if password == "" {
		return nil, errors.New("sts: password is required")
	}
	if len(userIDs) == 0 {
		return nil, errors.New("sts: at least one user id is required")
	}

	c := &Client{
		baseURL:    baseURL,
		userIDs:    userIDs,
		password:   password,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// vendingResponse is the STS API response body. Code 0 means success
// and Data.Token carries the meter token.
type vendingResponse struct {
	Code    int    `json:"Code"`
	Message string `json:"Message"`
	Data    *struct {
		Token string `json:"Token"`
	} `json:"Data"`
}

// IssueToken tries each configured user id in pool order and returns
// the first token obtained. Individual failures are logged and
// remembered; only full exhaustion is an error. The rotation is
// strictly sequential so load on the STS service stays ordered.
func (c *Client) IssueToken(ctx context.Context, meterCode string, quantity decimal.Decimal, kind VendKind) (string, error) {
	var lastErr error

	for _, userID := range c.userIDs {
		token, err := c.attempt(ctx, userID, meterCode, quantity, kind)
		if err == nil {
			return token, nil
		}

		// A dead caller context fails every remaining attempt the same
		// way, so stop rotating.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		c.logger.WithError(err).WithField("stsUserId", userID).Warn("sts vending attempt failed")
		lastErr = err
	}

	return "", &ExhaustedError{Attempts: len(c.userIDs), LastErr: lastErr}
}

func (c *Client) attempt(ctx context.Context, userID, meterCode string, quantity decimal.Decimal, kind VendKind) (string, error) {
	query := url.Values{}
	query.Set("UserId", userID)
	query.Set("Password", c.password)
	query.Set("MeterType", meterTypeElectric)
	query.Set("MeterCode", meterCode)
	query.Set("AmountOrQuantity", quantity.String())
	query.Set("VendingType", kind.String())

	requestURL := c.baseURL + vendingTokenPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return "", err
	}

	var result vendingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("sts: unexpected response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Code: result.Code, Message: result.Message}
	}

	if result.Code != 0 || result.Data == nil || result.Data.Token == "" {
		message := result.Message
		if message == "" {
			message = "vending failed: invalid response from STS server"
		}
		return "", &APIError{Code: result.Code, Message: message}
	}

	return result.Data.Token, nil
}
