// Package payment issues LiqPay hosted-checkout links and queries
// payment state for persisted orders.
package payment

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultHost = "https://www.liqpay.ua/api/"

	apiVersion = 3
)

type Config struct {
	PublicKey  string
	PrivateKey string
	Host       string
	ResultURL  string
	Currency   string
}

type LiqPayClient struct {
	cfg     Config
	httpC   *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewLiqPayClient(cfg Config) *LiqPayClient {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Currency == "" {
		cfg.Currency = "UAH"
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "liqpay",
		Timeout: 30 * time.Second,
	})

	return &LiqPayClient{
		cfg:     cfg,
		httpC:   &http.Client{Timeout: 10 * time.Second},
		breaker: breaker,
	}
}

// IssueLink builds the hosted-checkout URL for an order. This is pure
// URL construction; no call to the gateway happens until the buyer
// follows the link.
func (c *LiqPayClient) IssueLink(_ context.Context, order *domain.Order) (string, error) {
	data, signature, err := c.encode(map[string]interface{}{
		"version":     apiVersion,
		"public_key":  c.cfg.PublicKey,
		"action":      "pay",
		"amount":      order.TotalPrice,
		"currency":    c.cfg.Currency,
		"description": fmt.Sprintf("Order %s", order.ID),
		"order_id":    order.ID,
		"result_url":  c.cfg.ResultURL,
	})
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("data", data)
	query.Set("signature", signature)

	return c.cfg.Host + "3/checkout?" + query.Encode(), nil
}

// Status asks the gateway for the payment state of an order. The call
// goes through a circuit breaker so a struggling gateway does not pile
// up requests.
func (c *LiqPayClient) Status(ctx context.Context, orderID string) (string, error) {
	data, signature, err := c.encode(map[string]interface{}{
		"version":    apiVersion,
		"public_key": c.cfg.PublicKey,
		"action":     "status",
		"order_id":   orderID,
	})
	if err != nil {
		return "", err
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.post(ctx, "request", data, signature)
	})
	if err != nil {
		return "", fmt.Errorf("liqpay status request: %w", err)
	}

	var response struct {
		Status string `json:"status"`
		ErrMsg string `json:"err_description"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode liqpay response: %w", err)
	}
	if response.Status == "" {
		return "", fmt.Errorf("liqpay error: %s", response.ErrMsg)
	}
	return response.Status, nil
}

func (c *LiqPayClient) post(ctx context.Context, path, data, signature string) ([]byte, error) {
	form := url.Values{}
	form.Set("data", data)
	form.Set("signature", signature)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpC.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// encode marshals params to the base64 payload LiqPay expects and signs
// it with base64(sha1(private + data + private)).
func (c *LiqPayClient) encode(params map[string]interface{}) (data, signature string, err error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return "", "", fmt.Errorf("marshal liqpay params: %w", err)
	}

	data = base64.StdEncoding.EncodeToString(raw)
	return data, c.sign(data), nil
}

func (c *LiqPayClient) sign(data string) string {
	sum := sha1.Sum([]byte(c.cfg.PrivateKey + data + c.cfg.PrivateKey))
	return base64.StdEncoding.EncodeToString(sum[:])
}
