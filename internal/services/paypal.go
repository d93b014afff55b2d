package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/maikadev/maika-api/internal/config"
	"github.com/maikadev/maika-api/internal/models"
	"github.com/maikadev/maika-api/pkg/logger"
)

// PaymentGateway is the remote payment-provider contract. The concrete
// implementation talks to PayPal; tests can inject a stub.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, order *models.Order) (map[string]any, error)
	CaptureOrder(ctx context.Context, remoteID string) (map[string]any, error)
	GetOrder(ctx context.Context, remoteID string) (map[string]any, error)
}

// PayPalClient implements PaymentGateway against the PayPal REST API using
// client-credentials OAuth. Gateway state is never reconciled automatically
// with local payment records.
type PayPalClient struct {
	cfg  config.PayPalConfig
	http *http.Client
	log  *logger.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewPayPalClient(cfg config.PayPalConfig, log *logger.Logger) *PayPalClient {
	return &PayPalClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

// CreateOrder creates a remote capture-intent order mirroring the local one.
func (c *PayPalClient) CreateOrder(ctx context.Context, order *models.Order) (map[string]any, error) {
	total := order.ComputeTotal()

	items := make([]map[string]any, 0, len(order.Dishes))
	for _, d := range order.Dishes {
		items = append(items, map[string]any{
			"name":        d.Name,
			"description": d.Name,
			"quantity":    strconv.Itoa(d.Quantity),
			"unit_amount": money(d.Price),
			"category":    "DIGITAL_GOODS",
		})
	}

	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]any{
				"currency_code": "USD",
				"value":         amount(total),
				"breakdown": map[string]any{
					"item_total": money(total),
				},
			},
			"items": items,
		}},
	}
	return c.call(ctx, http.MethodPost, "/v2/checkout/orders", body)
}

// CaptureOrder captures the funds of a previously created remote order.
func (c *PayPalClient) CaptureOrder(ctx context.Context, remoteID string) (map[string]any, error) {
	return c.call(ctx, http.MethodPost, "/v2/checkout/orders/"+remoteID+"/capture", map[string]any{})
}

// GetOrder fetches the current state of a remote order.
func (c *PayPalClient) GetOrder(ctx context.Context, remoteID string) (map[string]any, error) {
	return c.call(ctx, http.MethodGet, "/v2/checkout/orders/"+remoteID, nil)
}

func (c *PayPalClient) call(ctx context.Context, method, path string, body any) (map[string]any, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("paypal request failed")
		return nil, err
	}
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode paypal response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("paypal returned an error")
		return nil, fmt.Errorf("paypal: %s returned status %d", path, resp.StatusCode)
	}
	return result, nil
}

// token returns a cached OAuth access token, refreshing it when expired.
func (c *PayPalClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal: token request returned status %d", resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode paypal token response: %w", err)
	}

	c.accessToken = tok.AccessToken
	// Refresh one minute early to avoid using a token at the edge of expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

func money(v float64) map[string]string {
	return map[string]string{"currency_code": "USD", "value": amount(v)}
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
