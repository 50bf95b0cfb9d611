// Package deliveryapi is a typed client for the remote delivery API, the sole
// owner of all persistence and business rules. Every call either succeeds or
// surfaces immediately; there is no automatic retry.
package deliveryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sycelim/delivery-web/internal/apperr"
	"github.com/sycelim/delivery-web/internal/domain"
	"github.com/sycelim/delivery-web/internal/logx"
)

const bodyLimit = 1 << 20

// Client calls the remote delivery API over HTTP.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   logx.Logger
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// New creates a delivery API client. The timeout bounds every outbound call
// so a hung remote request cannot pin a handler goroutine indefinitely.
func New(baseURL string, timeout time.Duration, logger logx.Logger, requests, failures *prometheus.CounterVec) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		requests: requests,
		failures: failures,
	}
}

// flexID accepts both string and numeric JSON identifiers; the API's ids are
// opaque to the front end either way.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type deliveryDTO struct {
	ID               flexID `json:"id"`
	CustomerName     string `json:"customerName"`
	Address          string `json:"address"`
	Status           string `json:"status"`
	CreatedAt        string `json:"createdAt"`
	LivreurFirstname string `json:"livreurFirstname"`
}

func mapDelivery(d deliveryDTO) domain.Delivery {
	return domain.Delivery{
		ID:           string(d.ID),
		CustomerName: d.CustomerName,
		Address:      d.Address,
		Status:       domain.Status(d.Status),
		CreatedAt:    d.CreatedAt,
		CourierName:  d.LivreurFirstname,
	}
}

// ListAll fetches every delivery, in server order. Admin only.
func (c *Client) ListAll(ctx context.Context, token string) ([]domain.Delivery, error) {
	return c.list(ctx, "list_all", "/deliveries", token)
}

// ListMine fetches the deliveries assigned to the calling courier.
func (c *Client) ListMine(ctx context.Context, token string) ([]domain.Delivery, error) {
	return c.list(ctx, "list_mine", "/deliveries/mine", token)
}

func (c *Client) list(ctx context.Context, op, path, token string) ([]domain.Delivery, error) {
	resp, err := c.do(ctx, op, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, c.fail(op, apperr.ErrLoad, err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(op, resp, apperr.ErrLoad, "Erreur lors du chargement des livraisons")
	}

	var dtos []deliveryDTO
	if err := json.NewDecoder(io.LimitReader(resp.Body, bodyLimit)).Decode(&dtos); err != nil {
		return nil, c.fail(op, apperr.ErrLoad, fmt.Errorf("decode response: %w", err))
	}

	deliveries := make([]domain.Delivery, 0, len(dtos))
	for _, d := range dtos {
		deliveries = append(deliveries, mapDelivery(d))
	}
	return deliveries, nil
}

// Create submits a new delivery for the calling courier and returns the
// server confirmation message.
func (c *Client) Create(ctx context.Context, token, customerName, address string) (string, error) {
	body := map[string]string{"customerName": customerName, "address": address}
	return c.mutate(ctx, "create", http.MethodPost, "/deliveries", token, body,
		apperr.ErrCreate, "Erreur lors de la création de la livraison")
}

// UpdateStatus changes one delivery's status to the given wire value.
func (c *Client) UpdateStatus(ctx context.Context, token, id string, status domain.Status) (string, error) {
	path := "/deliveries/" + url.PathEscape(id) + "/status"
	body := map[string]string{"status": string(status)}
	return c.mutate(ctx, "update_status", http.MethodPatch, path, token, body,
		apperr.ErrUpdate, "Erreur lors du changement de statut")
}

// Delete removes one delivery. Admin only.
func (c *Client) Delete(ctx context.Context, token, id string) (string, error) {
	path := "/deliveries/" + url.PathEscape(id)
	return c.mutate(ctx, "delete", http.MethodDelete, path, token, nil,
		apperr.ErrDelete, "Erreur lors de la suppression de la livraison")
}

func (c *Client) mutate(ctx context.Context, op, method, path, token string, body any, sentinel error, fallback string) (string, error) {
	resp, err := c.do(ctx, op, method, path, token, body)
	if err != nil {
		return "", c.fail(op, sentinel, err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.statusError(op, resp, sentinel, fallback)
	}
	return confirmationMessage(resp.Body), nil
}

// do builds and sends one request. An empty token sends no Authorization
// header (auth endpoints); otherwise the bearer token is attached verbatim.
func (c *Client) do(ctx context.Context, op, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.requests != nil {
		c.requests.WithLabelValues(op).Inc()
	}
	return c.http.Do(req)
}

func (c *Client) statusError(op string, resp *http.Response, sentinel error, fallback string) error {
	msg := messageFromBody(resp.Body)
	if msg == "" {
		msg = fallback
	}
	err := &Error{Op: op, Status: resp.StatusCode, Kind: sentinel, Message: msg}
	c.observeFailure(op, err)
	return err
}

func (c *Client) fail(op string, sentinel error, cause error) error {
	err := &Error{Op: op, Kind: fmt.Errorf("%w: %w", sentinel, cause)}
	c.observeFailure(op, cause)
	return err
}

func (c *Client) observeFailure(op string, err error) {
	if c.failures != nil {
		c.failures.WithLabelValues(op).Inc()
	}
	c.logger.Warn("delivery api call failed",
		logx.String("op", op),
		logx.Any("err", err),
	)
}

func confirmationMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, bodyLimit))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Message
}

func closeBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, bodyLimit))
	_ = body.Close()
}
