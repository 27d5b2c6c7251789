// Package carrier books reverse pickups with the courier aggregator's HTTP API.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apptrade "github.com/shantum/COH-ERP2-sub001/internal/application/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseSize = 1 << 20

var (
	ErrMissingBaseURL = errors.New("carrier: base URL is required")
	ErrMissingAPIKey  = errors.New("carrier: API key is required")
	// ErrRequestFailed indicates a non-2xx response
	ErrRequestFailed = errors.New("carrier: request failed")
	// ErrUnavailable indicates the carrier could not be reached
	ErrUnavailable = errors.New("carrier: unavailable")
	// ErrMissingAWB indicates a 2xx response without a waybill number
	ErrMissingAWB = errors.New("carrier: response has no AWB")
)

type pickupRequest struct {
	Reference   string `json:"reference"`
	OrderNumber string `json:"order_number"`
	SKUCode     string `json:"sku_code"`
	Quantity    int    `json:"quantity"`
	Courier     string `json:"courier,omitempty"`
	PickupDate  string `json:"pickup_date,omitempty"`
}

type pickupResponse struct {
	AWB        string `json:"awb"`
	Courier    string `json:"courier"`
	PickupDate string `json:"pickup_date"`
	Message    string `json:"message"`
}

// HTTPBooker implements CarrierBooker against a JSON pickup API
type HTTPBooker struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPBooker creates a booker from configuration
func NewHTTPBooker(cfg config.CarrierConfig) (*HTTPBooker, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPBooker{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// BookPickup requests a reverse pickup. The line id is sent as the
// reference so a retried booking can be matched by the carrier.
func (b *HTTPBooker) BookPickup(ctx context.Context, req apptrade.PickupBookingRequest) (*apptrade.PickupBooking, error) {
	body := pickupRequest{
		Reference:   req.LineID.String(),
		OrderNumber: req.OrderNumber,
		SKUCode:     req.SKUCode,
		Quantity:    req.Qty,
		Courier:     req.Courier,
	}
	if req.ScheduledAt != nil {
		body.PickupDate = req.ScheduledAt.UTC().Format(time.RFC3339)
	}

	var resp pickupResponse
	if err := b.doRequest(ctx, http.MethodPost, "/v1/pickups", body, &resp); err != nil {
		return nil, err
	}
	if resp.AWB == "" {
		return nil, ErrMissingAWB
	}

	booking := &apptrade.PickupBooking{
		AWB:         resp.AWB,
		Courier:     resp.Courier,
		ScheduledAt: req.ScheduledAt,
	}
	if booking.Courier == "" {
		booking.Courier = req.Courier
	}
	if resp.PickupDate != "" {
		if t, err := time.Parse(time.RFC3339, resp.PickupDate); err == nil {
			booking.ScheduledAt = &t
		}
	}
	return booking, nil
}

func (b *HTTPBooker) doRequest(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("carrier: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("carrier: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("carrier: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody pickupResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Message != "" {
			return fmt.Errorf("%w: HTTP %d: %s", ErrRequestFailed, resp.StatusCode, errBody.Message)
		}
		return fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("carrier: failed to decode response: %w", err)
	}
	return nil
}

var _ apptrade.CarrierBooker = (*HTTPBooker)(nil)
