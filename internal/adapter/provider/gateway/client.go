// Package gateway implements ports.ProviderSession over the booking gateway's
// JSON API. The gateway fronts the KTX and SRT services under /ktx and /srt
// and keeps the provider session in a cookie.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/ports"
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient returns a client with its own cookie jar, so every Client is an
// independent provider session.
func NewClient(cfg Config, trainType domain.TrainType) (*Client, error) {
	if !trainType.Valid() {
		return nil, fmt.Errorf("unsupported train type %q", trainType)
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid gateway base url %q", cfg.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "railbook/1.0"
	}

	return &Client{
		baseURL:   base.String() + "/" + string(trainType),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (bool, error) {
	var resp resultDTO
	err := c.do(ctx, http.MethodPost, "/login", loginDTO{Username: username, Password: password}, &resp)
	if err != nil {
		return false, err
	}

	return resp.Success, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) SearchTrain(ctx context.Context, query ports.TrainQuery) ([]ports.ProviderTrain, error) {
	body := searchDTO{
		Departure:      query.Departure,
		Arrival:        query.Arrival,
		Date:           query.Date,
		Time:           query.Time,
		Passengers:     toPassengerDTOs(query.Passengers),
		IncludeNoSeats: query.IncludeSoldOut,
	}

	var resp struct {
		Trains []trainDTO `json:"trains"`
	}
	if err := c.do(ctx, http.MethodPost, "/trains/search", body, &resp); err != nil {
		return nil, err
	}

	trains := make([]ports.ProviderTrain, 0, len(resp.Trains))
	for _, t := range resp.Trains {
		trains = append(trains, t.toPort())
	}

	return trains, nil
}

func (c *Client) Reserve(ctx context.Context, train ports.ProviderTrain, passengers []domain.Passenger, option ports.ReserveOption) (ports.ProviderReservation, error) {
	body := reserveDTO{
		Train:      fromPortTrain(train),
		Passengers: toPassengerDTOs(passengers),
		Option:     string(option),
	}

	var resp reservationDTO
	if err := c.do(ctx, http.MethodPost, "/reservations", body, &resp); err != nil {
		return ports.ProviderReservation{}, err
	}

	return resp.toPort(), nil
}

func (c *Client) Reservations(ctx context.Context) ([]ports.ProviderReservation, error) {
	var resp struct {
		Reservations []reservationDTO `json:"reservations"`
	}
	if err := c.do(ctx, http.MethodGet, "/reservations", nil, &resp); err != nil {
		return nil, err
	}

	if resp.Reservations == nil {
		return nil, nil
	}

	out := make([]ports.ProviderReservation, 0, len(resp.Reservations))
	for _, r := range resp.Reservations {
		out = append(out, r.toPort())
	}

	return out, nil
}

func (c *Client) Pay(ctx context.Context, reservation ports.ProviderReservation, card domain.CreditCard) (bool, error) {
	body := cardDTO{
		Number:           card.Number,
		Password:         card.Password,
		ValidationNumber: card.ValidationNumber,
		Expire:           card.Expire,
		IsCorporate:      card.IsCorporate,
	}

	var resp resultDTO
	path := "/reservations/" + url.PathEscape(reservation.ID) + "/payment"
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return false, err
	}

	if !resp.Success && resp.Message != "" {
		return false, &ports.ProviderError{Code: resp.Code, Message: resp.Message}
	}

	return resp.Success, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("gateway call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e resultDTO
		if json.Unmarshal(raw, &e) == nil && (e.Message != "" || e.Code != "") {
			return &ports.ProviderError{Code: e.Code, Message: e.Message}
		}
		return fmt.Errorf("%s %s: gateway returned %d", method, path, resp.StatusCode)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}
