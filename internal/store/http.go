package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"invtrack/internal/config"
	"invtrack/internal/domain"
)

const maxBodyBytes = 4 << 20

// HTTPStore talks to the REST product store
type HTTPStore struct {
	base    *url.URL
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewHTTPStore creates a store client for cfg.URL
func NewHTTPStore(cfg config.StoreConfig) (*HTTPStore, error) {
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid store url %q", cfg.URL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Errorf("invalid store url %q: scheme must be http or https", cfg.URL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	s := &HTTPStore{
		base:   base,
		client: &http.Client{Timeout: time.Duration(cfg.Timeout)},
	}
	if cfg.Breaker.Failures > 0 {
		s.breaker = newBreaker(cfg.Breaker)
	}
	return s, nil
}

func newBreaker(cfg config.BreakerConfig) *gobreaker.CircuitBreaker[[]byte] {
	st := gobreaker.Settings{
		Name:        "inventory-store",
		MaxRequests: 1,
		Timeout:     time.Duration(cfg.OpenTimeout),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Failures
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				// The store answered; only its own failures count
				return !se.Temporary()
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(log.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Store circuit breaker changed state")
		},
	}
	return gobreaker.NewCircuitBreaker[[]byte](st)
}

// List fetches GET /products
func (s *HTTPStore) List(ctx context.Context) ([]domain.Product, error) {
	body, err := s.do(ctx, http.MethodGet, s.base.JoinPath("products"), nil)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode product list")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Create sends POST /products
func (s *HTTPStore) Create(ctx context.Context, p domain.NewProduct) (*domain.Product, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode product")
	}

	body, err := s.do(ctx, http.MethodPost, s.base.JoinPath("products"), payload)
	if err != nil {
		return nil, err
	}

	var created domain.Product
	if err := json.Unmarshal(body, &created); err != nil || created.ID == "" {
		log.WithField("body", truncate(string(body))).Debug("Create response did not describe a product")
		return nil, nil
	}
	return &created, nil
}

// Delete sends DELETE /products/{id}
func (s *HTTPStore) Delete(ctx context.Context, id domain.ProductID) error {
	if id == "" {
		return errors.New("cannot delete a product without an id")
	}
	_, err := s.do(ctx, http.MethodDelete, s.base.JoinPath("products", url.PathEscape(id.String())), nil)
	return err
}

func (s *HTTPStore) do(ctx context.Context, method string, u *url.URL, payload []byte) ([]byte, error) {
	call := func() ([]byte, error) {
		return s.roundTrip(ctx, method, u, payload)
	}
	if s.breaker == nil {
		return call()
	}

	body, err := s.breaker.Execute(call)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Wrapf(ErrUnavailable, "%s %s", method, u.Path)
	}
	return body, err
}

func (s *HTTPStore) roundTrip(ctx context.Context, method string, u *url.URL, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s %s", method, u.Path)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	entry := log.WithFields(log.Fields{
		"method":     method,
		"path":       u.Path,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		entry.WithError(err).Warn("Store request failed")
		return nil, errors.Wrapf(err, "%s %s", method, u.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	entry = entry.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Warn("Failed to read store response")
		return nil, errors.Wrapf(err, "%s %s: read response", method, u.Path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		entry.Warn("Store returned an error status")
		return nil, &StatusError{
			Method:     method,
			Path:       u.Path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	entry.Debug("Store request")
	return body, nil
}

// maxBodyRunes bounds response bodies quoted in logs and errors
const maxBodyRunes = 200

// truncate shortens s to maxBodyRunes runes without splitting a character
func truncate(s string) string {
	n := 0
	for i := range s {
		if n == maxBodyRunes {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
