// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package upstream

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/warmonitor/internal/logging"
	"github.com/tomtom215/warmonitor/internal/metrics"
)

// maxErrorBodySize limits the amount of response body read for error reporting.
const maxErrorBodySize = 64 * 1024

// maxBodySize bounds successful payloads. The full war status is a few MB.
const maxBodySize = 32 * 1024 * 1024

// Fetch results, used as metric labels.
const (
	resultSuccess     = "success"
	resultRetry       = "retry"
	resultUnavailable = "unavailable"
	resultTLSError    = "tls_error"
)

// TLSError is a transport-security failure (handshake, certificate). It is
// never retried.
type TLSError struct {
	Source string
	Err    error
}

func (e *TLSError) Error() string {
	return fmt.Sprintf("%s: tls failure: %v", e.Source, e.Err)
}

func (e *TLSError) Unwrap() error { return e.Err }

// statusError is a non-200 response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// readBodyForError reads the response body for error reporting (max 64KB)
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// Options configures a Client.
type Options struct {
	// Name labels metrics, logs and the circuit breaker.
	Name    string
	BaseURL string
	Timeout time.Duration
	// Retries is the number of attempts after the first.
	Retries    int
	RetryDelay time.Duration
	// RequestsPerSecond paces requests; 0 disables pacing.
	RequestsPerSecond float64
	Burst             int
	// Headers are sent with every request.
	Headers map[string]string
	// HTTPClient overrides the default client. Its Timeout is left as is.
	HTTPClient *http.Client
}

// Client performs GET requests against one source.
type Client struct {
	opts    Options
	http    *http.Client
	limiter *rate.Limiter
	breaker *Breaker
	log     zerolog.Logger
}

// NewClient creates a client for one source.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := max(opts.Burst, 1)
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &Client{
		opts:    opts,
		http:    httpClient,
		limiter: limiter,
		breaker: NewBreaker(opts.Name),
		log:     logging.With().Str("source", opts.Name).Logger(),
	}
}

// Name returns the source name.
func (c *Client) Name() string { return c.opts.Name }

// GetJSON fetches path and decodes the body into out. It reports false with a
// nil error when the source is unavailable this cycle.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, headers map[string]string, out any) (bool, error) {
	reqURL := c.opts.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * c.opts.RetryDelay):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return false, fmt.Errorf("%s: wait for rate limiter: %w", c.opts.Name, err)
		}

		start := time.Now()
		body, err := c.breaker.execute(func() ([]byte, error) {
			return c.doRequest(ctx, reqURL, headers)
		})
		if err == nil {
			err = json.Unmarshal(body, out)
			if err != nil {
				err = fmt.Errorf("decode %s: %w", path, err)
			}
		}
		if err == nil {
			metrics.RecordFetch(c.opts.Name, resultSuccess, time.Since(start))
			return true, nil
		}

		var tlsErr *TLSError
		switch {
		case errors.As(err, &tlsErr):
			metrics.RecordFetch(c.opts.Name, resultTLSError, time.Since(start))
			c.log.Error().Err(err).Str("path", path).Msg("TLS failure, not retrying")
			return false, err
		case ctx.Err() != nil:
			return false, ctx.Err()
		case errors.Is(err, ErrCircuitOpen):
			metrics.RecordFetch(c.opts.Name, resultUnavailable, time.Since(start))
			c.log.Debug().Str("path", path).Msg("Circuit open, source unavailable this cycle")
			return false, nil
		}

		lastErr = err
		if attempt < c.opts.Retries {
			metrics.RecordFetch(c.opts.Name, resultRetry, time.Since(start))
			c.log.Debug().Err(err).Str("path", path).Int("attempt", attempt+1).Msg("Fetch failed, retrying")
		} else {
			metrics.RecordFetch(c.opts.Name, resultUnavailable, time.Since(start))
		}
	}

	c.log.Warn().Err(lastErr).Str("path", path).Int("attempts", c.opts.Retries+1).Msg("Source unavailable this cycle")
	return false, nil
}

// doRequest performs one GET and returns the body of a 200 response.
func (c *Client) doRequest(ctx context.Context, reqURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.opts.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTLSFailure(err) {
			return nil, &TLSError{Source: c.opts.Name, Err: err}
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: string(readBodyForError(resp.Body))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// isTLSFailure reports whether err comes from the TLS handshake or
// certificate verification.
func isTLSFailure(err error) bool {
	var (
		recordErr    tls.RecordHeaderError
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		invalidErr   x509.CertificateInvalidError
		hostnameErr  x509.HostnameError
		alertErr     tls.AlertError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &alertErr)
}
