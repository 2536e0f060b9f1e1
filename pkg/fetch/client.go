// Package fetch implements the Fetchers of spec.md §4.2/§6.1: one HTTP
// client shape per upstream source family (FNA, DNA, GNMS-Ping), each
// registered under a collection type and wrapped in its own circuit
// breaker.
package fetch

import (
	"crypto/tls"
	"net/http"
	"time"
)

// ClientConfig tunes the transport behind every source-family client.
// Shape and defaults mirror the teacher's pkg/shared/http.ClientConfig
// (client_test.go), generalized from a single "30s everywhere" default to
// per-source timeouts supplied by internal/config.SourceConfig.
type ClientConfig struct {
	Timeout                 time.Duration
	MaxRetries              int
	DisableSSLVerification  bool
	MaxIdleConns            int
	IdleConnTimeout         time.Duration
	TLSHandshakeTimeout     time.Duration
	ResponseHeaderTimeout   time.Duration
}

// DefaultClientConfig is the fallback used when a source has no explicit
// timeout configured.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:               30 * time.Second,
		MaxRetries:            3,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	}
}

// GNMSPingClientConfig is tuned for the bulk ping endpoint: a single POST
// carrying potentially hundreds of addresses, so it gets a longer
// response-header allowance than a per-device GET.
func GNMSPingClientConfig(timeout time.Duration) ClientConfig {
	cfg := DefaultClientConfig()
	cfg.Timeout = timeout
	cfg.ResponseHeaderTimeout = timeout / 2
	return cfg
}

// NewClient builds an *http.Client with a dedicated Transport (never the
// shared http.DefaultTransport) tuned per config.
func NewClient(config ClientConfig) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          config.MaxIdleConns,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,
	}
	if config.DisableSSLVerification {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &http.Client{
		Timeout:   config.Timeout,
		Transport: transport,
	}
}

// NewClientWithTimeout is a convenience constructor for ad-hoc timeouts
// (used in tests and one-off scripts).
func NewClientWithTimeout(timeout time.Duration) *http.Client {
	config := DefaultClientConfig()
	config.Timeout = timeout
	return NewClient(config)
}
