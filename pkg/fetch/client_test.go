package fetch

import (
	"testing"
	"time"
)

func TestDefaultClientConfig(t *testing.T) {
	config := DefaultClientConfig()

	if config.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", config.Timeout)
	}
	if config.MaxRetries != 3 {
		t.Errorf("expected MaxRetries 3, got %d", config.MaxRetries)
	}
	if config.DisableSSLVerification {
		t.Error("expected DisableSSLVerification to be false")
	}
	if config.MaxIdleConns != 10 {
		t.Errorf("expected MaxIdleConns 10, got %d", config.MaxIdleConns)
	}
}

func TestNewClient(t *testing.T) {
	config := ClientConfig{
		Timeout:               30 * time.Second,
		MaxRetries:            2,
		MaxIdleConns:          5,
		IdleConnTimeout:       60 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
	}

	client := NewClient(config)
	if client == nil {
		t.Fatal("expected client to be created")
	}
	if client.Timeout != config.Timeout {
		t.Errorf("expected timeout %v, got %v", config.Timeout, client.Timeout)
	}
	if client.Transport == nil {
		t.Error("expected transport to be configured")
	}
}

func TestNewClientWithTimeout(t *testing.T) {
	timeout := 15 * time.Second
	client := NewClientWithTimeout(timeout)
	if client.Timeout != timeout {
		t.Errorf("expected timeout %v, got %v", timeout, client.Timeout)
	}
}

func TestGNMSPingClientConfig(t *testing.T) {
	timeout := 20 * time.Second
	config := GNMSPingClientConfig(timeout)
	if config.Timeout != timeout {
		t.Errorf("expected timeout %v, got %v", timeout, config.Timeout)
	}
	expected := timeout / 2
	if config.ResponseHeaderTimeout != expected {
		t.Errorf("expected ResponseHeaderTimeout %v, got %v", expected, config.ResponseHeaderTimeout)
	}
}

func TestNewClientWithSSLDisabled(t *testing.T) {
	config := DefaultClientConfig()
	config.DisableSSLVerification = true

	client := NewClient(config)
	if client.Transport == nil {
		t.Error("expected transport to be configured")
	}
}
