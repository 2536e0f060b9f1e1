package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// gnmsPingRequest is the POST body GNMS-Ping expects (spec.md §6.1):
// {app_name, token, addresses: [ip...]}.
type gnmsPingRequest struct {
	AppName   string   `json:"app_name"`
	Token     string   `json:"token"`
	Addresses []string `json:"addresses"`
}

// GNMSPingFetcher issues a single bulk POST for every target IP and splits
// the "ip,reachable" CSV-like response back out per IP, so the Store can
// still diff one device at a time. Grounded on
// original_source/app/fetchers/api_functions.py::ping_from_gnms (response
// format "IP,Reachable\n192.168.1.1,true\n...").
type GNMSPingFetcher struct {
	collectionType models.CollectionType
	url            string
	appName        string
	token          string
	client         *http.Client
	breakers       *Breakers
}

func NewGNMSPingFetcher(collectionType models.CollectionType, url, appName, token string, client *http.Client, breakers *Breakers) *GNMSPingFetcher {
	return &GNMSPingFetcher{
		collectionType: collectionType,
		url:            url,
		appName:        appName,
		token:          token,
		client:         client,
		breakers:       breakers,
	}
}

func (f *GNMSPingFetcher) CollectionType() models.CollectionType { return f.collectionType }
func (f *GNMSPingFetcher) Source() SourceFamily                  { return SourceGNMSPing }
func (f *GNMSPingFetcher) BatchMode() BatchMode                  { return Bulk }

func (f *GNMSPingFetcher) FetchBulk(ctx context.Context, targets []DeviceTarget) (map[string]string, error) {
	addresses := make([]string, 0, len(targets))
	for _, t := range targets {
		addresses = append(addresses, t.IP)
	}

	body, err := json.Marshal(gnmsPingRequest{AppName: f.appName, Token: f.token, Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	raw, err := f.breakers.Execute(SourceGNMSPing, func() (string, error) {
		return doPOST(ctx, f.client, f.url, body)
	})
	if err != nil {
		return nil, err
	}

	return splitByIP(raw), nil
}

func doPOST(ctx context.Context, client *http.Client, url string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return string(respBody), nil
}

// splitByIP re-groups the flat "ip,reachable\n..." response by IP, one
// line (plus a synthetic single-column header re-added) per device so
// each device's raw text is stored independently in CollectionBatch.
func splitByIP(raw string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		ip := strings.TrimSpace(parts[0])
		if ip == "" || strings.EqualFold(ip, "ip") {
			continue // skip header row, if present
		}
		out[ip] = line
	}
	return out
}
