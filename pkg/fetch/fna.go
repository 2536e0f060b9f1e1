package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// FNAFetcher polls a Factory Network Automation endpoint: GET {base}/
// {endpoint} with {ip} substituted, vendor auto-detected upstream
// (spec.md §6.1). Grounded on original_source/app/fetchers/api_functions.py's
// get_X_from_fna family, which take only switch_ip.
type FNAFetcher struct {
	collectionType models.CollectionType
	baseURL        string
	endpoint       string
	token          string
	client         *http.Client
	breakers       *Breakers
}

func NewFNAFetcher(collectionType models.CollectionType, baseURL, endpoint, token string, client *http.Client, breakers *Breakers) *FNAFetcher {
	return &FNAFetcher{
		collectionType: collectionType,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		endpoint:       endpoint,
		token:          token,
		client:         client,
		breakers:       breakers,
	}
}

func (f *FNAFetcher) CollectionType() models.CollectionType { return f.collectionType }
func (f *FNAFetcher) Source() SourceFamily                  { return SourceFNA }
func (f *FNAFetcher) BatchMode() BatchMode                  { return PerDevice }

func (f *FNAFetcher) FetchOne(ctx context.Context, target DeviceTarget) (string, error) {
	url := fmt.Sprintf("%s/%s", f.baseURL, strings.ReplaceAll(f.endpoint, "{ip}", target.IP))
	return f.breakers.Execute(SourceFNA, func() (string, error) {
		return doGET(ctx, f.client, url, f.token)
	})
}

func doGET(ctx context.Context, client *http.Client, url, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}
