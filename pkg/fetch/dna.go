package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// DNAFetcher is shaped like FNAFetcher but requires {vendor_os} in the
// path as well as {ip} (spec.md §6.1; one of HPE, Cisco-IOS, Cisco-NXOS).
// Grounded on original_source/app/fetchers/api_functions.py's
// get_X_from_dna family, which take vendor_os + switch_ip.
type DNAFetcher struct {
	collectionType models.CollectionType
	baseURL        string
	endpoint       string
	token          string
	client         *http.Client
	breakers       *Breakers
}

func NewDNAFetcher(collectionType models.CollectionType, baseURL, endpoint, token string, client *http.Client, breakers *Breakers) *DNAFetcher {
	return &DNAFetcher{
		collectionType: collectionType,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		endpoint:       endpoint,
		token:          token,
		client:         client,
		breakers:       breakers,
	}
}

func (f *DNAFetcher) CollectionType() models.CollectionType { return f.collectionType }
func (f *DNAFetcher) Source() SourceFamily                  { return SourceDNA }
func (f *DNAFetcher) BatchMode() BatchMode                  { return PerDevice }

func (f *DNAFetcher) FetchOne(ctx context.Context, target DeviceTarget) (string, error) {
	if target.VendorOS == "" {
		return "", fmt.Errorf("DNA fetch for %s requires vendor_os", target.Hostname)
	}
	path := strings.NewReplacer("{ip}", target.IP, "{vendor_os}", target.VendorOS).Replace(f.endpoint)
	url := fmt.Sprintf("%s/%s", f.baseURL, path)
	return f.breakers.Execute(SourceDNA, func() (string, error) {
		return doGET(ctx, f.client, url, f.token)
	})
}
