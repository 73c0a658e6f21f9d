package jwks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/halprotocol/jwtguard"
	"github.com/halprotocol/jwtguard/jwk"
)

// Fetcher retrieves a fresh JWK set from wherever it lives. Timeouts
// and retries below the single-attempt level are the caller's
// responsibility (for the HTTP implementation, that means configuring
// the *http.Client); Refresher layers retry-with-backoff on top of a
// Fetcher, it is not a Fetcher concern itself.
type Fetcher interface {
	Fetch(ctx context.Context) (jwk.Set, error)
}

// HTTPFetcher fetches a JWKS document over HTTP(S) GET.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher builds an HTTPFetcher. If client is nil,
// http.DefaultClient is used; callers that need a timeout must supply
// their own *http.Client configured with one.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{URL: url, Client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (jwk.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "building JWKS request")
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "fetching JWKS from %s", f.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, jwtguard.MalformedToken(nil, "fetching JWKS from %s: unexpected status %d", f.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, jwtguard.MalformedToken(err, "reading JWKS response from %s", f.URL)
	}

	var set jwk.Set
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, jwtguard.MalformedToken(err, "invalid JWKS document from %s", f.URL)
	}
	return set, nil
}
