package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lylemi/tlscompare/internal/fingerprint"
)

// StandardLabel names the conventional client in reports.
const StandardLabel = "net/http (Go crypto/tls)"

// StandardFetcher issues one GET with Go's own TLS stack and a static,
// browser-looking header set.
type StandardFetcher struct {
	Endpoint string
	Headers  map[string]string
	client   *http.Client
}

// NewStandardFetcher builds a fetcher with the given timeout. socksAddr may
// be empty; see NewUpstreamDialer for accepted formats.
func NewStandardFetcher(endpoint string, headers map[string]string, timeout time.Duration, socksAddr string) (*StandardFetcher, error) {
	dialer, err := NewUpstreamDialer(socksAddr, timeout)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &StandardFetcher{
		Endpoint: endpoint,
		Headers:  headers,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}, nil
}

// Fetch performs the request. A missing User-Agent in the response falls
// back to the header that was sent.
func (f *StandardFetcher) Fetch(ctx context.Context) (*fingerprint.Record, error) {
	raw, err := f.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}

	rec := fingerprint.FromResponse(StandardLabel, raw)
	if rec.UserAgent == "" {
		rec.UserAgent = f.Headers["User-Agent"]
	}
	return rec, nil
}

// FetchRaw returns the decoded response body.
func (f *StandardFetcher) FetchRaw(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range f.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", f.Endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Client: StandardLabel, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return decodeBody(body)
}

func decodeBody(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body is not an object", ErrDecode)
	}
	return raw, nil
}
