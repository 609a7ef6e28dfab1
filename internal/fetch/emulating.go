package fetch

import (
	"context"
	"fmt"
	"io"
	"log"

	fhttp "github.com/bogdanfinn/fhttp"
	tlsclient "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/lylemi/tlscompare/internal/fingerprint"
)

// doer is the part of tlsclient.HttpClient the fetcher needs.
type doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// EmulatingOptions configures an EmulatingFetcher.
type EmulatingOptions struct {
	Endpoint  string
	UserAgent string
	Profile   string
	// ProxyURL is handed to tls-client as is; empty means direct.
	ProxyURL           string
	Debug              bool
	InsecureSkipVerify bool
}

// EmulatingFetcher issues one GET through a tls-client session that
// reproduces a named browser's handshake.
type EmulatingFetcher struct {
	opts      EmulatingOptions
	table     *ProfileTable
	newClient func(profile profiles.ClientProfile) (doer, error)
}

// NewEmulatingFetcher binds the fetcher to a profile table, which is
// refreshed on every Fetch if stale.
func NewEmulatingFetcher(opts EmulatingOptions, table *ProfileTable) *EmulatingFetcher {
	f := &EmulatingFetcher{opts: opts, table: table}
	f.newClient = f.newTLSClient
	return f
}

// Label is the client name stored in records.
func (f *EmulatingFetcher) Label() string {
	return fmt.Sprintf("tls-client (%s)", f.opts.Profile)
}

func (f *EmulatingFetcher) newTLSClient(profile profiles.ClientProfile) (doer, error) {
	options := []tlsclient.HttpClientOption{
		tlsclient.WithClientProfile(profile),
	}
	if f.opts.ProxyURL != "" {
		options = append(options, tlsclient.WithProxyUrl(f.opts.ProxyURL))
	}
	if f.opts.InsecureSkipVerify {
		options = append(options, tlsclient.WithInsecureSkipVerify())
	}

	logger := tlsclient.NewNoopLogger()
	if f.opts.Debug {
		logger = tlsclient.NewDebugLogger(tlsclient.NewLogger())
		options = append(options, tlsclient.WithDebug())
	}

	client, err := tlsclient.NewHttpClient(logger, options...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Fetch refreshes the profile table, then performs the request. The two
// steps run strictly in sequence. User-Agent is taken from the response only.
func (f *EmulatingFetcher) Fetch(ctx context.Context) (*fingerprint.Record, error) {
	raw, err := f.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return fingerprint.FromResponse(f.Label(), raw), nil
}

// FetchRaw returns the decoded response body.
func (f *EmulatingFetcher) FetchRaw(ctx context.Context) (map[string]any, error) {
	refreshed, err := f.table.RefreshIfNeeded(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := f.table.Lookup(f.opts.Profile)
	if err != nil {
		return nil, err
	}
	if f.opts.Debug {
		log.Printf("profile %s (%s), table refreshed: %t", f.opts.Profile, profile.GetClientHelloStr(), refreshed)
	}

	client, err := f.newClient(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmulationUnavailable, err)
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, f.opts.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", f.opts.Endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != fhttp.StatusOK {
		return nil, &StatusError{Client: f.Label(), StatusCode: resp.StatusCode, Body: snippet(string(body), bodySnippetLen)}
	}

	return decodeBody(body)
}
