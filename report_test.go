package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lylemi/tlscompare/internal/fetch"
	"github.com/lylemi/tlscompare/internal/fingerprint"
)

const plausibleJA3 = "771,4865-4866-4867,0-23-65281,29-23-24,0"

func staticSection(name string, rec *fingerprint.Record, err error) Section {
	return Section{
		Title: name + " section",
		Name:  name,
		Fetch: func(context.Context) (*fingerprint.Record, error) { return rec, err },
	}
}

func runReport(sections ...Section) (string, string) {
	var out, errOut bytes.Buffer
	NewReporter(&out, &errOut).Run(context.Background(), sections)
	return out.String(), errOut.String()
}

func TestReportPrintsRecords(t *testing.T) {
	rec := &fingerprint.Record{
		Client:      "tls-client (chrome_124)",
		UserAgent:   chromeUA,
		JA3:         plausibleJA3,
		ALPN:        "h2",
		HTTPVersion: "h2",
		TLSVersion:  "TLS 1.3",
		IP:          "198.51.100.2",
	}

	out, errOut := runReport(staticSection("a", rec, nil))

	assert.Empty(t, errOut)
	assert.Contains(t, out, "=== a section ===")
	assert.Contains(t, out, "Client        : tls-client (chrome_124)\n")
	assert.Contains(t, out, "IP            : 198.51.100.2\n")
	assert.Contains(t, out, "TLS version   : TLS 1.3\n")
	assert.Contains(t, out, "JA3           : "+plausibleJA3+"\n")
	assert.Contains(t, out, "Diagnostic    : "+fingerprint.ChromiumConsistent)
	assert.True(t, strings.HasSuffix(out, tip+"\n"))
}

func TestReportMissingFields(t *testing.T) {
	out, _ := runReport(staticSection("a", fingerprint.FromResponse("x", map[string]any{}), nil))

	for _, label := range []string{"IP", "TLS version", "HTTP version", "ALPN", "User-Agent", "JA3"} {
		assert.Regexp(t, `(?m)^`+label+` +: `+fingerprint.Unknown+`$`, out)
	}
	assert.Contains(t, out, fingerprint.CannotAssess)
}

func TestReportTruncatesLongUserAgent(t *testing.T) {
	longUA := chromeUA + " " + strings.Repeat("Extra/1.0 ", 10)
	require.Greater(t, len(longUA), uaWidth)
	rec := &fingerprint.Record{Client: "x", UserAgent: longUA}

	out, _ := runReport(staticSection("a", rec, nil))

	assert.Contains(t, out, " [...]\n")
	assert.NotContains(t, out, longUA)
	assert.Equal(t, chromeUA+" "+strings.Repeat("Extra/1.0 ", 10), rec.UserAgent)
}

func TestReportIsolatesFailures(t *testing.T) {
	ok := &fingerprint.Record{Client: "second", UserAgent: "curl/8.0"}

	out, errOut := runReport(
		staticSection("first", nil, errors.New("connection refused")),
		staticSection("second", ok, nil),
	)

	assert.Contains(t, errOut, "Error first: connection refused")
	assert.Contains(t, out, "Client        : second")
	assert.Contains(t, out, tip)
}

func TestReportBothFail(t *testing.T) {
	out, errOut := runReport(
		staticSection("first", nil, errors.New("boom")),
		staticSection("second", nil, nil),
	)

	assert.Contains(t, errOut, "Error first: boom")
	assert.Contains(t, errOut, "Error second: no record returned")
	assert.NotContains(t, out, "Client")
	assert.Contains(t, out, tip)
}

func TestReportRecoversPanic(t *testing.T) {
	panicking := Section{
		Title: "panics",
		Name:  "first",
		Fetch: func(context.Context) (*fingerprint.Record, error) { panic("nil map") },
	}
	ok := &fingerprint.Record{Client: "second"}

	var out, errOut string
	require.NotPanics(t, func() {
		out, errOut = runReport(panicking, staticSection("second", ok, nil))
	})
	assert.Contains(t, errOut, "Error first: panic: nil map")
	assert.Contains(t, out, "Client        : second")
}

func TestReportRealFetchers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"127.0.0.1","tls":{"ja3":"771,4865-4866,0-23,29,0"}}`))
	}))
	deadURL := srv.URL
	srv.Close()

	// The conventional branch hits a closed port; the emulation branch has
	// no usable profile table. Both must be reported, neither may abort.
	std, err := fetch.NewStandardFetcher(deadURL, Config.StandardHeaders, time.Second, "")
	require.NoError(t, err)
	table := fetch.NewProfileTable(time.Hour, func(context.Context) (map[string]profiles.ClientProfile, error) {
		return nil, errors.New("signature download failed")
	})
	emu := fetch.NewEmulatingFetcher(fetch.EmulatingOptions{Endpoint: deadURL, Profile: "chrome_124"}, table)

	out, errOut := runReport(
		Section{Title: "A", Name: "net/http", Fetch: std.Fetch},
		Section{Title: "B", Name: "tls-client", Fetch: emu.Fetch},
	)

	assert.Contains(t, errOut, "Error net/http: ")
	assert.Contains(t, errOut, "Error tls-client: browser emulation unavailable")
	assert.Contains(t, out, "=== A ===")
	assert.Contains(t, out, "=== B ===")
	assert.Contains(t, out, tip)
}

func TestReportStandardUnaffectedByEmulationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"127.0.0.1","tls":{"ja3":"771,4865-4866,0-23,29,0"}}`))
	}))
	defer srv.Close()

	std, err := fetch.NewStandardFetcher(srv.URL, Config.StandardHeaders, time.Second, "")
	require.NoError(t, err)
	emu := fetch.NewEmulatingFetcher(fetch.EmulatingOptions{Endpoint: srv.URL, Profile: "no_such_browser"},
		fetch.NewProfileTable(time.Hour, fetch.BuiltinProfiles))

	out, errOut := runReport(
		Section{Title: "A", Name: "net/http", Fetch: std.Fetch},
		Section{Title: "B", Name: "tls-client", Fetch: emu.Fetch},
	)

	assert.Contains(t, errOut, `unknown browser profile "no_such_browser"`)
	assert.Contains(t, out, "IP            : 127.0.0.1\n")
	assert.Contains(t, out, "Diagnostic    : "+fingerprint.ChromiumConsistent)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, 20*time.Second, Config.StandardTimeout)
	assert.Empty(t, Config.EmulationProxy)
	assert.False(t, Config.EmulationInsecure)

	opts := emulatingOptions()
	assert.Equal(t, Config.Endpoint, opts.Endpoint)
	assert.Equal(t, Config.BrowserProfile, opts.Profile)
	assert.Equal(t, Config.EmulationInsecure, opts.InsecureSkipVerify)
}
