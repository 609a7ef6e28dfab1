package fingerprint

import (
	"fmt"
	"strconv"
	"strings"
)

// Unknown is displayed in place of any field the echo endpoint did not report.
const Unknown = "—"

// Record is the normalized view of one echo endpoint response.
// Empty string fields mean the endpoint did not report them.
type Record struct {
	Client      string
	UserAgent   string
	JA3         string
	ALPN        string
	HTTPVersion string
	TLSVersion  string
	IP          string

	// Raw is the decoded response body, kept for debugging.
	Raw map[string]any
}

// FromResponse builds a Record from a decoded echo endpoint body.
// Missing fields are left empty; nothing here fails.
func FromResponse(client string, raw map[string]any) *Record {
	return &Record{
		Client:      client,
		UserAgent:   firstString(raw, []string{"browser", "user_agent"}, []string{"user_agent"}),
		JA3:         firstString(raw, []string{"tls", "ja3"}),
		ALPN:        alpn(raw),
		HTTPVersion: firstString(raw, []string{"http", "version"}, []string{"http_version"}),
		TLSVersion:  TLSVersionName(firstString(raw, []string{"tls", "version"}, []string{"tls", "tls_version_negotiated"})),
		IP:          firstString(raw, []string{"ip"}),
		Raw:         raw,
	}
}

// Display returns s, or Unknown when s is empty.
func Display(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// alpn reads tls.alpn, then the protocols of the ALPN entry in the
// endpoint's tls.extensions list.
func alpn(raw map[string]any) string {
	if s := firstString(raw, []string{"tls", "alpn"}); s != "" {
		return s
	}
	exts, _ := lookup(raw, "tls", "extensions").([]any)
	for _, ext := range exts {
		obj, ok := ext.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		if strings.HasPrefix(name, "application_layer_protocol_negotiation") {
			return stringify(obj["protocols"])
		}
	}
	return ""
}

func firstString(raw map[string]any, paths ...[]string) string {
	for _, path := range paths {
		if s := stringify(lookup(raw, path...)); s != "" {
			return s
		}
	}
	return ""
}

func lookup(raw map[string]any, path ...string) any {
	var cur any = raw
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = obj[key]; !ok {
			return nil
		}
	}
	return cur
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
