package fingerprint

import "strings"

// Verdict messages. They are indicative only.
const (
	ChromiumConsistent = "→ Likely consistent if the client is a real browser. Verify server-side if needed."
	ChromiumMismatch   = "⚠️ Possible UA↔JA3 mismatch (non-browser fingerprint)."
	OtherConsistent    = "→ Likely consistent if the fingerprint really belongs to the declared client."
	OtherMismatch      = "⚠️ Possible UA↔JA3 mismatch."
	CannotAssess       = "ℹ️ Cannot assess consistency without a database of known JA3 fingerprints."
)

var (
	chromiumMarkers = []string{"chrome", "chromium", "edg"}
	otherMarkers    = []string{"firefox", "safari", "ios", "android"}
)

// Verdict is a heuristic, not authoritative: it only checks which browser
// family the User-Agent claims and whether the JA3 string looks structurally
// plausible (contains both ',' and '-'). No JA3 signature table is consulted.
func Verdict(userAgent, ja3 string) string {
	ua := strings.ToLower(userAgent)
	plausible := ja3 != "" && strings.Contains(ja3, ",") && strings.Contains(ja3, "-")

	switch {
	case containsAny(ua, chromiumMarkers):
		if plausible {
			return ChromiumConsistent
		}
		return ChromiumMismatch
	case containsAny(ua, otherMarkers):
		if plausible {
			return OtherConsistent
		}
		return OtherMismatch
	default:
		return CannotAssess
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
