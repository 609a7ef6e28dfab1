package fingerprint

import (
	"strconv"
	"strings"

	tls "github.com/bogdanfinn/utls"
)

var versionNames = map[uint16]string{
	tls.VersionTLS10: "TLS 1.0",
	tls.VersionTLS11: "TLS 1.1",
	tls.VersionTLS12: "TLS 1.2",
	tls.VersionTLS13: "TLS 1.3",
}

// TLSVersionName renders wire version numbers ("772", "0x0304") as
// "TLS 1.3". Anything else, including already readable names, is returned
// unchanged.
func TLSVersionName(v string) string {
	s := strings.TrimSpace(v)
	base := 10
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		s, base = s[2:], 16
	}
	n, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return v
	}
	if name, ok := versionNames[uint16(n)]; ok {
		return name
	}
	return v
}
